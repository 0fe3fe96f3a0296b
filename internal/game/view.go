package game

import (
	"fmt"
	"time"
)

// GameView is the complete snapshot of a session handed to downstream
// consumers. The renderer reads it and never mutates engine state.
type GameView struct {
	GameID         string         `json:"game_id"`
	Round          int            `json:"round"`
	Turn           int            `json:"turn"`
	ActivePlayerID string         `json:"active_player_id"`
	Phase          string         `json:"phase"`
	IsFirstTurn    bool           `json:"is_first_turn"`
	Wins           map[string]int `json:"wins"`
	Players        []PlayerView   `json:"players"`
	Messages       []Message      `json:"messages"`
	StartedAt      time.Time      `json:"started_at"`
}

// PlayerView is one player's half of the snapshot. Hidden zones (deck,
// tactics deck) expose counts only.
type PlayerView struct {
	PlayerID         string     `json:"player_id"`
	DeckCount        int        `json:"deck_count"`
	TacticsDeckCount int        `json:"tactics_deck_count"`
	Hand             []CardView `json:"hand"`
	Leaders          []CardView `json:"leaders"`
	PlayArea         []CardView `json:"play_area"`
	TrashFaceUp      []CardView `json:"trash_face_up"`
	TrashFaceDown    []CardView `json:"trash_face_down"`
	TacticsArea      *CardView  `json:"tactics_area,omitempty"`
	PP               PPView     `json:"pp"`
	PPTicket         bool       `json:"pp_ticket"`
	HasPlayedTactics bool       `json:"has_played_tactics_this_turn"`
}

// PPView mirrors the PP pool.
type PPView struct {
	Max     int `json:"max"`
	Current int `json:"current"`
}

// CardView is the read-only projection of a card instance.
type CardView struct {
	UniqueID       string     `json:"unique_id"`
	DefID          string     `json:"def_id"`
	Name           string     `json:"name"`
	Type           string     `json:"type"`
	Cost           int        `json:"cost"`
	EffectText     string     `json:"effect_text,omitempty"`
	IsAwakened     bool       `json:"is_awakened"`
	IsFaceDown     bool       `json:"is_face_down"`
	IsTapped       bool       `json:"is_tapped"`
	CurrentHP      int        `json:"current_hp"`
	DamageCounters int        `json:"damage_counters"`
	Attached       []CardView `json:"attached,omitempty"`
}

// View builds a snapshot of the session under its lock.
func (e *Engine) View(gameID string) (*GameView, error) {
	s, err := e.session(gameID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	view := &GameView{
		GameID:         s.id,
		Round:          s.turns.Round(),
		Turn:           s.turns.Turn(),
		ActivePlayerID: s.turns.ActivePlayer(),
		Phase:          s.turns.Phase().String(),
		IsFirstTurn:    s.turns.IsFirstTurn(),
		Wins:           map[string]int{PlayerOne: s.wins[PlayerOne], PlayerTwo: s.wins[PlayerTwo]},
		Messages:       append([]Message(nil), s.messages...),
		StartedAt:      s.startedAt,
	}
	for _, id := range []string{PlayerOne, PlayerTwo} {
		view.Players = append(view.Players, buildPlayerView(s.players[id]))
	}
	return view, nil
}

func buildPlayerView(p *playerState) PlayerView {
	pv := PlayerView{
		PlayerID:         p.id,
		DeckCount:        len(p.zone(ZoneDeck)),
		TacticsDeckCount: len(p.zone(ZoneTacticsDeck)),
		Hand:             buildCardViews(p.zone(ZoneHand)),
		Leaders:          buildCardViews(p.zone(ZoneLeaders)),
		PlayArea:         buildCardViews(p.zone(ZonePlayArea)),
		TrashFaceUp:      buildCardViews(p.zone(ZoneTrashFaceUp)),
		TrashFaceDown:    buildCardViews(p.zone(ZoneTrashFaceDown)),
		PP:               PPView{Max: p.pool.Max, Current: p.pool.Current},
		PPTicket:         p.ppTicket,
		HasPlayedTactics: p.hasPlayedTacticsThisTurn,
	}
	if slot := p.zone(ZoneTacticsArea); len(slot) > 0 {
		cv := buildCardView(slot[0])
		pv.TacticsArea = &cv
	}
	return pv
}

func buildCardViews(cards []*CardInstance) []CardView {
	views := make([]CardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, buildCardView(c))
	}
	return views
}

func buildCardView(c *CardInstance) CardView {
	view := CardView{
		UniqueID:       c.UniqueID,
		DefID:          c.DefID,
		Name:           c.Name,
		Type:           string(c.Type),
		Cost:           c.Cost,
		EffectText:     c.EffectText,
		IsAwakened:     c.IsAwakened,
		IsFaceDown:     c.IsFaceDown,
		IsTapped:       c.IsTapped,
		CurrentHP:      c.CurrentHP,
		DamageCounters: c.DamageCounters,
	}
	if len(c.Attached) > 0 {
		view.Attached = buildCardViews(c.Attached)
	}
	return view
}

// String implements a compact description used in log lines.
func (v *GameView) String() string {
	return fmt.Sprintf("game %s round %d turn %d %s/%s", v.GameID, v.Round, v.Turn, v.ActivePlayerID, v.Phase)
}
