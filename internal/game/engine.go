package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/crossstars/crossstars-server-go/internal/catalog"
	"github.com/crossstars/crossstars-server-go/internal/game/rules"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RulesConfig carries the tunable rule parameters of a session.
type RulesConfig struct {
	StartingPP      int
	OpeningHandSize int
	Deck            ValidationPolicy
}

// DefaultRulesConfig returns the standard two-player setup: 3 starting PP and
// a 4-card opening hand with the strict deck policy.
func DefaultRulesConfig() RulesConfig {
	return RulesConfig{
		StartingPP:      3,
		OpeningHandSize: 4,
		Deck:            DefaultValidationPolicy(),
	}
}

// Message is one entry of a session's game log.
type Message struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Notification is pushed to registered handlers after every applied command
// so downstream consumers (the renderer feed) can re-read the state.
type Notification struct {
	Type   string `json:"type"`
	GameID string `json:"game_id"`
}

// NotificationHandler receives engine notifications. The engine invokes it
// outside the session lock, so handlers may read the game state back.
type NotificationHandler func(Notification)

// gameSession is the authoritative state of one two-player game. All
// mutation happens under the session mutex, one discrete command at a time.
type gameSession struct {
	id        string
	players   map[string]*playerState
	turns     *rules.TurnManager
	wins      map[string]int
	messages  []Message
	rng       *rand.Rand
	startedAt time.Time
	mu        sync.Mutex
}

// Engine owns every active game session and exposes the command surface.
type Engine struct {
	logger  *zap.Logger
	catalog catalog.Catalog
	rules   RulesConfig

	mu      sync.RWMutex
	notify  NotificationHandler
	games   map[string]*gameSession
	newRand func() *rand.Rand
}

// NewEngine creates an engine backed by the given catalog.
func NewEngine(cat catalog.Catalog, cfg RulesConfig, logger *zap.Logger) *Engine {
	return &Engine{
		logger:  logger,
		catalog: cat,
		rules:   cfg,
		games:   make(map[string]*gameSession),
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// WithRandSource overrides the shuffle source for new sessions. Tests use a
// fixed seed for deterministic decks.
func (e *Engine) WithRandSource(src func() *rand.Rand) *Engine {
	e.newRand = src
	return e
}

// SetNotificationHandler registers the handler invoked after every applied
// command. It may be called or swapped at any time, including mid-game.
func (e *Engine) SetNotificationHandler(handler NotificationHandler) {
	e.mu.Lock()
	e.notify = handler
	e.mu.Unlock()
}

func (e *Engine) notifyChange(gameID, changeType string) {
	e.mu.RLock()
	handler := e.notify
	e.mu.RUnlock()
	if handler != nil {
		handler(Notification{Type: changeType, GameID: gameID})
	}
}

func (e *Engine) session(gameID string) (*gameSession, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return s, nil
}

// StartGame parses and validates both deck lists, builds a fresh session and
// runs setup: shuffle, opening hands, tactics slots, starting PP, the
// go-second PP ticket, and the first player's turn up to MAIN. Deck parsing
// is all-or-nothing, so a bad list leaves no session behind.
func (e *Engine) StartGame(ctx context.Context, decklistP1, decklistP2 string) (string, error) {
	lookup := e.catalog.Lookup

	decksP1, err := ParseDecklist(ctx, decklistP1, "p1", lookup, e.rules.Deck)
	if err != nil {
		return "", fmt.Errorf("player1 deck list: %w", err)
	}
	decksP2, err := ParseDecklist(ctx, decklistP2, "p2", lookup, e.rules.Deck)
	if err != nil {
		return "", fmt.Errorf("player2 deck list: %w", err)
	}

	s := &gameSession{
		id:        uuid.NewString(),
		players:   make(map[string]*playerState, 2),
		turns:     rules.NewTurnManager(PlayerOne),
		wins:      map[string]int{PlayerOne: 0, PlayerTwo: 0},
		rng:       e.newRand(),
		startedAt: time.Now(),
	}

	s.players[PlayerOne] = e.setupPlayer(s, PlayerOne, decksP1)
	s.players[PlayerTwo] = e.setupPlayer(s, PlayerTwo, decksP2)

	// Going second is compensated with the PP ticket, reserved for a
	// future rule.
	s.players[PlayerTwo].ppTicket = true

	if err := e.beginTurn(s, PlayerOne); err != nil {
		return "", err
	}

	e.mu.Lock()
	e.games[s.id] = s
	e.mu.Unlock()

	e.logger.Info("game started",
		zap.String("game_id", s.id),
		zap.Int("p1_deck", len(s.players[PlayerOne].zone(ZoneDeck))),
		zap.Int("p2_deck", len(s.players[PlayerTwo].zone(ZoneDeck))),
		zap.Int("starting_pp", e.rules.StartingPP),
	)
	e.notifyChange(s.id, "game_started")
	return s.id, nil
}

// setupPlayer seeds one player's zones from a parsed deck list.
func (e *Engine) setupPlayer(s *gameSession, playerID string, decks *DeckLists) *playerState {
	p := newPlayerState(playerID)
	p.zones[ZoneLeaders] = append(p.zones[ZoneLeaders], decks.Leaders...)
	p.zones[ZoneTacticsDeck] = append(p.zones[ZoneTacticsDeck], decks.Tactics...)
	p.zones[ZoneDeck] = append(p.zones[ZoneDeck], decks.MainDeck...)

	p.shuffleZone(ZoneDeck, s.rng)
	p.shuffleZone(ZoneTacticsDeck, s.rng)

	p.draw(e.rules.OpeningHandSize)
	p.pool.SetMax(e.rules.StartingPP)

	// Reveal the first tactics card into the slot.
	if deck := p.zone(ZoneTacticsDeck); len(deck) > 0 {
		top := deck[len(deck)-1]
		if err := p.moveCard(top.UniqueID, ZoneTacticsDeck, ZoneTacticsArea); err != nil {
			e.logger.Warn("failed to reveal tactics card",
				zap.String("player_id", playerID), zap.Error(err))
		}
	}
	return p
}

// beginTurn is the turn phase controller: it is the sole entry point into
// MAIN. Counters advance, PP refreshes in full, the active player draws one
// card (skipped on the very first turn of the game so opening hands stay at
// their dealt size), and the per-turn tactics flag resets.
func (e *Engine) beginTurn(s *gameSession, playerID string) error {
	if err := s.turns.StartTurn(playerID); err != nil {
		return err
	}
	p := s.players[playerID]

	firstTurn := s.turns.IsFirstTurn()
	p.pool.Refresh()

	if !firstTurn {
		if drawn := p.draw(1); drawn == 0 {
			e.logger.Warn("draw from empty deck",
				zap.String("game_id", s.id),
				zap.String("player_id", playerID),
			)
			s.addMessage(fmt.Sprintf("%s has no cards left to draw", playerID))
		}
	}

	p.hasPlayedTacticsThisTurn = false

	if err := s.turns.EnterMain(); err != nil {
		return err
	}

	s.addMessage(fmt.Sprintf("%s begins turn %d (round %d)", playerID, s.turns.Turn(), s.turns.Round()))
	e.logger.Debug("turn started",
		zap.String("game_id", s.id),
		zap.String("player_id", playerID),
		zap.Int("turn", s.turns.Turn()),
		zap.Int("round", s.turns.Round()),
		zap.Int("pp", p.pool.Current),
	)
	return nil
}

// PlayCard plays a card from the active player's hand or tactics slot into
// the play area. Cost validation, the PP debit and the zone move apply as one
// atomic unit: a failed validation leaves no partial state change.
func (e *Engine) PlayCard(gameID, playerID, cardID string) error {
	s, err := e.session(gameID)
	if err != nil {
		return err
	}
	if err := e.playCardLocked(s, playerID, cardID); err != nil {
		return err
	}
	e.notifyChange(gameID, "card_played")
	return nil
}

func (e *Engine) playCardLocked(s *gameSession, playerID, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.turns.ActivePlayer() != playerID {
		return fmt.Errorf("%w: %s", ErrNotActivePlayer, playerID)
	}
	if s.turns.Phase() != rules.PhaseMain {
		return &rules.InvalidPhaseError{Op: "play card", Current: s.turns.Phase()}
	}

	p, ok := s.players[playerID]
	if !ok {
		return fmt.Errorf("player %s not found", playerID)
	}

	var from Zone
	switch {
	case p.findInZone(ZoneHand, cardID) >= 0:
		from = ZoneHand
	case p.findInZone(ZoneTacticsArea, cardID) >= 0:
		if p.hasPlayedTacticsThisTurn {
			return ErrTacticsAlreadyPlayed
		}
		from = ZoneTacticsArea
	default:
		return fmt.Errorf("%w: card %s", ErrCardNotInSourceZone, cardID)
	}

	card := p.zone(from)[p.findInZone(from, cardID)]
	if err := p.pool.Spend(card.Cost); err != nil {
		return err
	}
	if err := p.moveCard(cardID, from, ZonePlayArea); err != nil {
		// The card was just located, so the move cannot miss; refund to
		// keep the command atomic regardless.
		p.pool.Gain(card.Cost)
		return err
	}

	if from == ZoneTacticsArea {
		p.hasPlayedTacticsThisTurn = true
		// Reveal the next waiting tactics card into the emptied slot.
		if deck := p.zone(ZoneTacticsDeck); len(deck) > 0 {
			top := deck[len(deck)-1]
			if err := p.moveCard(top.UniqueID, ZoneTacticsDeck, ZoneTacticsArea); err != nil {
				e.logger.Warn("failed to reveal tactics card",
					zap.String("game_id", s.id), zap.Error(err))
			}
		}
	}

	s.addMessage(fmt.Sprintf("%s plays %s", playerID, card.Name))
	e.logger.Debug("card played",
		zap.String("game_id", s.id),
		zap.String("player_id", playerID),
		zap.String("card", card.Name),
		zap.Int("cost", card.Cost),
		zap.Int("pp_remaining", p.pool.Current),
	)
	return nil
}

// LeaderOpKind enumerates the manual leader adjustments.
type LeaderOpKind string

const (
	LeaderOpDamage       LeaderOpKind = "damage"
	LeaderOpHeal         LeaderOpKind = "heal"
	LeaderOpToggleAwaken LeaderOpKind = "toggle_awaken"
	LeaderOpToggleTap    LeaderOpKind = "toggle_tap"
)

// LeaderOp is one leader adjustment command. Amount is used by damage and
// heal only.
type LeaderOp struct {
	Kind   LeaderOpKind `json:"kind"`
	Amount int          `json:"amount,omitempty"`
}

// AdjustLeader applies a combat-state transition to a leader. Either
// player's leaders may be adjusted at any time; this mirrors the permissive
// tabletop-style source behavior.
func (e *Engine) AdjustLeader(gameID, cardID string, op LeaderOp) error {
	s, err := e.session(gameID)
	if err != nil {
		return err
	}
	if err := e.adjustLeaderLocked(s, cardID, op); err != nil {
		return err
	}
	e.notifyChange(gameID, "leader_adjusted")
	return nil
}

func (e *Engine) adjustLeaderLocked(s *gameSession, cardID string, op LeaderOp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var card *CardInstance
	var owner string
	for id, p := range s.players {
		if idx := p.findInZone(ZoneLeaders, cardID); idx >= 0 {
			card = p.zone(ZoneLeaders)[idx]
			owner = id
			break
		}
	}
	if card == nil {
		return fmt.Errorf("%w: leader %s", ErrCardNotInSourceZone, cardID)
	}

	switch op.Kind {
	case LeaderOpDamage:
		if op.Amount < 0 {
			return fmt.Errorf("damage amount must be non-negative, got %d", op.Amount)
		}
		card.ApplyDelta(op.Amount)
	case LeaderOpHeal:
		if op.Amount < 0 {
			return fmt.Errorf("heal amount must be non-negative, got %d", op.Amount)
		}
		card.ApplyDelta(-op.Amount)
	case LeaderOpToggleAwaken:
		card.ToggleAwaken()
	case LeaderOpToggleTap:
		card.ToggleTap()
	default:
		return fmt.Errorf("unknown leader op: %s", op.Kind)
	}

	e.logger.Debug("leader adjusted",
		zap.String("game_id", s.id),
		zap.String("owner", owner),
		zap.String("card", card.Name),
		zap.String("op", string(op.Kind)),
		zap.Int("hp", card.CurrentHP),
		zap.Bool("tapped", card.IsTapped),
		zap.Bool("awakened", card.IsAwakened),
	)
	return nil
}

// EndTurn runs the turn-end sequence for the active player: the play area is
// emptied in play order into the trash zones (tactics face up, everything
// else face down), unspent PP converts into a bonus draw before any refresh,
// and the turn hands over to the opponent via beginTurn.
func (e *Engine) EndTurn(gameID, playerID string) error {
	s, err := e.session(gameID)
	if err != nil {
		return err
	}
	if err := e.endTurnLocked(s, playerID); err != nil {
		return err
	}
	e.notifyChange(gameID, "turn_ended")
	return nil
}

func (e *Engine) endTurnLocked(s *gameSession, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.turns.ActivePlayer() != playerID {
		return fmt.Errorf("%w: %s", ErrNotActivePlayer, playerID)
	}
	if err := s.turns.BeginEnd(); err != nil {
		return err
	}

	p := s.players[playerID]

	// Empty the play area in original order.
	for _, card := range append([]*CardInstance(nil), p.zone(ZonePlayArea)...) {
		dest := ZoneTrashFaceDown
		if card.Type == catalog.TypeTactics {
			dest = ZoneTrashFaceUp
		}
		if err := p.moveCard(card.UniqueID, ZonePlayArea, dest); err != nil {
			return fmt.Errorf("failed to clean up play area: %w", err)
		}
	}

	// Bonus draw for unspent PP, computed before any refresh.
	if bonus := p.pool.Current; bonus > 0 {
		drawn := p.draw(bonus)
		s.addMessage(fmt.Sprintf("%s draws %d bonus cards for unspent PP", playerID, drawn))
		e.logger.Debug("bonus draw",
			zap.String("game_id", s.id),
			zap.String("player_id", playerID),
			zap.Int("unspent_pp", bonus),
			zap.Int("drawn", drawn),
		)
	}

	next := otherPlayer(playerID)
	return e.beginTurn(s, next)
}

// RecordWin increments a player's match-win tally.
func (e *Engine) RecordWin(gameID, playerID string) error {
	s, err := e.session(gameID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if _, ok := s.players[playerID]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("player %s not found", playerID)
	}
	s.wins[playerID]++
	s.addMessage(fmt.Sprintf("%s wins the game (%d)", playerID, s.wins[playerID]))
	s.mu.Unlock()

	e.notifyChange(gameID, "win_recorded")
	return nil
}

func (s *gameSession) addMessage(text string) {
	s.messages = append(s.messages, Message{Text: text, Timestamp: time.Now()})
}
