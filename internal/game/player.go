package game

import (
	"github.com/crossstars/crossstars-server-go/internal/game/pp"
)

// Player identifiers are fixed for a two-player session.
const (
	PlayerOne = "player1"
	PlayerTwo = "player2"
)

// playerState owns one player's zones, PP pool and per-turn flags. Zone
// membership is a partition: every card instance sits in exactly one zone
// slice at any instant, and only the playerState methods mutate membership.
type playerState struct {
	id    string
	zones [zoneCount][]*CardInstance

	ppTicket                 bool
	hasPlayedTacticsThisTurn bool
	pool                     *pp.Pool
}

func newPlayerState(id string) *playerState {
	return &playerState{
		id:   id,
		pool: pp.NewPool(),
	}
}

// otherPlayer returns the opponent of id.
func otherPlayer(id string) string {
	if id == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}
