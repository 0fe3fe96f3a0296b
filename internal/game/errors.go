package game

import (
	"errors"
	"fmt"
)

var (
	// ErrGameNotFound indicates an unknown game session ID.
	ErrGameNotFound = errors.New("game not found")

	// ErrCardNotInSourceZone indicates a zone move whose card is not
	// currently owned by the source zone.
	ErrCardNotInSourceZone = errors.New("card not in source zone")

	// ErrNotActivePlayer indicates a turn-scoped command issued by the
	// player who does not have the turn.
	ErrNotActivePlayer = errors.New("not the active player")

	// ErrTacticsAreaOccupied indicates a move into an already-filled
	// tactics slot; the slot holds at most one card.
	ErrTacticsAreaOccupied = errors.New("tactics area already occupied")

	// ErrTacticsAlreadyPlayed indicates a second tactics play in the same
	// turn.
	ErrTacticsAlreadyPlayed = errors.New("tactics card already played this turn")
)

// UnknownCardError reports a deck list entry with no catalog definition.
type UnknownCardError struct {
	Name string
}

func (e *UnknownCardError) Error() string {
	return fmt.Sprintf("unknown card: %s", e.Name)
}

// MalformedLineError reports a deck list line that yields no card name.
type MalformedLineError struct {
	Line string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed deck list line: %q", e.Line)
}

// InvalidLeaderCountError reports a deck list without exactly the required
// number of leaders.
type InvalidLeaderCountError struct {
	Actual int
}

func (e *InvalidLeaderCountError) Error() string {
	return fmt.Sprintf("invalid leader count: %d", e.Actual)
}

// DeckCountError reports a deck section whose size violates the configured
// validation policy.
type DeckCountError struct {
	Section string
	Want    int
	Got     int
}

func (e *DeckCountError) Error() string {
	return fmt.Sprintf("invalid %s count: want %d, got %d", e.Section, e.Want, e.Got)
}
