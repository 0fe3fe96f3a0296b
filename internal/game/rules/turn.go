package rules

import (
	"fmt"
	"strings"
)

// Phase represents the phases of a Cross Stars turn.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseStart
	PhaseMain
	PhaseEnd
)

var phaseNames = map[Phase]string{
	PhaseInit:  "INIT",
	PhaseStart: "START",
	PhaseMain:  "MAIN",
	PhaseEnd:   "END",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// InvalidPhaseError reports an operation attempted outside the phase it is
// legal in.
type InvalidPhaseError struct {
	Op      string
	Current Phase
}

func (e *InvalidPhaseError) Error() string {
	return fmt.Sprintf("invalid phase transition: %s during %s", e.Op, e.Current)
}

// TurnManager tracks round/turn counters, the active player and the current
// phase. Phases only ever advance INIT -> START -> MAIN -> END and then wrap
// into the next player's START; the manager rejects anything else.
type TurnManager struct {
	round        int
	turn         int
	activePlayer string
	phase        Phase
	firstTurn    bool
}

// NewTurnManager creates a manager in the pre-game INIT phase. No turn has
// started yet: the turn counter is zero and the first-turn flag is set.
func NewTurnManager(firstPlayer string) *TurnManager {
	return &TurnManager{
		round:        0,
		turn:         0,
		activePlayer: strings.TrimSpace(firstPlayer),
		phase:        PhaseInit,
		firstTurn:    true,
	}
}

// Round returns the current round number (1-based once the game has started).
func (tm *TurnManager) Round() int {
	return tm.round
}

// Turn returns the global turn counter.
func (tm *TurnManager) Turn() int {
	return tm.turn
}

// ActivePlayer returns the player whose turn it is.
func (tm *TurnManager) ActivePlayer() string {
	return tm.activePlayer
}

// Phase returns the phase currently in progress.
func (tm *TurnManager) Phase() Phase {
	return tm.phase
}

// IsFirstTurn reports whether the very first turn of the game is still in
// progress. The flag clears once the turn counter passes 1, i.e. when the
// second player's first turn begins.
func (tm *TurnManager) IsFirstTurn() bool {
	return tm.firstTurn
}

// StartTurn advances the counters into player's START phase. Legal from INIT
// (game setup) and from END (handed over by the turn-end sequencer).
func (tm *TurnManager) StartTurn(player string) error {
	if tm.phase != PhaseInit && tm.phase != PhaseEnd {
		return &InvalidPhaseError{Op: "start turn", Current: tm.phase}
	}
	tm.turn++
	tm.round = (tm.turn + 1) / 2
	tm.activePlayer = strings.TrimSpace(player)
	tm.phase = PhaseStart
	if tm.turn > 1 {
		tm.firstTurn = false
	}
	return nil
}

// EnterMain moves from START into MAIN once start-of-turn effects resolved.
func (tm *TurnManager) EnterMain() error {
	if tm.phase != PhaseStart {
		return &InvalidPhaseError{Op: "enter main", Current: tm.phase}
	}
	tm.phase = PhaseMain
	return nil
}

// BeginEnd moves from MAIN into END. Only the turn-end sequencer calls this.
func (tm *TurnManager) BeginEnd() error {
	if tm.phase != PhaseMain {
		return &InvalidPhaseError{Op: "end turn", Current: tm.phase}
	}
	tm.phase = PhaseEnd
	return nil
}
