package rules

import (
	"errors"
	"testing"
)

func TestNewTurnManagerStartsInInit(t *testing.T) {
	tm := NewTurnManager("player1")

	if tm.Phase() != PhaseInit {
		t.Fatalf("expected INIT phase, got %s", tm.Phase())
	}
	if tm.Turn() != 0 || tm.Round() != 0 {
		t.Fatalf("expected turn/round 0/0, got %d/%d", tm.Turn(), tm.Round())
	}
	if !tm.IsFirstTurn() {
		t.Fatal("expected first-turn flag set")
	}
}

func TestPhaseSequence(t *testing.T) {
	tm := NewTurnManager("player1")

	if err := tm.StartTurn("player1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tm.Phase() != PhaseStart || tm.Turn() != 1 || tm.Round() != 1 {
		t.Fatalf("expected START turn 1 round 1, got %s turn %d round %d", tm.Phase(), tm.Turn(), tm.Round())
	}

	if err := tm.EnterMain(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tm.Phase() != PhaseMain {
		t.Fatalf("expected MAIN, got %s", tm.Phase())
	}

	if err := tm.BeginEnd(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tm.Phase() != PhaseEnd {
		t.Fatalf("expected END, got %s", tm.Phase())
	}

	if err := tm.StartTurn("player2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tm.ActivePlayer() != "player2" || tm.Turn() != 2 || tm.Round() != 1 {
		t.Fatalf("expected player2 turn 2 round 1, got %s turn %d round %d", tm.ActivePlayer(), tm.Turn(), tm.Round())
	}
}

func TestPhaseNeverSkipsOrReverses(t *testing.T) {
	tm := NewTurnManager("player1")

	// END before any turn started.
	if err := tm.BeginEnd(); err == nil {
		t.Fatal("expected error ending turn from INIT")
	}

	if err := tm.StartTurn("player1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Re-entering START mid-turn is rejected.
	err := tm.StartTurn("player1")
	var phaseErr *InvalidPhaseError
	if !errors.As(err, &phaseErr) {
		t.Fatalf("expected InvalidPhaseError, got %v", err)
	}

	if err := tm.EnterMain(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tm.EnterMain(); err == nil {
		t.Fatal("expected error re-entering MAIN")
	}
}

func TestFirstTurnFlagClearsAfterTurnOne(t *testing.T) {
	tm := NewTurnManager("player1")

	if err := tm.StartTurn("player1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tm.IsFirstTurn() {
		t.Fatal("expected first-turn flag still set during turn 1")
	}

	if err := tm.EnterMain(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tm.BeginEnd(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tm.StartTurn("player2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tm.IsFirstTurn() {
		t.Fatal("expected first-turn flag cleared on turn 2")
	}
}

func TestRoundAdvancesEveryTwoTurns(t *testing.T) {
	tm := NewTurnManager("player1")

	players := []string{"player1", "player2", "player1", "player2"}
	wantRounds := []int{1, 1, 2, 2}
	for i, player := range players {
		if err := tm.StartTurn(player); err != nil {
			t.Fatalf("turn %d: unexpected error: %v", i+1, err)
		}
		if tm.Round() != wantRounds[i] {
			t.Fatalf("turn %d: expected round %d, got %d", i+1, wantRounds[i], tm.Round())
		}
		if err := tm.EnterMain(); err != nil {
			t.Fatalf("turn %d: unexpected error: %v", i+1, err)
		}
		if err := tm.BeginEnd(); err != nil {
			t.Fatalf("turn %d: unexpected error: %v", i+1, err)
		}
	}
}
