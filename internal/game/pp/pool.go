package pp

import "fmt"

// InsufficientError reports a spend attempt that exceeds the current balance.
// The pool is left untouched when it is returned.
type InsufficientError struct {
	Required  int
	Available int
}

func (e *InsufficientError) Error() string {
	return fmt.Sprintf("insufficient PP: required %d, available %d", e.Required, e.Available)
}

// Pool tracks a player's spendable PP for the current turn. PP refreshes in
// full at every start of turn; there is no banking across turns.
type Pool struct {
	Max     int
	Current int
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// SetMax sets both the maximum and the current balance to value. Used at game
// setup and whenever the per-turn ceiling changes.
func (p *Pool) SetMax(value int) {
	if value < 0 {
		value = 0
	}
	p.Max = value
	p.Current = value
}

// Refresh restores the current balance to the maximum.
func (p *Pool) Refresh() {
	p.Current = p.Max
}

// Spend removes amount from the current balance. The balance never goes
// negative: an overdraw returns InsufficientError and changes nothing.
func (p *Pool) Spend(amount int) error {
	if amount <= 0 {
		return nil
	}
	if amount > p.Current {
		return &InsufficientError{Required: amount, Available: p.Current}
	}
	p.Current -= amount
	return nil
}

// Gain adds amount to the current balance, capped at the maximum.
func (p *Pool) Gain(amount int) {
	if amount <= 0 {
		return
	}
	p.Current += amount
	if p.Current > p.Max {
		p.Current = p.Max
	}
}
