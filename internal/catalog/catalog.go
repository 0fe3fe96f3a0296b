package catalog

import (
	"context"
	"errors"
)

// CardType classifies a card definition. Unknown types are carried through
// verbatim and treated as main-deck cards by the deck builder.
type CardType string

const (
	TypeLeader  CardType = "Leader"
	TypeTactics CardType = "Tactics"
	TypeAttack  CardType = "Attack"
	TypeMemoria CardType = "Memoria"
)

// LeaderStats carries the combat stats that only leader cards have.
// The awakened values are the overrides applied when a leader flips;
// stat recomputation itself is up to the caller.
type LeaderStats struct {
	BaseHP      int `json:"base_hp"`
	BaseATK     int `json:"base_atk"`
	AwakenedHP  int `json:"awakened_hp,omitempty"`
	AwakenedATK int `json:"awakened_atk,omitempty"`
}

// CardDefinition is the immutable template for a card. Definitions are owned
// by the catalog and are never mutated by the game engine; runtime state lives
// on card instances which copy these fields at creation.
type CardDefinition struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Type       CardType     `json:"type"`
	Cost       int          `json:"cost"`
	Leader     *LeaderStats `json:"leader,omitempty"`
	EffectText string       `json:"effect_text,omitempty"`
}

var (
	// ErrNotFound indicates the catalog has no definition under the
	// requested name.
	ErrNotFound = errors.New("catalog: card not found")

	// ErrUnavailable indicates the catalog backend could not be reached.
	// Distinct from ErrNotFound so callers can tell a missing card from a
	// broken store.
	ErrUnavailable = errors.New("catalog: unavailable")
)

// Catalog is the read side used by the game engine: a synchronous keyed
// lookup from display name to definition.
type Catalog interface {
	Lookup(ctx context.Context, name string) (*CardDefinition, error)
}

// Store extends Catalog with the authoring surface used by the admin
// endpoint.
type Store interface {
	Catalog
	Upsert(ctx context.Context, def *CardDefinition) error
	List(ctx context.Context) ([]*CardDefinition, error)
}
