package game

import (
	"fmt"

	"github.com/crossstars/crossstars-server-go/internal/catalog"
	"github.com/google/uuid"
)

// CardInstance is a single physical copy of a card inside a game session. It
// copies the immutable definition fields at creation and carries all runtime
// state. An instance is owned by exactly one zone at any time and lives until
// the session ends; it only ever migrates between zones.
type CardInstance struct {
	UniqueID   string
	DefID      string
	Name       string
	Type       catalog.CardType
	Cost       int
	EffectText string
	Leader     *catalog.LeaderStats

	IsAwakened     bool
	IsFaceDown     bool
	IsTapped       bool
	CurrentHP      int
	DamageCounters int
	Attached       []*CardInstance
}

// NewCardInstance creates a fresh instance of a definition. The unique ID is
// an owner-prefixed UUID, unique for the whole session. CurrentHP starts at
// the definition's base HP for leaders and 0 for everything else.
func NewCardInstance(def *catalog.CardDefinition, ownerPrefix string) *CardInstance {
	c := &CardInstance{
		UniqueID:   fmt.Sprintf("%s_%s", ownerPrefix, uuid.NewString()),
		DefID:      def.ID,
		Name:       def.Name,
		Type:       def.Type,
		Cost:       def.Cost,
		EffectText: def.EffectText,
		Attached:   make([]*CardInstance, 0),
	}
	if def.Leader != nil {
		stats := *def.Leader
		c.Leader = &stats
		c.CurrentHP = stats.BaseHP
	}
	return c
}

// ToggleAwaken flips the awaken flag. Stat recomputation from the awakened
// overrides is up to the caller.
func (c *CardInstance) ToggleAwaken() {
	c.IsAwakened = !c.IsAwakened
}

// ToggleTap flips the tap state unconditionally. This is the manual override;
// the auto-down rule goes through ApplyDelta.
func (c *CardInstance) ToggleTap() {
	c.IsTapped = !c.IsTapped
}

// ApplyDelta applies damage (positive) or healing (negative) to a leader's
// HP, clamping at 0. A card that was untapped when its HP reached 0 is
// automatically tapped ("down"); the rule fires only on that crossing, so
// further damage against an already-tapped leader at 0 changes nothing and
// healing never untaps.
func (c *CardInstance) ApplyDelta(amount int) {
	wasTapped := c.IsTapped
	result := c.CurrentHP - amount
	if result < 0 {
		result = 0
	}
	c.CurrentHP = result
	if amount > 0 {
		c.DamageCounters += amount
	}
	if c.CurrentHP <= 0 && !wasTapped {
		c.IsTapped = true
	}
}
