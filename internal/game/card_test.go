package game

import (
	"testing"

	"github.com/crossstars/crossstars-server-go/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLeader(t *testing.T) *CardInstance {
	t.Helper()
	def := &catalog.CardDefinition{
		ID: "BP01-001", Name: "《うるか》", Type: catalog.TypeLeader,
		Leader: &catalog.LeaderStats{BaseHP: 100, BaseATK: 30, AwakenedHP: 130, AwakenedATK: 40},
	}
	return NewCardInstance(def, "l_p1")
}

func TestNewCardInstanceCopiesDefinition(t *testing.T) {
	leader := makeLeader(t)

	assert.Equal(t, "BP01-001", leader.DefID)
	assert.Equal(t, catalog.TypeLeader, leader.Type)
	assert.Equal(t, 100, leader.CurrentHP)
	require.NotNil(t, leader.Leader)

	// The instance owns its stats copy.
	other := makeLeader(t)
	other.Leader.BaseHP = 1
	assert.Equal(t, 100, leader.Leader.BaseHP)
	assert.NotEqual(t, leader.UniqueID, other.UniqueID)
}

func TestNonLeaderInstanceStartsAtZeroHP(t *testing.T) {
	def := &catalog.CardDefinition{ID: "CS01-002", Name: "《序章》", Type: catalog.TypeMemoria}
	c := NewCardInstance(def, "m_p1")
	assert.Zero(t, c.CurrentHP)
	assert.Nil(t, c.Leader)
}

func TestApplyDeltaDamageAndClamp(t *testing.T) {
	leader := makeLeader(t)

	leader.ApplyDelta(30)
	assert.Equal(t, 70, leader.CurrentHP)
	assert.False(t, leader.IsTapped)

	leader.ApplyDelta(90)
	assert.Equal(t, 0, leader.CurrentHP)
	assert.True(t, leader.IsTapped, "reaching 0 HP must auto-tap")
}

func TestApplyDeltaAutoTapFiresOncePerCrossing(t *testing.T) {
	leader := makeLeader(t)
	leader.ApplyDelta(100)
	require.True(t, leader.IsTapped)

	// Manual untap, then more damage at 0: taps again on the new crossing.
	leader.ToggleTap()
	leader.ApplyDelta(10)
	assert.True(t, leader.IsTapped)
	assert.Equal(t, 0, leader.CurrentHP)
}

func TestApplyDeltaHealNeverUntaps(t *testing.T) {
	leader := makeLeader(t)
	leader.ApplyDelta(100)
	require.True(t, leader.IsTapped)
	require.Equal(t, 0, leader.CurrentHP)

	leader.ApplyDelta(-40)
	assert.Equal(t, 40, leader.CurrentHP)
	assert.True(t, leader.IsTapped, "healing must not auto-untap")
}

func TestApplyDeltaFurtherDamageWhileTappedAtZero(t *testing.T) {
	leader := makeLeader(t)
	leader.ApplyDelta(100)
	require.True(t, leader.IsTapped)

	leader.ApplyDelta(25)
	assert.Equal(t, 0, leader.CurrentHP)
	assert.True(t, leader.IsTapped)
}

func TestToggleAwakenIsIndependentOfTap(t *testing.T) {
	leader := makeLeader(t)

	leader.ToggleAwaken()
	assert.True(t, leader.IsAwakened)
	assert.False(t, leader.IsTapped)

	leader.ToggleTap()
	assert.True(t, leader.IsTapped)

	leader.ToggleAwaken()
	assert.False(t, leader.IsAwakened)
	assert.True(t, leader.IsTapped)
}

func TestApplyDeltaTracksDamageCounters(t *testing.T) {
	leader := makeLeader(t)
	leader.ApplyDelta(10)
	leader.ApplyDelta(15)
	leader.ApplyDelta(-5)
	assert.Equal(t, 25, leader.DamageCounters)
}
