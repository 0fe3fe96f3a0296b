package game

import (
	"context"
	"errors"
	"testing"

	"github.com/crossstars/crossstars-server-go/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *catalog.MemoryStore {
	return catalog.NewMemoryStore(catalog.SeedDefinitions()...)
}

// validDecklist is a strict-policy list: 4 leaders, 5 tactics, 50 main.
const validDecklist = `L:《うるか》
L:《ぷてち》
L:《レグルシュ》
L:《ミコト》

T:《PPチケット》
T:《PPチケット》
T:《PPチケット》
T:《デッド・オア・アライブ》
T:《デッド・オア・アライブ》

25 《ブライアントショット》
25 《序章》
`

func TestParseDecklistValid(t *testing.T) {
	cat := testCatalog()
	decks, err := ParseDecklist(context.Background(), validDecklist, "p1", cat.Lookup, DefaultValidationPolicy())
	require.NoError(t, err)

	assert.Len(t, decks.Leaders, 4)
	assert.Len(t, decks.Tactics, 5)
	assert.Len(t, decks.MainDeck, 50)

	// Every instance carries a distinct unique ID.
	seen := make(map[string]bool)
	for _, group := range [][]*CardInstance{decks.Leaders, decks.Tactics, decks.MainDeck} {
		for _, c := range group {
			assert.False(t, seen[c.UniqueID], "duplicate unique ID %s", c.UniqueID)
			seen[c.UniqueID] = true
		}
	}
	assert.Len(t, seen, 59)
}

func TestParseDecklistClassifiesByDefinitionType(t *testing.T) {
	cat := testCatalog()
	decks, err := ParseDecklist(context.Background(), validDecklist, "p1", cat.Lookup, DefaultValidationPolicy())
	require.NoError(t, err)

	for _, c := range decks.Leaders {
		assert.Equal(t, catalog.TypeLeader, c.Type)
	}
	for _, c := range decks.Tactics {
		assert.Equal(t, catalog.TypeTactics, c.Type)
	}
	for _, c := range decks.MainDeck {
		assert.NotEqual(t, catalog.TypeLeader, c.Type)
		assert.NotEqual(t, catalog.TypeTactics, c.Type)
	}
}

func TestParseDecklistLeaderInstancesStartAtBaseHP(t *testing.T) {
	cat := testCatalog()
	decks, err := ParseDecklist(context.Background(), validDecklist, "p1", cat.Lookup, DefaultValidationPolicy())
	require.NoError(t, err)

	for _, leader := range decks.Leaders {
		require.NotNil(t, leader.Leader)
		assert.Equal(t, leader.Leader.BaseHP, leader.CurrentHP)
		assert.False(t, leader.IsAwakened)
		assert.False(t, leader.IsTapped)
		assert.False(t, leader.IsFaceDown)
		assert.Zero(t, leader.DamageCounters)
		assert.Empty(t, leader.Attached)
	}
}

func TestParseDecklistUnknownCardAbortsWithNoPartialResult(t *testing.T) {
	cat := testCatalog()
	list := "L:《うるか》\n3 《未登録カード》\n"

	decks, err := ParseDecklist(context.Background(), list, "p1", cat.Lookup, DefaultValidationPolicy())
	require.Error(t, err)
	assert.Nil(t, decks)

	var unknown *UnknownCardError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "《未登録カード》", unknown.Name)
}

func TestParseDecklistInvalidLeaderCount(t *testing.T) {
	cat := testCatalog()
	list := `L:《うるか》
L:《ぷてち》
T:《PPチケット》
T:《PPチケット》
T:《PPチケット》
T:《デッド・オア・アライブ》
T:《デッド・オア・アライブ》
25 《ブライアントショット》
25 《序章》
`

	_, err := ParseDecklist(context.Background(), list, "p1", cat.Lookup, DefaultValidationPolicy())
	var leaderErr *InvalidLeaderCountError
	require.ErrorAs(t, err, &leaderErr)
	assert.Equal(t, 2, leaderErr.Actual)
}

func TestParseDecklistConfigurablePolicy(t *testing.T) {
	cat := testCatalog()
	list := `L:《うるか》
L:《ぷてち》
L:《レグルシュ》
L:《ミコト》
T:《PPチケット》
10 《序章》
`

	// Strict policy rejects the short deck.
	_, err := ParseDecklist(context.Background(), list, "p1", cat.Lookup, DefaultValidationPolicy())
	var countErr *DeckCountError
	require.ErrorAs(t, err, &countErr)

	// Relaxed policy accepts it.
	relaxed := DefaultValidationPolicy()
	relaxed.EnforceTacticsCount = false
	relaxed.EnforceMainDeckCount = false
	decks, err := ParseDecklist(context.Background(), list, "p1", cat.Lookup, relaxed)
	require.NoError(t, err)
	assert.Len(t, decks.Tactics, 1)
	assert.Len(t, decks.MainDeck, 10)
}

func TestParseDecklistMalformedLines(t *testing.T) {
	cat := testCatalog()

	for _, line := range []string{"L:", "T:   ", "3 ", "《》"} {
		_, err := ParseDecklist(context.Background(), line+"\n", "p1", cat.Lookup, DefaultValidationPolicy())
		var malformed *MalformedLineError
		require.ErrorAs(t, err, &malformed, "line %q", line)
	}
}

func TestParseDecklistBlankLinesSkipped(t *testing.T) {
	cat := testCatalog()
	relaxed := ValidationPolicy{LeaderCount: 4}
	list := "\n\nL:《うるか》\nL:《ぷてち》\n\nL:《レグルシュ》\nL:《ミコト》\n\n"

	decks, err := ParseDecklist(context.Background(), list, "p1", cat.Lookup, relaxed)
	require.NoError(t, err)
	assert.Len(t, decks.Leaders, 4)
	assert.Empty(t, decks.Tactics)
	assert.Empty(t, decks.MainDeck)
}

func TestParseDecklistQuantityDefaultsToOne(t *testing.T) {
	cat := testCatalog()
	relaxed := ValidationPolicy{LeaderCount: 0}
	list := "《序章》\n2 《ブライアントショット》\n"

	decks, err := ParseDecklist(context.Background(), list, "p1", cat.Lookup, relaxed)
	require.NoError(t, err)
	assert.Len(t, decks.MainDeck, 3)
}

func TestParseDecklistCatalogUnavailable(t *testing.T) {
	failing := func(ctx context.Context, name string) (*catalog.CardDefinition, error) {
		return nil, catalog.ErrUnavailable
	}

	_, err := ParseDecklist(context.Background(), "L:《うるか》\n", "p1", failing, DefaultValidationPolicy())
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrUnavailable))

	var unknown *UnknownCardError
	assert.False(t, errors.As(err, &unknown), "unavailable catalog must not map to UnknownCard")
}
