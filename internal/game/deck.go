package game

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/crossstars/crossstars-server-go/internal/catalog"
)

// ValidationPolicy controls deck-size validation. The leader count is always
// enforced; the tactics and main-deck counts are individually switchable
// because different rule revisions disagree about them.
type ValidationPolicy struct {
	LeaderCount          int
	TacticsCount         int
	EnforceTacticsCount  bool
	MainDeckCount        int
	EnforceMainDeckCount bool
}

// DefaultValidationPolicy is the strict tournament policy: 4 leaders,
// 5 tactics, 50 main-deck cards.
func DefaultValidationPolicy() ValidationPolicy {
	return ValidationPolicy{
		LeaderCount:          4,
		TacticsCount:         5,
		EnforceTacticsCount:  true,
		MainDeckCount:        50,
		EnforceMainDeckCount: true,
	}
}

// DeckLists holds the parsed, classified card instances of one deck list.
type DeckLists struct {
	Leaders  []*CardInstance
	Tactics  []*CardInstance
	MainDeck []*CardInstance
}

// LookupFunc resolves a card name against the catalog.
type LookupFunc func(ctx context.Context, name string) (*catalog.CardDefinition, error)

// A card name may be wrapped in full-width or square brackets; the bracketed
// token takes precedence over prefix stripping.
var bracketedName = regexp.MustCompile(`《[^》]*》|\[[^\]]*\]`)

// ParseDecklist turns a raw deck list into classified card instances.
//
// The format is line oriented: blank lines are skipped, `L:` and `T:`
// prefixes mark leader and tactics lines, and a main-deck line is a quantity
// followed by a card name. Classification follows the catalog definition's
// type, not the line prefix. Parsing is all-or-nothing: any unknown card or
// malformed line aborts with no partial result.
func ParseDecklist(ctx context.Context, raw, ownerPrefix string, lookup LookupFunc, policy ValidationPolicy) (*DeckLists, error) {
	decks := &DeckLists{
		Leaders:  make([]*CardInstance, 0),
		Tactics:  make([]*CardInstance, 0),
		MainDeck: make([]*CardInstance, 0),
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, quantity, err := parseLine(line)
		if err != nil {
			return nil, err
		}

		def, err := lookup(ctx, name)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, &UnknownCardError{Name: name}
			}
			return nil, fmt.Errorf("deck list lookup failed: %w", err)
		}

		for i := 0; i < quantity; i++ {
			instance := NewCardInstance(def, ownerPrefix)
			switch def.Type {
			case catalog.TypeLeader:
				decks.Leaders = append(decks.Leaders, instance)
			case catalog.TypeTactics:
				decks.Tactics = append(decks.Tactics, instance)
			default:
				decks.MainDeck = append(decks.MainDeck, instance)
			}
		}
	}

	if err := validateCounts(decks, policy); err != nil {
		return nil, err
	}
	return decks, nil
}

// parseLine extracts the card name and quantity from one non-blank line.
func parseLine(line string) (name string, quantity int, err error) {
	quantity = 1
	rest := line

	// Leading integer is a quantity regardless of how the name is written.
	if fields := strings.Fields(rest); len(fields) > 0 {
		if n, convErr := strconv.Atoi(fields[0]); convErr == nil {
			if n < 1 {
				return "", 0, &MalformedLineError{Line: line}
			}
			quantity = n
			rest = strings.TrimSpace(strings.TrimPrefix(rest, fields[0]))
		}
	}

	// A bracketed token wins over prefix stripping.
	if token := bracketedName.FindString(line); token != "" {
		inner := strings.Trim(token, "《》[]")
		if strings.TrimSpace(inner) == "" {
			return "", 0, &MalformedLineError{Line: line}
		}
		return token, quantity, nil
	}

	switch {
	case strings.HasPrefix(rest, "L:"):
		rest = strings.TrimSpace(rest[2:])
	case strings.HasPrefix(rest, "T:"):
		rest = strings.TrimSpace(rest[2:])
	}

	if rest == "" {
		return "", 0, &MalformedLineError{Line: line}
	}
	return rest, quantity, nil
}

func validateCounts(decks *DeckLists, policy ValidationPolicy) error {
	if len(decks.Leaders) != policy.LeaderCount {
		return &InvalidLeaderCountError{Actual: len(decks.Leaders)}
	}
	if policy.EnforceTacticsCount && len(decks.Tactics) != policy.TacticsCount {
		return &DeckCountError{Section: "tactics", Want: policy.TacticsCount, Got: len(decks.Tactics)}
	}
	if policy.EnforceMainDeckCount && len(decks.MainDeck) != policy.MainDeckCount {
		return &DeckCountError{Section: "main deck", Want: policy.MainDeckCount, Got: len(decks.MainDeck)}
	}
	return nil
}
