package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-memory catalog keyed by card name. It is safe for
// concurrent use so the authoring endpoint can write while games look up.
type MemoryStore struct {
	mu    sync.RWMutex
	cards map[string]*CardDefinition
}

// NewMemoryStore creates a memory-backed catalog preloaded with the given
// definitions.
func NewMemoryStore(defs ...*CardDefinition) *MemoryStore {
	s := &MemoryStore{cards: make(map[string]*CardDefinition, len(defs))}
	for _, def := range defs {
		s.cards[def.Name] = cloneDefinition(def)
	}
	return s
}

// cloneDefinition copies a definition including its leader stats so callers
// never share mutable memory with the store.
func cloneDefinition(def *CardDefinition) *CardDefinition {
	copied := *def
	if def.Leader != nil {
		stats := *def.Leader
		copied.Leader = &stats
	}
	return &copied
}

// Lookup returns the definition stored under name, or ErrNotFound.
func (s *MemoryStore) Lookup(ctx context.Context, name string) (*CardDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.cards[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return cloneDefinition(def), nil
}

// Upsert stores the definition under its name, replacing any previous entry.
func (s *MemoryStore) Upsert(ctx context.Context, def *CardDefinition) error {
	if def.ID == "" || def.Name == "" {
		return fmt.Errorf("catalog: card id and name are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cards[def.Name] = cloneDefinition(def)
	return nil
}

// List returns all definitions sorted by card ID.
func (s *MemoryStore) List(ctx context.Context) ([]*CardDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	defs := make([]*CardDefinition, 0, len(s.cards))
	for _, def := range s.cards {
		defs = append(defs, cloneDefinition(def))
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs, nil
}
