package catalog

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreLookup(t *testing.T) {
	store := NewMemoryStore(SeedDefinitions()...)

	def, err := store.Lookup(context.Background(), "《うるか》")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Type != TypeLeader {
		t.Fatalf("expected leader, got %s", def.Type)
	}
	if def.Leader == nil || def.Leader.BaseHP != 100 {
		t.Fatalf("expected leader stats with base HP 100, got %+v", def.Leader)
	}
}

func TestMemoryStoreLookupNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Lookup(context.Background(), "《存在しないカード》")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreUpsertAndList(t *testing.T) {
	store := NewMemoryStore()

	def := &CardDefinition{ID: "CS01-099", Name: "《新カード》", Type: TypeAttack, Cost: 2}
	if err := store.Upsert(context.Background(), def); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Lookup(context.Background(), "《新カード》")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cost != 2 {
		t.Fatalf("expected cost 2, got %d", got.Cost)
	}

	defs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}
}

func TestMemoryStoreUpsertRequiresIDAndName(t *testing.T) {
	store := NewMemoryStore()

	if err := store.Upsert(context.Background(), &CardDefinition{Name: "《名前だけ》"}); err == nil {
		t.Fatal("expected error for missing id")
	}
	if err := store.Upsert(context.Background(), &CardDefinition{ID: "CS01-100"}); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore(SeedDefinitions()...)

	first, err := store.Lookup(context.Background(), "《うるか》")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.Leader.BaseHP = 1

	second, err := store.Lookup(context.Background(), "《うるか》")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Leader.BaseHP != 100 {
		t.Fatalf("store leaked mutable state: base HP %d", second.Leader.BaseHP)
	}
}
