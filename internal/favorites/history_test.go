package favorites_test

import (
	"fmt"
	"testing"

	"github.com/SchoolScout/SS-Backend/internal/favorites"
	"github.com/SchoolScout/SS-Backend/internal/storage"
)

// TestHistory_MostRecentFirst verifies that the newest term sits at index 0.
func TestHistory_MostRecentFirst(t *testing.T) {
	store := favorites.NewSearchHistoryStore(storage.NewMemKV())

	for _, term := range []string{"first", "second", "third"} {
		if err := store.AddTerm(term); err != nil {
			t.Fatalf("AddTerm failed: %v", err)
		}
	}

	terms := store.Terms()
	if terms[0] != "third" || terms[1] != "second" || terms[2] != "first" {
		t.Errorf("unexpected order: %v", terms)
	}
}

// TestHistory_Bounded verifies the list never exceeds five entries.
func TestHistory_Bounded(t *testing.T) {
	store := favorites.NewSearchHistoryStore(storage.NewMemKV())

	for i := 0; i < 8; i++ {
		if err := store.AddTerm(fmt.Sprintf("term-%d", i)); err != nil {
			t.Fatalf("AddTerm failed: %v", err)
		}
	}

	terms := store.Terms()
	if len(terms) != 5 {
		t.Fatalf("expected 5 terms, got %d", len(terms))
	}
	if terms[0] != "term-7" {
		t.Errorf("expected newest term first, got %v", terms)
	}
	if terms[4] != "term-3" {
		t.Errorf("expected oldest survivor term-3, got %v", terms)
	}
}

// TestHistory_CaseInsensitiveDedupe verifies that re-adding a term under a
// different casing moves it to the front without growing the list.
func TestHistory_CaseInsensitiveDedupe(t *testing.T) {
	store := favorites.NewSearchHistoryStore(storage.NewMemKV())

	if err := store.AddTerm("austin isd"); err != nil {
		t.Fatalf("AddTerm failed: %v", err)
	}
	if err := store.AddTerm("dallas"); err != nil {
		t.Fatalf("AddTerm failed: %v", err)
	}
	if err := store.AddTerm("Austin ISD"); err != nil {
		t.Fatalf("AddTerm failed: %v", err)
	}

	terms := store.Terms()
	if len(terms) != 2 {
		t.Fatalf("expected 2 terms, got %v", terms)
	}
	if terms[0] != "Austin ISD" {
		t.Errorf("expected the re-added casing at index 0, got %v", terms)
	}
	if terms[1] != "dallas" {
		t.Errorf("expected dallas to remain, got %v", terms)
	}
}

// TestHistory_BlankIgnored verifies that empty and whitespace-only terms are
// dropped.
func TestHistory_BlankIgnored(t *testing.T) {
	store := favorites.NewSearchHistoryStore(storage.NewMemKV())

	if err := store.AddTerm(""); err != nil {
		t.Fatalf("AddTerm failed: %v", err)
	}
	if err := store.AddTerm("   "); err != nil {
		t.Fatalf("AddTerm failed: %v", err)
	}

	if len(store.Terms()) != 0 {
		t.Errorf("expected empty history, got %v", store.Terms())
	}
}

// TestHistory_PersistsAcrossInstances verifies terms survive a store reload.
func TestHistory_PersistsAcrossInstances(t *testing.T) {
	kv := storage.NewMemKV()

	first := favorites.NewSearchHistoryStore(kv)
	if err := first.AddTerm("lincoln"); err != nil {
		t.Fatalf("AddTerm failed: %v", err)
	}

	second := favorites.NewSearchHistoryStore(kv)
	terms := second.Terms()
	if len(terms) != 1 || terms[0] != "lincoln" {
		t.Errorf("expected history to survive a reload, got %v", terms)
	}
}
