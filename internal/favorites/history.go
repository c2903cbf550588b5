package favorites

import (
	"strings"
	"sync"

	"github.com/SchoolScout/SS-Backend/internal/storage"
	"golang.org/x/text/cases"
)

// historyLimit bounds the search history to the most recent terms.
const historyLimit = 5

// SearchHistoryStore keeps a bounded, most-recent-first list of district
// search terms, deduplicated case-insensitively.
type SearchHistoryStore struct {
	mu    sync.Mutex
	kv    storage.KV
	terms []string
}

func NewSearchHistoryStore(kv storage.KV) *SearchHistoryStore {
	s := &SearchHistoryStore{kv: kv, terms: []string{}}
	_ = kv.Load(keySearchHistory, &s.terms)
	return s
}

// AddTerm prepends the term, dropping any prior case-insensitive match and
// trimming to the limit. Blank terms are ignored.
func (s *SearchHistoryStore) AddTerm(term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fold := cases.Fold()
	key := fold.String(term)

	next := make([]string, 0, historyLimit)
	next = append(next, term)
	for _, t := range s.terms {
		if fold.String(t) == key {
			continue
		}
		next = append(next, t)
	}
	if len(next) > historyLimit {
		next = next[:historyLimit]
	}

	s.terms = next
	return s.kv.Save(keySearchHistory, s.terms)
}

// Terms returns the history, most recent first.
func (s *SearchHistoryStore) Terms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.terms))
	copy(out, s.terms)
	return out
}
