package memorystore

import (
	"sync"
	"time"
)

// QuoteStore keeps the latest watchlist snapshot. An empty poll never
// replaces a previous snapshot.
type QuoteStore struct {
	mu       sync.RWMutex
	snapshot Snapshot
	bySymbol map[string]int
}

func NewQuoteStore() *QuoteStore {
	return &QuoteStore{
		snapshot: Snapshot{Quotes: make([]Quote, 0)},
		bySymbol: make(map[string]int),
	}
}

// Replace stores quotes as the current snapshot. It reports false and keeps
// the old snapshot when quotes is empty.
func (s *QuoteStore) Replace(quotes []Quote, at time.Time) bool {
	if len(quotes) == 0 {
		return false
	}

	cp := make([]Quote, len(quotes))
	copy(cp, quotes)

	idx := make(map[string]int, len(cp))
	for i, q := range cp {
		if _, ok := idx[q.Symbol]; !ok {
			idx[q.Symbol] = i
		}
	}

	s.mu.Lock()
	s.snapshot = Snapshot{Quotes: cp, UpdatedAt: at}
	s.bySymbol = idx
	s.mu.Unlock()
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *QuoteStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make([]Quote, len(s.snapshot.Quotes))
	copy(cp, s.snapshot.Quotes)
	return Snapshot{Quotes: cp, UpdatedAt: s.snapshot.UpdatedAt}
}

func (s *QuoteStore) Get(symbol string) (Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.bySymbol[symbol]
	if !ok {
		return Quote{}, false
	}
	return s.snapshot.Quotes[i], true
}

// First returns the first watchlist entry, the default selection.
func (s *QuoteStore) First() (Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.snapshot.Quotes) == 0 {
		return Quote{}, false
	}
	return s.snapshot.Quotes[0], true
}

func (s *QuoteStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshot.Quotes)
}
