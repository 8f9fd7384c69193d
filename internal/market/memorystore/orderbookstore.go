package memorystore

import (
	"strings"
	"sync"
)

// OrderBookStore holds the latest book per symbol and which symbol the
// dashboard currently has selected.
type OrderBookStore struct {
	mu       sync.RWMutex
	books    map[string]OrderBook
	selected string
}

func NewOrderBookStore() *OrderBookStore {
	return &OrderBookStore{
		books: make(map[string]OrderBook),
	}
}

func (s *OrderBookStore) Put(book OrderBook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[book.Symbol] = book
}

func (s *OrderBookStore) Get(symbol string) (OrderBook, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[symbol]
	return b, ok
}

// Select sets the symbol the order-book loop refreshes.
func (s *OrderBookStore) Select(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = strings.TrimSpace(symbol)
}

func (s *OrderBookStore) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}
