package memory

import (
	"context"
	"sync"

	"pricealert/pkg/storage"
)

// Store keeps entries in process memory. Values are copied on the way in and
// out so callers cannot alias stored bytes.
type Store struct {
	mu      sync.Mutex
	entries map[string][]byte
	puts    int
}

func New() *Store {
	return &Store{
		entries: make(map[string][]byte),
	}
}

func (m *Store) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.entries[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Store) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	m.entries[key] = cp
	m.puts++
	return nil
}

// Puts counts writes since creation.
func (m *Store) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

func (m *Store) Close() error { return nil }
