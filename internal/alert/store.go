package alert

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"pricealert/pkg/storage"

	"go.uber.org/zap"
)

// Backend is the key-value storage the collection is mirrored to.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store owns the alert collection. Every mutation writes the whole
// collection back under one key; storage is a mirror, so a failed write is
// logged and the in-memory state is kept.
type Store struct {
	mu     sync.RWMutex
	alerts []Alert
	lastID int64

	backend Backend
	key     string
	now     func() time.Time
	logger  *zap.Logger
}

func NewStore(backend Backend, key string, logger *zap.Logger) *Store {
	return &Store{
		alerts:  make([]Alert, 0),
		backend: backend,
		key:     key,
		now:     time.Now,
		logger:  logger.Named("alertstore").With(zap.String("key", key)),
	}
}

// WithClock replaces the clock used for id assignment.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Load replaces the in-memory collection with the persisted one. Absent or
// unparseable data yields an empty collection.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts = make([]Alert, 0)

	raw, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Info("no persisted alerts, starting empty")
		} else {
			s.logger.Warn("failed to read persisted alerts, starting empty", zap.Error(err))
		}
		return
	}

	var loaded []Alert
	if err := json.Unmarshal(raw, &loaded); err != nil {
		s.logger.Warn("persisted alerts are unparseable, starting empty", zap.Error(err))
		return
	}

	for _, a := range loaded {
		if a.ID > s.lastID {
			s.lastID = a.ID
		}
	}
	if loaded != nil {
		s.alerts = loaded
	}
	s.logger.Info("loaded alerts", zap.Int("count", len(s.alerts)))
}

// NextID returns an id unique for the lifetime of the store: the current
// time in milliseconds, bumped past every id seen so far.
func (s *Store) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Add appends an alert to the end of the collection.
func (s *Store) Add(ctx context.Context, a Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID > s.lastID {
		s.lastID = a.ID
	}
	s.alerts = append(s.alerts, a)
	s.saveLocked(ctx)
}

// Delete removes the alert with the given id. Unknown ids are a no-op.
func (s *Store) Delete(ctx context.Context, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return
	}
	s.alerts = append(s.alerts[:idx], s.alerts[idx+1:]...)
	s.saveLocked(ctx)
}

// UpdateStatus sets the status of the alert with the given id, leaving the
// rest of the alert unchanged. Unknown ids are a no-op.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return
	}
	s.alerts[idx].Status = status
	s.saveLocked(ctx)
}

// Get returns the alert with the given id.
func (s *Store) Get(id int64) (Alert, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return Alert{}, false
	}
	return s.alerts[idx], true
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

func (s *Store) Active() []Alert {
	return s.filter(StatusActive)
}

func (s *Store) Triggered() []Alert {
	return s.filter(StatusTriggered)
}

// ActiveCount is the badge value: alerts still waiting to trigger.
func (s *Store) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, a := range s.alerts {
		if a.IsActive() {
			n++
		}
	}
	return n
}

func (s *Store) filter(status Status) []Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Alert, 0)
	for _, a := range s.alerts {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) indexLocked(id int64) int {
	for i, a := range s.alerts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) saveLocked(ctx context.Context) {
	raw, err := json.Marshal(s.alerts)
	if err != nil {
		s.logger.Error("failed to encode alerts", zap.Error(err))
		return
	}
	if err := s.backend.Put(ctx, s.key, raw); err != nil {
		s.logger.Warn("failed to persist alerts", zap.Error(err))
	}
}
