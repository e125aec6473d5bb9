package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/BTreeMap/CoverageGuide/internal/models"
)

// InMemoryStore keeps sessions in a map.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.SessionRecord
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]models.SessionRecord)}
}

// GetSession returns a copy of the stored record.
func (s *InMemoryStore) GetSession(ctx context.Context, id string) (models.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessions[id]
	if !ok {
		return models.SessionRecord{}, ErrNotFound
	}
	return cloneRecord(rec), nil
}

// SaveSession inserts or replaces a record.
func (s *InMemoryStore) SaveSession(ctx context.Context, rec models.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[rec.ID] = cloneRecord(rec)
	return nil
}

// DeleteSession removes a record. Deleting an unknown ID is not an error.
func (s *InMemoryStore) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// DeleteSessionsBefore removes records last updated before cutoff.
func (s *InMemoryStore) DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, rec := range s.sessions {
		if rec.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	if n > 0 {
		slog.Debug("InMemoryStore.DeleteSessionsBefore: removed idle sessions", "count", n)
	}
	return n, nil
}

// Close is a no-op.
func (s *InMemoryStore) Close() error {
	return nil
}
