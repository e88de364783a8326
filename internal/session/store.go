// Package session keeps per-browser game state on the server, keyed by the
// opaque id carried in the session cookie.
package session

import (
	"context"
	"errors"
	"sync"

	"fraud-detector/internal/models"
)

var ErrNotFound = errors.New("session not found")

// Store reads, writes and clears session state by session id. Updates are
// read-then-write with no per-session lock: callers must serialize requests
// of one session, otherwise concurrent answers can lose an increment.
type Store interface {
	Get(ctx context.Context, id string) (models.SessionState, error)
	Save(ctx context.Context, id string, state models.SessionState) error
	Clear(ctx context.Context, id string) error
	Close() error
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.SessionState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.SessionState)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (models.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[id]
	if !ok {
		return models.SessionState{}, ErrNotFound
	}
	return state, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, state models.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = state
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
