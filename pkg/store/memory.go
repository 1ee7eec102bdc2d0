package store

import (
	"context"
	"sync"

	"github.com/matzehuels/cardwall/pkg/observability"
)

const memoryBackend = "memory"

// MemoryStore is an in-memory session store for development and testing.
// It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		observability.Store().OnSessionGet(ctx, memoryBackend, false)
		return nil, nil
	}
	if sess.IsExpired() {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		observability.Store().OnSessionGet(ctx, memoryBackend, false)
		return nil, ErrExpired
	}

	observability.Store().OnSessionGet(ctx, memoryBackend, true)
	cp := *sess
	return &cp, nil
}

func (s *MemoryStore) Set(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	cp := *sess
	s.sessions[sess.ID] = &cp
	s.mu.Unlock()

	observability.Store().OnSessionSet(ctx, memoryBackend, nil)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	observability.Store().OnSessionDelete(ctx, memoryBackend)
	return nil
}

func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.IsExpired() {
			delete(s.sessions, id)
			removed++
		}
	}
	s.mu.Unlock()

	observability.Store().OnCleanup(ctx, memoryBackend, removed)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

var _ Store = (*MemoryStore)(nil)
