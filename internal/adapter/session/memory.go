package sessionstore

import (
	"context"
	"sync"
	"time"

	"lookman/internal/domain/session"
)

// MemoryStore is a process-local session backend used when Redis is not
// configured. Expired entries are dropped lazily on Get.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]session.Session)}
}

func (s *MemoryStore) Put(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = *sess
	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, session.ErrNotFound
	}
	if sess.Expired(time.Now()) {
		delete(s.sessions, token)
		return nil, session.ErrNotFound
	}
	out := sess
	return &out, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
