package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is the in-process fallback used when no Redis address is
// configured (single-instance dev setups) and by the test suite.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]memorySession
}

type memorySession struct {
	accountID uint
	expiresAt time.Time
}

// NewMemoryStore returns an in-memory session store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{ttl: ttl, sessions: make(map[string]memorySession)}
}

func (s *MemoryStore) Create(_ context.Context, accountID uint) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = memorySession{accountID: accountID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return 0, ErrNoSession
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, id)
		return 0, ErrNoSession
	}
	sess.expiresAt = time.Now().Add(s.ttl)
	s.sessions[id] = sess
	return sess.accountID, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
