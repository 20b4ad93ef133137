package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps snapshots in a plain map. It is always available and
// serves as the fallback when Redis is disabled or unreachable.
type MemoryStore struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]memoryEntry
}

type memoryEntry struct {
	state     SessionState
	expiresAt time.Time // zero means no expiry
}

// NewMemoryStore builds an in-memory store. A non-positive ttl disables
// expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:  ttl,
		data: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Save(ctx context.Context, state SessionState) error {
	entry := memoryEntry{state: state}
	if s.ttl > 0 {
		entry.expiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[state.GameID] = entry
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, gameID string) (SessionState, error) {
	s.mu.RLock()
	entry, ok := s.data[gameID]
	s.mu.RUnlock()

	if !ok {
		return SessionState{}, ErrNotFound
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.Delete(ctx, gameID)
		return SessionState{}, ErrNotFound
	}
	return entry.state, nil
}

func (s *MemoryStore) Delete(ctx context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, gameID)
	return nil
}
