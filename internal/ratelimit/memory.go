package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps attempt timestamps in a mutex-guarded map. Suitable
// for a single process; use RedisStore when multiple instances must
// share counts.
type MemoryStore struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		attempts: make(map[string][]time.Time),
	}
}

// Prune drops entries before cutoff and returns the remaining count.
func (s *MemoryStore) Prune(_ context.Context, key string, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.attempts[key]
	kept := entries[:0]
	for _, at := range entries {
		if !at.Before(cutoff) {
			kept = append(kept, at)
		}
	}
	if len(kept) == 0 {
		delete(s.attempts, key)
	} else {
		s.attempts[key] = kept
	}
	return len(kept), nil
}

// Add records an attempt for the key.
func (s *MemoryStore) Add(_ context.Context, key string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts[key] = append(s.attempts[key], at)
	return nil
}
