package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local Store. A single mutex covers both Hit and
// Sweep, so the sweep can never delete an identity in the middle of a
// read-filter-append.
type MemoryStore struct {
	mu  sync.Mutex
	log map[string][]int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		log: make(map[string][]int64),
	}
}

// Hit implements Store.
func (s *MemoryStore) Hit(_ context.Context, identity string, now time.Time, window time.Duration, limit int) (bool, error) {
	nowMs := now.UnixMilli()
	windowMs := window.Milliseconds()

	s.mu.Lock()
	defer s.mu.Unlock()

	recent := prune(s.log[identity], nowMs, windowMs)
	if len(recent) >= limit {
		s.log[identity] = recent
		return false, nil
	}

	s.log[identity] = append(recent, nowMs)
	return true, nil
}

// Sweep implements Store.
func (s *MemoryStore) Sweep(_ context.Context, now time.Time, window time.Duration) (int, error) {
	nowMs := now.UnixMilli()
	windowMs := window.Milliseconds()

	s.mu.Lock()
	defer s.mu.Unlock()

	for identity, stamps := range s.log {
		recent := prune(stamps, nowMs, windowMs)
		if len(recent) == 0 {
			delete(s.log, identity)
			continue
		}
		s.log[identity] = recent
	}
	return len(s.log), nil
}

// Len returns the number of tracked identities.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.log)
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}

// prune drops the leading timestamps that are no longer within the window.
// Timestamps are stored in arrival order, so the recent ones are a suffix.
func prune(stamps []int64, nowMs, windowMs int64) []int64 {
	i := 0
	for i < len(stamps) && nowMs-stamps[i] >= windowMs {
		i++
	}
	if i == 0 {
		return stamps
	}
	// Copy so the backing array does not grow without bound.
	out := make([]int64, len(stamps)-i, len(stamps)-i+1)
	copy(out, stamps[i:])
	return out
}
