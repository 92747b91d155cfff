package ratelimit

import (
	"context"
	"time"
)

// Config contains the admission parameters of a Limiter.
type Config struct {
	// Limit is the number of requests admitted per identity within Window.
	Limit int

	// Window is the trailing window length.
	Window time.Duration
}

// Store holds per-identity request timestamps.
//
// Implementations must make Hit atomic per identity: two concurrent calls
// for the same identity must never both observe Limit-1 recorded entries
// and both be admitted.
type Store interface {
	// Hit prunes timestamps at or before now-window, rejects when limit
	// entries remain, and otherwise records now. It reports whether the
	// request was admitted.
	Hit(ctx context.Context, identity string, now time.Time, window time.Duration, limit int) (bool, error)

	// Sweep prunes every identity and removes those left empty. It returns
	// the number of identities still tracked.
	Sweep(ctx context.Context, now time.Time, window time.Duration) (int, error)

	// Close releases resources held by the store.
	Close() error
}

// Observer receives limiter decisions. The metrics collector implements it.
type Observer interface {
	ObserveDecision(allowed bool)
	ObserveIdentities(n int)
}

type nopObserver struct{}

func (nopObserver) ObserveDecision(bool)  {}
func (nopObserver) ObserveIdentities(int) {}
