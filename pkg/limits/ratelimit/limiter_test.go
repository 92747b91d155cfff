package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(clock *fakeClock, opts ...Option) (*Limiter, *MemoryStore) {
	store := NewMemoryStore()
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return NewLimiter(store, Config{Limit: 10, Window: time.Minute}, opts...), store
}

func TestLimiter_EleventhRequestRejected(t *testing.T) {
	clock := newFakeClock()
	limiter, _ := newTestLimiter(clock)
	ctx := context.Background()

	for i := 1; i <= 10; i++ {
		if !limiter.Allow(ctx, "10.0.0.1") {
			t.Fatalf("request %d should be admitted", i)
		}
		clock.Advance(time.Second)
	}

	if limiter.Allow(ctx, "10.0.0.1") {
		t.Error("11th request within the window should be rejected")
	}
}

func TestLimiter_IdentitiesAreIndependent(t *testing.T) {
	clock := newFakeClock()
	limiter, _ := newTestLimiter(clock)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		limiter.Allow(ctx, "a")
	}
	if limiter.Allow(ctx, "a") {
		t.Error("expected identity a to be limited")
	}
	if !limiter.Allow(ctx, "b") {
		t.Error("identity b must not share a's budget")
	}
}

func TestLimiter_FreshWindowAfterInactivity(t *testing.T) {
	clock := newFakeClock()
	limiter, _ := newTestLimiter(clock)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		limiter.Allow(ctx, "client")
	}
	if limiter.Allow(ctx, "client") {
		t.Fatal("expected rejection while window is full")
	}

	clock.Advance(60 * time.Second)

	for i := 1; i <= 10; i++ {
		if !limiter.Allow(ctx, "client") {
			t.Fatalf("request %d of fresh window should be admitted", i)
		}
	}
}

func TestLimiter_TrailingWindowBoundary(t *testing.T) {
	clock := newFakeClock()
	limiter, _ := newTestLimiter(clock)
	ctx := context.Background()

	// One request at t=0, nine at t=30s.
	limiter.Allow(ctx, "c")
	clock.Advance(30 * time.Second)
	for i := 0; i < 9; i++ {
		limiter.Allow(ctx, "c")
	}

	clock.Advance(29*time.Second + 999*time.Millisecond)
	if limiter.Allow(ctx, "c") {
		t.Fatal("first request is still inside the window at 59.999s")
	}

	clock.Advance(time.Millisecond)
	if !limiter.Allow(ctx, "c") {
		t.Fatal("first request leaves the window at exactly 60s")
	}
	if limiter.Allow(ctx, "c") {
		t.Fatal("only one slot should have freed up")
	}
}

func TestLimiter_RejectedAttemptsAreNotRecorded(t *testing.T) {
	clock := newFakeClock()
	limiter, store := newTestLimiter(clock)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		limiter.Allow(ctx, "flood")
	}

	store.mu.Lock()
	n := len(store.log["flood"])
	store.mu.Unlock()
	if n != 10 {
		t.Errorf("expected 10 recorded timestamps, got %d", n)
	}
}

func TestLimiter_ConcurrentAdmission(t *testing.T) {
	clock := newFakeClock()
	limiter, _ := newTestLimiter(clock)
	ctx := context.Background()

	var admitted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow(ctx, "same") {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := admitted.Load(); got != 10 {
		t.Errorf("expected exactly 10 admitted, got %d", got)
	}
}

func TestLimiter_SweepRemovesAbandonedIdentities(t *testing.T) {
	clock := newFakeClock()
	obs := &recordingObserver{}
	limiter, store := newTestLimiter(clock, WithObserver(obs))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		limiter.Allow(ctx, fmt.Sprintf("old-%d", i))
	}
	clock.Advance(45 * time.Second)
	limiter.Allow(ctx, "recent")

	clock.Advance(20 * time.Second)
	n, err := limiter.Sweep(ctx)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if n != 1 || store.Len() != 1 {
		t.Errorf("expected only the recent identity to survive, got %d tracked", n)
	}
	if obs.identities != 1 {
		t.Errorf("expected observer to see 1 identity, got %d", obs.identities)
	}
}

type recordingObserver struct {
	mu         sync.Mutex
	allowed    int
	rejected   int
	identities int
}

func (o *recordingObserver) ObserveDecision(allowed bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if allowed {
		o.allowed++
	} else {
		o.rejected++
	}
}

func (o *recordingObserver) ObserveIdentities(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.identities = n
}

func TestLimiter_ObservesDecisions(t *testing.T) {
	clock := newFakeClock()
	obs := &recordingObserver{}
	limiter, _ := newTestLimiter(clock, WithObserver(obs))

	for i := 0; i < 12; i++ {
		limiter.Allow(context.Background(), "x")
	}
	if obs.allowed != 10 || obs.rejected != 2 {
		t.Errorf("expected 10 allowed / 2 rejected, got %d / %d", obs.allowed, obs.rejected)
	}
}

type failingStore struct{}

func (failingStore) Hit(context.Context, string, time.Time, time.Duration, int) (bool, error) {
	return false, errors.New("connection refused")
}
func (failingStore) Sweep(context.Context, time.Time, time.Duration) (int, error) {
	return 0, errors.New("connection refused")
}
func (failingStore) Close() error { return nil }

func TestLimiter_FailsOpenOnStoreError(t *testing.T) {
	limiter := NewLimiter(failingStore{}, Config{Limit: 1, Window: time.Minute})

	for i := 0; i < 3; i++ {
		if !limiter.Allow(context.Background(), "any") {
			t.Fatal("store failure must admit the request")
		}
	}
	if _, err := limiter.Sweep(context.Background()); err == nil {
		t.Error("expected sweep to surface the store error")
	}
}
