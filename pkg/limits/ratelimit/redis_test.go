package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const testPrefix = "farmgenius:test:"

func newRedisTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreFromClient(client, testPrefix)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStore(t *testing.T) {
	store, _ := newRedisTestStore(t)
	ctx := context.Background()
	clock := newFakeClock()
	limiter := NewLimiter(store, Config{Limit: 10, Window: time.Minute}, WithClock(clock.Now))

	t.Run("TenThenReject", func(t *testing.T) {
		for i := 1; i <= 10; i++ {
			if !limiter.Allow(ctx, "ten") {
				t.Fatalf("request %d should be admitted", i)
			}
			clock.Advance(time.Millisecond)
		}
		if limiter.Allow(ctx, "ten") {
			t.Error("11th request should be rejected")
		}
	})

	t.Run("FreshWindow", func(t *testing.T) {
		clock.Advance(time.Minute)
		if !limiter.Allow(ctx, "ten") {
			t.Error("expected admission after the window elapsed")
		}
	})

	t.Run("Sweep", func(t *testing.T) {
		limiter.Allow(ctx, "stale")
		clock.Advance(2 * time.Minute)
		n, err := limiter.Sweep(ctx)
		if err != nil {
			t.Fatalf("sweep failed: %v", err)
		}
		if n != 0 {
			t.Errorf("expected no identities after sweep, got %d", n)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		if err := store.Ping(ctx); err != nil {
			t.Errorf("ping failed: %v", err)
		}
	})
}

func TestRedisStore_SweepKeepsActive(t *testing.T) {
	store, mr := newRedisTestStore(t)
	ctx := context.Background()
	base := time.UnixMilli(1_000_000)

	store.Hit(ctx, "old", base, time.Minute, 10)
	store.Hit(ctx, "new", base.Add(50*time.Second), time.Minute, 10)

	n, err := store.Sweep(ctx, base.Add(70*time.Second), time.Minute)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 identity, got %d", n)
	}
	if mr.Exists(testPrefix + "old") {
		t.Error("emptied identity should no longer exist")
	}
	if !mr.Exists(testPrefix + "new") {
		t.Error("active identity should be kept")
	}
}

// hitBeforeSweep runs fn once, just before the sweep touches a key.
type hitBeforeSweep struct {
	once sync.Once
	fn   func()
}

func (h *hitBeforeSweep) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *hitBeforeSweep) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if isSweepWrite(cmd) {
			h.once.Do(h.fn)
		}
		return next(ctx, cmd)
	}
}

func (h *hitBeforeSweep) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

// isSweepWrite matches the command that removes or rewrites a swept key.
// Only the sweeping client carries the hook, so any script is the sweep.
func isSweepWrite(cmd redis.Cmder) bool {
	switch cmd.Name() {
	case "del", "unlink", "evalsha", "eval":
		return true
	}
	return false
}

func TestRedisStore_SweepDoesNotEraseConcurrentHit(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	window := time.Minute
	base := time.UnixMilli(1_000_000)
	now := base.Add(2 * window)

	hitter := NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), testPrefix)
	t.Cleanup(func() { hitter.Close() })

	// The identity only holds an expired stamp, so the sweep empties it.
	if _, err := hitter.Hit(ctx, "farmer", base, window, 10); err != nil {
		t.Fatal(err)
	}

	var admitted bool
	var hitErr error
	sweepClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sweepClient.AddHook(&hitBeforeSweep{fn: func() {
		admitted, hitErr = hitter.Hit(ctx, "farmer", now, window, 10)
	}})
	sweeper := NewRedisStoreFromClient(sweepClient, testPrefix)
	t.Cleanup(func() { sweeper.Close() })

	n, err := sweeper.Sweep(ctx, now, window)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if hitErr != nil || !admitted {
		t.Fatalf("concurrent hit admitted=%v err=%v, want admitted", admitted, hitErr)
	}

	members, err := mr.ZMembers(testPrefix + "farmer")
	if err != nil {
		t.Fatalf("identity vanished after sweep: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("expected the admitted hit to survive the sweep, got %d stamps", len(members))
	}
	if n != 1 {
		t.Errorf("expected sweep to report 1 identity, got %d", n)
	}
}
