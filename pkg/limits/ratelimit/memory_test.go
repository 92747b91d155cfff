package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestPrune(t *testing.T) {
	tests := []struct {
		name   string
		stamps []int64
		now    int64
		want   int
	}{
		{"empty", nil, 1000, 0},
		{"all recent", []int64{500, 600, 900}, 1000, 3},
		{"all expired", []int64{0, 100}, 1100, 0},
		{"boundary is expired", []int64{0, 1}, 1000, 1},
		{"suffix kept", []int64{10, 20, 950, 990}, 1020, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prune(tt.stamps, tt.now, 1000)
			if len(got) != tt.want {
				t.Errorf("expected %d entries, got %d (%v)", tt.want, len(got), got)
			}
		})
	}
}

func TestMemoryStore_SweepKeepsActive(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.UnixMilli(0)

	store.Hit(ctx, "a", base, time.Minute, 10)
	store.Hit(ctx, "b", base.Add(50*time.Second), time.Minute, 10)

	n, err := store.Sweep(ctx, base.Add(70*time.Second), time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 identity, got %d", n)
	}
	if _, ok := store.log["a"]; ok {
		t.Error("identity a should have been removed")
	}

	n, _ = store.Sweep(ctx, base.Add(2*time.Minute), time.Minute)
	if n != 0 || store.Len() != 0 {
		t.Errorf("expected empty store, got %d", n)
	}
}
