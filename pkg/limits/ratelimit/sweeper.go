package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper runs Limiter.Sweep on a fixed cadence.
type Sweeper struct {
	limiter  *Limiter
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewSweeper creates a sweeper that fires every interval.
func NewSweeper(limiter *Limiter, interval time.Duration) *Sweeper {
	return &Sweeper{
		limiter:  limiter,
		interval: interval,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "ratelimit.sweeper"),
	}
}

// Start schedules the sweep and returns immediately. The sweeper stops when
// ctx is cancelled or Stop is called.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("sweeper already running")
	}

	schedule := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(schedule, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule sweep %q: %w", schedule, err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("rate limit sweeper started", "interval", s.interval.String())

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Sweeper) run(ctx context.Context) {
	tracked, err := s.limiter.Sweep(ctx)
	if err != nil {
		s.logger.Error("rate limit sweep failed", "error", err)
		return
	}
	s.logger.Debug("rate limit sweep completed", "identities", tracked)
}

// Stop stops the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("rate limit sweeper stopped")
}

// IsRunning reports whether the schedule is active.
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
