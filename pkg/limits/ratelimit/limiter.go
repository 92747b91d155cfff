package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// Limiter admits or rejects requests per client identity. It is constructed
// once at startup and shared by every proxy handler.
type Limiter struct {
	store    Store
	config   Config
	now      func() time.Time
	logger   *slog.Logger
	observer Observer
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source. Tests use it to step through windows.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithLogger sets the logger used for store failures.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) { l.logger = logger }
}

// WithObserver registers an observer for decisions and sweep results.
func WithObserver(o Observer) Option {
	return func(l *Limiter) {
		if o != nil {
			l.observer = o
		}
	}
}

// NewLimiter creates a limiter backed by store.
func NewLimiter(store Store, config Config, opts ...Option) *Limiter {
	l := &Limiter{
		store:    store,
		config:   config,
		now:      time.Now,
		logger:   slog.Default(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("component", "ratelimit")
	return l
}

// Allow reports whether identity may make another request now. It never
// fails: if the store is unreachable the request is admitted and the error
// is logged.
func (l *Limiter) Allow(ctx context.Context, identity string) bool {
	allowed, err := l.store.Hit(ctx, identity, l.now(), l.config.Window, l.config.Limit)
	if err != nil {
		l.logger.WarnContext(ctx, "rate limit store unavailable, admitting request",
			"error", err,
		)
		allowed = true
	}
	l.observer.ObserveDecision(allowed)
	return allowed
}

// Sweep reclaims identities with no timestamps left in the window.
func (l *Limiter) Sweep(ctx context.Context) (int, error) {
	n, err := l.store.Sweep(ctx, l.now(), l.config.Window)
	if err != nil {
		return 0, err
	}
	l.observer.ObserveIdentities(n)
	return n, nil
}

// Config returns the admission parameters.
func (l *Limiter) Config() Config {
	return l.config
}

// Store returns the underlying store.
func (l *Limiter) Store() Store {
	return l.store
}

// Close closes the underlying store.
func (l *Limiter) Close() error {
	return l.store.Close()
}
