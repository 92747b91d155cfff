package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"farmgenius/gateway/pkg/limits/ratelimit"
	"farmgenius/gateway/pkg/providers"
	"farmgenius/gateway/pkg/telemetry/health"
)

// SiteCheck verifies the root document exists, since every unknown path
// falls back to it.
func SiteCheck(root, index string) health.CheckFunc {
	path := filepath.Join(root, index)
	return func(ctx context.Context) error {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("site index unavailable: %w", err)
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("site index %s is not a regular file", path)
		}
		return nil
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}

// StoreCheck pings the limiter store when it is remote. The memory store
// is always healthy.
func StoreCheck(store ratelimit.Store) health.CheckFunc {
	return func(ctx context.Context) error {
		p, ok := store.(pinger)
		if !ok {
			return nil
		}
		if err := p.Ping(ctx); err != nil {
			// Limiting fails open, so an unreachable store degrades
			// abuse protection but does not stop traffic.
			return fmt.Errorf("rate limit store unreachable: %v: %w", err, health.ErrDegraded)
		}
		return nil
	}
}

// ChatBackendCheck reports the chat backend as degraded when it has no
// credential or its recent calls failed. It never fails readiness.
func ChatBackendCheck(backend providers.ChatBackend) health.CheckFunc {
	return func(ctx context.Context) error {
		model, ok := backend.Model()
		if !ok {
			return fmt.Errorf("chat backend not configured: %w", health.ErrDegraded)
		}
		if h := model.Health(); !h.IsHealthy {
			return fmt.Errorf("chat backend failing (%d consecutive errors): %w", h.ConsecutiveFailures, health.ErrDegraded)
		}
		return nil
	}
}
