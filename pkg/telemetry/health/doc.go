// Package health provides the liveness, readiness and version endpoints.
//
//   - /healthz: the process is running
//   - /readyz: component checks (site root, limiter store, chat backend)
//   - /version: build information
//
// Checks return nil when healthy, an error wrapping ErrDegraded when the
// component works in a reduced mode, and any other error when it cannot
// serve. Only the last kind turns readiness into a 503.
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("site", func(ctx context.Context) error {
//	    _, err := os.Stat(indexPath)
//	    return err
//	})
//	health.Register(mux, checker, health.VersionInfo{Version: version})
package health
