// Package metrics exposes gateway metrics in Prometheus format.
//
// # Metrics
//
//	farmgenius_http_requests_total{route,status}
//	farmgenius_http_request_duration_seconds{route}
//	farmgenius_ratelimit_decisions_total{result}
//	farmgenius_ratelimit_identities
//	farmgenius_backend_requests_total{backend,outcome}
//	farmgenius_backend_duration_seconds{backend}
//	farmgenius_static_responses_total{kind}
//
// Client identities and message content never appear as label values.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	limiter := ratelimit.NewLimiter(store, rlCfg, ratelimit.WithObserver(collector))
//	mux.Handle("/metrics", collector.Handler())
package metrics
