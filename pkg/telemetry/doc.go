// Package telemetry groups the gateway's observability packages.
//
//   - logging: slog setup, request-scoped fields, credential redaction
//   - metrics: Prometheus collector for requests, rate limiting, backends
//     and static responses
//   - tracing: OpenTelemetry spans around the gate and backend calls
//   - health: liveness, readiness and version endpoints
//
// Every component is safe to use when its feature is disabled: a nil or
// disabled metrics Collector records nothing and a disabled Tracer hands
// out no-op spans.
package telemetry
