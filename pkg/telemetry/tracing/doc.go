// Package tracing configures OpenTelemetry tracing.
//
// Spans:
//
//	gate.chat, gate.translate   one per proxied request
//	backend.chat                model call, including retries
//	backend.translate           translation call, including retries
//
// Spans are exported over OTLP/gRPC when telemetry.tracing.enabled is set.
// Otherwise New returns a noop tracer.
package tracing
