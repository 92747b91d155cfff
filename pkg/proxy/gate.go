package proxy

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"farmgenius/gateway/pkg/limits/ratelimit"
	"farmgenius/gateway/pkg/telemetry/logging"
	"farmgenius/gateway/pkg/telemetry/metrics"
	"farmgenius/gateway/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Gate holds the state shared by every proxied endpoint: the size ceiling,
// the rate limiter and telemetry.
type Gate struct {
	Limiter      *ratelimit.Limiter
	MaxBodyBytes int64

	// TrustProxy is read per request so a config reload takes effect
	// without a restart. Nil means false.
	TrustProxy func() bool

	Metrics *metrics.Collector
	Tracer  *tracing.Tracer
	Logger  *slog.Logger
}

// ParseFunc validates a decoded body into a typed request. Validation
// failures are returned as *RequestError.
type ParseFunc[T any] func(Fields) (T, error)

// ServeFunc calls the backend and returns the status and body to write.
type ServeFunc[T any] func(ctx context.Context, req T) (int, any)

// Pipeline builds the handler for one proxied route. Checks run in order
// and the first failure answers:
//
//	method not POST        405
//	body over the ceiling  413
//	limiter rejects        429
//	body not a JSON object 400
//	parse fails            400 with the parse message
//
// Oversized and aborted bodies never reach the limiter. A body aborted by
// the client gets no answer at all.
func Pipeline[T any](g *Gate, route string, parse ParseFunc[T], serve ServeFunc[T]) http.HandlerFunc {
	spanName := "gate." + route

	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ctx := tracing.Extract(r.Context(), r.Header)
		ctx = logging.WithRoute(ctx, route)
		ctx, span := g.Tracer.Start(ctx, spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String(tracing.AttrRoute, route)),
		)
		defer span.End()
		if sc := span.SpanContext(); sc.IsValid() {
			ctx = logging.WithTraceID(ctx, sc.TraceID().String())
		}

		status, outcome := run(ctx, g, w, r, parse, serve)

		span.SetAttributes(attribute.String(tracing.AttrOutcome, outcome))
		tracing.SetStatus(span, status)
		g.Metrics.RecordHTTPRequest(route, status, time.Since(start))
	}
}

func run[T any](ctx context.Context, g *Gate, w http.ResponseWriter, r *http.Request, parse ParseFunc[T], serve ServeFunc[T]) (int, string) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
		return http.StatusMethodNotAllowed, "method_not_allowed"
	}

	body, err := ReadBody(w, r, g.MaxBodyBytes)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			WriteError(w, reqErr.Status, reqErr.Message)
			return reqErr.Status, "too_large"
		}
		g.logger().DebugContext(ctx, "request body aborted", "error", err)
		return StatusClientClosedRequest, "aborted"
	}

	identity := ClientIdentity(r, g.trustProxy())
	ctx = logging.WithClient(ctx, identity)
	if g.Limiter != nil && !g.Limiter.Allow(ctx, identity) {
		g.logger().InfoContext(ctx, "rate limit exceeded")
		WriteError(w, http.StatusTooManyRequests, MsgTooManyRequests)
		return http.StatusTooManyRequests, "rate_limited"
	}

	fields, err := DecodeFields(body)
	if err != nil {
		WriteError(w, http.StatusBadRequest, MsgInvalidJSON)
		return http.StatusBadRequest, "invalid_json"
	}

	req, err := parse(fields)
	if err != nil {
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			reqErr = BadRequest(err.Error())
		}
		WriteError(w, reqErr.Status, reqErr.Message)
		return reqErr.Status, "invalid_request"
	}

	status, resp := serve(ctx, req)
	WriteJSON(w, status, resp)
	if status >= http.StatusInternalServerError {
		return status, "backend_error"
	}
	return status, "ok"
}

func (g *Gate) trustProxy() bool {
	return g.TrustProxy != nil && g.TrustProxy()
}

func (g *Gate) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}
