package server

import (
	"log/slog"
	"net/http"

	"farmgenius/gateway/pkg/proxy"
	"farmgenius/gateway/pkg/proxy/handlers"
	"farmgenius/gateway/pkg/proxy/middleware"
	"farmgenius/gateway/pkg/site"
	"farmgenius/gateway/pkg/telemetry/health"
	"farmgenius/gateway/pkg/telemetry/metrics"
)

// Routes holds everything the HTTP surface is built from.
type Routes struct {
	Gate      *proxy.Gate
	Chat      *handlers.ChatHandler
	Translate *handlers.TranslateHandler
	Site      http.Handler

	Health  *health.Checker
	Version health.VersionInfo

	// Metrics is mounted at MetricsPath when both are set.
	Metrics     *metrics.Collector
	MetricsPath string

	// AllowedOrigins is read per request so reloads apply immediately.
	AllowedOrigins func() []string

	Logger *slog.Logger
}

// Handler builds the mux and wraps it in the middleware chain. From the
// outside in: recovery, request ID, logging, no-cache, CORS, traversal
// guard.
func (rt *Routes) Handler() http.Handler {
	logger := rt.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	chat := rt.Chat.Handler(rt.Gate)
	translate := rt.Translate.Handler(rt.Gate)
	mux.Handle("/api/chat", chat)
	mux.Handle("/api/chat/{$}", chat)
	mux.Handle("/api/translate", translate)
	mux.Handle("/api/translate/{$}", translate)
	mux.Handle("/api/", &handlers.NotFoundHandler{Metrics: rt.Metrics, Logger: logger})

	if rt.Health != nil {
		health.Register(mux, rt.Health, rt.Version)
	}
	if rt.Metrics != nil && rt.MetricsPath != "" {
		mux.Handle(rt.MetricsPath, rt.Metrics.Handler())
	}

	// Exact so /api falls through to the site instead of redirecting to /api/.
	mux.Handle("/api", rt.Site)
	mux.Handle("/", rt.Site)

	var handler http.Handler = mux
	handler = site.TraversalGuard(rt.Metrics)(handler)
	handler = middleware.CORSMiddleware(middleware.DefaultCORSConfig(rt.AllowedOrigins))(handler)
	handler = middleware.NoCacheMiddleware(handler)
	handler = middleware.LoggingMiddleware(logger)(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}
