package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"farmgenius/gateway/pkg/proxy"
	"farmgenius/gateway/pkg/proxy/types"
	"farmgenius/gateway/pkg/telemetry/metrics"
)

// APIEndpoints lists the proxied endpoints advertised in 404 answers.
var APIEndpoints = []string{"/api/chat", "/api/translate"}

// NotFoundHandler answers unknown paths under /api/ with a structured 404
// instead of the SPA fallback.
type NotFoundHandler struct {
	Metrics *metrics.Collector
	Logger  *slog.Logger
}

// ServeHTTP implements http.Handler.
func (h *NotFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger(h.Logger).WarnContext(r.Context(), "unknown api endpoint", "path", r.URL.Path)

	proxy.WriteJSON(w, http.StatusNotFound, types.NotFoundResponse{
		Error:              "API endpoint not found",
		Path:               r.URL.Path,
		AvailableEndpoints: APIEndpoints,
	})
	h.Metrics.RecordHTTPRequest("api_not_found", http.StatusNotFound, time.Since(start))
}
