package metrics

import (
	"time"

	"farmgenius/gateway/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric exported by the gateway. All
// Record methods are safe on a nil or disabled Collector, so components can
// hold one unconditionally.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	requestMetrics   *RequestMetrics
	rateLimitMetrics *RateLimitMetrics
	backendMetrics   *BackendMetrics
	staticMetrics    *StaticMetrics
}

// NewCollector creates a collector and registers its metrics with registry.
// A nil registry gets a fresh one so tests never share global state.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	return &Collector{
		config:           cfg,
		registry:         registry,
		requestMetrics:   NewRequestMetrics(cfg, registry),
		rateLimitMetrics: NewRateLimitMetrics(cfg, registry),
		backendMetrics:   NewBackendMetrics(cfg, registry),
		staticMetrics:    NewStaticMetrics(cfg, registry),
	}
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// Registry returns the registry the collector registered its metrics with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordHTTPRequest records one completed HTTP request.
//
// Parameters:
//   - route: Route name ("chat", "translate", "static", "api_not_found", ...)
//   - status: HTTP status code written
//   - duration: Time from first byte read to last byte written
func (c *Collector) RecordHTTPRequest(route string, status int, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.requestMetrics.Record(route, status, duration)
}

// ObserveDecision records a rate limiter decision.
func (c *Collector) ObserveDecision(allowed bool) {
	if !c.enabled() {
		return
	}
	c.rateLimitMetrics.RecordDecision(allowed)
}

// ObserveIdentities records the number of identities left after a sweep.
func (c *Collector) ObserveIdentities(n int) {
	if !c.enabled() {
		return
	}
	c.rateLimitMetrics.SetIdentities(n)
}

// RecordBackendCall records one call to a language-model or translation backend.
//
// Parameters:
//   - backend: "chat" or "translate"
//   - outcome: "success", "error", "timeout" or "degraded"
//   - duration: Call latency including retries
func (c *Collector) RecordBackendCall(backend, outcome string, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.backendMetrics.Record(backend, outcome, duration)
}

// RecordStatic records how the static responder answered.
//
// kind is one of "file", "fallback", "forbidden" or "error".
func (c *Collector) RecordStatic(kind string) {
	if !c.enabled() {
		return
	}
	c.staticMetrics.Record(kind)
}
