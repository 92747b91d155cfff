package metrics

import (
	"farmgenius/gateway/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RateLimitMetrics tracks limiter decisions and table size.
//
// Metrics:
//   - farmgenius_ratelimit_decisions_total: Decisions by result (allowed, rejected)
//   - farmgenius_ratelimit_identities: Identities tracked after the last sweep
type RateLimitMetrics struct {
	decisions  *prometheus.CounterVec
	identities prometheus.Gauge
}

// NewRateLimitMetrics creates and registers limiter metrics with the provided registry.
func NewRateLimitMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RateLimitMetrics {
	m := &RateLimitMetrics{
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "ratelimit",
				Name:      "decisions_total",
				Help:      "Total number of rate limit decisions by result",
			},
			[]string{"result"},
		),

		identities: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: "ratelimit",
				Name:      "identities",
				Help:      "Number of client identities tracked after the last sweep",
			},
		),
	}

	registry.MustRegister(m.decisions, m.identities)

	return m
}

// RecordDecision increments the allowed or rejected counter.
func (m *RateLimitMetrics) RecordDecision(allowed bool) {
	result := "rejected"
	if allowed {
		result = "allowed"
	}
	m.decisions.WithLabelValues(result).Inc()
}

// SetIdentities sets the identities gauge.
func (m *RateLimitMetrics) SetIdentities(n int) {
	m.identities.Set(float64(n))
}
