package metrics

import (
	"time"

	"farmgenius/gateway/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// BackendMetrics tracks calls to the chat and translation backends.
//
// Metrics:
//   - farmgenius_backend_requests_total: Calls by backend and outcome
//   - farmgenius_backend_duration_seconds: Call latency by backend
type BackendMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewBackendMetrics creates and registers backend metrics with the provided registry.
func NewBackendMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *BackendMetrics {
	bm := &BackendMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "backend",
				Name:      "requests_total",
				Help:      "Total number of backend calls by backend and outcome",
			},
			[]string{"backend", "outcome"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: "backend",
				Name:      "duration_seconds",
				Help:      "Backend call latency in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"backend"},
		),
	}

	registry.MustRegister(bm.requests, bm.duration)

	return bm
}

// Record records one backend call.
func (bm *BackendMetrics) Record(backend, outcome string, duration time.Duration) {
	bm.requests.WithLabelValues(backend, outcome).Inc()
	if duration > 0 {
		bm.duration.WithLabelValues(backend).Observe(duration.Seconds())
	}
}
