package metrics

import (
	"farmgenius/gateway/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// StaticMetrics tracks static responder outcomes.
//
// Metrics:
//   - farmgenius_static_responses_total: Responses by kind (file, fallback, forbidden, error)
type StaticMetrics struct {
	responses *prometheus.CounterVec
}

// NewStaticMetrics creates and registers static responder metrics.
func NewStaticMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *StaticMetrics {
	sm := &StaticMetrics{
		responses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "static",
				Name:      "responses_total",
				Help:      "Total number of static responses by kind",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(sm.responses)

	return sm
}

// Record increments the counter for kind.
func (sm *StaticMetrics) Record(kind string) {
	sm.responses.WithLabelValues(kind).Inc()
}
