package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects per-method call counters and latencies.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the gateway metrics with reg. A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gamestats",
				Subsystem: "gateway",
				Name:      "calls_total",
				Help:      "Total number of routed stats calls by method, group and result.",
			},
			[]string{"method", "group", "result"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gamestats",
				Subsystem: "gateway",
				Name:      "call_duration_seconds",
				Help:      "Stats call duration in seconds, including the upstream request.",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method"},
		),
	}
}

func (m *Metrics) observe(method, group, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(method, group, result).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
