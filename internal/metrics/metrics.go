// Package metrics exposes Prometheus collectors for quest profile generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ignite_quest"

// Metrics reports generation outcomes, rejected submissions and live sessions.
type Metrics struct {
	generations        *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	rejections         *prometheus.CounterVec
	activeSessions     prometheus.Gauge
}

// MustNewMetrics registers the collectors with reg and panics on duplicate
// registration. Tests should pass a fresh prometheus.NewRegistry().
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "profile",
				Name:      "generations_total",
				Help:      "Profile generation calls by outcome.",
			},
			[]string{"outcome"},
		),
		generationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "profile",
				Name:      "generation_duration_seconds",
				Help:      "Time spent waiting on the generation service.",
				Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
			},
			[]string{"outcome"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "quest",
				Name:      "submissions_rejected_total",
				Help:      "Submissions rejected before any generation call.",
			},
			[]string{"reason"},
		),
		activeSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "quest",
				Name:      "sessions_active",
				Help:      "Quest sessions currently held in memory.",
			},
		),
	}
	reg.MustRegister(m.generations, m.generationDuration, m.rejections, m.activeSessions)
	return m
}

func (m *Metrics) ObserveGeneration(outcome string, elapsed time.Duration) {
	m.generations.WithLabelValues(outcome).Inc()
	m.generationDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) SubmissionRejected(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) SessionsActive(n int) {
	m.activeSessions.Set(float64(n))
}
