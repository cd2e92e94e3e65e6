package moderation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records provider attempts, final verdicts and call latency.
type Metrics struct {
	attempts *prometheus.CounterVec
	results  *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	const namespace = "qa"
	const subsystem = "moderation"

	m := &Metrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "attempts_total",
			Help:      "Number of requests sent to the moderation provider by outcome",
		}, []string{"outcome"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "results_total",
			Help:      "Number of moderation checks by final result",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "check_duration_seconds",
			Help:      "Duration of moderation checks including retries",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.attempts, m.results, m.duration)
	return m
}

func (m *Metrics) attempt(k Kind) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(k.String()).Inc()
}

func (m *Metrics) result(k Kind, since time.Time) {
	if m == nil {
		return
	}
	m.results.WithLabelValues(k.String()).Inc()
	m.duration.Observe(time.Since(since).Seconds())
}
