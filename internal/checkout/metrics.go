package checkout

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records checkout outcomes. A nil *Metrics records nothing.
type Metrics struct {
	attempts *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "canteen",
			Subsystem: "checkout",
			Name:      "attempts_total",
			Help:      "Checkout attempts by outcome and rejection reason.",
		}, []string{"outcome", "reason"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "canteen",
			Subsystem: "checkout",
			Name:      "submit_duration_seconds",
			Help:      "Time spent waiting on the order backend.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.attempts, m.duration)
	}
	return m
}

func (m *Metrics) observe(state State, reason Reason) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(string(state), string(reason)).Inc()
}

func (m *Metrics) observeDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(d.Seconds())
}
