package scheduler

import "github.com/prometheus/client_golang/prometheus"

// metrics groups the scheduler's Prometheus collectors. A Scheduler
// constructed without a registry still populates these (so code paths that
// observe them never nil-check), it just never exposes them for scraping.
type metrics struct {
	phaseDuration  *prometheus.HistogramVec
	poolDuration   *prometheus.HistogramVec
	callbackErrors *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		phaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ecs",
			Subsystem: "scheduler",
			Name:      "phase_duration_seconds",
			Help:      "Wall-clock duration of one full scheduler phase run.",
		}, []string{"phase"}),
		poolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ecs",
			Subsystem: "scheduler",
			Name:      "pool_duration_seconds",
			Help:      "Wall-clock duration of a single pool's parallel callback run.",
		}, []string{"phase", "pool"}),
		callbackErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ecs",
			Subsystem: "scheduler",
			Name:      "callback_errors_total",
			Help:      "Count of callback errors returned from scheduler pools, by origin.",
		}, []string{"phase", "origin"}),
	}
	if reg != nil {
		reg.MustRegister(m.phaseDuration, m.poolDuration, m.callbackErrors)
	}
	return m
}
