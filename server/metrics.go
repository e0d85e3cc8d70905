package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the plan endpoint.
type Metrics struct {
	reg *prometheus.Registry

	PlanRequests *prometheus.CounterVec
	PlanDuration prometheus.Histogram
}

// NewMetrics builds a collector set on its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		reg: reg,
		PlanRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_plan_requests_total",
			Help: "Plan requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		PlanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gateway_plan_duration_seconds",
			Help:    "End-to-end plan request duration including the upstream call.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.PlanRequests, m.PlanDuration)
	return m
}

// ObservePlan records one plan request outcome. A zero elapsed duration is
// counted but not observed in the histogram.
func (m *Metrics) ObservePlan(provider, outcome string, elapsed time.Duration) {
	if provider == "" {
		provider = "unknown"
	}
	m.PlanRequests.WithLabelValues(provider, outcome).Inc()
	if elapsed > 0 {
		m.PlanDuration.Observe(elapsed.Seconds())
	}
}

// Handler serves the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
