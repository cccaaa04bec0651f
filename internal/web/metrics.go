package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for the HTTP surface.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration prometheus.Histogram
	rateLimited     prometheus.Counter
}

// NewMetrics creates and registers the instruments on a fresh registry.
// Each server owns its registry so tests never collide on registration.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "txsignals_create_requests_total",
			Help: "Create-user requests by transaction outcome.",
		}, []string{"outcome"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "txsignals_create_request_seconds",
			Help:    "Create-user request duration, dominated by the notifier delay.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "txsignals_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		}),
	}

	reg.MustRegister(m.requests, m.requestDuration, m.rateLimited)
	return m
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one create-user request.
func (m *Metrics) ObserveRequest(outcome string, seconds float64) {
	m.requests.WithLabelValues(outcome).Inc()
	m.requestDuration.Observe(seconds)
}

// ObserveRateLimited records one rejected request.
func (m *Metrics) ObserveRateLimited() {
	m.rateLimited.Inc()
}
