// Package metric provides Prometheus metrics for the llmops console client.
package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "llmops_client"

// Registry holds all client metrics.
type Registry struct {
	reg *prometheus.Registry

	// RequestsTotal counts settled dispatches by method and outcome.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration observes dispatch latency by method.
	RequestDuration *prometheus.HistogramVec

	// SessionEvents counts login/logout events.
	SessionEvents *prometheus.CounterVec
}

// NewRegistry creates the client metrics and registers them on a fresh
// prometheus.Registry.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Settled requests by method and outcome.",
		}, []string{"method", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Request latency from dispatch to settlement.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		SessionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_events_total",
			Help:      "Login and logout events.",
		}, []string{"event"}),
	}

	r.reg.MustRegister(r.RequestsTotal, r.RequestDuration, r.SessionEvents)
	return r
}

// ObserveRequest implements Collector.
func (r *Registry) ObserveRequest(method, outcome string, elapsed time.Duration) {
	r.RequestsTotal.WithLabelValues(method, outcome).Inc()
	r.RequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveSession implements Collector.
func (r *Registry) ObserveSession(event string) {
	r.SessionEvents.WithLabelValues(event).Inc()
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler returns an HTTP handler serving the registry in Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
