package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chek_kma"

// Metrics holds the collectors of one process. A nil *Metrics records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	apiRequests *prometheus.CounterVec
	apiDuration *prometheus.HistogramVec
	matches     *prometheus.CounterVec
	loads       *prometheus.CounterVec
}

// New creates Metrics backed by a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Backend API requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Backend API request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "benchmark_matches_total",
			Help:      "Benchmark label lookups by category and result",
		}, []string{"category", "result"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_loads_total",
			Help:      "Store load actions by kind and result",
		}, []string{"kind", "result"}),
	}

	m.registry.MustRegister(
		m.apiRequests,
		m.apiDuration,
		m.matches,
		m.loads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveAPIRequest records one backend request
func (m *Metrics) ObserveAPIRequest(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(endpoint, outcome).Inc()
	m.apiDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveMatch records one benchmark lookup
func (m *Metrics) ObserveMatch(category string, matched bool) {
	if m == nil {
		return
	}
	result := "matched"
	if !matched {
		result = "unmatched"
	}
	m.matches.WithLabelValues(category, result).Inc()
}

// ObserveLoad records one store action
func (m *Metrics) ObserveLoad(kind string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.loads.WithLabelValues(kind, result).Inc()
}
