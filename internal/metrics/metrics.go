package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "snapxchange"

// Metrics - коллекторы сервиса. Методы безопасны для nil.
type Metrics struct {
	Registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	fetches   *prometheus.CounterVec
	stale     prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		Registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed.",
		}, []string{"route", "method", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_fetches_total",
			Help:      "Base rate lookups by source and outcome.",
		}, []string{"source", "outcome"}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_quotes_total",
			Help:      "Quotes served from the last known rates after a failed fetch.",
		}),
	}
	registry.MustRegister(m.requests, m.durations, m.fetches, m.stale)
	return m
}

func (m *Metrics) ObserveRequest(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, status).Inc()
	m.durations.WithLabelValues(route, method).Observe(seconds)
}

// Fetch: source - "api" или "cache", outcome - "ok", "miss" или "error"
func (m *Metrics) Fetch(source, outcome string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(source, outcome).Inc()
}

func (m *Metrics) StaleQuote() {
	if m == nil {
		return
	}
	m.stale.Inc()
}
