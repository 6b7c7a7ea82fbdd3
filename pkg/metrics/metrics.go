// Package metrics defines the Prometheus metric collectors used by the
// term-table build service and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the build service.
type Metrics struct {
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestsInFlight   prometheus.Gauge
	BuildDuration          *prometheus.HistogramVec
	BuildsTotal            *prometheus.CounterVec
	TermsTabulatedTotal    *prometheus.CounterVec
	RowsByRank             *prometheus.GaugeVec
	SearchOptimalEvalTotal prometheus.Counter
	CacheHitsTotal         prometheus.Counter
	CacheMissesTotal       prometheus.Counter
	CircuitBreakerState    *prometheus.GaugeVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		BuildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "termtable_build_duration_seconds",
				Help:    "Term table build duration in seconds, by strategy.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
			[]string{"strategy"},
		),
		BuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termtable_builds_total",
				Help: "Total term table builds by strategy and outcome.",
			},
			[]string{"strategy", "outcome"},
		),
		TermsTabulatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termtable_terms_tabulated_total",
				Help: "Total terms assigned a row configuration, by strategy.",
			},
			[]string{"strategy"},
		),
		RowsByRank: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "termtable_rows_by_rank",
				Help: "Rows tabulated in the most recent build, by rank.",
			},
			[]string{"rank"},
		),
		SearchOptimalEvalTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "termtable_search_optimal_evaluations_total",
				Help: "Total SearchOptimal terminal-node evaluations across all Experimental strategy builds.",
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "termtable_cache_hits_total",
				Help: "Total treatment cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "termtable_cache_misses_total",
				Help: "Total treatment cache misses.",
			},
		),
		CircuitBreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open).",
			},
			[]string{"name"},
		),
	}

	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.BuildDuration,
		m.BuildsTotal,
		m.TermsTabulatedTotal,
		m.RowsByRank,
		m.SearchOptimalEvalTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.CircuitBreakerState,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
