// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus instrumentation for the API process.

Collectors:

  - HTTP: request count, latency, and in-flight gauge labelled by chi route pattern.
  - Database: pgxpool statistics via [PoolStatsCollector].
  - Domain: contact submissions and outbound email attempts.

Everything is registered on the default registry and served by [Handler].
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// # HTTP Metrics

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// # Domain Metrics

var (
	// ContactSubmissions counts contact form submissions by outcome (stored, invalid, storage_error, notifier_error).
	ContactSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Contact form submissions by outcome",
		},
		[]string{"outcome"},
	)

	// EmailsSent counts outbound transactional email attempts by template and outcome.
	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Outbound email attempts by template and outcome",
		},
		[]string{"template", "outcome"},
	)

	// CircuitBreakerState reports breaker state per name (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current state of the circuit breaker (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (writer *metricsResponseWriter) WriteHeader(code int) {
	writer.statusCode = code
	writer.ResponseWriter.WriteHeader(code)
}

// Middleware records request metrics keyed by the matched chi route pattern.
//
// Unmatched requests are grouped under "unknown" to keep label cardinality bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		startTime := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrappedWriter := &metricsResponseWriter{ResponseWriter: writer, statusCode: http.StatusOK}
		next.ServeHTTP(wrappedWriter, request)

		route := "unknown"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil && routeContext.RoutePattern() != "" {
			route = routeContext.RoutePattern()
		}

		httpRequestsTotal.WithLabelValues(request.Method, route, strconv.Itoa(wrappedWriter.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(request.Method, route).Observe(time.Since(startTime).Seconds())
	})
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// # Database Metrics

// PoolStatsCollector implements prometheus.Collector for pgxpool connection metrics.
type PoolStatsCollector struct {
	pool *pgxpool.Pool

	acquiredConns *prometheus.Desc
	idleConns     *prometheus.Desc
	totalConns    *prometheus.Desc
	maxConns      *prometheus.Desc
	acquireCount  *prometheus.Desc
	emptyAcquires *prometheus.Desc
}

// NewPoolStatsCollector creates a collector that exports pgxpool statistics on every scrape.
func NewPoolStatsCollector(pool *pgxpool.Pool) *PoolStatsCollector {
	return &PoolStatsCollector{
		pool:          pool,
		acquiredConns: prometheus.NewDesc("db_pool_acquired_connections", "Number of currently acquired connections", nil, nil),
		idleConns:     prometheus.NewDesc("db_pool_idle_connections", "Number of currently idle connections", nil, nil),
		totalConns:    prometheus.NewDesc("db_pool_total_connections", "Total number of connections in the pool", nil, nil),
		maxConns:      prometheus.NewDesc("db_pool_max_connections", "Maximum number of connections allowed", nil, nil),
		acquireCount:  prometheus.NewDesc("db_pool_acquire_count_total", "Total number of connection acquires", nil, nil),
		emptyAcquires: prometheus.NewDesc("db_pool_empty_acquire_count_total", "Acquires that had to wait for a connection", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (collector *PoolStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.acquiredConns
	ch <- collector.idleConns
	ch <- collector.totalConns
	ch <- collector.maxConns
	ch <- collector.acquireCount
	ch <- collector.emptyAcquires
}

// Collect implements prometheus.Collector.
func (collector *PoolStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats := collector.pool.Stat()

	ch <- prometheus.MustNewConstMetric(collector.acquiredConns, prometheus.GaugeValue, float64(stats.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(collector.idleConns, prometheus.GaugeValue, float64(stats.IdleConns()))
	ch <- prometheus.MustNewConstMetric(collector.totalConns, prometheus.GaugeValue, float64(stats.TotalConns()))
	ch <- prometheus.MustNewConstMetric(collector.maxConns, prometheus.GaugeValue, float64(stats.MaxConns()))
	ch <- prometheus.MustNewConstMetric(collector.acquireCount, prometheus.CounterValue, float64(stats.AcquireCount()))
	ch <- prometheus.MustNewConstMetric(collector.emptyAcquires, prometheus.CounterValue, float64(stats.EmptyAcquireCount()))
}
