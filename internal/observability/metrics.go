// Package observability exposes the portal's Prometheus metrics.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the portal's collectors on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	erpCalls        *prometheus.CounterVec
	erpDuration     *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	jobRuns         *prometheus.CounterVec
}

// NewMetrics creates the registry and registers all collectors
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portal_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	erpCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_erp_requests_total",
		Help: "ERP API requests by operation and status code (0 for transport errors).",
	}, []string{"operation", "code"})
	erpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portal_erp_request_duration_seconds",
		Help:    "ERP API latency by operation.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"operation"})
	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_cache_lookups_total",
		Help: "Catalog cache lookups by result (hit, miss, error).",
	}, []string{"result"})
	jobRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_job_runs_total",
		Help: "Background job runs by job and outcome.",
	}, []string{"job", "outcome"})

	registry.MustRegister(
		requests, duration, erpCalls, erpDuration, cacheLookups, jobRuns,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		erpCalls:        erpCalls,
		erpDuration:     erpDuration,
		cacheLookups:    cacheLookups,
		jobRuns:         jobRuns,
	}
}

// Handler serves /metrics
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records count and latency per chi route pattern
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveERPCall implements erp.CallObserver
func (m *Metrics) ObserveERPCall(operation string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.erpCalls.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	m.erpDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveCache counts a cache lookup result
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveJob counts a background job run
func (m *Metrics) ObserveJob(job string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.jobRuns.WithLabelValues(job, outcome).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
