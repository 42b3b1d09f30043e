package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestMetricsMiddlewareRecordsRoutePattern(t *testing.T) {
	m := NewMetrics()
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/api/v1/orders/{name}")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/SO-1", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	body := scrape(t, m)
	assert.Contains(t, body, `portal_http_requests_total{code="404",route="/api/v1/orders/{name}"} 1`)
}

func TestMetricsERPCacheAndJobs(t *testing.T) {
	m := NewMetrics()
	m.ObserveERPCall("GET Sales Order", 200, 120*time.Millisecond)
	m.ObserveCache("hit")
	m.ObserveCache("miss")
	m.ObserveJob("session_cleanup", nil)
	m.ObserveJob("session_cleanup", errors.New("boom"))

	body := scrape(t, m)
	assert.Contains(t, body, `portal_erp_requests_total{code="200",operation="GET Sales Order"} 1`)
	assert.Contains(t, body, `portal_cache_lookups_total{result="hit"} 1`)
	assert.Contains(t, body, `portal_job_runs_total{job="session_cleanup",outcome="failure"} 1`)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveERPCall("x", 200, time.Second)
	m.ObserveCache("hit")
	m.ObserveJob("x", nil)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	assert.NotNil(t, m.Middleware(next))

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
