package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/recipes", 200, 20*time.Millisecond)
	m.ObserveAPI("GET", "/api/recipes", 200, 30*time.Millisecond)
	m.ObserveCollaborator("spoonacular", "convert", "ok", time.Millisecond)
	m.ConversionFallback("Cups")
	m.ConversionFallback("handful")
	m.FactCacheResult(true)
	m.FactCacheResult(false)
	m.BreakerStateChanged("dbadapter", "open")
	m.IncRateLimitReject()

	assert.InDelta(t, 2, testutil.ToFloat64(m.apiRequests.WithLabelValues("GET", "/api/recipes", "200")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.collaboratorCalls.WithLabelValues("spoonacular", "convert", "ok")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.conversionFallbacks.WithLabelValues("cups")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.conversionFallbacks.WithLabelValues("other")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.factCache.WithLabelValues("hit")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.breakerState.WithLabelValues("dbadapter")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.rateLimitRejects), 1e-9)

	m.BreakerStateChanged("dbadapter", "closed")
	assert.InDelta(t, 0, testutil.ToFloat64(m.breakerState.WithLabelValues("dbadapter")), 1e-9)
}

func TestMetricsHandlerExposesRegistry(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("POST", "/api/shops", 502, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), `mealplan_gateway_http_requests_total{method="POST",route="/api/shops",status="502"} 1`))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", 200, time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.ObserveCollaborator("x", "y", "ok", time.Millisecond)
	m.ConversionFallback("kg")
	m.FactCacheResult(true)
	m.BreakerStateChanged("x", "open")
	m.IncRateLimitReject()
	m.IncPanicRecovery()
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
