package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mealplan_gateway"

// Metrics owns a private registry so several instances can coexist in tests.
// All methods are safe on a nil receiver.
type Metrics struct {
	reg *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	collaboratorCalls   *prometheus.CounterVec
	collaboratorLatency *prometheus.HistogramVec
	breakerState        *prometheus.GaugeVec

	conversionFallbacks *prometheus.CounterVec
	factCache           *prometheus.CounterVec

	rateLimitRejects prometheus.Counter
	panicRecoveries  prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		}),
		collaboratorCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collaborator_calls_total",
			Help:      "Outbound collaborator calls by outcome",
		}, []string{"collaborator", "operation", "outcome"}),
		collaboratorLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "collaborator_call_duration_seconds",
			Help:      "Outbound collaborator call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collaborator", "operation"}),
		breakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_open",
			Help:      "1 while the collaborator circuit breaker is open, 0.5 while half-open",
		}, []string{"collaborator"}),
		conversionFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unit_conversion_fallbacks_total",
			Help:      "Shopping list quantities replaced by the default amount",
		}, []string{"unit"}),
		factCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fact_cache_lookups_total",
			Help:      "Ingredient fact cache lookups by result",
		}, []string{"result"}),
		rateLimitRejects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_rejects_total",
			Help:      "Total number of requests rejected due to rate limiting",
		}),
		panicRecoveries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "panic_recoveries_total",
			Help:      "Total number of panics recovered in HTTP handlers",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.collaboratorCalls,
		m.collaboratorLatency,
		m.breakerState,
		m.conversionFallbacks,
		m.factCache,
		m.rateLimitRejects,
		m.panicRecoveries,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	m.apiRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveCollaborator(collaborator, operation, outcome string, dur time.Duration) {
	if m == nil {
		return
	}
	m.collaboratorCalls.WithLabelValues(collaborator, operation, outcome).Inc()
	m.collaboratorLatency.WithLabelValues(collaborator, operation).Observe(dur.Seconds())
}

func (m *Metrics) BreakerStateChanged(collaborator, state string) {
	if m == nil {
		return
	}
	v := 0.0
	switch state {
	case "open":
		v = 1
	case "half-open":
		v = 0.5
	}
	m.breakerState.WithLabelValues(collaborator).Set(v)
}

func (m *Metrics) ConversionFallback(unit string) {
	if m == nil {
		return
	}
	m.conversionFallbacks.WithLabelValues(unitLabel(unit)).Inc()
}

func (m *Metrics) FactCacheResult(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.factCache.WithLabelValues("hit").Inc()
		return
	}
	m.factCache.WithLabelValues("miss").Inc()
}

func (m *Metrics) IncRateLimitReject() {
	if m == nil {
		return
	}
	m.rateLimitRejects.Inc()
}

func (m *Metrics) IncPanicRecovery() {
	if m == nil {
		return
	}
	m.panicRecoveries.Inc()
}

var knownUnits = map[string]struct{}{
	"kg": {}, "mg": {}, "lb": {}, "lbs": {}, "oz": {}, "ml": {}, "l": {},
	"cup": {}, "cups": {}, "tbsp": {}, "tsp": {}, "pinch": {}, "piece": {},
	"pieces": {}, "serving": {}, "servings": {}, "clove": {}, "cloves": {},
	"slice": {}, "slices": {}, "can": {}, "": {},
}

// unitLabel bounds the label cardinality of client-supplied unit strings.
func unitLabel(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if _, ok := knownUnits[u]; ok {
		if u == "" {
			return "none"
		}
		return u
	}
	return "other"
}
