// Package metrics owns the gateway's Prometheus registry.
//
// A private registry is used instead of the global default one so that each
// assembled handler (and each test) gets an isolated set of collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Verification outcomes recorded by RecordVerification.
const (
	OutcomeVerified    = "verified"
	OutcomeRejected    = "rejected"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// UnmatchedRoute labels requests that matched no route.
const UnmatchedRoute = "unmatched"

// OtherMethod labels requests whose method is not a standard HTTP method.
const OtherMethod = "OTHER"

var standardMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodConnect: {},
	http.MethodOptions: {},
	http.MethodTrace:   {},
}

// Metrics holds all Prometheus collectors of the gateway.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	responseSize    *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
	verifications   *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates a Metrics instance with every collector registered, including
// the Go runtime and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_requests_total",
				Help: "Total number of HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status_code"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		responseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_response_size_bytes",
				Help:    "HTTP response body size in bytes",
				Buckets: prometheus.ExponentialBuckets(64, 4, 8),
			},
			[]string{"method", "route"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_errors_total",
				Help: "Total number of normalized error responses by kind",
			},
			[]string{"kind"},
		),

		verifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_identity_verifications_total",
				Help: "Total number of credential verifications by outcome",
			},
			[]string{"outcome"},
		),

		registry: registry,
	}

	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.responseSize,
		m.errorsTotal,
		m.verifications,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RecordRequest records a completed HTTP request. An empty route is recorded
// as UnmatchedRoute.
func (m *Metrics) RecordRequest(method, route string, status, size int, duration time.Duration) {
	if route == "" {
		route = UnmatchedRoute
	}
	method = methodLabel(method)
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	m.responseSize.WithLabelValues(method, route).Observe(float64(size))
}

// methodLabel keeps the method label set bounded.
func methodLabel(method string) string {
	if _, ok := standardMethods[method]; ok {
		return method
	}
	return OtherMethod
}

// RecordError records a normalized error response of the given kind.
func (m *Metrics) RecordError(kind string) {
	m.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordVerification records the outcome of one credential verification.
func (m *Metrics) RecordVerification(outcome string) {
	m.verifications.WithLabelValues(outcome).Inc()
}

// Handler returns the Prometheus exposition handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
