// Package metrics exposes Prometheus collectors for the auth service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics groups the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	operations     *prometheus.CounterVec
	tokenRotations prometheus.Counter
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_operations_total",
			Help: "Total number of auth operations by operation and outcome",
		}, []string{"operation", "outcome"}),
		tokenRotations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_access_token_rotations_total",
			Help: "Total number of near-expiry access tokens silently replaced",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "auth_http_request_duration_seconds",
			Help:    "Histogram of HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.operations, m.tokenRotations, m.httpRequests, m.httpDuration)
	return m
}

// Operation records the outcome of one auth engine call.
func (m *Metrics) Operation(name string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.operations.WithLabelValues(name, outcome).Inc()
}

func (m *Metrics) TokenRotated() {
	if m == nil {
		return
	}
	m.tokenRotations.Inc()
}

func (m *Metrics) HTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// OperationsCounter exposes one operation series, mainly for tests.
func (m *Metrics) OperationsCounter(name, outcome string) prometheus.Counter {
	return m.operations.WithLabelValues(name, outcome)
}
