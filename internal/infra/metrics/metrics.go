// Package metrics collects and exposes Prometheus metrics for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// Collector records request and business level counters. Handlers and
// middleware depend on the concrete type since there is a single
// implementation.
type Collector struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec

	signups       prometheus.Counter
	logins        prometheus.Counter
	loginFailures prometheus.Counter
	todosCreated  prometheus.Counter
	todosDeleted  prometheus.Counter
	sessionsSwept prometheus.Counter
}

// Params defines the dependencies for the Collector.
type Params struct {
	fx.In
}

// NewCollector builds a Collector backed by its own registry so tests can
// construct independent instances without duplicate registration panics.
func NewCollector(_ Params) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "doable_http_requests_total",
			Help: "HTTP requests partitioned by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "doable_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		signups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "doable_signups_total",
			Help: "Accounts created.",
		}),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "doable_logins_total",
			Help: "Successful logins.",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "doable_login_failures_total",
			Help: "Rejected login attempts.",
		}),
		todosCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "doable_todos_created_total",
			Help: "Todos created.",
		}),
		todosDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "doable_todos_deleted_total",
			Help: "Todos soft deleted.",
		}),
		sessionsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "doable_sessions_swept_total",
			Help: "Expired sessions removed by the background sweep.",
		}),
	}

	registry.MustRegister(
		c.httpRequests,
		c.requestLatency,
		c.signups,
		c.logins,
		c.loginFailures,
		c.todosCreated,
		c.todosDeleted,
		c.sessionsSwept,
	)

	return c
}

// RecordHTTPRequest records a completed request with its resolved route.
func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.requestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordSignup records a created account.
func (c *Collector) RecordSignup() {
	c.signups.Inc()
}

// RecordLogin records a successful login.
func (c *Collector) RecordLogin() {
	c.logins.Inc()
}

// RecordLoginFailure records a rejected login attempt.
func (c *Collector) RecordLoginFailure() {
	c.loginFailures.Inc()
}

// RecordTodoCreated records a created todo.
func (c *Collector) RecordTodoCreated() {
	c.todosCreated.Inc()
}

// RecordTodoDeleted records a soft-deleted todo.
func (c *Collector) RecordTodoDeleted() {
	c.todosDeleted.Inc()
}

// RecordSessionsSwept records expired sessions removed by the sweeper.
func (c *Collector) RecordSessionsSwept(count int64) {
	c.sessionsSwept.Add(float64(count))
}

// Handler returns the scrape handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
