package middleware

import (
	"time"

	"doable/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records per-request counters and latency.
type MetricsMiddleware struct {
	collector *metrics.Collector
}

// NewMetricsMiddleware creates a new metrics middleware.
func NewMetricsMiddleware(collector *metrics.Collector) *MetricsMiddleware {
	return &MetricsMiddleware{collector: collector}
}

// Handle observes every request with the resolved route template, not the
// raw URL, so ids do not explode label cardinality.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			// Let the error handler commit the response first so the
			// recorded status is the one the client saw.
			c.Error(err)
		}

		m.collector.RecordHTTPRequest(
			c.Request().Method,
			c.Path(),
			c.Response().Status,
			time.Since(start),
		)

		return nil
	}
}
