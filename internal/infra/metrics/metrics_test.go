package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c *Collector, name string) float64 {
	t.Helper()

	families, err := c.registry.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() == name {
			var total float64
			for _, metric := range family.GetMetric() {
				total += metric.GetCounter().GetValue()
			}

			return total
		}
	}

	return 0
}

func TestCollector_BusinessCounters(t *testing.T) {
	t.Parallel()

	c := NewCollector(Params{})

	c.RecordSignup()
	c.RecordLogin()
	c.RecordLogin()
	c.RecordLoginFailure()
	c.RecordTodoCreated()
	c.RecordTodoDeleted()
	c.RecordSessionsSwept(3)

	assert.InDelta(t, 1, counterValue(t, c, "doable_signups_total"), 0.001)
	assert.InDelta(t, 2, counterValue(t, c, "doable_logins_total"), 0.001)
	assert.InDelta(t, 1, counterValue(t, c, "doable_login_failures_total"), 0.001)
	assert.InDelta(t, 1, counterValue(t, c, "doable_todos_created_total"), 0.001)
	assert.InDelta(t, 1, counterValue(t, c, "doable_todos_deleted_total"), 0.001)
	assert.InDelta(t, 3, counterValue(t, c, "doable_sessions_swept_total"), 0.001)
}

func TestCollector_HTTPRequestLabels(t *testing.T) {
	t.Parallel()

	c := NewCollector(Params{})

	c.RecordHTTPRequest(http.MethodGet, "/api/todos", http.StatusOK, 10*time.Millisecond)
	c.RecordHTTPRequest(http.MethodGet, "/api/todos", http.StatusOK, 20*time.Millisecond)
	c.RecordHTTPRequest(http.MethodPost, "/api/todos", http.StatusCreated, 5*time.Millisecond)

	assert.InDelta(t, 3, counterValue(t, c, "doable_http_requests_total"), 0.001)
}

func TestCollector_IndependentRegistries(t *testing.T) {
	t.Parallel()

	c1 := NewCollector(Params{})
	c2 := NewCollector(Params{})

	c1.RecordSignup()
	c2.RecordSignup()
	c2.RecordSignup()

	assert.InDelta(t, 1, counterValue(t, c1, "doable_signups_total"), 0.001)
	assert.InDelta(t, 2, counterValue(t, c2, "doable_signups_total"), 0.001)
}

func TestCollector_ScrapeHandler(t *testing.T) {
	t.Parallel()

	c := NewCollector(Params{})
	c.RecordSignup()
	c.RecordHTTPRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)

	resp := rec.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "doable_signups_total")
	assert.Contains(t, string(body), "doable_http_requests_total")
	assert.Contains(t, string(body), "doable_http_request_duration_seconds")
}
