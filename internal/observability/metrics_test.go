package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/products", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/products", "GET", 200, 30*time.Millisecond)
	m.RecordError("/users", "GET", "INSUFFICIENT_ROLE")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/products|GET|200"])
	assert.Equal(t, int64(20), snap.AvgLatencyMilli["/products|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/users|GET|INSUFFICIENT_ROLE"])
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	assert.Empty(t, m.Snapshot().Requests)
}

func TestMetricsFeedPrometheus(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/users/signin", "POST", 401, 5*time.Millisecond)
	m.RecordRequest("/users/signin", "POST", 401, 5*time.Millisecond)
	m.RecordError("/users/signin", "POST", "CREDENTIAL_MISMATCH")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/users/signin", "POST", "401")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorsTotal.WithLabelValues("/users/signin", "POST", "CREDENTIAL_MISMATCH")))

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "restaurant_http_request_duration_seconds")
}
