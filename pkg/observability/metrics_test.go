package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_QueryMetrics(t *testing.T) {
	c := NewCollector("graphlens_test")

	timer := c.StartTimer("query_duration", "GetSubgraphQuery")
	c.Increment("query_count", "GetSubgraphQuery")
	c.Increment("query_success", "GetSubgraphQuery")
	c.Increment("query_errors", "GetSubgraphQuery")
	c.Increment("unknown_metric", "GetSubgraphQuery")
	timer.Stop()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Queries.WithLabelValues("GetSubgraphQuery", "started")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Queries.WithLabelValues("GetSubgraphQuery", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Queries.WithLabelValues("GetSubgraphQuery", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.QueryDuration))
}

func TestCollector_StoreAndHTTP(t *testing.T) {
	c := NewCollector("graphlens_test")

	c.ObserveStore("reachable_accounts", nil, time.Millisecond)
	c.ObserveStore("reachable_accounts", errors.New("boom"), time.Millisecond)
	c.ObserveHTTP(http.MethodGet, "/graph/subgraph", http.StatusNotFound, 2*time.Millisecond)
	c.ObserveView("ownership", 3, 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.StoreOperations.WithLabelValues("reachable_accounts", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/graph/subgraph", "404")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("graphlens_test")
	c.ObserveHTTP(http.MethodGet, "/health", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "graphlens_test_http_requests_total")
}
