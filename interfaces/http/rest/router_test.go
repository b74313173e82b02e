package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"graphlens/application/ports"
	"graphlens/domain/core/aggregates"
	"graphlens/infrastructure/di"
	"graphlens/infrastructure/persistence/fixtures"
	"graphlens/infrastructure/persistence/memory"
	"graphlens/interfaces/http/rest/handlers"
	pkgerrors "graphlens/pkg/errors"
	"graphlens/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type unavailableStore struct{}

func (unavailableStore) WithinSession(ctx context.Context, fn func(ctx context.Context, reader ports.GraphReader) error) error {
	return pkgerrors.NewUnavailableError("graph store")
}

func (unavailableStore) VerifyConnectivity(ctx context.Context) error {
	return errors.New("connection refused")
}

func (unavailableStore) Close(ctx context.Context) error { return nil }

func newTestServer(t *testing.T, store ports.GraphStore, checks ports.HealthChecks) http.Handler {
	t.Helper()
	collector := observability.NewCollector("graphlens")
	bus, err := di.ProvideQueryBus(store, collector, zap.NewNop())
	require.NoError(t, err)

	router := NewRouter(bus, checks, collector, RouterConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		RequestTimeout: 5 * time.Second,
		EnableMetrics:  true,
		Defaults:       handlers.DefaultQueryDefaults(),
	}, zap.NewNop())
	return router.Setup()
}

func demoServer(t *testing.T) http.Handler {
	t.Helper()
	store, err := memory.NewGraphStoreFromDataset(fixtures.Demo())
	require.NoError(t, err)
	return newTestServer(t, store, ports.HealthChecks{
		"graph_store": pingerFunc(store.VerifyConnectivity),
	})
}

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	w := get(t, demoServer(t), "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSubgraphEndpoint(t *testing.T) {
	server := demoServer(t)

	t.Run("returns reachable accounts and touching transfers", func(t *testing.T) {
		w := get(t, server, "/graph/subgraph?seed=acct_A&hops=1")
		require.Equal(t, http.StatusOK, w.Code)

		view := decode[aggregates.SubgraphView](t, w)
		require.NotEmpty(t, view.Nodes)
		assert.Equal(t, "acct_A", view.Nodes[0].ID)
		assert.Contains(t, w.Body.String(), `"tx_id":"tx_1"`)
	})

	t.Run("limit truncates nodes and edges independently", func(t *testing.T) {
		w := get(t, server, "/graph/subgraph?seed=acct_A&hops=3&limit=1")
		require.Equal(t, http.StatusOK, w.Code)

		view := decode[aggregates.SubgraphView](t, w)
		assert.Len(t, view.Nodes, 1)
		assert.Len(t, view.Edges, 1)
	})

	t.Run("missing seed is a validation error", func(t *testing.T) {
		w := get(t, server, "/graph/subgraph")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		body := decode[pkgerrors.ErrorResponse](t, w)
		assert.Equal(t, "VALIDATION", body.Type)
		assert.Equal(t, "seed is required", body.Message)
	})

	t.Run("unknown seed is not found", func(t *testing.T) {
		w := get(t, server, "/graph/subgraph?seed=acct_missing")
		assert.Equal(t, http.StatusNotFound, w.Code)

		body := decode[pkgerrors.ErrorResponse](t, w)
		assert.Equal(t, "seed not found or no neighbors", body.Message)
	})
}

func TestOwnershipEndpoints(t *testing.T) {
	server := demoServer(t)

	t.Run("graph", func(t *testing.T) {
		w := get(t, server, "/ownership/graph?company_id=556000-1111")
		require.Equal(t, http.StatusOK, w.Code)

		view := decode[aggregates.CytoscapeGraph](t, w)
		require.NotEmpty(t, view.Nodes)
		assert.Equal(t, "556000-1111", view.Nodes[0].Data.ID)
		assert.Contains(t, w.Body.String(), `"label":"60%"`)
	})

	t.Run("holders can be excluded", func(t *testing.T) {
		w := get(t, server, "/ownership/graph?company_id=556000-1111&include_holders=false")
		require.Equal(t, http.StatusOK, w.Code)

		view := decode[aggregates.CytoscapeGraph](t, w)
		for _, e := range view.Edges {
			assert.Equal(t, "556000-1111", e.Data.Source)
		}
	})

	t.Run("unknown company", func(t *testing.T) {
		w := get(t, server, "/ownership/graph?company_id=000000-0000")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "company not found", decode[pkgerrors.ErrorResponse](t, w).Message)
	})

	t.Run("companies sorted by name", func(t *testing.T) {
		w := get(t, server, "/ownership/companies")
		require.Equal(t, http.StatusOK, w.Code)

		companies := decode[[]map[string]string](t, w)
		require.Len(t, companies, 10)
		assert.Equal(t, map[string]string{"id": "969700-4444", "name": "Aurora Consulting KB"}, companies[0])
	})
}

func TestCompaniesEndpoint_Empty(t *testing.T) {
	server := newTestServer(t, memory.NewGraphStore(), ports.HealthChecks{})

	w := get(t, server, "/ownership/companies")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestGovernanceEndpoint(t *testing.T) {
	server := demoServer(t)

	w := get(t, server, "/governance/full-graph?company_id=556000-1111&max_other_companies=0")
	require.Equal(t, http.StatusOK, w.Code)

	view := decode[aggregates.CytoscapeGraph](t, w)
	assert.Len(t, view.Edges, 5)
	for _, e := range view.Edges {
		assert.Equal(t, "556000-1111", e.Data.Target)
	}

	w = get(t, server, "/governance/full-graph?company_id=P-ANNA")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAccountDegreeEndpoint(t *testing.T) {
	server := demoServer(t)

	w := get(t, server, "/metrics/degree/acct_C")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"inDeg":2,"outDeg":1,"degree":3}`, w.Body.String())

	w = get(t, server, "/metrics/degree/acct_missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "account not found", decode[pkgerrors.ErrorResponse](t, w).Message)
}

func TestUnavailableStore(t *testing.T) {
	server := newTestServer(t, unavailableStore{}, ports.HealthChecks{
		"graph_store": pingerFunc(unavailableStore{}.VerifyConnectivity),
	})

	w := get(t, server, "/ownership/companies")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = get(t, server, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decode[handlers.ReadinessResponse](t, w)
	assert.Equal(t, "unavailable", body.Status)
	require.Len(t, body.Checks, 1)
	assert.Equal(t, "connection refused", body.Checks[0].Error)
}

func TestReady(t *testing.T) {
	store, err := memory.NewGraphStoreFromDataset(fixtures.Demo())
	require.NoError(t, err)
	server := newTestServer(t, store, ports.HealthChecks{
		"graph_store": pingerFunc(store.VerifyConnectivity),
		"postgres":    pingerFunc(func(ctx context.Context) error { return nil }),
	})

	w := get(t, server, "/ready")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[handlers.ReadinessResponse](t, w)
	assert.Equal(t, "ready", body.Status)
	require.Len(t, body.Checks, 2)
	assert.Equal(t, "graph_store", body.Checks[0].Name)
	assert.Equal(t, "postgres", body.Checks[1].Name)
}

func TestReady_SlowCheckTimesOut(t *testing.T) {
	defer goleak.VerifyNone(t)

	store, err := memory.NewGraphStoreFromDataset(fixtures.Demo())
	require.NoError(t, err)
	health := handlers.NewHealthHandler(ports.HealthChecks{
		"graph_store": pingerFunc(store.VerifyConnectivity),
		"postgres": pingerFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}),
	}, 20*time.Millisecond, zap.NewNop())

	w := httptest.NewRecorder()
	health.Ready(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	body := decode[handlers.ReadinessResponse](t, w)
	assert.Equal(t, "unavailable", body.Status)
	require.Len(t, body.Checks, 2)
	assert.Equal(t, "ok", body.Checks[0].Status)
	assert.Equal(t, "failed", body.Checks[1].Status)
	assert.Equal(t, context.DeadlineExceeded.Error(), body.Checks[1].Error)
}

func TestMetricsEndpoint(t *testing.T) {
	server := demoServer(t)
	get(t, server, "/ownership/companies")

	w := get(t, server, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `graphlens_http_requests_total{method="GET",route="/ownership/companies",status="200"} 1`)
	assert.Contains(t, w.Body.String(), "graphlens_queries_total")
}

func TestCORSPreflight(t *testing.T) {
	server := demoServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/ownership/companies", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	w := get(t, demoServer(t), "/nowhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "route not found", decode[pkgerrors.ErrorResponse](t, w).Message)
}
