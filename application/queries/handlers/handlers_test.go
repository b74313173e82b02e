package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"graphlens/application/ports"
	"graphlens/application/queries"
	"graphlens/domain/core/aggregates"
	"graphlens/domain/core/entities"
	"graphlens/domain/core/valueobjects"
	"graphlens/infrastructure/persistence/fixtures"
	"graphlens/infrastructure/persistence/memory"
	pkgerrors "graphlens/pkg/errors"
)

func demoStore(t *testing.T) *memory.GraphStore {
	t.Helper()
	store, err := memory.NewGraphStoreFromDataset(fixtures.Demo())
	require.NoError(t, err)
	return store
}

type failingStore struct {
	err error
}

func (s failingStore) WithinSession(ctx context.Context, fn func(ctx context.Context, reader ports.GraphReader) error) error {
	return s.err
}

func (s failingStore) VerifyConnectivity(ctx context.Context) error { return s.err }

func (s failingStore) Close(ctx context.Context) error { return nil }

type countingObserver struct {
	views map[string][2]int
}

func (o *countingObserver) ObserveView(view string, nodes, edges int) {
	if o.views == nil {
		o.views = map[string][2]int{}
	}
	o.views[view] = [2]int{nodes, edges}
}

func assertUniqueNodes(t *testing.T, nodes []aggregates.CytoscapeNode) {
	t.Helper()
	seen := map[string]bool{}
	for _, n := range nodes {
		assert.False(t, seen[n.Data.ID], "duplicate node %s", n.Data.ID)
		seen[n.Data.ID] = true
	}
}

func TestGetSubgraphHandler(t *testing.T) {
	observer := &countingObserver{}
	h := NewGetSubgraphHandler(demoStore(t), observer, zap.NewNop())

	result, err := h.Handle(context.Background(), queries.GetSubgraphQuery{
		Seed:  "acct_A",
		Hops:  valueobjects.NewHopBound(2),
		Limit: valueobjects.NewResultLimit(300),
	})
	require.NoError(t, err)

	assert.Equal(t, []aggregates.AccountNode{{ID: "acct_A"}, {ID: "acct_B"}, {ID: "acct_C"}}, result.Nodes)
	assert.Len(t, result.Edges, 4)
	assert.Equal(t, aggregates.TransferEdge{Source: "acct_A", Target: "acct_B", TxID: "tx_1", Amount: 2500}, result.Edges[0])
	assert.Equal(t, [2]int{3, 4}, observer.views["subgraph"])
}

func TestGetSubgraphHandler_HalfOpenBoundary(t *testing.T) {
	store, err := memory.NewGraphStoreFromDataset(fixtures.Dataset{
		Accounts: []entities.Entity{entities.NewAccount("A"), entities.NewAccount("B"), entities.NewAccount("C")},
		Transfers: []fixtures.Transfer{
			{From: "A", To: "B", TxID: "ab"},
			{From: "B", To: "C", TxID: "bc"},
			{From: "C", To: "A", TxID: "ca"},
		},
	})
	require.NoError(t, err)

	h := NewGetSubgraphHandler(store, nil, zap.NewNop())
	result, err := h.Handle(context.Background(), queries.GetSubgraphQuery{Seed: "A", Hops: 1, Limit: 300})
	require.NoError(t, err)

	assert.Equal(t, []aggregates.AccountNode{{ID: "A"}, {ID: "B"}}, result.Nodes, "C is outside the hop bound")
	var txs []string
	for _, e := range result.Edges {
		txs = append(txs, e.TxID)
	}
	assert.ElementsMatch(t, []string{"ab", "bc", "ca"}, txs)
}

func TestGetSubgraphHandler_Limit(t *testing.T) {
	h := NewGetSubgraphHandler(demoStore(t), nil, zap.NewNop())

	result, err := h.Handle(context.Background(), queries.GetSubgraphQuery{Seed: "acct_A", Hops: 3, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, result.Nodes, 1)
	assert.Len(t, result.Edges, 1)
}

func TestGetSubgraphHandler_NotFound(t *testing.T) {
	store := demoStore(t)
	store.PutEntity(entities.NewAccount("acct_lonely"))
	h := NewGetSubgraphHandler(store, nil, zap.NewNop())

	for _, seed := range []string{"acct_missing", "acct_lonely"} {
		_, err := h.Handle(context.Background(), queries.GetSubgraphQuery{Seed: seed, Hops: 2, Limit: 300})
		require.Error(t, err, seed)
		assert.True(t, pkgerrors.IsNotFound(err))
		assert.Equal(t, "seed not found or no neighbors", pkgerrors.GetAppError(err).Message)
	}
}

func TestGetOwnershipGraphHandler(t *testing.T) {
	h := NewGetOwnershipGraphHandler(demoStore(t), nil, zap.NewNop())

	result, err := h.Handle(context.Background(), queries.GetOwnershipGraphQuery{
		CompanyID:           "556000-1111",
		IncludeHolders:      true,
		IncludeSubsidiaries: true,
	})
	require.NoError(t, err)

	require.Len(t, result.Nodes, 6)
	assert.Equal(t, aggregates.ViewNode{ID: "556000-1111", Label: "Nordic Widgets AB\n(556000-1111)", Type: "company"}, result.Nodes[0].Data)
	assertUniqueNodes(t, result.Nodes)

	labels := map[string]string{}
	for _, e := range result.Edges {
		labels[e.Data.ID] = e.Data.Label
	}
	assert.Equal(t, "60%", labels["P-ANNA->556000-1111"])
	assert.Equal(t, "15%", labels["559000-7777->556000-1111"])
	assert.Equal(t, "70%", labels["556000-1111->FI-2999999-9"])
}

func TestGetOwnershipGraphHandler_NotFound(t *testing.T) {
	h := NewGetOwnershipGraphHandler(demoStore(t), nil, zap.NewNop())

	_, err := h.Handle(context.Background(), queries.GetOwnershipGraphQuery{CompanyID: "000000-0000", IncludeHolders: true})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.Equal(t, "company not found", pkgerrors.GetAppError(err).Message)
}

func TestListCompaniesHandler(t *testing.T) {
	h := NewListCompaniesHandler(demoStore(t), zap.NewNop())

	result, err := h.Handle(context.Background(), queries.ListCompaniesQuery{})
	require.NoError(t, err)
	require.Len(t, result, 10)
	assert.Equal(t, queries.CompanySummary{ID: "969700-4444", Name: "Aurora Consulting KB"}, result[0])
	for i := 1; i < len(result); i++ {
		assert.LessOrEqual(t, result[i-1].Name, result[i].Name)
	}
}

func TestListCompaniesHandler_Empty(t *testing.T) {
	h := NewListCompaniesHandler(memory.NewGraphStore(), zap.NewNop())

	result, err := h.Handle(context.Background(), queries.ListCompaniesQuery{})
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestGetGovernanceGraphHandler(t *testing.T) {
	h := NewGetGovernanceGraphHandler(demoStore(t), nil, zap.NewNop())

	result, err := h.Handle(context.Background(), queries.GetGovernanceGraphQuery{
		CompanyID:         "556000-1111",
		MaxOtherCompanies: valueobjects.NewMandateCap(50),
	})
	require.NoError(t, err)
	assertUniqueNodes(t, result.Nodes)

	seedEdges, otherEdges := 0, 0
	for _, e := range result.Edges {
		if e.Data.Target == "556000-1111" {
			seedEdges++
		} else {
			otherEdges++
		}
	}
	assert.Equal(t, 5, seedEdges)
	assert.Equal(t, 7, otherEdges)
}

func TestGetGovernanceGraphHandler_Cap(t *testing.T) {
	h := NewGetGovernanceGraphHandler(demoStore(t), nil, zap.NewNop())

	result, err := h.Handle(context.Background(), queries.GetGovernanceGraphQuery{
		CompanyID:         "556000-1111",
		MaxOtherCompanies: valueobjects.NewMandateCap(2),
	})
	require.NoError(t, err)

	var others []string
	for _, e := range result.Edges {
		if e.Data.Target != "556000-1111" {
			others = append(others, e.Data.ID)
		}
	}
	// P-ANNA comes first; her row back to the seed is skipped without consuming budget
	assert.Equal(t, []string{
		"P-ANNA->556300-2222#BoardMember",
		"P-ANNA->559123-8888#BoardMember",
	}, others)
}

func TestGetGovernanceGraphHandler_NoRoles(t *testing.T) {
	h := NewGetGovernanceGraphHandler(demoStore(t), nil, zap.NewNop())

	result, err := h.Handle(context.Background(), queries.GetGovernanceGraphQuery{CompanyID: "NO-812345678", MaxOtherCompanies: 50})
	require.NoError(t, err)
	assert.Len(t, result.Nodes, 1)
	assert.Empty(t, result.Edges)
}

func TestGetGovernanceGraphHandler_NotFound(t *testing.T) {
	h := NewGetGovernanceGraphHandler(demoStore(t), nil, zap.NewNop())

	_, err := h.Handle(context.Background(), queries.GetGovernanceGraphQuery{CompanyID: "P-ANNA", MaxOtherCompanies: 50})
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGetAccountDegreeHandler(t *testing.T) {
	h := NewGetAccountDegreeHandler(demoStore(t), zap.NewNop())

	result, err := h.Handle(context.Background(), queries.GetAccountDegreeQuery{AccountID: "acct_C"})
	require.NoError(t, err)
	assert.Equal(t, aggregates.AccountDegree{InDegree: 2, OutDegree: 1, Degree: 3}, *result)

	_, err = h.Handle(context.Background(), queries.GetAccountDegreeQuery{AccountID: "acct_Z"})
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestStoreFailures(t *testing.T) {
	boom := errors.New("bolt connection reset")

	tests := []struct {
		name    string
		err     error
		errType pkgerrors.ErrorType
	}{
		{"database", boom, pkgerrors.ErrorTypeDatabase},
		{"timeout", context.DeadlineExceeded, pkgerrors.ErrorTypeTimeout},
		{"unavailable passes through", pkgerrors.NewUnavailableError("graph store"), pkgerrors.ErrorTypeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := failingStore{err: tt.err}

			_, err := NewGetOwnershipGraphHandler(store, nil, zap.NewNop()).Handle(context.Background(), queries.GetOwnershipGraphQuery{CompanyID: "x"})
			assert.True(t, pkgerrors.IsType(err, tt.errType))

			_, err = NewListCompaniesHandler(store, zap.NewNop()).Handle(context.Background(), queries.ListCompaniesQuery{})
			assert.True(t, pkgerrors.IsType(err, tt.errType))
		})
	}
}
