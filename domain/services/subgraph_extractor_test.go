package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphlens/domain/core/aggregates"
	"graphlens/domain/core/entities"
	"graphlens/domain/core/valueobjects"
	pkgerrors "graphlens/pkg/errors"
)

func transfer(id, src, dst, txID string, amount float64) entities.Relationship {
	attrs := map[string]any{}
	if txID != "" {
		attrs[entities.AttrTxID] = txID
	}
	if amount != 0 {
		attrs[entities.AttrAmount] = amount
	}
	rel := entities.NewRelationship(entities.NewAccount(src), entities.RelationSentTo, entities.NewAccount(dst), attrs)
	rel.ID = id
	return rel
}

func TestSubgraphExtractor_HalfOpenMembership(t *testing.T) {
	extractor := NewSubgraphExtractor()

	// A->B, B->C, C->A with hops=1 from A: reachable is {A, B}
	view, err := extractor.Assemble(
		[]string{"A", "B"},
		[]entities.Relationship{
			transfer("r1", "A", "B", "tx_1", 100),
			transfer("r2", "B", "C", "tx_2", 50),
			transfer("r3", "C", "A", "tx_3", 25),
			transfer("r4", "C", "D", "tx_4", 10),
		},
		valueobjects.NewResultLimit(300),
	)
	require.NoError(t, err)

	assert.Equal(t, []aggregates.AccountNode{{ID: "A"}, {ID: "B"}}, view.Nodes)
	require.Len(t, view.Edges, 3)
	assert.Equal(t, aggregates.TransferEdge{Source: "A", Target: "B", TxID: "tx_1", Amount: 100}, view.Edges[0])
	assert.Equal(t, "C", view.Edges[1].Target)
	assert.Equal(t, "C", view.Edges[2].Source)
	for _, e := range view.Edges {
		assert.NotEqual(t, "tx_4", e.TxID, "edge touching neither endpoint must be dropped")
	}
}

func TestSubgraphExtractor_Dedup(t *testing.T) {
	extractor := NewSubgraphExtractor()

	view, err := extractor.Assemble(
		[]string{"A", "B", "A"},
		[]entities.Relationship{
			transfer("r1", "A", "B", "tx_1", 100),
			transfer("r1", "A", "B", "tx_1", 100),
			transfer("r2", "A", "B", "tx_2", 40),
			transfer("", "B", "A", "tx_9", 1),
			transfer("", "B", "A", "tx_9", 1),
		},
		valueobjects.NewResultLimit(300),
	)
	require.NoError(t, err)

	assert.Len(t, view.Nodes, 2)
	assert.Len(t, view.Edges, 3, "parallel transfers with distinct identity are kept")
}

func TestSubgraphExtractor_Defaults(t *testing.T) {
	view, err := NewSubgraphExtractor().Assemble(
		[]string{"A"},
		[]entities.Relationship{transfer("r1", "A", "B", "", 0)},
		valueobjects.NewResultLimit(10),
	)
	require.NoError(t, err)
	require.Len(t, view.Edges, 1)
	assert.Equal(t, "", view.Edges[0].TxID)
	assert.Equal(t, 0.0, view.Edges[0].Amount)
}

func TestSubgraphExtractor_IndependentTruncation(t *testing.T) {
	view, err := NewSubgraphExtractor().Assemble(
		[]string{"A", "B", "C", "D", "E"},
		[]entities.Relationship{
			transfer("r1", "A", "B", "tx_1", 1),
			transfer("r2", "B", "C", "tx_2", 2),
			transfer("r3", "C", "D", "tx_3", 3),
		},
		valueobjects.NewResultLimit(1),
	)
	require.NoError(t, err)
	assert.Equal(t, []aggregates.AccountNode{{ID: "A"}}, view.Nodes)
	require.Len(t, view.Edges, 1)
	assert.Equal(t, "tx_1", view.Edges[0].TxID)
}

func TestSubgraphExtractor_NotFound(t *testing.T) {
	tests := []struct {
		name      string
		reachable []string
		transfers []entities.Relationship
	}{
		{name: "missing seed", reachable: nil},
		{name: "isolated seed", reachable: []string{"A"}},
		{name: "only unrelated transfers", reachable: []string{"A"}, transfers: []entities.Relationship{transfer("r1", "X", "Y", "tx", 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSubgraphExtractor().Assemble(tt.reachable, tt.transfers, valueobjects.NewResultLimit(300))
			require.Error(t, err)
			assert.True(t, pkgerrors.IsNotFound(err))
			assert.Equal(t, ErrSeedIsolated, pkgerrors.GetAppError(err).Message)
		})
	}
}
