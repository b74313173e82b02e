package services

import (
	"graphlens/domain/core/aggregates"
	"graphlens/domain/core/entities"
	"graphlens/domain/core/valueobjects"
	pkgerrors "graphlens/pkg/errors"
)

// ErrSeedIsolated is the reason reported when a subgraph seed is missing or has no transfers
const ErrSeedIsolated = "seed not found or no neighbors"

// SubgraphExtractor shapes a reachable account set and its touching transfers into a bounded view
type SubgraphExtractor struct{}

// NewSubgraphExtractor creates a new extractor
func NewSubgraphExtractor() *SubgraphExtractor {
	return &SubgraphExtractor{}
}

// Assemble builds the subgraph view.
//
// Nodes are the reachable set only. Edges are every transfer with at least one endpoint in
// that set, so accounts one hop past the frontier show up as edge endpoints without nodes.
// Nodes and edges are each truncated to limit independently, in retrieval order.
func (s *SubgraphExtractor) Assemble(
	reachable []string,
	transfers []entities.Relationship,
	limit valueobjects.ResultLimit,
) (aggregates.SubgraphView, error) {
	members := make(map[string]struct{}, len(reachable))
	nodes := make([]aggregates.AccountNode, 0, len(reachable))
	for _, id := range reachable {
		if id == "" {
			continue
		}
		if _, seen := members[id]; seen {
			continue
		}
		members[id] = struct{}{}
		nodes = append(nodes, aggregates.AccountNode{ID: id})
	}
	if len(nodes) == 0 {
		return aggregates.SubgraphView{}, pkgerrors.NewNotFoundErrorWithMessage(ErrSeedIsolated)
	}

	seen := make(map[string]struct{}, len(transfers))
	edges := make([]aggregates.TransferEdge, 0, len(transfers))
	for _, rel := range transfers {
		src, dst := rel.Source.ID, rel.Target.ID
		if !touches(members, src, dst) {
			continue
		}

		txID, _ := rel.String(entities.AttrTxID)
		amount, _ := rel.Float(entities.AttrAmount)

		key := rel.ID
		if key == "" {
			key = src + "|" + dst + "|" + txID
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		edges = append(edges, aggregates.TransferEdge{
			Source: src,
			Target: dst,
			TxID:   txID,
			Amount: amount,
		})
	}
	if len(edges) == 0 {
		return aggregates.SubgraphView{}, pkgerrors.NewNotFoundErrorWithMessage(ErrSeedIsolated)
	}

	n := limit.Int()
	return aggregates.SubgraphView{
		Nodes: truncate(nodes, n),
		Edges: truncate(edges, n),
	}, nil
}

func touches(members map[string]struct{}, src, dst string) bool {
	if _, ok := members[src]; ok {
		return true
	}
	_, ok := members[dst]
	return ok
}

func truncate[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
