package handlers

import (
	"context"

	"go.uber.org/zap"

	"graphlens/application/ports"
	"graphlens/application/queries"
	"graphlens/domain/core/aggregates"
	"graphlens/domain/services"
	pkgerrors "graphlens/pkg/errors"
)

// GetSubgraphHandler handles bounded fund-flow subgraph queries
type GetSubgraphHandler struct {
	store     ports.GraphStore
	extractor *services.SubgraphExtractor
	observer  ViewObserver
	logger    *zap.Logger
}

// NewGetSubgraphHandler creates a new subgraph handler
func NewGetSubgraphHandler(store ports.GraphStore, observer ViewObserver, logger *zap.Logger) *GetSubgraphHandler {
	return &GetSubgraphHandler{
		store:     store,
		extractor: services.NewSubgraphExtractor(),
		observer:  observerOrNoop(observer),
		logger:    logger,
	}
}

// Handle executes the subgraph query
func (h *GetSubgraphHandler) Handle(ctx context.Context, query queries.GetSubgraphQuery) (*queries.GetSubgraphResult, error) {
	var view aggregates.SubgraphView

	err := h.store.WithinSession(ctx, func(ctx context.Context, reader ports.GraphReader) error {
		reachable, err := reader.ReachableAccounts(ctx, query.Seed, query.Hops)
		if err != nil {
			return err
		}
		if len(reachable) == 0 {
			return pkgerrors.NewNotFoundErrorWithMessage(services.ErrSeedIsolated)
		}

		transfers, err := reader.TransfersTouching(ctx, reachable, query.Limit)
		if err != nil {
			return err
		}

		view, err = h.extractor.Assemble(reachable, transfers, query.Limit)
		return err
	})
	if err != nil {
		return nil, storeError("subgraph", err)
	}

	h.observer.ObserveView("subgraph", len(view.Nodes), len(view.Edges))
	h.logger.Debug("Subgraph assembled",
		zap.String("seed", query.Seed),
		zap.Int("hops", query.Hops.Int()),
		zap.Int("nodeCount", len(view.Nodes)),
		zap.Int("edgeCount", len(view.Edges)),
	)
	return &view, nil
}
