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

// GetOwnershipGraphHandler handles ownership view queries
type GetOwnershipGraphHandler struct {
	store    ports.GraphStore
	builder  *services.OwnershipViewBuilder
	observer ViewObserver
	logger   *zap.Logger
}

// NewGetOwnershipGraphHandler creates a new ownership handler
func NewGetOwnershipGraphHandler(store ports.GraphStore, observer ViewObserver, logger *zap.Logger) *GetOwnershipGraphHandler {
	return &GetOwnershipGraphHandler{
		store:    store,
		builder:  services.NewOwnershipViewBuilder(),
		observer: observerOrNoop(observer),
		logger:   logger,
	}
}

// Handle executes the ownership query
func (h *GetOwnershipGraphHandler) Handle(ctx context.Context, query queries.GetOwnershipGraphQuery) (*queries.GetOwnershipGraphResult, error) {
	var view aggregates.GraphView

	err := h.store.WithinSession(ctx, func(ctx context.Context, reader ports.GraphReader) error {
		rec, err := reader.CompanyOwnership(ctx, query.CompanyID)
		if err != nil {
			return err
		}
		if rec == nil {
			return pkgerrors.NewNotFoundError("company")
		}

		view = h.builder.Build(*rec, services.OwnershipOptions{
			IncludeHolders:      query.IncludeHolders,
			IncludeSubsidiaries: query.IncludeSubsidiaries,
		})
		return nil
	})
	if err != nil {
		return nil, storeError("ownership graph", err)
	}

	h.observer.ObserveView("ownership", len(view.Nodes), len(view.Edges))
	h.logger.Debug("Ownership view built",
		zap.String("companyID", query.CompanyID),
		zap.Int("nodeCount", len(view.Nodes)),
		zap.Int("edgeCount", len(view.Edges)),
	)

	result := view.Cytoscape()
	return &result, nil
}
