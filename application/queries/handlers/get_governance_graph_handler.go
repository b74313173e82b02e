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

// GetGovernanceGraphHandler handles governance view queries
type GetGovernanceGraphHandler struct {
	store    ports.GraphStore
	observer ViewObserver
	logger   *zap.Logger
}

// NewGetGovernanceGraphHandler creates a new governance handler
func NewGetGovernanceGraphHandler(store ports.GraphStore, observer ViewObserver, logger *zap.Logger) *GetGovernanceGraphHandler {
	return &GetGovernanceGraphHandler{
		store:    store,
		observer: observerOrNoop(observer),
		logger:   logger,
	}
}

// Handle runs both governance stages inside one store session
func (h *GetGovernanceGraphHandler) Handle(ctx context.Context, query queries.GetGovernanceGraphQuery) (*queries.GetGovernanceGraphResult, error) {
	var (
		view     aggregates.GraphView
		mandates int
	)

	err := h.store.WithinSession(ctx, func(ctx context.Context, reader ports.GraphReader) error {
		rec, err := reader.CompanyRoles(ctx, query.CompanyID)
		if err != nil {
			return err
		}
		if rec == nil {
			return pkgerrors.NewNotFoundError("company")
		}

		builder := services.NewGovernanceViewBuilder(rec.Company, query.MaxOtherCompanies)
		builder.AddDirectRoles(rec.Roles)

		if personIDs := builder.PersonIDs(); len(personIDs) > 0 {
			others, err := reader.OutgoingRoles(ctx, personIDs)
			if err != nil {
				return err
			}
			builder.AddOtherMandates(others)
		}

		view = builder.View()
		mandates = builder.Mandates()
		return nil
	})
	if err != nil {
		return nil, storeError("governance graph", err)
	}

	h.observer.ObserveView("governance", len(view.Nodes), len(view.Edges))
	h.logger.Debug("Governance view built",
		zap.String("companyID", query.CompanyID),
		zap.Int("nodeCount", len(view.Nodes)),
		zap.Int("edgeCount", len(view.Edges)),
		zap.Int("otherMandates", mandates),
	)

	result := view.Cytoscape()
	return &result, nil
}
