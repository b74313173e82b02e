package handlers

import (
	"context"

	"go.uber.org/zap"

	"graphlens/application/ports"
	"graphlens/application/queries"
	"graphlens/domain/core/aggregates"
	pkgerrors "graphlens/pkg/errors"
)

// GetAccountDegreeHandler handles account degree queries
type GetAccountDegreeHandler struct {
	store  ports.GraphStore
	logger *zap.Logger
}

// NewGetAccountDegreeHandler creates a new account degree handler
func NewGetAccountDegreeHandler(store ports.GraphStore, logger *zap.Logger) *GetAccountDegreeHandler {
	return &GetAccountDegreeHandler{
		store:  store,
		logger: logger,
	}
}

// Handle executes the account degree query
func (h *GetAccountDegreeHandler) Handle(ctx context.Context, query queries.GetAccountDegreeQuery) (*queries.GetAccountDegreeResult, error) {
	var degree *aggregates.AccountDegree

	err := h.store.WithinSession(ctx, func(ctx context.Context, reader ports.GraphReader) error {
		var err error
		degree, err = reader.AccountDegree(ctx, query.AccountID)
		if err != nil {
			return err
		}
		if degree == nil {
			return pkgerrors.NewNotFoundError("account")
		}
		return nil
	})
	if err != nil {
		return nil, storeError("account degree", err)
	}

	return degree, nil
}
