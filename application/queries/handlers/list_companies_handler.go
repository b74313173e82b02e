package handlers

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"graphlens/application/ports"
	"graphlens/application/queries"
	"graphlens/domain/core/entities"
)

// ListCompaniesHandler handles company listing queries
type ListCompaniesHandler struct {
	store  ports.GraphStore
	logger *zap.Logger
}

// NewListCompaniesHandler creates a new company listing handler
func NewListCompaniesHandler(store ports.GraphStore, logger *zap.Logger) *ListCompaniesHandler {
	return &ListCompaniesHandler{
		store:  store,
		logger: logger,
	}
}

// Handle returns every company sorted by display name, then id
func (h *ListCompaniesHandler) Handle(ctx context.Context, query queries.ListCompaniesQuery) (queries.ListCompaniesResult, error) {
	var companies []entities.Entity

	err := h.store.WithinSession(ctx, func(ctx context.Context, reader ports.GraphReader) error {
		var err error
		companies, err = reader.ListCompanies(ctx)
		return err
	})
	if err != nil {
		return nil, storeError("list companies", err)
	}

	result := make(queries.ListCompaniesResult, 0, len(companies))
	for _, c := range companies {
		result = append(result, queries.CompanySummary{ID: c.ID, Name: c.DisplayName()})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})

	h.logger.Debug("Companies listed", zap.Int("count", len(result)))
	return result, nil
}
