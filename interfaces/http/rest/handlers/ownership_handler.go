package handlers

import (
	"net/http"

	"graphlens/application/queries"
	querybus "graphlens/application/queries/bus"
	"graphlens/domain/core/valueobjects"
	"graphlens/pkg/common"
	pkgerrors "graphlens/pkg/errors"

	"go.uber.org/zap"
)

// OwnershipHandler handles ownership requests
type OwnershipHandler struct {
	queryBus     *querybus.QueryBus
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewOwnershipHandler creates a new ownership handler
func NewOwnershipHandler(queryBus *querybus.QueryBus, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *OwnershipHandler {
	return &OwnershipHandler{
		queryBus:     queryBus,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// GetOwnershipGraph handles GET /ownership/graph
func (h *OwnershipHandler) GetOwnershipGraph(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := queries.GetOwnershipGraphQuery{
		CompanyID:           params.Get("company_id"),
		IncludeHolders:      valueobjects.ParseFlag(params.Get("include_holders"), true),
		IncludeSubsidiaries: valueobjects.ParseFlag(params.Get("include_subs"), true),
	}

	result, err := querybus.Ask[*queries.GetOwnershipGraphResult](r.Context(), h.queryBus, query)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ListCompanies handles GET /ownership/companies
func (h *OwnershipHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	result, err := querybus.Ask[queries.ListCompaniesResult](r.Context(), h.queryBus, queries.ListCompaniesQuery{})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Debug("Listed companies", zap.Int("count", len(result)))
	common.RespondJSON(w, http.StatusOK, result)
}
