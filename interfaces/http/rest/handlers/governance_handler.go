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

// GovernanceHandler handles governance requests
type GovernanceHandler struct {
	queryBus     *querybus.QueryBus
	defaults     QueryDefaults
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewGovernanceHandler creates a new governance handler
func NewGovernanceHandler(queryBus *querybus.QueryBus, defaults QueryDefaults, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *GovernanceHandler {
	return &GovernanceHandler{
		queryBus:     queryBus,
		defaults:     defaults,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// GetFullGraph handles GET /governance/full-graph
func (h *GovernanceHandler) GetFullGraph(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := queries.GetGovernanceGraphQuery{
		CompanyID:         params.Get("company_id"),
		MaxOtherCompanies: valueobjects.ParseMandateCap(params.Get("max_other_companies"), h.defaults.MaxOtherCompanies),
	}

	result, err := querybus.Ask[*queries.GetGovernanceGraphResult](r.Context(), h.queryBus, query)
	if err != nil {
		h.logger.Debug("Governance query failed",
			zap.String("companyID", query.CompanyID),
			zap.Error(err),
		)
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
