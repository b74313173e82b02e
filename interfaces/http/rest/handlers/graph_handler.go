package handlers

import (
	"net/http"

	"graphlens/application/queries"
	querybus "graphlens/application/queries/bus"
	"graphlens/domain/core/valueobjects"
	"graphlens/pkg/common"
	pkgerrors "graphlens/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// GraphHandler handles fund-flow graph requests
type GraphHandler struct {
	queryBus     *querybus.QueryBus
	defaults     QueryDefaults
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(queryBus *querybus.QueryBus, defaults QueryDefaults, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		queryBus:     queryBus,
		defaults:     defaults,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// GetSubgraph handles GET /graph/subgraph
func (h *GraphHandler) GetSubgraph(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := queries.GetSubgraphQuery{
		Seed:  params.Get("seed"),
		Hops:  valueobjects.ParseHopBound(params.Get("hops"), h.defaults.Hops),
		Limit: valueobjects.ParseResultLimit(params.Get("limit"), h.defaults.Limit),
	}

	result, err := querybus.Ask[*queries.GetSubgraphResult](r.Context(), h.queryBus, query)
	if err != nil {
		h.logger.Debug("Subgraph query failed",
			zap.String("seed", query.Seed),
			zap.Int("hops", query.Hops.Int()),
			zap.Error(err),
		)
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// GetAccountDegree handles GET /metrics/degree/{id}
func (h *GraphHandler) GetAccountDegree(w http.ResponseWriter, r *http.Request) {
	query := queries.GetAccountDegreeQuery{AccountID: chi.URLParam(r, "id")}

	result, err := querybus.Ask[*queries.GetAccountDegreeResult](r.Context(), h.queryBus, query)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
