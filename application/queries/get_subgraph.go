package queries

import (
	"graphlens/domain/core/aggregates"
	"graphlens/domain/core/valueobjects"
	pkgerrors "graphlens/pkg/errors"
	"graphlens/pkg/utils"
)

// GetSubgraphQuery represents a query for the bounded fund-flow neighbourhood of an account
type GetSubgraphQuery struct {
	Seed  string                   `json:"seed" validate:"required"`
	Hops  valueobjects.HopBound    `json:"hops" validate:"gte=1,lte=3"`
	Limit valueobjects.ResultLimit `json:"limit" validate:"gte=1"`
}

// Validate validates the query
func (q GetSubgraphQuery) Validate() error {
	if err := utils.ValidateStruct(q); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// GetSubgraphResult is the subgraph view
type GetSubgraphResult = aggregates.SubgraphView
