package queries

import (
	"graphlens/domain/core/aggregates"
	pkgerrors "graphlens/pkg/errors"
	"graphlens/pkg/utils"
)

// GetOwnershipGraphQuery represents a query for the one-hop ownership view of a company
type GetOwnershipGraphQuery struct {
	CompanyID           string `json:"company_id" validate:"required"`
	IncludeHolders      bool   `json:"include_holders"`
	IncludeSubsidiaries bool   `json:"include_subs"`
}

// Validate validates the query
func (q GetOwnershipGraphQuery) Validate() error {
	if err := utils.ValidateStruct(q); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// GetOwnershipGraphResult is a Cytoscape-shaped view
type GetOwnershipGraphResult = aggregates.CytoscapeGraph
