package queries

import (
	"graphlens/domain/core/aggregates"
	"graphlens/domain/core/valueobjects"
	pkgerrors "graphlens/pkg/errors"
	"graphlens/pkg/utils"
)

// GetGovernanceGraphQuery represents a query for the role holders of a company and their other mandates
type GetGovernanceGraphQuery struct {
	CompanyID         string                  `json:"company_id" validate:"required"`
	MaxOtherCompanies valueobjects.MandateCap `json:"max_other_companies" validate:"gte=0"`
}

// Validate validates the query
func (q GetGovernanceGraphQuery) Validate() error {
	if err := utils.ValidateStruct(q); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// GetGovernanceGraphResult is a Cytoscape-shaped view
type GetGovernanceGraphResult = aggregates.CytoscapeGraph
