package queries

import (
	"graphlens/domain/core/aggregates"
	pkgerrors "graphlens/pkg/errors"
	"graphlens/pkg/utils"
)

// GetAccountDegreeQuery represents a query for the transfer degree of an account
type GetAccountDegreeQuery struct {
	AccountID string `json:"account_id" validate:"required"`
}

// Validate validates the query
func (q GetAccountDegreeQuery) Validate() error {
	if err := utils.ValidateStruct(q); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// GetAccountDegreeResult is the in/out/total degree
type GetAccountDegreeResult = aggregates.AccountDegree
