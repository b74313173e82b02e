package handlers

import (
	"graphlens/domain/core/valueobjects"
)

// QueryDefaults are substituted for missing or malformed query parameters
type QueryDefaults struct {
	Hops              int
	Limit             int
	MaxOtherCompanies int
}

// DefaultQueryDefaults returns the documented parameter defaults
func DefaultQueryDefaults() QueryDefaults {
	return QueryDefaults{
		Hops:              valueobjects.DefaultHops,
		Limit:             valueobjects.DefaultResultLimit,
		MaxOtherCompanies: valueobjects.DefaultMandateCap,
	}
}
