package queries

// ListCompaniesQuery represents a query for every company, sorted by name
type ListCompaniesQuery struct{}

// Validate validates the query
func (q ListCompaniesQuery) Validate() error {
	return nil
}

// CompanySummary is one entry of the company picker
type CompanySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListCompaniesResult is the sorted company list; empty, never nil
type ListCompaniesResult []CompanySummary
