package ports

import (
	"context"

	"graphlens/domain/core/aggregates"
	"graphlens/domain/core/entities"
	"graphlens/domain/core/valueobjects"
)

// GraphReader is the read contract the view builders consume.
// This is a port in hexagonal architecture - the domain doesn't know about the implementation.
// A reader is only valid inside the unit of work that produced it.
type GraphReader interface {
	// ReachableAccounts returns the seed followed by every account reachable from it within
	// hops directed SENT_TO steps. It returns an empty slice when the seed does not exist.
	ReachableAccounts(ctx context.Context, seed string, hops valueobjects.HopBound) ([]string, error)

	// TransfersTouching returns SENT_TO relationships with either endpoint in ids, at most limit rows
	TransfersTouching(ctx context.Context, ids []string, limit valueobjects.ResultLimit) ([]entities.Relationship, error)

	// AccountDegree counts SENT_TO relationships of an account; nil when the account is missing
	AccountDegree(ctx context.Context, id string) (*aggregates.AccountDegree, error)

	// CompanyOwnership returns the direct owners and subsidiaries of a company; nil when missing
	CompanyOwnership(ctx context.Context, id string) (*entities.OwnershipRecord, error)

	// ListCompanies returns every company
	ListCompanies(ctx context.Context) ([]entities.Entity, error)

	// CompanyRoles returns the ROLE relationships into a company ordered by person id then role
	// type; nil when the company is missing
	CompanyRoles(ctx context.Context, id string) (*entities.RoleRecord, error)

	// OutgoingRoles returns every ROLE held by the given persons, ordered by the position of the
	// person in personIDs, then company id, then role type
	OutgoingRoles(ctx context.Context, personIDs []string) ([]entities.Relationship, error)
}

// GraphStore opens units of work against the graph database
type GraphStore interface {
	// WithinSession runs fn with a reader bound to one store session, released when fn returns
	WithinSession(ctx context.Context, fn func(ctx context.Context, reader GraphReader) error) error

	// VerifyConnectivity checks that the store is reachable
	VerifyConnectivity(ctx context.Context) error

	// Close releases the store's resources
	Close(ctx context.Context) error
}

// Pinger is a dependency whose liveness can be probed
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecks names the dependencies probed by readiness
type HealthChecks map[string]Pinger
