package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"graphlens/application/ports"
	"graphlens/domain/core/aggregates"
	"graphlens/domain/core/entities"
	"graphlens/domain/core/valueobjects"
	pkgerrors "graphlens/pkg/errors"
)

// Config holds the connection settings of the graph database
type Config struct {
	URL      string
	User     string
	Password string
	Database string
}

// GraphStore reads views from Neo4j, one session per unit of work
type GraphStore struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

var _ ports.GraphStore = (*GraphStore)(nil)

// NewDriver opens a driver for cfg; the caller owns it
func NewDriver(cfg Config) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URL, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	return driver, nil
}

// NewGraphStore creates a store over an open driver
func NewGraphStore(driver neo4j.DriverWithContext, database string, logger *zap.Logger) *GraphStore {
	return &GraphStore{
		driver:   driver,
		database: database,
		logger:   logger.Named("neo4j"),
	}
}

// WithinSession opens a read session, runs fn and closes the session
func (s *GraphStore) WithinSession(ctx context.Context, fn func(ctx context.Context, reader ports.GraphReader) error) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer func() {
		if err := session.Close(ctx); err != nil {
			s.logger.Warn("Failed to close session", zap.Error(err))
		}
	}()

	return classify(fn(ctx, &reader{session: session}))
}

// VerifyConnectivity checks that the database answers
func (s *GraphStore) VerifyConnectivity(ctx context.Context) error {
	return classify(s.driver.VerifyConnectivity(ctx))
}

// Close closes the underlying driver
func (s *GraphStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// classify turns driver connectivity failures into unavailable errors
func classify(err error) error {
	if err == nil || pkgerrors.IsAppError(err) {
		return err
	}
	if neo4j.IsConnectivityError(err) {
		return pkgerrors.NewUnavailableError("graph store").WithCause(err)
	}
	return err
}

// reader runs the read queries on a single session
type reader struct {
	session neo4j.SessionWithContext
}

// collect runs a query and materializes every record
func (r *reader) collect(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	result, err := r.session.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	var records []*neo4j.Record
	for result.Next(ctx) {
		records = append(records, result.Record())
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ReachableAccounts runs the precompiled variant for the hop bound
func (r *reader) ReachableAccounts(ctx context.Context, seed string, hops valueobjects.HopBound) ([]string, error) {
	records, err := r.collect(ctx, reachableAccountsQuery(hops), map[string]any{"seed": seed})
	if err != nil {
		return nil, fmt.Errorf("failed to query reachable accounts: %w", err)
	}
	if len(records) == 0 {
		return []string{}, nil
	}
	return stringsValue(records[0], "ids"), nil
}

// TransfersTouching returns SENT_TO relationships with either endpoint in ids
func (r *reader) TransfersTouching(ctx context.Context, ids []string, limit valueobjects.ResultLimit) ([]entities.Relationship, error) {
	records, err := r.collect(ctx, transfersTouchingQuery, map[string]any{
		"ids":   ids,
		"limit": int64(limit.Int()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}

	rels := make([]entities.Relationship, 0, len(records))
	for _, record := range records {
		rels = append(rels, transferFromRecord(record))
	}
	return rels, nil
}

// AccountDegree counts SENT_TO relationships of an account
func (r *reader) AccountDegree(ctx context.Context, id string) (*aggregates.AccountDegree, error) {
	records, err := r.collect(ctx, accountDegreeQuery, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to query account degree: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	degree := aggregates.NewAccountDegree(
		int(int64Value(records[0], "in_deg")),
		int(int64Value(records[0], "out_deg")),
	)
	return &degree, nil
}

// company loads a company node, nil when absent
func (r *reader) company(ctx context.Context, id string) (*entities.Entity, error) {
	records, err := r.collect(ctx, companyQuery, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to query company: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	company := entities.NewCompany(stringValue(records[0], "id"), stringValue(records[0], "name"))
	return &company, nil
}

// CompanyOwnership loads the company and both directions of OWNS
func (r *reader) CompanyOwnership(ctx context.Context, id string) (*entities.OwnershipRecord, error) {
	company, err := r.company(ctx, id)
	if err != nil || company == nil {
		return nil, err
	}

	rec := &entities.OwnershipRecord{Company: *company}

	owners, err := r.collect(ctx, companyOwnersQuery, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to query owners: %w", err)
	}
	for _, record := range owners {
		rec.Owners = append(rec.Owners, ownerFromRecord(record, *company))
	}

	subs, err := r.collect(ctx, companySubsidiariesQuery, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to query subsidiaries: %w", err)
	}
	for _, record := range subs {
		rec.Subsidiaries = append(rec.Subsidiaries, subsidiaryFromRecord(record, *company))
	}
	return rec, nil
}

// ListCompanies returns every company node
func (r *reader) ListCompanies(ctx context.Context) ([]entities.Entity, error) {
	records, err := r.collect(ctx, listCompaniesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	companies := make([]entities.Entity, 0, len(records))
	for _, record := range records {
		companies = append(companies, entities.NewCompany(stringValue(record, "id"), stringValue(record, "name")))
	}
	return companies, nil
}

// CompanyRoles loads the company and the roles held on it
func (r *reader) CompanyRoles(ctx context.Context, id string) (*entities.RoleRecord, error) {
	company, err := r.company(ctx, id)
	if err != nil || company == nil {
		return nil, err
	}

	records, err := r.collect(ctx, companyRolesQuery, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}

	rec := &entities.RoleRecord{Company: *company}
	for _, record := range records {
		rec.Roles = append(rec.Roles, roleFromRecord(record, *company))
	}
	return rec, nil
}

// OutgoingRoles loads every role of the given persons in one batched query
func (r *reader) OutgoingRoles(ctx context.Context, personIDs []string) ([]entities.Relationship, error) {
	if len(personIDs) == 0 {
		return []entities.Relationship{}, nil
	}

	records, err := r.collect(ctx, outgoingRolesQuery, map[string]any{"pids": personIDs})
	if err != nil {
		return nil, fmt.Errorf("failed to query outgoing roles: %w", err)
	}

	rels := make([]entities.Relationship, 0, len(records))
	for _, record := range records {
		rels = append(rels, roleFromRecord(record, entities.Entity{}))
	}
	return rels, nil
}
