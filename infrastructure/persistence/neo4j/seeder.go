package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"graphlens/infrastructure/persistence/fixtures"
)

var constraintStatements = []string{
	`CREATE CONSTRAINT account_id IF NOT EXISTS FOR (a:Account) REQUIRE a.id IS UNIQUE`,
	`CREATE CONSTRAINT company_id IF NOT EXISTS FOR (c:Company) REQUIRE c.id IS UNIQUE`,
	`CREATE CONSTRAINT person_id IF NOT EXISTS FOR (p:Person) REQUIRE p.id IS UNIQUE`,
}

const (
	mergeAccounts = `
UNWIND $rows AS row
MERGE (:Account {id: row.id})`

	mergeCompanies = `
UNWIND $rows AS row
MERGE (c:Company {id: row.id})
SET c.name = row.name`

	mergePersons = `
UNWIND $rows AS row
MERGE (p:Person {id: row.id})
SET p.name = row.name`

	mergeTransfers = `
UNWIND $rows AS row
MATCH (a:Account {id: row.from}), (b:Account {id: row.to})
MERGE (a)-[r:SENT_TO {tx_id: row.tx_id}]->(b)
SET r.amount = row.amount, r.ts = timestamp()`

	// MERGE without a key keeps at most one OWNS per (owner, company) pair;
	// ownership views identify edges by that pair alone.
	mergeOwnerships = `
UNWIND $rows AS row
MATCH (o {id: row.owner}) WHERE o:Person OR o:Company
MATCH (c:Company {id: row.company})
MERGE (o)-[r:OWNS]->(c)
SET r.percent = row.percent`

	mergeRoles = `
UNWIND $rows AS row
MATCH (p:Person {id: row.person}), (c:Company {id: row.company})
MERGE (p)-[r:ROLE {type: row.type}]->(c)
SET r.since = date(row.since)`
)

// SeedSummary counts what one seeding run wrote
type SeedSummary struct {
	NodesCreated         int
	RelationshipsCreated int
	PropertiesSet        int
}

// Seeder writes a dataset with idempotent MERGE statements
type Seeder struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(driver neo4j.DriverWithContext, database string, logger *zap.Logger) *Seeder {
	return &Seeder{
		driver:   driver,
		database: database,
		logger:   logger.Named("seeder"),
	}
}

// seedStep is one parameterized batch write
type seedStep struct {
	name  string
	query string
	rows  []map[string]any
}

// Seed creates uniqueness constraints then merges every node and relationship of d
func (s *Seeder) Seed(ctx context.Context, d fixtures.Dataset) (SeedSummary, error) {
	var summary SeedSummary

	for _, stmt := range constraintStatements {
		if _, err := s.execute(ctx, stmt, nil); err != nil {
			return summary, fmt.Errorf("failed to create constraint: %w", err)
		}
	}

	for _, step := range seedSteps(d) {
		if len(step.rows) == 0 {
			continue
		}
		counters, err := s.execute(ctx, step.query, map[string]any{"rows": step.rows})
		if err != nil {
			return summary, fmt.Errorf("failed to seed %s: %w", step.name, err)
		}
		summary.NodesCreated += counters.NodesCreated()
		summary.RelationshipsCreated += counters.RelationshipsCreated()
		summary.PropertiesSet += counters.PropertiesSet()

		s.logger.Info("Seeded",
			zap.String("step", step.name),
			zap.Int("rows", len(step.rows)),
			zap.Int("nodesCreated", counters.NodesCreated()),
			zap.Int("relationshipsCreated", counters.RelationshipsCreated()),
		)
	}
	return summary, nil
}

func (s *Seeder) execute(ctx context.Context, query string, params map[string]any) (neo4j.Counters, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver, query, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database),
		neo4j.ExecuteQueryWithWritersRouting(),
	)
	if err != nil {
		return nil, err
	}
	return result.Summary.Counters(), nil
}

// seedSteps orders the writes so relationship endpoints exist before they are matched
func seedSteps(d fixtures.Dataset) []seedStep {
	accounts := make([]map[string]any, 0, len(d.Accounts))
	for _, a := range d.Accounts {
		accounts = append(accounts, map[string]any{"id": a.ID})
	}

	companies := make([]map[string]any, 0, len(d.Companies))
	for _, c := range d.Companies {
		companies = append(companies, map[string]any{"id": c.ID, "name": c.DisplayName()})
	}

	persons := make([]map[string]any, 0, len(d.Persons))
	for _, p := range d.Persons {
		persons = append(persons, map[string]any{"id": p.ID, "name": p.DisplayName()})
	}

	transfers := make([]map[string]any, 0, len(d.Transfers))
	for _, t := range d.Transfers {
		transfers = append(transfers, map[string]any{"from": t.From, "to": t.To, "tx_id": t.TxID, "amount": t.Amount})
	}

	ownerships := make([]map[string]any, 0, len(d.Ownerships))
	for _, o := range d.Ownerships {
		ownerships = append(ownerships, map[string]any{"owner": o.Owner, "company": o.Company, "percent": o.Percent})
	}

	roles := make([]map[string]any, 0, len(d.Roles))
	for _, r := range d.Roles {
		roles = append(roles, map[string]any{"person": r.Person, "company": r.Company, "type": r.Type, "since": r.Since})
	}

	return []seedStep{
		{name: "accounts", query: mergeAccounts, rows: accounts},
		{name: "companies", query: mergeCompanies, rows: companies},
		{name: "persons", query: mergePersons, rows: persons},
		{name: "transfers", query: mergeTransfers, rows: transfers},
		{name: "ownerships", query: mergeOwnerships, rows: ownerships},
		{name: "roles", query: mergeRoles, rows: roles},
	}
}
