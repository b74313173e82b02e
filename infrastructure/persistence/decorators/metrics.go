package decorators

import (
	"context"
	"time"

	"graphlens/application/ports"
	"graphlens/domain/core/aggregates"
	"graphlens/domain/core/entities"
	"graphlens/domain/core/valueobjects"
)

// StoreObserver records the outcome and latency of store operations
type StoreObserver interface {
	ObserveStore(operation string, err error, elapsed time.Duration)
}

// MetricsStore reports every session and reader call to a StoreObserver
type MetricsStore struct {
	inner    ports.GraphStore
	observer StoreObserver
}

// NewMetricsStore wraps inner
func NewMetricsStore(inner ports.GraphStore, observer StoreObserver) *MetricsStore {
	return &MetricsStore{inner: inner, observer: observer}
}

func (s *MetricsStore) WithinSession(ctx context.Context, fn func(ctx context.Context, reader ports.GraphReader) error) error {
	start := time.Now()
	err := s.inner.WithinSession(ctx, func(ctx context.Context, reader ports.GraphReader) error {
		return fn(ctx, &metricsReader{inner: reader, observer: s.observer})
	})
	s.observer.ObserveStore("session", err, time.Since(start))
	return err
}

func (s *MetricsStore) VerifyConnectivity(ctx context.Context) error {
	start := time.Now()
	err := s.inner.VerifyConnectivity(ctx)
	s.observer.ObserveStore("verify_connectivity", err, time.Since(start))
	return err
}

func (s *MetricsStore) Close(ctx context.Context) error {
	return s.inner.Close(ctx)
}

type metricsReader struct {
	inner    ports.GraphReader
	observer StoreObserver
}

func (r *metricsReader) observe(operation string, start time.Time, err error) {
	r.observer.ObserveStore(operation, err, time.Since(start))
}

func (r *metricsReader) ReachableAccounts(ctx context.Context, seed string, hops valueobjects.HopBound) ([]string, error) {
	start := time.Now()
	ids, err := r.inner.ReachableAccounts(ctx, seed, hops)
	r.observe("reachable_accounts", start, err)
	return ids, err
}

func (r *metricsReader) TransfersTouching(ctx context.Context, ids []string, limit valueobjects.ResultLimit) ([]entities.Relationship, error) {
	start := time.Now()
	rels, err := r.inner.TransfersTouching(ctx, ids, limit)
	r.observe("transfers_touching", start, err)
	return rels, err
}

func (r *metricsReader) AccountDegree(ctx context.Context, id string) (*aggregates.AccountDegree, error) {
	start := time.Now()
	degree, err := r.inner.AccountDegree(ctx, id)
	r.observe("account_degree", start, err)
	return degree, err
}

func (r *metricsReader) CompanyOwnership(ctx context.Context, id string) (*entities.OwnershipRecord, error) {
	start := time.Now()
	rec, err := r.inner.CompanyOwnership(ctx, id)
	r.observe("company_ownership", start, err)
	return rec, err
}

func (r *metricsReader) ListCompanies(ctx context.Context) ([]entities.Entity, error) {
	start := time.Now()
	companies, err := r.inner.ListCompanies(ctx)
	r.observe("list_companies", start, err)
	return companies, err
}

func (r *metricsReader) CompanyRoles(ctx context.Context, id string) (*entities.RoleRecord, error) {
	start := time.Now()
	rec, err := r.inner.CompanyRoles(ctx, id)
	r.observe("company_roles", start, err)
	return rec, err
}

func (r *metricsReader) OutgoingRoles(ctx context.Context, personIDs []string) ([]entities.Relationship, error) {
	start := time.Now()
	rels, err := r.inner.OutgoingRoles(ctx, personIDs)
	r.observe("outgoing_roles", start, err)
	return rels, err
}
