package decorators

import (
	"context"

	"graphlens/application/ports"
	"graphlens/domain/core/aggregates"
	"graphlens/domain/core/entities"
	"graphlens/domain/core/valueobjects"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingStore opens a span per session and per reader call
type TracingStore struct {
	inner   ports.GraphStore
	tracer  trace.Tracer
	backend string
}

// NewTracingStore wraps inner; backend is recorded as the db.system attribute
func NewTracingStore(inner ports.GraphStore, tracer trace.Tracer, backend string) *TracingStore {
	return &TracingStore{inner: inner, tracer: tracer, backend: backend}
}

// WithinSession wraps the unit of work in a span and hands fn a traced reader
func (s *TracingStore) WithinSession(ctx context.Context, fn func(ctx context.Context, reader ports.GraphReader) error) error {
	ctx, span := s.tracer.Start(ctx, "GraphStore.WithinSession",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.system", s.backend)),
	)
	defer span.End()

	err := s.inner.WithinSession(ctx, func(ctx context.Context, reader ports.GraphReader) error {
		return fn(ctx, &tracingReader{inner: reader, tracer: s.tracer})
	})
	recordError(span, err)
	return err
}

// VerifyConnectivity traces the connectivity check
func (s *TracingStore) VerifyConnectivity(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "GraphStore.VerifyConnectivity",
		trace.WithAttributes(attribute.String("db.system", s.backend)))
	defer span.End()

	err := s.inner.VerifyConnectivity(ctx)
	recordError(span, err)
	return err
}

// Close closes the wrapped store
func (s *TracingStore) Close(ctx context.Context) error {
	return s.inner.Close(ctx)
}

func recordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

type tracingReader struct {
	inner  ports.GraphReader
	tracer trace.Tracer
}

func (r *tracingReader) ReachableAccounts(ctx context.Context, seed string, hops valueobjects.HopBound) ([]string, error) {
	ctx, span := r.tracer.Start(ctx, "GraphReader.ReachableAccounts",
		trace.WithAttributes(
			attribute.String("account.seed", seed),
			attribute.Int("hops", hops.Int()),
		))
	defer span.End()

	ids, err := r.inner.ReachableAccounts(ctx, seed, hops)
	recordError(span, err)
	span.SetAttributes(attribute.Int("accounts.count", len(ids)))
	return ids, err
}

func (r *tracingReader) TransfersTouching(ctx context.Context, ids []string, limit valueobjects.ResultLimit) ([]entities.Relationship, error) {
	ctx, span := r.tracer.Start(ctx, "GraphReader.TransfersTouching",
		trace.WithAttributes(
			attribute.Int("accounts.count", len(ids)),
			attribute.Int("limit", limit.Int()),
		))
	defer span.End()

	rels, err := r.inner.TransfersTouching(ctx, ids, limit)
	recordError(span, err)
	span.SetAttributes(attribute.Int("transfers.count", len(rels)))
	return rels, err
}

func (r *tracingReader) AccountDegree(ctx context.Context, id string) (*aggregates.AccountDegree, error) {
	ctx, span := r.tracer.Start(ctx, "GraphReader.AccountDegree",
		trace.WithAttributes(attribute.String("account.id", id)))
	defer span.End()

	degree, err := r.inner.AccountDegree(ctx, id)
	recordError(span, err)
	span.SetAttributes(attribute.Bool("found", degree != nil))
	return degree, err
}

func (r *tracingReader) CompanyOwnership(ctx context.Context, id string) (*entities.OwnershipRecord, error) {
	ctx, span := r.tracer.Start(ctx, "GraphReader.CompanyOwnership",
		trace.WithAttributes(attribute.String("company.id", id)))
	defer span.End()

	rec, err := r.inner.CompanyOwnership(ctx, id)
	recordError(span, err)
	if rec != nil {
		span.SetAttributes(
			attribute.Int("owners.count", len(rec.Owners)),
			attribute.Int("subsidiaries.count", len(rec.Subsidiaries)),
		)
	}
	return rec, err
}

func (r *tracingReader) ListCompanies(ctx context.Context) ([]entities.Entity, error) {
	ctx, span := r.tracer.Start(ctx, "GraphReader.ListCompanies")
	defer span.End()

	companies, err := r.inner.ListCompanies(ctx)
	recordError(span, err)
	span.SetAttributes(attribute.Int("companies.count", len(companies)))
	return companies, err
}

func (r *tracingReader) CompanyRoles(ctx context.Context, id string) (*entities.RoleRecord, error) {
	ctx, span := r.tracer.Start(ctx, "GraphReader.CompanyRoles",
		trace.WithAttributes(attribute.String("company.id", id)))
	defer span.End()

	rec, err := r.inner.CompanyRoles(ctx, id)
	recordError(span, err)
	if rec != nil {
		span.SetAttributes(attribute.Int("roles.count", len(rec.Roles)))
	}
	return rec, err
}

func (r *tracingReader) OutgoingRoles(ctx context.Context, personIDs []string) ([]entities.Relationship, error) {
	ctx, span := r.tracer.Start(ctx, "GraphReader.OutgoingRoles",
		trace.WithAttributes(attribute.Int("persons.count", len(personIDs))))
	defer span.End()

	rels, err := r.inner.OutgoingRoles(ctx, personIDs)
	recordError(span, err)
	span.SetAttributes(attribute.Int("roles.count", len(rels)))
	return rels, err
}
