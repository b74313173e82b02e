// Package decorators wraps a ports.GraphStore with cross-cutting behavior.
// Each decorator keeps the unit-of-work contract: fn still runs against one store session.
package decorators

import (
	"context"
	"errors"
	"time"

	"graphlens/application/ports"
	pkgerrors "graphlens/pkg/errors"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// CircuitBreakerConfig holds configuration for the store circuit breaker
type CircuitBreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// Trip once at least MinRequests were seen and the failure ratio reaches FailureThreshold
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultCircuitBreakerConfig returns a default configuration for the store circuit breaker
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// CircuitBreakerStore fails fast with an unavailable error while the store keeps failing
type CircuitBreakerStore struct {
	inner  ports.GraphStore
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

// NewCircuitBreakerStore wraps inner with a circuit breaker
func NewCircuitBreakerStore(inner ports.GraphStore, config CircuitBreakerConfig, logger *zap.Logger) *CircuitBreakerStore {
	logger = logger.Named("circuit_breaker")
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		IsSuccessful: isStoreHealthy,
	})

	return &CircuitBreakerStore{
		inner:  inner,
		cb:     cb,
		logger: logger,
	}
}

// isStoreHealthy reports whether err says nothing about the store's health.
// Missing entities, bad input and callers giving up are not store failures.
func isStoreHealthy(err error) bool {
	switch {
	case err == nil:
		return true
	case pkgerrors.IsNotFound(err), pkgerrors.IsValidation(err):
		return true
	case errors.Is(err, context.Canceled):
		return true
	default:
		return false
	}
}

// WithinSession runs fn through the breaker
func (s *CircuitBreakerStore) WithinSession(ctx context.Context, fn func(ctx context.Context, reader ports.GraphReader) error) error {
	_, err := s.cb.Execute(func() (any, error) {
		return nil, s.inner.WithinSession(ctx, fn)
	})
	return s.translate(err)
}

// VerifyConnectivity bypasses the breaker so readiness reflects the real store state
func (s *CircuitBreakerStore) VerifyConnectivity(ctx context.Context) error {
	return s.inner.VerifyConnectivity(ctx)
}

// Close closes the wrapped store
func (s *CircuitBreakerStore) Close(ctx context.Context) error {
	return s.inner.Close(ctx)
}

// State returns the current breaker state
func (s *CircuitBreakerStore) State() gobreaker.State {
	return s.cb.State()
}

func (s *CircuitBreakerStore) translate(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		s.logger.Warn("Circuit breaker rejected store call", zap.Error(err))
		return pkgerrors.NewUnavailableError("graph store").WithCode(pkgerrors.CodeCircuitOpen).WithCause(err)
	}
	return err
}
