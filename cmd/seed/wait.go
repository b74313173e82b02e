package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// check probes one dependency
type check func(ctx context.Context) error

// waitFor retries c at a constant interval until it succeeds, attempts run out or ctx ends
func waitFor(ctx context.Context, name string, c check, attempts int, interval time.Duration, logger *zap.Logger) error {
	if attempts < 1 {
		attempts = 1
	}

	attempt := 0
	operation := func() error {
		attempt++
		return c(ctx)
	}
	notify := func(err error, next time.Duration) {
		logger.Debug("Dependency not ready",
			zap.String("dependency", name),
			zap.Int("attempt", attempt),
			zap.Duration("retryIn", next),
			zap.Error(err),
		)
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), uint64(attempts-1)),
		ctx,
	)
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return fmt.Errorf("%s not ready: %w", name, err)
		}
		return fmt.Errorf("%s not ready after %d attempts: %w", name, attempt, err)
	}

	logger.Info("Dependency ready", zap.String("dependency", name), zap.Int("attempt", attempt))
	return nil
}
