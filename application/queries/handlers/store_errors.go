package handlers

import (
	"context"
	"errors"

	pkgerrors "graphlens/pkg/errors"
)

// ViewObserver receives the size of every rendered view
type ViewObserver interface {
	ObserveView(view string, nodes, edges int)
}

type noopObserver struct{}

func (noopObserver) ObserveView(string, int, int) {}

func observerOrNoop(o ViewObserver) ViewObserver {
	if o == nil {
		return noopObserver{}
	}
	return o
}

// storeError classifies a failure returned from a store unit of work. Typed application
// errors pass through; deadline overruns become timeouts; everything else is a database error.
func storeError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if pkgerrors.IsAppError(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return pkgerrors.NewTimeoutError(operation).WithCause(err)
	}
	return pkgerrors.NewDatabaseError(operation, err)
}
