package fallback

import (
	"context"
	"fmt"
	"time"

	fberrors "github.com/ahrav/go-fallback/internal/fallback/errors"
)

// operationOutcome carries one settled operation result across the race.
type operationOutcome[T any] struct {
	value T
	err   error
}

// runWithTimeout races op against the tier deadline using structured
// context cancellation. The deadline only stops waiting: an operation that
// ignores its context keeps running in the background, writing its outcome
// into a buffered channel that is garbage collected with it. The derived
// context is cancelled on every exit path.
func runWithTimeout[T any](ctx context.Context, stage Tier, timeout time.Duration, op Operation[T]) (T, error) {
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	outcome := make(chan operationOutcome[T], 1)
	go func() {
		defer func() {
			// A panicking operation is a failed operation, not a crashed
			// orchestrator.
			if r := recover(); r != nil {
				var zero T
				outcome <- operationOutcome[T]{
					value: zero,
					err:   fmt.Errorf("%w: %v", fberrors.ErrOperationPanicked, r),
				}
			}
		}()
		value, err := op(opCtx)
		outcome <- operationOutcome[T]{value: value, err: err}
	}()

	select {
	case out := <-outcome:
		return out.value, out.err
	case <-opCtx.Done():
		var zero T
		if ctx.Err() != nil {
			// The caller's own context ended; surface that rather than a
			// tier timeout so classification stays honest.
			return zero, ctx.Err()
		}
		return zero, &fberrors.TimeoutError{Stage: stage.String(), Timeout: timeout}
	}
}
