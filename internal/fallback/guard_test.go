package fallback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fberrors "github.com/ahrav/go-fallback/internal/fallback/errors"
)

func TestRunWithTimeout_FastOperation(t *testing.T) {
	value, err := runWithTimeout(context.Background(), TierPrimary, time.Second,
		func(context.Context) (string, error) { return "quick", nil })

	require.NoError(t, err)
	assert.Equal(t, "quick", value)
}

func TestRunWithTimeout_ErrorPassthrough(t *testing.T) {
	opErr := errors.New("backend exploded")
	_, err := runWithTimeout(context.Background(), TierPrimary, time.Second,
		func(context.Context) (string, error) { return "", opErr })

	assert.ErrorIs(t, err, opErr)
}

func TestRunWithTimeout_DeadlineExpiry(t *testing.T) {
	// The operation ignores its context; the guard must stop waiting on its
	// own and classify the expiry as a timeout.
	start := time.Now()
	_, err := runWithTimeout(context.Background(), TierPrimary, 50*time.Millisecond,
		func(context.Context) (string, error) {
			time.Sleep(500 * time.Millisecond)
			return "late", nil
		})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, fberrors.IsTimeout(err))
	assert.Less(t, elapsed, 400*time.Millisecond)

	var timeoutErr *fberrors.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "primary", timeoutErr.Stage)
}

func TestRunWithTimeout_CallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := runWithTimeout(ctx, TierPrimary, time.Second,
		func(opCtx context.Context) (string, error) {
			<-opCtx.Done()
			return "", opCtx.Err()
		})

	// Caller cancellation is surfaced as-is, not dressed up as a tier
	// timeout.
	require.Error(t, err)
	assert.False(t, fberrors.IsTimeout(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunWithTimeout_OperationPanic(t *testing.T) {
	_, err := runWithTimeout(context.Background(), TierSecondary, time.Second,
		func(context.Context) (string, error) { panic("kaboom") })

	require.Error(t, err)
	assert.ErrorIs(t, err, fberrors.ErrOperationPanicked)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestRunWithTimeout_ContextHonoringOperationStopsEarly(t *testing.T) {
	start := time.Now()
	_, err := runWithTimeout(context.Background(), TierPrimary, 50*time.Millisecond,
		func(opCtx context.Context) (string, error) {
			select {
			case <-time.After(time.Second):
				return "late", nil
			case <-opCtx.Done():
				return "", opCtx.Err()
			}
		})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, fberrors.IsTimeout(err))
	assert.Less(t, elapsed, 400*time.Millisecond)
}
