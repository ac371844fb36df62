package fallback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetToOptimal(t *testing.T) {
	s := newTestStrategy(t, nil)

	s.AttemptExecution(context.Background(), alwaysFail(errors.New("backend exploded")),
		NewAttemptContext("a cat", 15*time.Second))
	require.Equal(t, TierTertiary, s.CurrentTier())

	s.ResetToOptimal()

	assert.Equal(t, TierPrimary, s.CurrentTier())
	history := s.GetFailureHistory()
	assert.Zero(t, history.CurrentFailureStreak)
	assert.False(t, history.LastRecovery.IsZero())
	for _, rec := range history.RecentFailures {
		assert.True(t, rec.Recovered)
	}
}

func TestCanRecover_FirstProbeBypassWithCleanHistory(t *testing.T) {
	s := newTestStrategy(t, nil)

	// No failures ever recorded: the very first probe skips the rate limit.
	assert.True(t, s.CanRecover())
}

func TestCanRecover_RateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RecoveryCheckInterval = 80 * time.Millisecond
	s := newTestStrategy(t, cfg)

	s.AttemptExecution(context.Background(), alwaysFail(errors.New("backend exploded")),
		NewAttemptContext("a cat", 15*time.Second))

	// Two probes inside the interval: both report false, regardless of
	// history state.
	assert.False(t, s.CanRecover())
	assert.False(t, s.CanRecover())

	// After the interval with the failures resolved, the probe passes.
	s.ResetToOptimal()
	time.Sleep(100 * time.Millisecond)
	assert.True(t, s.CanRecover())
}

func TestCanRecover_UnrecoveredRecentFailureBlocks(t *testing.T) {
	cfg := testConfig()
	cfg.RecoveryCheckInterval = 20 * time.Millisecond
	s := newTestStrategy(t, cfg)

	s.AttemptExecution(context.Background(), alwaysFail(errors.New("backend exploded")),
		NewAttemptContext("a cat", 15*time.Second))

	time.Sleep(30 * time.Millisecond)
	assert.False(t, s.CanRecover(), "unrecovered failure in the window must block recovery")
	// Probing never mutates the tier.
	assert.Equal(t, TierTertiary, s.CurrentTier())
}

func TestRecoveryScheduler_PromotesAfterHealthWindowClears(t *testing.T) {
	cfg := testConfig()
	cfg.RecoveryCheckInterval = 10 * time.Millisecond
	s := newTestStrategy(t, cfg)

	// One failure, then a healthy probe: history is recovered but the tier
	// stays degraded until an external promotion.
	res := s.AttemptExecution(context.Background(),
		failThenSucceed(1, errors.New("connection reset"), "simplified"),
		NewAttemptContext("a cat", 15*time.Second))
	require.Equal(t, TierSecondary, res.TierUsed)
	require.Equal(t, TierSecondary, s.CurrentTier())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go NewRecoveryScheduler(s, 10*time.Millisecond).Run(ctx)

	require.Eventually(t, func() bool {
		return s.CurrentTier() == TierPrimary
	}, time.Second, 10*time.Millisecond, "scheduler should promote a healthy strategy")
}

func TestRecoveryScheduler_StopsOnContextDone(t *testing.T) {
	s := newTestStrategy(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		NewRecoveryScheduler(s, 5*time.Millisecond).Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}
