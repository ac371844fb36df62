package fallback

import (
	"context"
	"log/slog"
	"time"
)

// RecoveryScheduler periodically probes a degraded strategy and promotes it
// back to the primary tier once the health window is clear. It is the
// external control path the orchestrator itself never takes: attempts only
// ever degrade, the scheduler (or an operator) recovers.
type RecoveryScheduler[T any] struct {
	strategy *Strategy[T]
	interval time.Duration
	logger   *slog.Logger
}

// NewRecoveryScheduler builds a scheduler over the given strategy. A
// non-positive interval falls back to the strategy's RecoveryCheckInterval.
func NewRecoveryScheduler[T any](strategy *Strategy[T], interval time.Duration) *RecoveryScheduler[T] {
	if interval <= 0 {
		interval = strategy.cfg.RecoveryCheckInterval
	}
	return &RecoveryScheduler[T]{
		strategy: strategy,
		interval: interval,
		logger:   slog.Default().With("component", "fallback-recovery"),
	}
}

// Run blocks, probing on every tick, until ctx is done. Ticks while the
// strategy already sits at the primary tier are skipped without consuming
// a recovery probe.
func (r *RecoveryScheduler[T]) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if r.strategy.CurrentTier() == TierPrimary {
				continue
			}
			if r.strategy.CanRecover() {
				r.logger.Info("health window clear, promoting to primary tier")
				r.strategy.ResetToOptimal()
			}
		}
	}
}
