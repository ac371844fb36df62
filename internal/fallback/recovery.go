package fallback

import (
	"time"
)

// CurrentTier returns the orchestrator's persisted tier, the starting state
// of the next attempt.
func (s *Strategy[T]) CurrentTier() Tier { return Tier(s.tier.Load()) }

// GetFailureHistory returns an immutable snapshot of the failure log; the
// live structure is never exposed.
func (s *Strategy[T]) GetFailureHistory() FailureHistory { return s.history.snapshot() }

// ResetToOptimal unconditionally promotes the orchestrator back to the
// primary tier, clears the failure streak, and marks all history as
// recovered. It is meant to be driven by an external scheduler or operator
// action: a successful degraded response does not by itself prove
// primary-tier health, so nothing in the attempt path calls this.
func (s *Strategy[T]) ResetToOptimal() {
	prev := Tier(s.tier.Swap(int32(TierPrimary)))
	s.history.markRecovered(time.Now())
	s.stats.recoveries.Add(1)
	s.observeRecovery()

	if prev != TierPrimary {
		s.logger.Info("recovered to primary tier", "from", prev.String())
	}
}

// CanRecover is a rate-limited health probe: it evaluates at most once per
// RecoveryCheckInterval and otherwise reports false. The rate limit is
// bypassed on the very first probe when no failure was ever recorded. A
// probe passes when no failure of the last five minutes remains
// unrecovered. CanRecover never mutates the persisted tier.
func (s *Strategy[T]) CanRecover() bool {
	now := time.Now()

	s.recoveryMu.Lock()
	defer s.recoveryMu.Unlock()

	if s.firstRecoveryProbe && s.history.totalFailures() == 0 {
		s.firstRecoveryProbe = false
		s.lastRecoveryCheck = now
		return true
	}
	if now.Sub(s.lastRecoveryCheck) < s.cfg.RecoveryCheckInterval {
		return false
	}
	s.firstRecoveryProbe = false
	s.lastRecoveryCheck = now

	return !s.history.hasUnrecoveredSince(now.Add(-recentFailureWindow))
}
