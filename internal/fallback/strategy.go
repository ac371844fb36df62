package fallback

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ahrav/go-fallback/internal/fallback/configuration"
	fberrors "github.com/ahrav/go-fallback/internal/fallback/errors"
)

// minProcessingTime is the floor reported for ProcessingTime so downstream
// rate math never divides by zero.
const minProcessingTime = time.Millisecond

// Strategy orchestrates the Primary -> Secondary -> Tertiary degradation
// cascade around a single wrapped operation. An attempt starts at the
// persisted tier, degrades one step per recorded failure, and terminates at
// the fail-safe floor, so AttemptExecution always returns a usable result.
//
// A degraded strategy stays degraded across calls until ResetToOptimal is
// invoked; a successful secondary answer does not by itself prove primary
// health.
//
// The strategy is safe for concurrent use: the persisted tier is an atomic
// with one-step CAS degradation and the failure history sits behind a
// mutex. Concurrent attempts still share one tier and one history, so
// callers that want fully independent degradation state should run one
// strategy per logical pipeline.
type Strategy[T any] struct {
	cfg        configuration.Config
	synthesize Synthesizer[T]

	tier    atomic.Int32
	history *failureHistory

	recoveryMu         sync.Mutex
	lastRecoveryCheck  time.Time
	firstRecoveryProbe bool

	logger *slog.Logger
	stats  *strategyStats
}

// New constructs a strategy around the given tertiary synthesizer. A nil
// config selects defaults. The synthesizer is mandatory: it is what makes
// the tertiary floor structurally unable to fail.
func New[T any](cfg *configuration.Config, synthesize Synthesizer[T]) (*Strategy[T], error) {
	if cfg == nil {
		cfg = configuration.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if synthesize == nil {
		return nil, fberrors.ErrNilSynthesizer
	}

	return &Strategy[T]{
		cfg:                *cfg,
		synthesize:         synthesize,
		history:            newFailureHistory(),
		lastRecoveryCheck:  time.Now(),
		firstRecoveryProbe: true,
		logger:             slog.Default().With("component", "fallback"),
		stats:              &strategyStats{},
	}, nil
}

// AttemptExecution runs one attempt of the wrapped operation through the
// cascade, starting at the persisted tier. The call never fails: primary
// and secondary failures are absorbed and surface only as metadata on an
// otherwise-successful result, and the outer guard converts even
// orchestrator bugs into a tertiary-equivalent success.
func (s *Strategy[T]) AttemptExecution(ctx context.Context, op Operation[T], attempt AttemptContext) (result *AttemptResult[T]) {
	start := time.Now()
	s.stats.attempts.Add(1)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("unexpected orchestration failure, engaging complete system fallback",
				"attempt_id", attempt.ID,
				"panic", r)
			result = s.completeSystemFallback(attempt, start)
		}
	}()

	if op == nil {
		// Nothing to probe; serve the floor directly.
		s.logger.Warn("nil operation supplied, serving tertiary result",
			"attempt_id", attempt.ID, "error", fberrors.ErrNilOperation)
		return s.tertiaryResult(attempt, fberrors.ReasonOrchestration, start)
	}

	// cause tracks the failure that pushed this attempt off the primary
	// tier; it seeds fallback reasons and notification messages. When the
	// call starts already degraded, the cause comes from context or the
	// most recent history entry.
	cause := s.startingCause(attempt)

	tier := s.CurrentTier()
	if tier == TierTertiary {
		return s.tertiaryResult(attempt, cause.Reason, start)
	}

	if tier == TierPrimary {
		value, err := runWithTimeout(ctx, TierPrimary, s.cfg.PrimaryTimeout, op)
		if err == nil {
			elapsed := clampElapsed(start)
			s.stats.primarySuccesses.Add(1)
			s.observeAttempt(TierPrimary, elapsed)
			return &AttemptResult[T]{
				Value:          value,
				TierUsed:       TierPrimary,
				ProcessingTime: elapsed,
			}
		}
		cause = fberrors.Classify(err)
		s.recordFailure(TierPrimary, cause, err, attempt)
		s.degrade(TierPrimary)
	}

	res, cascade, ok := s.attemptSecondary(ctx, op, attempt, cause, start)
	if ok {
		return res
	}
	s.degrade(TierSecondary)

	return s.tertiaryResult(attempt, cascade.Reason, start)
}

// attemptSecondary runs the degraded strategy under the secondary deadline.
// The operation is re-invoked once as a health probe. A rate-limited probe
// is tolerated: the provider is alive, just throttling, so the degraded
// value is produced locally instead of cascading to the floor. Any other
// probe failure cascades and carries its classification out for the
// tertiary fallback reason.
func (s *Strategy[T]) attemptSecondary(
	ctx context.Context,
	op Operation[T],
	attempt AttemptContext,
	cause fberrors.Classification,
	start time.Time,
) (*AttemptResult[T], fberrors.Classification, bool) {
	value, err := runWithTimeout(ctx, TierSecondary, s.cfg.SecondaryTimeout, op)
	switch {
	case err == nil:
		// A settled probe is evidence of provider health: resolve the
		// outstanding failure records. Promotion back to the primary tier
		// stays an explicit external decision.
		s.history.markRecovered(time.Now())
		s.logger.Info("secondary probe succeeded, failure history marked recovered",
			"attempt_id", attempt.ID)

	case fberrors.Classify(err).IsRateLimit():
		s.logger.Info("secondary probe rate-limited, serving degraded value",
			"attempt_id", attempt.ID, "error", err)
		value = s.synthesize(attempt.OriginalPrompt)

	default:
		probeCause := fberrors.Classify(err)
		s.recordFailure(TierSecondary, probeCause, err, attempt)
		return nil, probeCause, false
	}

	elapsed := clampElapsed(start)
	s.stats.secondarySuccesses.Add(1)
	s.observeAttempt(TierSecondary, elapsed)

	res := &AttemptResult[T]{
		Value:             value,
		TierUsed:          TierSecondary,
		FallbackReason:    cause.Reason,
		ProcessingTime:    elapsed,
		FallbackTriggered: true,
		UsedFallback:      true,
	}
	if s.cfg.EnableUserNotifications {
		res.UserNotification = secondaryNotification(cause)
	}
	return res, cause, true
}

// tertiaryResult serves the fail-safe floor: a deterministic local
// transform of the original prompt. This path cannot fail.
func (s *Strategy[T]) tertiaryResult(attempt AttemptContext, reason string, start time.Time) *AttemptResult[T] {
	value := s.synthesize(attempt.OriginalPrompt)
	elapsed := clampElapsed(start)
	s.stats.tertiaryFallbacks.Add(1)
	s.observeAttempt(TierTertiary, elapsed)
	s.logger.Warn("serving fail-safe tertiary result",
		"attempt_id", attempt.ID,
		"reason", reason)

	res := &AttemptResult[T]{
		Value:             value,
		TierUsed:          TierTertiary,
		FallbackReason:    reason,
		ProcessingTime:    elapsed,
		FallbackTriggered: true,
		UsedFallback:      true,
		Notification:      tertiaryResultNote,
	}
	if s.cfg.EnableUserNotifications {
		res.UserNotification = tertiaryNotification()
	}
	return res
}

// completeSystemFallback is the outer guard's landing spot: something in
// the cascade itself failed, so synthesize the tertiary value and still
// return success.
func (s *Strategy[T]) completeSystemFallback(attempt AttemptContext, start time.Time) *AttemptResult[T] {
	var value T
	func() {
		// The floor holds even against a broken synthesizer; the zero
		// value is still a successful result.
		defer func() { _ = recover() }()
		value = s.synthesize(attempt.OriginalPrompt)
	}()

	elapsed := clampElapsed(start)
	s.stats.systemFallbacks.Add(1)
	s.observeAttempt(TierTertiary, elapsed)

	res := &AttemptResult[T]{
		Value:             value,
		TierUsed:          TierTertiary,
		FallbackReason:    "Complete system fallback",
		ProcessingTime:    elapsed,
		FallbackTriggered: true,
		UsedFallback:      true,
		Notification:      tertiaryResultNote,
	}
	if s.cfg.EnableUserNotifications {
		res.UserNotification = systemFallbackNotification()
	}
	return res
}

// startingCause resolves the degradation cause for calls that begin at an
// already-degraded tier.
func (s *Strategy[T]) startingCause(attempt AttemptContext) fberrors.Classification {
	if attempt.FailureReason != "" {
		return fberrors.ClassifyReason(attempt.FailureReason)
	}
	return fberrors.ClassifyReason(s.history.lastReason())
}

// recordFailure logs a classified tier failure into history, stats, and
// metrics.
func (s *Strategy[T]) recordFailure(tier Tier, cls fberrors.Classification, err error, attempt AttemptContext) {
	s.history.recordFailure(tier, cls.Reason)
	s.observeFailure(tier, string(cls.Type))
	if cls.Type == fberrors.ErrorTypeTimeout {
		s.stats.timeouts.Add(1)
	}
	s.logger.Warn("tier attempt failed",
		"attempt_id", attempt.ID,
		"tier", tier.String(),
		"reason", cls.Reason,
		"error", err)
}

// degrade moves the persisted tier down one step from the given tier. The
// CAS keeps concurrent attempts from skipping a tier; if another attempt
// already degraded past from, the swap is a no-op.
func (s *Strategy[T]) degrade(from Tier) {
	next, ok := from.Next()
	if !ok {
		return
	}
	if s.tier.CompareAndSwap(int32(from), int32(next)) {
		s.logger.Info("fallback tier degraded",
			"from", from.String(),
			"to", next.String())
	}
}

// clampElapsed returns the monotonic elapsed time since start, never less
// than minProcessingTime.
func clampElapsed(start time.Time) time.Duration {
	if d := time.Since(start); d >= minProcessingTime {
		return d
	}
	return minProcessingTime
}
