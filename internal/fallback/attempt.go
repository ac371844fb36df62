package fallback

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Operation is the external collaborator the orchestrator wraps: a single
// generation call returning a value or an error. The context carries the
// tier deadline; operations that honor it stop early, operations that do
// not are abandoned once the deadline expires and may keep running in the
// background. Panics inside an operation are treated as failures.
type Operation[T any] func(ctx context.Context) (T, error)

// Synthesizer deterministically builds a usable value from the original
// prompt without any network call. It backs the tertiary fail-safe floor
// and must not fail; it is invoked with the raw, unstructured prompt.
type Synthesizer[T any] func(prompt string) T

// AttemptContext is the immutable input to one AttemptExecution call.
type AttemptContext struct {
	// ID correlates log lines and metrics for one attempt.
	ID string `json:"id"`

	// OriginalPrompt is the raw user prompt; the tertiary floor synthesizes
	// its result from this.
	OriginalPrompt string `json:"original_prompt"`

	// MaxProcessingTime is advisory caller metadata. Enforced deadlines are
	// the per-tier timeouts from configuration.
	MaxProcessingTime time.Duration `json:"max_processing_time"`

	// FailureReason optionally carries the cause of a previous degradation,
	// used for messaging when a call starts at an already-degraded tier.
	FailureReason string `json:"failure_reason,omitempty"`

	// AttemptNumber is the caller's attempt counter.
	AttemptNumber int `json:"attempt_number"`

	// Timestamp records when the attempt was created.
	Timestamp time.Time `json:"timestamp"`
}

// NewAttemptContext builds an AttemptContext with a fresh correlation ID
// and timestamp.
func NewAttemptContext(prompt string, maxProcessingTime time.Duration) AttemptContext {
	return AttemptContext{
		ID:                uuid.New().String(),
		OriginalPrompt:    prompt,
		MaxProcessingTime: maxProcessingTime,
		AttemptNumber:     1,
		Timestamp:         time.Now(),
	}
}

// AttemptResult is the always-successful outcome of one AttemptExecution
// call. Failures of the primary and secondary tiers surface only as
// metadata here, never as an error returned to the caller.
type AttemptResult[T any] struct {
	// Value is the produced result.
	Value T `json:"value"`

	// Err is structurally nil: the tertiary floor wraps the original prompt
	// as a successful value, so no cascade path leaves it set. Retained so
	// callers can treat the result uniformly with direct operation results.
	Err error `json:"-"`

	// TierUsed is the tier that actually produced the returned value, not
	// the tier first attempted.
	TierUsed Tier `json:"tier_used"`

	// FallbackReason describes why degradation happened, empty on a
	// primary-tier success.
	FallbackReason string `json:"fallback_reason,omitempty"`

	// ProcessingTime is the elapsed wall time of the call, measured on the
	// monotonic clock and clamped to at least one millisecond.
	ProcessingTime time.Duration `json:"processing_time"`

	// UserNotification advises the presentation layer what happened. Nil
	// when notifications are disabled or the primary tier succeeded.
	UserNotification *UserNotification `json:"user_notification,omitempty"`

	// FallbackTriggered reports whether any degradation happened this call.
	FallbackTriggered bool `json:"fallback_triggered"`

	// UsedFallback mirrors FallbackTriggered for callers of the older field
	// name.
	UsedFallback bool `json:"used_fallback"`

	// Notification is a short human string set on the tertiary path.
	Notification string `json:"notification,omitempty"`
}
