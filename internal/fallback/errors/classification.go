// Package errors defines the failure taxonomy of the staged fallback
// orchestrator and classifies operation errors into it. Classification
// drives both the degradation cascade and the user-facing messaging.
package errors

import (
	"context"
	"errors"
	"strings"
)

// Canonical fallback reasons. The classified reason flows into
// AttemptResult.FallbackReason and the tier-specific notification message.
const (
	ReasonTimeout       = "generation timed out"
	ReasonRateLimit     = "rate limit reached"
	ReasonTemplate      = "template parsing failed"
	ReasonOrchestration = "primary orchestration failed"
)

// Classification is the outcome of classifying a single operation failure.
type Classification struct {
	Type   ErrorType `json:"type"`
	Reason string    `json:"reason"`
}

// IsRateLimit reports whether the failure was classified as rate limiting,
// the one cause the secondary tier tolerates without cascading.
func (c Classification) IsRateLimit() bool { return c.Type == ErrorTypeRateLimit }

// ClassifyReason maps a stored failure reason back to a classification.
// Canonical reasons round-trip exactly; anything else goes through the same
// substring matching as live errors.
func ClassifyReason(reason string) Classification {
	switch reason {
	case ReasonTimeout:
		return Classification{Type: ErrorTypeTimeout, Reason: ReasonTimeout}
	case ReasonRateLimit:
		return Classification{Type: ErrorTypeRateLimit, Reason: ReasonRateLimit}
	case ReasonTemplate:
		return Classification{Type: ErrorTypeTemplate, Reason: ReasonTemplate}
	case "":
		return Classification{Type: ErrorTypeOrchestration, Reason: ReasonOrchestration}
	}
	return Classify(errors.New(reason))
}

// Classify maps an operation failure to its fallback classification.
// Strongly-typed errors are checked first, then case-insensitive substring
// patterns in priority order: timeout, rate limit, parsing. Anything else is
// a generic orchestration failure.
func Classify(err error) Classification {
	if err == nil {
		return Classification{Type: ErrorTypeOrchestration, Reason: ReasonOrchestration}
	}

	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) || errors.Is(err, context.DeadlineExceeded) {
		return Classification{Type: ErrorTypeTimeout, Reason: ReasonTimeout}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return Classification{Type: ErrorTypeTimeout, Reason: ReasonTimeout}
	case strings.Contains(msg, "rate limit"):
		return Classification{Type: ErrorTypeRateLimit, Reason: ReasonRateLimit}
	case strings.Contains(msg, "parsing"):
		return Classification{Type: ErrorTypeTemplate, Reason: ReasonTemplate}
	default:
		return Classification{Type: ErrorTypeOrchestration, Reason: ReasonOrchestration}
	}
}
