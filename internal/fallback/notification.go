package fallback

import (
	"time"

	fberrors "github.com/ahrav/go-fallback/internal/fallback/errors"
)

// NotificationLevel grades the severity of a user notification.
type NotificationLevel string

const (
	// LevelInfo marks an advisory notice about a degraded but healthy response.
	LevelInfo NotificationLevel = "info"
	// LevelWarning marks a notice the user may want to act on.
	LevelWarning NotificationLevel = "warning"
	// LevelMinimal marks a notice that can be rendered unobtrusively or dropped.
	LevelMinimal NotificationLevel = "minimal"
)

// Delay estimates relative to the primary-tier baseline. Degraded tiers skip
// the expensive structured path, so both estimates are negative.
const (
	secondaryDelayEstimate = -2 * time.Second
	tertiaryDelayEstimate  = -5 * time.Second
)

// tertiaryResultNote is the short human string attached to tertiary results.
const tertiaryResultNote = "Fallback generated content with unstructured prompt"

// UserNotification is a presentation-level advisory describing what happened
// during an attempt and whether the user can act on it. The orchestrator
// never surfaces errors to callers; this is the only user-visible signal of
// degradation.
type UserNotification struct {
	Level      NotificationLevel `json:"level"`
	Message    string            `json:"message"`
	Actionable bool              `json:"actionable"`

	// EstimatedDelay is relative to the primary-tier baseline, not absolute;
	// negative values mean the degraded path responds faster.
	EstimatedDelay time.Duration `json:"estimated_delay"`
}

// secondaryNotification builds the info-level notice for a secondary-tier
// response, with a message reflecting the failure that caused degradation.
func secondaryNotification(cls fberrors.Classification) *UserNotification {
	var msg string
	switch cls.Type {
	case fberrors.ErrorTypeTimeout:
		msg = "Generation took longer than expected; a simplified strategy produced this result."
	case fberrors.ErrorTypeRateLimit:
		msg = "Provider rate limit reached; a simplified strategy produced this result."
	case fberrors.ErrorTypeTemplate:
		msg = "Prompt template could not be parsed; a simplified strategy produced this result."
	default:
		msg = "Primary generation failed; a simplified strategy produced this result."
	}

	return &UserNotification{
		Level:          LevelInfo,
		Message:        msg,
		Actionable:     false,
		EstimatedDelay: secondaryDelayEstimate,
	}
}

// tertiaryNotification builds the warning-level notice for the fail-safe
// floor. The message must reference the unstructured prompt so users know
// the structured pipeline was bypassed entirely.
func tertiaryNotification() *UserNotification {
	return &UserNotification{
		Level:          LevelWarning,
		Message:        "Generation fell back to the unstructured prompt; the result may lack structured detail. Retrying later may restore full quality.",
		Actionable:     true,
		EstimatedDelay: tertiaryDelayEstimate,
	}
}

// systemFallbackNotification builds the warning-level notice for the outer
// guard path, used when the cascade itself failed unexpectedly.
func systemFallbackNotification() *UserNotification {
	return &UserNotification{
		Level:          LevelWarning,
		Message:        "Generation hit an unexpected internal failure; a fallback result was produced from the unstructured prompt.",
		Actionable:     true,
		EstimatedDelay: tertiaryDelayEstimate,
	}
}
