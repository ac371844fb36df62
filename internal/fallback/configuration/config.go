// Package configuration holds the construction-time settings of the staged
// fallback orchestrator. The configuration is immutable for the lifetime of
// a strategy instance.
package configuration

import (
	"errors"
	"fmt"
	"time"
)

// Configuration validation errors.
var (
	errPrimaryTimeoutInvalid   = errors.New("primaryTimeout must be greater than 0")
	errSecondaryTimeoutInvalid = errors.New("secondaryTimeout must be greater than 0")
	errTertiaryTimeoutInvalid  = errors.New("tertiaryTimeout must be greater than 0")
	errMaxRetriesInvalid       = errors.New("maxRetries must be >= 0")
	errRecoveryIntervalInvalid = errors.New("recoveryCheckInterval must be greater than 0")
)

// Config controls the staged fallback cascade. Per-tier timeouts bound how
// long each tier waits on the wrapped operation; recovery settings govern
// the externally-triggered promotion path back to the primary tier.
type Config struct {
	// PrimaryTimeout bounds the primary-tier attempt.
	PrimaryTimeout time.Duration `json:"primary_timeout"`

	// SecondaryTimeout bounds the secondary-tier health probe.
	SecondaryTimeout time.Duration `json:"secondary_timeout"`

	// TertiaryTimeout is advisory: tertiary synthesis is local and
	// deterministic, so no deadline is enforced on it.
	TertiaryTimeout time.Duration `json:"tertiary_timeout"`

	// MaxRetries is advisory and currently unenforced; no code path retries
	// within a tier. Kept so callers carrying it forward do not break.
	MaxRetries int `json:"max_retries"`

	// RecoveryCheckInterval rate-limits CanRecover probes.
	RecoveryCheckInterval time.Duration `json:"recovery_check_interval"`

	// EnableUserNotifications controls whether results carry a
	// UserNotification. When false the field is omitted entirely.
	EnableUserNotifications bool `json:"enable_user_notifications"`

	// EnableMetrics controls Prometheus metric emission.
	EnableMetrics bool `json:"enable_metrics"`
}

// Validate checks the configuration for values that would break the cascade.
func (c *Config) Validate() error {
	if c.PrimaryTimeout <= 0 {
		return fmt.Errorf("%w, got %v", errPrimaryTimeoutInvalid, c.PrimaryTimeout)
	}
	if c.SecondaryTimeout <= 0 {
		return fmt.Errorf("%w, got %v", errSecondaryTimeoutInvalid, c.SecondaryTimeout)
	}
	if c.TertiaryTimeout <= 0 {
		return fmt.Errorf("%w, got %v", errTertiaryTimeoutInvalid, c.TertiaryTimeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w, got %d", errMaxRetriesInvalid, c.MaxRetries)
	}
	if c.RecoveryCheckInterval <= 0 {
		return fmt.Errorf("%w, got %v", errRecoveryIntervalInvalid, c.RecoveryCheckInterval)
	}
	return nil
}
