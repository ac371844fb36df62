package configuration

import (
	"time"
)

// Tier timeout constants.
const (
	DefaultPrimaryTimeout   = 30 * time.Second
	DefaultSecondaryTimeout = 15 * time.Second
	DefaultTertiaryTimeout  = 5 * time.Second
)

// Recovery and retry constants.
const (
	DefaultMaxRetries            = 2 // Advisory only, see Config.MaxRetries
	DefaultRecoveryCheckInterval = time.Minute
)

// DefaultConfig returns production-ready configuration with sensible
// defaults: generous primary deadline, tighter degraded deadlines, and
// user notifications plus metrics enabled.
func DefaultConfig() *Config {
	return &Config{
		PrimaryTimeout:          DefaultPrimaryTimeout,
		SecondaryTimeout:        DefaultSecondaryTimeout,
		TertiaryTimeout:         DefaultTertiaryTimeout,
		MaxRetries:              DefaultMaxRetries,
		RecoveryCheckInterval:   DefaultRecoveryCheckInterval,
		EnableUserNotifications: true,
		EnableMetrics:           true,
	}
}
