package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultPrimaryTimeout, cfg.PrimaryTimeout)
	assert.Equal(t, DefaultSecondaryTimeout, cfg.SecondaryTimeout)
	assert.Equal(t, DefaultTertiaryTimeout, cfg.TertiaryTimeout)
	assert.Equal(t, DefaultRecoveryCheckInterval, cfg.RecoveryCheckInterval)
	assert.True(t, cfg.EnableUserNotifications)
	assert.True(t, cfg.EnableMetrics)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero_primary_timeout",
			mutate:  func(c *Config) { c.PrimaryTimeout = 0 },
			wantErr: "primaryTimeout",
		},
		{
			name:    "negative_secondary_timeout",
			mutate:  func(c *Config) { c.SecondaryTimeout = -time.Second },
			wantErr: "secondaryTimeout",
		},
		{
			name:    "zero_tertiary_timeout",
			mutate:  func(c *Config) { c.TertiaryTimeout = 0 },
			wantErr: "tertiaryTimeout",
		},
		{
			name:    "negative_max_retries",
			mutate:  func(c *Config) { c.MaxRetries = -1 },
			wantErr: "maxRetries",
		},
		{
			name:    "zero_recovery_interval",
			mutate:  func(c *Config) { c.RecoveryCheckInterval = 0 },
			wantErr: "recoveryCheckInterval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("zero_max_retries_is_valid", func(t *testing.T) {
		cfg := valid()
		cfg.MaxRetries = 0
		assert.NoError(t, cfg.Validate())
	})
}
