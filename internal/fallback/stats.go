package fallback

import (
	"sync/atomic"
)

// strategyStats provides thread-safe orchestrator metrics using atomic
// operations, tracking how often each tier produces the final result.
type strategyStats struct {
	attempts           atomic.Int64 // AttemptExecution calls
	primarySuccesses   atomic.Int64 // Results produced at the primary tier
	secondarySuccesses atomic.Int64 // Results produced at the secondary tier
	tertiaryFallbacks  atomic.Int64 // Results produced by the fail-safe floor
	systemFallbacks    atomic.Int64 // Results produced by the outer guard
	timeouts           atomic.Int64 // Tier deadline expiries
	recoveries         atomic.Int64 // ResetToOptimal invocations
}

// Stats holds an aggregated snapshot of orchestrator activity for
// monitoring and observability.
type Stats struct {
	// Attempts is the total number of AttemptExecution calls.
	Attempts int64 `json:"attempts"`
	// PrimarySuccesses counts results produced at the primary tier.
	PrimarySuccesses int64 `json:"primary_successes"`
	// SecondarySuccesses counts results produced at the secondary tier.
	SecondarySuccesses int64 `json:"secondary_successes"`
	// TertiaryFallbacks counts results produced by the fail-safe floor.
	TertiaryFallbacks int64 `json:"tertiary_fallbacks"`
	// SystemFallbacks counts results produced by the outer guard.
	SystemFallbacks int64 `json:"system_fallbacks"`
	// Timeouts counts tier deadline expiries across all attempts.
	Timeouts int64 `json:"timeouts"`
	// Recoveries counts explicit promotions back to the primary tier.
	Recoveries int64 `json:"recoveries"`
}

// Stats returns a snapshot of the current orchestrator statistics.
func (s *Strategy[T]) Stats() Stats {
	return Stats{
		Attempts:           s.stats.attempts.Load(),
		PrimarySuccesses:   s.stats.primarySuccesses.Load(),
		SecondarySuccesses: s.stats.secondarySuccesses.Load(),
		TertiaryFallbacks:  s.stats.tertiaryFallbacks.Load(),
		SystemFallbacks:    s.stats.systemFallbacks.Load(),
		Timeouts:           s.stats.timeouts.Load(),
		Recoveries:         s.stats.recoveries.Load(),
	}
}
