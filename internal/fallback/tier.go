// Package fallback implements a staged fallback orchestrator around a single
// remote, possibly-slow, possibly-failing generation operation. The
// orchestrator guarantees a usable result under bounded time by degrading
// one tier at a time, Primary through Tertiary, instead of propagating
// failure to the caller.
package fallback

// Tier represents a named degradation level. Tiers are totally ordered by
// decreasing ambition: Primary is the full-featured strategy, Tertiary the
// fail-safe floor that cannot fail. Within a single attempt the orchestrator
// only ever moves down the order, one step per recorded failure.
type Tier int32

const (
	// TierPrimary is the full-featured generation strategy.
	TierPrimary Tier = iota
	// TierSecondary is the simplified strategy used after one failure.
	TierSecondary
	// TierTertiary is the fail-safe floor that synthesizes a result locally.
	TierTertiary
)

// String returns the string representation of the tier.
func (t Tier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// Next returns the tier the cascade degrades to after a failure at t.
// The explicit transition table prevents accidental tier skipping when the
// cascade is extended. The second return is false at the terminal tier.
func (t Tier) Next() (Tier, bool) {
	switch t {
	case TierPrimary:
		return TierSecondary, true
	case TierSecondary:
		return TierTertiary, true
	default:
		return TierTertiary, false
	}
}
