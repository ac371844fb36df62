package fallback

import (
	"sync"
	"time"
)

const (
	// maxRecentFailures bounds the rolling failure log; the oldest record is
	// evicted once the bound is exceeded.
	maxRecentFailures = 10

	// recentFailureWindow is how far back CanRecover looks for unrecovered
	// failures.
	recentFailureWindow = 5 * time.Minute
)

// FailureRecord is one entry in the rolling failure log.
type FailureRecord struct {
	Tier      Tier      `json:"tier"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
	Recovered bool      `json:"recovered"`
}

// FailureHistory is an immutable snapshot of the orchestrator's failure log.
type FailureHistory struct {
	// TotalFailures counts every recorded failure over the orchestrator's
	// lifetime; it is monotonic and never reset.
	TotalFailures uint64 `json:"total_failures"`

	// RecentFailures holds at most the last ten failure records, oldest first.
	RecentFailures []FailureRecord `json:"recent_failures"`

	// CurrentFailureStreak counts failures since the last recovery.
	CurrentFailureStreak uint64 `json:"current_failure_streak"`

	// LastRecovery is the zero time if no recovery has happened yet.
	LastRecovery time.Time `json:"last_recovery,omitzero"`
}

// failureHistory is the live, mutex-guarded failure log owned exclusively by
// one strategy instance. It is created empty at construction and only ever
// trimmed, never deleted.
type failureHistory struct {
	mu           sync.Mutex
	total        uint64
	recent       []FailureRecord
	streak       uint64
	lastRecovery time.Time
}

func newFailureHistory() *failureHistory {
	return &failureHistory{recent: make([]FailureRecord, 0, maxRecentFailures)}
}

// recordFailure appends a new unresolved record, bumping the monotonic total
// and the current streak. The oldest record is evicted beyond the bound.
func (h *failureHistory) recordFailure(tier Tier, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.total++
	h.streak++
	h.recent = append(h.recent, FailureRecord{
		Tier:      tier,
		Reason:    reason,
		Timestamp: time.Now(),
	})
	if len(h.recent) > maxRecentFailures {
		h.recent = append(h.recent[:0], h.recent[1:]...)
	}
}

// markRecovered marks every current record as recovered, resets the streak,
// and stamps the recovery time. The total failure count is untouched.
func (h *failureHistory) markRecovered(now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.recent {
		h.recent[i].Recovered = true
	}
	h.streak = 0
	h.lastRecovery = now
}

// totalFailures returns the lifetime failure count.
func (h *failureHistory) totalFailures() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.total
}

// hasUnrecoveredSince reports whether any record at or after cutoff remains
// unresolved.
func (h *failureHistory) hasUnrecoveredSince(cutoff time.Time) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.recent {
		if !h.recent[i].Recovered && !h.recent[i].Timestamp.Before(cutoff) {
			return true
		}
	}
	return false
}

// lastReason returns the reason of the most recent record, or "" when the
// log is empty.
func (h *failureHistory) lastReason() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.recent) == 0 {
		return ""
	}
	return h.recent[len(h.recent)-1].Reason
}

// snapshot returns a deep copy so callers can never mutate the live log.
func (h *failureHistory) snapshot() FailureHistory {
	h.mu.Lock()
	defer h.mu.Unlock()

	recent := make([]FailureRecord, len(h.recent))
	copy(recent, h.recent)
	return FailureHistory{
		TotalFailures:        h.total,
		RecentFailures:       recent,
		CurrentFailureStreak: h.streak,
		LastRecovery:         h.lastRecovery,
	}
}
