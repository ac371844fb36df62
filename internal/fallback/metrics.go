package fallback

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// metricAttempts tracks finished attempts by the tier that produced the
	// final result.
	metricAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staged_fallback_attempts_total",
			Help: "Total attempts, labeled by the tier that produced the result",
		},
		[]string{"tier"},
	)

	// metricFailures tracks recorded tier failures by classified reason.
	metricFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staged_fallback_failures_total",
			Help: "Total tier failures recorded during attempts",
		},
		[]string{"tier", "reason"},
	)

	// metricRecoveries tracks explicit promotions back to the primary tier.
	metricRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "staged_fallback_recoveries_total",
			Help: "Total explicit recoveries to the primary tier",
		},
	)

	// metricProcessing tracks end-to-end attempt latency per result tier.
	metricProcessing = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "staged_fallback_processing_seconds",
			Help:    "Attempt processing time in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tier"},
	)
)

// observeAttempt records attempt-level metrics when metrics are enabled.
func (s *Strategy[T]) observeAttempt(tier Tier, elapsed time.Duration) {
	if !s.cfg.EnableMetrics {
		return
	}
	metricAttempts.WithLabelValues(tier.String()).Inc()
	metricProcessing.WithLabelValues(tier.String()).Observe(elapsed.Seconds())
}

// observeFailure records a classified tier failure when metrics are enabled.
func (s *Strategy[T]) observeFailure(tier Tier, reason string) {
	if !s.cfg.EnableMetrics {
		return
	}
	metricFailures.WithLabelValues(tier.String(), reason).Inc()
}

// observeRecovery records an explicit recovery when metrics are enabled.
func (s *Strategy[T]) observeRecovery() {
	if !s.cfg.EnableMetrics {
		return
	}
	metricRecoveries.Inc()
}
