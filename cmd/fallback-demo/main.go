// Command fallback-demo runs the staged fallback orchestrator against a
// simulated flaky generation endpoint, showing the cascade degrading under
// failure and the recovery scheduler promoting it back.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/ahrav/go-fallback/internal/fallback"
	"github.com/ahrav/go-fallback/internal/fallback/configuration"
)

// flakyGenerator simulates a remote generation endpoint that degrades and
// recovers over time.
type flakyGenerator struct {
	calls int
}

// generate is slow on the first call, rate-limited for the next few, and
// healthy afterwards, so one run walks the whole degrade-and-recover arc.
func (g *flakyGenerator) generate(ctx context.Context) (string, error) {
	g.calls++
	switch {
	case g.calls == 1:
		// Simulated slow call; the tier deadline gives up first.
		select {
		case <-time.After(10 * time.Second):
			return "slow structured render", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	case g.calls <= 4:
		return "", errors.New("429: rate limit exceeded for image generation")
	default:
		return fmt.Sprintf("structured render #%d", rand.Intn(1000)), nil
	}
}

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	})))

	cfg := configuration.DefaultConfig()
	cfg.PrimaryTimeout = 500 * time.Millisecond
	cfg.SecondaryTimeout = 300 * time.Millisecond
	cfg.RecoveryCheckInterval = 2 * time.Second

	strategy, err := fallback.New(cfg, func(prompt string) string {
		return "unstructured render of: " + strings.TrimSpace(prompt)
	})
	if err != nil {
		slog.Error("failed to build strategy", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := fallback.NewRecoveryScheduler(strategy, time.Second)
	go scheduler.Run(ctx)

	gen := &flakyGenerator{}
	for i := 1; i <= 10; i++ {
		if ctx.Err() != nil {
			break
		}

		attempt := fallback.NewAttemptContext("a cat sitting on a windowsill", 15*time.Second)
		attempt.AttemptNumber = i

		res := strategy.AttemptExecution(ctx, gen.generate, attempt)
		slog.Info("attempt finished",
			"attempt", i,
			"tier", res.TierUsed.String(),
			"value", res.Value,
			"fallback_reason", res.FallbackReason,
			"processing_time", res.ProcessingTime)
		if res.UserNotification != nil {
			slog.Info("user notification",
				"level", string(res.UserNotification.Level),
				"message", res.UserNotification.Message,
				"actionable", res.UserNotification.Actionable)
		}

		time.Sleep(700 * time.Millisecond)
	}

	history := strategy.GetFailureHistory()
	stats := strategy.Stats()
	slog.Info("run complete",
		"tier", strategy.CurrentTier().String(),
		"total_failures", history.TotalFailures,
		"streak", history.CurrentFailureStreak,
		"primary_successes", stats.PrimarySuccesses,
		"secondary_successes", stats.SecondarySuccesses,
		"tertiary_fallbacks", stats.TertiaryFallbacks)
}
