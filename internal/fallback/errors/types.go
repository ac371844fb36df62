package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType categorizes failures of the wrapped generation operation.
// The type decides which degraded strategy handles the failure and which
// message reaches the user, so classification stays stable even when the
// underlying error text varies by provider.
type ErrorType string

const (
	// ErrorTypeTimeout indicates the operation exceeded its tier deadline.
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeRateLimit indicates the provider rejected the call for rate limiting.
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// ErrorTypeTemplate indicates the structured prompt template could not be parsed.
	ErrorTypeTemplate ErrorType = "template"

	// ErrorTypeOrchestration indicates any other primary orchestration failure.
	ErrorTypeOrchestration ErrorType = "orchestration"
)

// Common fallback operation errors for consistent error handling.
var (
	// ErrOperationPanicked indicates the wrapped operation panicked; the
	// orchestrator treats it like any other operation failure.
	ErrOperationPanicked = errors.New("operation panicked")

	// ErrNilSynthesizer indicates a strategy was constructed without a
	// tertiary synthesizer, which would break the fail-safe floor.
	ErrNilSynthesizer = errors.New("tertiary synthesizer must not be nil")

	// ErrNilOperation indicates AttemptExecution was handed a nil operation.
	ErrNilOperation = errors.New("operation must not be nil")
)

// TimeoutError is raised by the timeout guard when an operation does not
// settle before its tier deadline. The guard stops waiting only; the
// operation itself may continue executing in the background.
type TimeoutError struct {
	Stage   string        `json:"stage"`   // Tier that was waiting, e.g. "primary"
	Timeout time.Duration `json:"timeout"` // Configured deadline for the tier
}

// Error returns a message that the string classifier also recognizes as a
// timeout, keeping typed and untyped classification consistent.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s generation timeout after %s", e.Stage, e.Timeout)
}

// IsTimeout reports whether err is a tier deadline expiry, either as a
// typed TimeoutError or a wrapped context.DeadlineExceeded.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}
