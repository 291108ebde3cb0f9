package resilience

import "errors"

// Common resilience errors
var (
	// ErrHandlerClosed is returned when work is scheduled on a handler that
	// has already been shut down.
	ErrHandlerClosed = errors.New("resilience: handler is closed")

	// ErrRecoveryFailed is returned when a recovery attempt could not
	// re-establish the integration.
	ErrRecoveryFailed = errors.New("resilience: recovery failed")
)

// IsHandlerClosedError checks if the error means the handler was shut down.
func IsHandlerClosedError(err error) bool {
	return errors.Is(err, ErrHandlerClosed)
}

// IsRecoveryFailedError checks if the error is a failed recovery attempt.
func IsRecoveryFailedError(err error) bool {
	return errors.Is(err, ErrRecoveryFailed)
}
