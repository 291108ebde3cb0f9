package resilience

import (
	"context"
	"fmt"
	"time"
)

// ExecuteWithRetry runs op and retries it up to maxRetries additional times
// on error, sleeping baseDelay * 2^attempt between attempts (exponential
// backoff, no jitter).
//
// Parameters:
//   - ctx: Cancels the backoff sleep and further attempts. The context error
//     is returned if cancellation wins the race.
//   - op: The operation to run. It receives ctx and is responsible for
//     honouring it internally.
//   - maxRetries: The number of *additional* attempts after the first one.
//     maxRetries=3 means up to 4 invocations of op.
//   - baseDelay: The delay before the first retry; doubled each attempt.
//
// Returns:
//   - T: The result of the first successful attempt.
//   - error: Nil on success; the final attempt's error, wrapped with the
//     attempt count, once all attempts are exhausted.
//
// ExecuteWithRetry is pure with respect to the package: it holds no shared
// state and may be called concurrently.
//
// Example:
//
//	result, err := resilience.ExecuteWithRetry(ctx, func(ctx context.Context) (bool, error) {
//	    return attachProcessor(ctx)
//	}, 3, 100*time.Millisecond)
func ExecuteWithRetry[T any](ctx context.Context, op func(ctx context.Context) (T, error), maxRetries int, baseDelay time.Duration) (T, error) {
	var zero T
	var lastErr error

	if maxRetries < 0 {
		maxRetries = 0
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	return zero, fmt.Errorf("operation failed after %d attempts: %w", maxRetries+1, lastErr)
}
