package services

import (
	"context"
	"time"
)

// BackoffFunc returns how long to wait after a failed attempt (1-based).
type BackoffFunc func(attempt int) time.Duration

// LinearBackoff waits attempt*base between tries.
func LinearBackoff(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * base
	}
}

// withRetries runs op up to maxAttempts times, waiting backoff(attempt)
// between failures. It returns the first successful result, or the zero
// value together with the last error once attempts are exhausted.
func withRetries[T any](ctx context.Context, maxAttempts int, backoff BackoffFunc, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
	return zero, lastErr
}
