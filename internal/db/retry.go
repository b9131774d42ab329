package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// Operation is a function that performs an action and returns an error if it fails.
type Operation func() error

// IsRetryable decides whether a failed attempt should be repeated.
type IsRetryable func(err error) bool

const DefaultMaxRetries = 3

// Try executes an operation, retrying transient MongoDB failures DefaultMaxRetries times.
func Try(op Operation) error {
	return WithRetries(op, DefaultMaxRetries, IsTransientError)
}

// WithRetries runs op once plus up to maxRetries more times while isRetryable(err) holds.
// Attempts are spaced with a small incremental backoff.
func WithRetries(op Operation, maxRetries int, isRetryable IsRetryable) error {
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if attempt == maxRetries || !isRetryable(err) {
			return err
		}
		slog.Debug("Retrying database operation", "attempt", attempt+1, "error", err)
		time.Sleep(time.Duration(50*(attempt+1)) * time.Millisecond)
	}
	return err
}

// IsTransientError reports network failures and timeouts, which are worth another attempt.
// Cancellation of the caller's context is never transient.
func IsTransientError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}
