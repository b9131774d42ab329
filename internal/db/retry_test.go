package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func alwaysRetry(error) bool { return true }

func TestWithRetries_SuccessfulFirstAttempt(t *testing.T) {
	var calls int
	err := WithRetries(func() error {
		calls++
		return nil
	}, 3, alwaysRetry)

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetries_NonRetryableStopsImmediately(t *testing.T) {
	var calls int
	expected := errors.New("schema mismatch")
	err := WithRetries(func() error {
		calls++
		return expected
	}, 3, IsTransientError)

	assert.ErrorIs(t, err, expected)
	assert.Equal(t, 1, calls)
}

func TestWithRetries_ExhaustRetries(t *testing.T) {
	var calls int
	unreachable := errors.New("server selection timeout")
	err := WithRetries(func() error {
		calls++
		return unreachable
	}, 2, alwaysRetry)

	assert.ErrorIs(t, err, unreachable)
	assert.Equal(t, 3, calls)
}

func TestWithRetries_RecoversAfterTransientFailures(t *testing.T) {
	var calls int
	err := WithRetries(func() error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	}, 3, alwaysRetry)

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestIsTransientError(t *testing.T) {
	assert.False(t, IsTransientError(nil))
	assert.False(t, IsTransientError(context.Canceled))
	assert.False(t, IsTransientError(errors.New("bad document")))
	assert.True(t, IsTransientError(context.DeadlineExceeded))
}
