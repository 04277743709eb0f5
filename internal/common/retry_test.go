package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOpts() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errors.New("connection reset"), Retryable: true}
		}
		return nil
	}, fastOpts())

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_NonRetryableStopsImmediately(t *testing.T) {
	calls := 0
	hard := &RetryableError{Err: errors.New("bad credentials"), Retryable: false}
	err := WithRetry(context.Background(), func() error {
		calls++
		return hard
	}, fastOpts())

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_BudgetExhausted(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return errors.New("still down")
	}, fastOpts())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error {
		return errors.New("still down")
	}, fastOpts())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetryableError_UnwrapsSentinels(t *testing.T) {
	wrapped := &RetryableError{Err: ErrRateLimit, Retryable: true}
	assert.ErrorIs(t, wrapped, ErrRateLimit)
}
