package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/service"
)

var (
	// ErrRateLimit signals a feed provider told us to back off.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries signals the retry budget ran out before the operation succeeded.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryableError marks whether a failure is worth retrying. Feed connectors
// wrap provider errors in one so WithRetry can tell a transient network
// hiccup from a hard failure like bad credentials.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// WithRetry runs the operation until it succeeds, the retry budget is spent,
// or the context is canceled. Backoff grows by Multiplier up to MaxDelay; a
// rate limit jumps straight to MaxDelay since providers meter in whole
// windows, not per request.
func WithRetry(ctx context.Context, operation func() error, opts service.RetryOptions) error {
	opts = retryDefaults(opts)

	delay := opts.InitialDelay
	for attempt := 1; ; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		var retryable *RetryableError
		if errors.As(err, &retryable) && !retryable.Retryable {
			return err
		}
		if attempt == opts.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %v", ErrMaxRetries, opts.MaxAttempts, err)
		}

		if errors.Is(err, ErrRateLimit) {
			delay = opts.MaxDelay
		}

		slog.Warn("Retrying failed operation",
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"delay", delay,
			"error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * opts.Multiplier)
		if delay > opts.MaxDelay {
			delay = opts.MaxDelay
		}
	}
}

func retryDefaults(opts service.RetryOptions) service.RetryOptions {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 100 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 30 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}
	return opts
}
