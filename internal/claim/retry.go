package claim

import (
	"context"
	"errors"
	"time"
)

const (
	// DefaultRetryAttempts bounds how often a write is retried after a lock
	// timeout before the failure is surfaced to the caller.
	DefaultRetryAttempts = 3
	retryBackoff         = 50 * time.Millisecond
)

// WithRetry runs fn up to attempts times, retrying only on ErrLockTimeout
// with a short backoff. Conflicts and validation errors are deterministic and
// returned immediately.
func WithRetry(ctx context.Context, attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if !errors.Is(err, ErrLockTimeout) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff * time.Duration(i+1)):
		}
	}
	return err
}
