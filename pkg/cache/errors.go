package cache

import (
	"context"
	"errors"
	"time"
)

// ErrBackend marks failures of the storage backend itself (disk, Redis),
// as opposed to misses.
var ErrBackend = errors.New("cache backend error")

// transientError marks a backend failure that may succeed on another try,
// such as a dropped Redis connection.
type transientError struct{ err error }

func (e transientError) Error() string { return e.err.Error() }
func (e transientError) Unwrap() error { return e.err }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err: err}
}

// IsRetryable reports whether err, or an error it wraps, was marked by Retryable.
func IsRetryable(err error) bool {
	var t transientError
	return errors.As(err, &t)
}

// Backoff schedules retries of transient backend errors.
type Backoff struct {
	Attempts int
	Delay    time.Duration // first wait, doubled after each failure
}

// DefaultBackoff tries three times, 100ms and then 200ms apart.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 100 * time.Millisecond}

// Do calls fn until it succeeds or returns an error that is not retryable.
// It gives up after b.Attempts calls or when ctx is done.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	delay := b.Delay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt >= b.Attempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}

// RetryWithBackoff runs fn under DefaultBackoff.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Do(ctx, fn)
}
