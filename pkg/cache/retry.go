package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks failures to reach a remote backend.
var ErrNetwork = errors.New("network error")

type retryable struct{ err error }

func (r retryable) Error() string { return r.err.Error() }
func (r retryable) Unwrap() error { return r.err }

// Retryable marks err as transient. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryable{err: err}
}

// IsRetryable reports whether err, or any error it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var r retryable
	return errors.As(err, &r)
}

// Backoff retries operations that fail with a [Retryable] error, doubling
// the wait after each attempt up to Max.
type Backoff struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

// DefaultBackoff makes three attempts over roughly 600ms.
var DefaultBackoff = Backoff{Attempts: 3, Initial: 200 * time.Millisecond, Max: 2 * time.Second}

// Do calls fn until it succeeds, fails with a non-retryable error, the
// attempts are used up or ctx ends. It returns fn's last error, or ctx's
// error if ctx ended while waiting.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	wait := b.Initial
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		if wait *= 2; b.Max > 0 && wait > b.Max {
			wait = b.Max
		}
	}
	return err
}
