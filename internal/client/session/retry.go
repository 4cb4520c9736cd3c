package session

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy bounds a repeated operation: at most Attempts calls with a
// fixed Delay between them.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy re-fetches a self-healed profile exactly once.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 1}
}

// Do calls fn until it succeeds, returns an error not marked with
// Retryable, or the attempts run out. The last error is returned unwrapped.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.Delay
	b := retry.WithMaxRetries(uint64(attempts-1), retry.BackoffFunc(func() (time.Duration, bool) {
		return delay, false
	}))
	return retry.Do(ctx, b, fn)
}

// Retryable marks err as worth another attempt under a RetryPolicy.
func Retryable(err error) error {
	return retry.RetryableError(err)
}
