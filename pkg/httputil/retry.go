package httputil

import (
	"context"
	"math/rand/v2"
	"time"
)

// MaxJitter bounds the delay chosen by [Jitter].
const MaxJitter = 100 * time.Millisecond

// RetryPolicy controls [Retry].
type RetryPolicy struct {
	// Retries is how many times fn is called again after a failure.
	Retries int

	// Backoff returns the delay before the next retry. Nil means no delay.
	Backoff func() time.Duration

	// Sleep waits for the delay. Nil means [Sleep].
	Sleep func(ctx context.Context, d time.Duration) error

	// OnRetry is called before each retry with the error that triggered it,
	// the retries left after this one, and the chosen delay.
	OnRetry func(err error, remaining int, delay time.Duration)
}

// Retry calls fn until it succeeds or p.Retries retries have been used.
// Every error is retried. The last error is returned unmodified, or
// ctx.Err() if the context ends while waiting.
func Retry(ctx context.Context, p RetryPolicy, fn func() error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	remaining := max(p.Retries, 0)
	for {
		err := fn()
		if err == nil {
			return nil
		}
		if remaining == 0 {
			return err
		}
		remaining--

		var delay time.Duration
		if p.Backoff != nil {
			delay = p.Backoff()
		}
		if p.OnRetry != nil {
			p.OnRetry(err, remaining, delay)
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
}

// Jitter returns a uniformly random duration in [0, MaxJitter).
func Jitter() time.Duration {
	return time.Duration(rand.Int64N(int64(MaxJitter)))
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
