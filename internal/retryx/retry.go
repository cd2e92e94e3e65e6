// Package retryx runs calls under an explicit retry policy: a bounded attempt
// count, a backoff schedule and a predicate deciding which errors deserve
// another attempt.
package retryx

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// Policy describes how a call is retried. Backoff is invoked once per Do
// call, because go-retry backoffs are stateful.
type Policy struct {
	MaxAttempts int
	Backoff     func() retry.Backoff
	Retryable   func(error) bool
}

// Exponential returns a backoff factory doubling from base and capped at max.
// A zero max leaves the schedule uncapped.
func Exponential(base, max time.Duration) func() retry.Backoff {
	return func() retry.Backoff {
		b := retry.NewExponential(base)
		if max > 0 {
			b = retry.WithCappedDuration(max, b)
		}
		return b
	}
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p Policy) backoff() retry.Backoff {
	var b retry.Backoff
	if p.Backoff != nil {
		b = p.Backoff()
	} else {
		b = retry.NewConstant(time.Millisecond)
	}
	return retry.WithMaxRetries(uint64(p.attempts()-1), b)
}

// Do calls fn until it succeeds, returns an error rejected by p.Retryable,
// the attempts are exhausted or ctx is done. attempt starts at 1. On
// exhaustion the last error returned by fn is returned unchanged.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var (
		result  T
		attempt int
	)

	err := retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		attempt++
		v, err := fn(ctx, attempt)
		if err != nil {
			if p.Retryable != nil && p.Retryable(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
