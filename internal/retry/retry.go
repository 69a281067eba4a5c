// Package retry provides the single retry policy shared by the trends
// fetch layer and the story generation backend call, so both sides back
// off identically.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy describes a bounded exponential backoff schedule.
type Policy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	Multiplier      float64
}

// DefaultPolicy matches the service-wide retry discipline: up to 3
// attempts, 1s initial delay, doubling between attempts.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, InitialInterval: time.Second, Multiplier: 2.0}
}

// WithAttempts returns a copy of the policy with a different attempt cap.
// Values below 1 fall back to a single attempt.
func (p Policy) WithAttempts(n int) Policy {
	if n < 1 {
		n = 1
	}
	p.MaxAttempts = n
	return p
}

// Permanent marks err as non-retryable; Do returns it immediately.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs op under the policy, stopping early when ctx is done. The
// returned error is the last attempt's error.
func (p Policy) Do(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.Multiplier = p.Multiplier
	b.MaxElapsedTime = 0

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	// WithMaxRetries counts retries after the first attempt.
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx))
}
