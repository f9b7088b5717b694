package assembler

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds narration retries. Randomization is disabled so the
// delay schedule is deterministic: InitialDelay, InitialDelay*Multiplier,
// and so on, for at most MaxAttempts total attempts.
type RetryPolicy struct {
	MaxAttempts  uint64
	InitialDelay time.Duration
	Multiplier   float64
}

// DefaultRetryPolicy retries twice after the first failure, 250ms then
// 500ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: 250 * time.Millisecond,
		Multiplier:   2,
	}
}

// Run executes op under the policy, returning the last error once the
// attempt budget is exhausted.
func (p RetryPolicy) Run(ctx context.Context, op backoff.Operation) error {
	attempts := p.MaxAttempts
	if attempts == 0 {
		attempts = 1
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialDelay
	b.Multiplier = p.Multiplier
	b.RandomizationFactor = 0

	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, attempts-1), ctx))
}
