package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
)

const (
	DefaultMaxAttempts     = 3
	DefaultInitialInterval = 200 * time.Millisecond
	DefaultMaxInterval     = 2 * time.Second
)

// Policy is the retry budget shared by every call to the clinical data
// repository. MaxAttempts counts the first try.
type Policy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// OnRetry, when set, is called before sleeping after a failed attempt.
	OnRetry func(attempt int, err error, wait time.Duration)
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     DefaultMaxAttempts,
		InitialInterval: DefaultInitialInterval,
		MaxInterval:     DefaultMaxInterval,
	}
}

// Do runs op until it succeeds, returns an error that is not retryable, the
// attempts are used up or ctx is done. The last error is returned unchanged.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	attempt := 0
	operation := func() error {
		attempt++
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !exceptions.IsRetryable(err) || ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	var notify backoff.Notify
	if p.OnRetry != nil {
		notify = func(err error, wait time.Duration) {
			p.OnRetry(attempt, err, wait)
		}
	}

	return backoff.RetryNotify(operation, p.backOff(ctx, attempts), notify)
}

func (p Policy) backOff(ctx context.Context, attempts int) backoff.BackOff {
	exponential := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		exponential.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		exponential.MaxInterval = p.MaxInterval
	}
	exponential.MaxElapsedTime = 0
	exponential.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(exponential, uint64(attempts-1)), ctx)
}
