package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
)

func fastPolicy() Policy {
	return Policy{MaxAttempts: 3, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
}

func TestPolicyDo(t *testing.T) {
	t.Run("succeeds first time", func(t *testing.T) {
		calls := 0
		err := fastPolicy().Do(context.Background(), func(ctx context.Context) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("recovers from transient failure", func(t *testing.T) {
		calls := 0
		err := fastPolicy().Do(context.Background(), func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return exceptions.ErrSendHTTPRequest(errors.New("connection reset"))
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after three attempts with the last error", func(t *testing.T) {
		calls := 0
		var last error
		err := fastPolicy().Do(context.Background(), func(ctx context.Context) error {
			calls++
			last = exceptions.ErrSendHTTPRequest(errors.New("timeout"))
			return last
		})
		assert.Equal(t, 3, calls)
		assert.Same(t, last, err)
		assert.Equal(t, constvars.StatusBadGateway, exceptions.StatusCode(err))
	})

	t.Run("unprocessable is not retried", func(t *testing.T) {
		calls := 0
		err := fastPolicy().Do(context.Background(), func(ctx context.Context) error {
			calls++
			return exceptions.ErrNoIdentifier(constvars.ResourcePatient)
		})
		assert.Equal(t, 1, calls)
		assert.Equal(t, constvars.StatusUnprocessableEntity, exceptions.StatusCode(err))
	})

	t.Run("cancelled context stops", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := fastPolicy().Do(ctx, func(ctx context.Context) error {
			calls++
			cancel()
			return exceptions.ErrSendHTTPRequest(errors.New("refused"))
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("notifies before each retry", func(t *testing.T) {
		var attempts []int
		policy := fastPolicy()
		policy.OnRetry = func(attempt int, err error, wait time.Duration) {
			attempts = append(attempts, attempt)
		}
		_ = policy.Do(context.Background(), func(ctx context.Context) error {
			return errors.New("boom")
		})
		assert.Equal(t, []int{1, 2}, attempts)
	})

	t.Run("zero attempts still runs once", func(t *testing.T) {
		calls := 0
		_ = Policy{}.Do(context.Background(), func(ctx context.Context) error {
			calls++
			return errors.New("boom")
		})
		assert.Equal(t, 1, calls)
	})
}
