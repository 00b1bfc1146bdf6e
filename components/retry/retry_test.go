package retry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatlonely/goflux/components/retry"
)

func TestPolicySucceedsAfterTransientFailures(t *testing.T) {
	p := retry.New(retry.Config{MaxRetries: 5, InitialIntervalMs: 1, MaxIntervalMs: 10, Multiplier: 1.1})

	attempts := 0
	err := p.Do(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestPolicyExhaustsRetryBudget(t *testing.T) {
	p := retry.New(retry.Config{MaxRetries: 2, InitialIntervalMs: 1, MaxIntervalMs: 5, Multiplier: 1.1})

	attempts := 0
	err := p.Do(context.Background(), func() error {
		attempts++
		return errors.New("always fails")
	})

	assert.Error(t, err)
	assert.Equal(t, 3, attempts, "initial attempt plus MaxRetries retries")
}

func TestConstantStrategyRetriesOnFixedInterval(t *testing.T) {
	p := retry.NewConstant(retry.Config{MaxRetries: 3, InitialIntervalMs: 1})

	attempts := 0
	err := p.Do(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestPolicyRespectsContextCancellation(t *testing.T) {
	p := retry.New(retry.DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := p.Do(ctx, func() error {
		attempts++
		return errors.New("fails")
	})

	assert.Error(t, err)
}
