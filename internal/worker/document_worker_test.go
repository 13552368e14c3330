package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry_FirstAttemptSucceeds(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, func(attempt int) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_RecoversOnLaterAttempt(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, func(attempt int) error {
		calls++
		if attempt == 0 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_ExhaustsAndReturnsLastError(t *testing.T) {
	boom := errors.New("disk full")
	err := withRetry(context.Background(), 1, func(attempt int) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestWithRetry_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := withRetry(ctx, 3, func(attempt int) error {
		calls++
		return errors.New("fail")
	})
	// The first attempt runs immediately; the backoff wait observes the
	// cancellation before attempt two.
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestComputeRetryBackoff(t *testing.T) {
	assert.Equal(t, time.Minute, computeRetryBackoff(0))
	assert.Equal(t, time.Minute, computeRetryBackoff(1))
	assert.Equal(t, 2*time.Minute, computeRetryBackoff(2))
	assert.Equal(t, 4*time.Minute, computeRetryBackoff(3))
}
