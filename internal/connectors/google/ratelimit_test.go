package google

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowsBurst(t *testing.T) {
	rl := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 3})

	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())
}

func TestRateLimiter_DefaultsForInvalidConfig(t *testing.T) {
	rl := NewRateLimiterWithConfig(RateLimitConfig{})

	for i := 0; i < DefaultRateLimit.BurstSize; i++ {
		assert.True(t, rl.Allow())
	}
}

func TestRateLimiter_BackoffBlocksAllow(t *testing.T) {
	rl := NewRateLimiter()

	rl.RecordRateLimitError(time.Hour)

	assert.False(t, rl.Allow())
}

func TestRateLimiter_WaitRespectsContext(t *testing.T) {
	rl := NewRateLimiter()
	rl.RecordRateLimitError(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_Wait(t *testing.T) {
	rl := NewRateLimiter()

	require.NoError(t, rl.Wait(context.Background()))
}
