package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flightvalue/internal/models"
)

func TestUnlimitedNeverBlocks(t *testing.T) {
	l := Unlimited()
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, l.Wait(ctx, models.ModeAward))
		require.NoError(t, l.WaitAcquire(ctx))
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitRespectsDeadline(t *testing.T) {
	l := NewModeLimiter(Config{RequestsPerSecond: 1, BurstSize: 1})

	require.NoError(t, l.Wait(context.Background(), models.ModeAward))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, models.ModeAward), "second search inside the window must wait past the deadline")
}

func TestModesAreIndependent(t *testing.T) {
	l := NewModeLimiter(Config{RequestsPerSecond: 1, BurstSize: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	require.NoError(t, l.Wait(ctx, models.ModeAward))
	require.NoError(t, l.Wait(ctx, models.ModeCash))
	require.NoError(t, l.WaitAcquire(ctx))
}

func TestSetModeLimit(t *testing.T) {
	l := NewModeLimiter(Config{RequestsPerSecond: 1, BurstSize: 1})
	l.SetModeLimit(models.ModeCash, 1000, 5)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Wait(ctx, models.ModeCash))
	}
}

func TestNewModeLimiterDefaults(t *testing.T) {
	l := NewModeLimiter(Config{})
	assert.Equal(t, DefaultConfig(), l.defaults)
}
