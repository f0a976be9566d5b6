package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Limiter_EnforcesMinimumInterval(t *testing.T) {

	minInterval := 50 * time.Millisecond
	limiter := New(minInterval, 0)

	require.NoError(t, limiter.Acquire(context.Background()))

	var stamps []time.Time
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Acquire(context.Background()))
		stamps = append(stamps, time.Now())
	}

	tolerance := 5 * time.Millisecond
	for i := 1; i < len(stamps); i++ {
		assert.GreaterOrEqual(t, stamps[i].Sub(stamps[i-1]), minInterval-tolerance)
	}
}

func Test_Limiter_JitterStaysWithinBound(t *testing.T) {

	minInterval := 10 * time.Millisecond
	maxJitter := 20 * time.Millisecond
	limiter := New(minInterval, maxJitter)

	require.NoError(t, limiter.Acquire(context.Background()))

	start := time.Now()
	require.NoError(t, limiter.Acquire(context.Background()))
	elapsed := time.Since(start)

	assert.Less(t, elapsed, minInterval+maxJitter+50*time.Millisecond)
}

func Test_Limiter_AcquireHonorsContextCancellation(t *testing.T) {

	limiter := New(time.Hour, 0)
	require.NoError(t, limiter.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Acquire(ctx)
	assert.Error(t, err)
}
