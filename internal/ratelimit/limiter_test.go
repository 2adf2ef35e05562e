package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_AllowWithinBudget(t *testing.T) {
	limiter := New(5, time.Minute)

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow(), "request %d should be admitted", i)
	}
	assert.False(t, limiter.Allow(), "budget exhausted")
}

func TestLimiter_WaitAdmitsImmediately(t *testing.T) {
	limiter := New(10, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, limiter.Wait(ctx))
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	limiter := New(1, time.Hour)
	require.True(t, limiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	assert.Error(t, err)
}

func TestLimiter_BucketsAreIndependent(t *testing.T) {
	limiter := New(100, time.Minute)
	limiter.SetBucketLimit("order", 1, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// The order bucket admits exactly one request; the public bucket is
	// unaffected by its exhaustion.
	require.NoError(t, limiter.WaitBucket(ctx, "order"))
	require.NoError(t, limiter.WaitBucket(ctx, "public"))

	tight, tightCancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer tightCancel()
	assert.Error(t, limiter.WaitBucket(tight, "order"))
}

func TestLimiter_BucketCreatedOnDemand(t *testing.T) {
	limiter := New(3, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, limiter.WaitBucket(ctx, "private"))
	assert.Contains(t, limiter.buckets, "private")
}
