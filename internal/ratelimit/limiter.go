// Package ratelimit throttles outgoing API calls with a global limiter
// plus independent per-endpoint-class buckets, so a burst of market-data
// reads cannot starve order submissions.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter enforces a request budget per period.
type Limiter struct {
	global   *rate.Limiter
	mu       sync.Mutex
	buckets  map[string]*rate.Limiter
	requests int
	period   time.Duration
}

// New creates a Limiter allowing the given number of requests per period.
func New(requests int, period time.Duration) *Limiter {
	return &Limiter{
		global:   rate.NewLimiter(limit(requests, period), requests),
		buckets:  make(map[string]*rate.Limiter),
		requests: requests,
		period:   period,
	}
}

func limit(requests int, period time.Duration) rate.Limit {
	return rate.Limit(float64(requests) / period.Seconds())
}

// Wait blocks until the global limiter admits a request or the context
// is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.global.Wait(ctx)
}

// WaitBucket blocks on both the named bucket and the global limiter.
// Buckets are created on demand with the default budget.
func (l *Limiter) WaitBucket(ctx context.Context, bucket string) error {
	if err := l.getBucket(bucket).Wait(ctx); err != nil {
		return err
	}
	return l.global.Wait(ctx)
}

// Allow reports whether the global limiter admits a request right now.
func (l *Limiter) Allow() bool {
	return l.global.Allow()
}

// SetBucketLimit overrides the budget of one bucket, creating it if
// needed.
func (l *Limiter) SetBucketLimit(bucket string, requests int, period time.Duration) {
	b := l.getBucket(bucket)
	b.SetLimit(limit(requests, period))
	b.SetBurst(requests)
}

func (l *Limiter) getBucket(bucket string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.buckets[bucket]; ok {
		return b
	}
	b := rate.NewLimiter(limit(l.requests, l.period), l.requests)
	l.buckets[bucket] = b
	return b
}
