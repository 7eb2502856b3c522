package mem

import (
	"sync"
	"time"
)

// RateLimiter enforces a per-source token/interval budget. Callers that run
// out of tokens must back off; the limiter never blocks.
type RateLimiter interface {
	Allow(source string) bool
}

type bucket struct {
	tokens   int
	lastFill time.Time
}

type TokenBucketLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity int
	interval time.Duration
	now      func() time.Time
}

func NewTokenBucketLimiter(capacity int, interval time.Duration) *TokenBucketLimiter {
	return &TokenBucketLimiter{
		buckets:  make(map[string]*bucket),
		capacity: capacity,
		interval: interval,
		now:      time.Now,
	}
}

func (l *TokenBucketLimiter) Allow(source string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[source]
	now := l.now()
	if !ok {
		b = &bucket{tokens: l.capacity, lastFill: now}
		l.buckets[source] = b
	}

	if elapsed := now.Sub(b.lastFill); elapsed >= l.interval {
		b.tokens = l.capacity
		b.lastFill = now
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}
