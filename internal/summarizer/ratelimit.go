package summarizer

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// backoffLimiter smooths request rate and honours provider-suggested waits.
type backoffLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

func newBackoffLimiter(requestsPerMinute int) *backoffLimiter {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Limit(float64(requestsPerMinute) / 60.0)
	}
	return &backoffLimiter{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until any recorded backoff has elapsed and a token is available.
func (b *backoffLimiter) Wait(ctx context.Context) error {
	b.mu.Lock()
	retryAt := b.retryAt
	b.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return b.limiter.Wait(ctx)
}

// Backoff delays the next Wait by d.
func (b *backoffLimiter) Backoff(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if at := time.Now().Add(d); at.After(b.retryAt) {
		b.retryAt = at
	}
}
