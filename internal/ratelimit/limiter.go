package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter enforces a minimum spacing between outbound requests, plus a
// bounded random jitter so the request cadence is not perfectly regular.
// One Limiter is constructed at process start and shared by every fetcher,
// so the effective request rate against the source stays bounded no matter
// how many pipelines run concurrently.
type Limiter struct {
	limiter   *rate.Limiter
	maxJitter time.Duration

	mu   sync.Mutex
	rand *rand.Rand
}

func New(minInterval, maxJitter time.Duration) *Limiter {
	return &Limiter{
		limiter:   rate.NewLimiter(rate.Every(minInterval), 1),
		maxJitter: maxJitter,
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Acquire blocks until the caller may issue the next request. Concurrent
// callers are serialized by the underlying limiter; the induced delay is
// bounded by minInterval + maxJitter.
func (l *Limiter) Acquire(ctx context.Context) error {

	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}

	if l.maxJitter <= 0 {
		return nil
	}

	l.mu.Lock()
	jitter := time.Duration(l.rand.Int63n(int64(l.maxJitter)))
	l.mu.Unlock()

	timer := time.NewTimer(jitter)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
