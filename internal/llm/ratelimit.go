package llm

import (
	"context"
	"math"
	"sync"
	"time"
)

// Gemini quotas are enforced per model, so the default pacing applies to
// each candidate separately.
const (
	DefaultRPS   = 0.25
	DefaultBurst = 2
)

type bucket struct {
	tokens float64
	last   time.Time
}

// modelLimiter is a token bucket per model identifier. Tokens refill lazily
// from elapsed time, so an idle limiter costs nothing.
type modelLimiter struct {
	rate  float64
	burst float64
	now   func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stopCh   chan struct{}
	stopOnce sync.Once
}

// newModelLimiter returns nil when rps <= 0; Acquire on a nil limiter is a no-op.
func newModelLimiter(rps float64, burst int) *modelLimiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &modelLimiter{
		rate:    rps,
		burst:   float64(burst),
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stopCh:  make(chan struct{}),
	}
}

// reserve takes one token from model's bucket and returns how long the
// caller has to wait before the token becomes valid.
func (l *modelLimiter) reserve(model string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	b, ok := l.buckets[model]
	if !ok {
		b = &bucket{tokens: l.burst, last: now}
		l.buckets[model] = b
	}
	if elapsed := now.Sub(b.last); elapsed > 0 {
		b.tokens = math.Min(l.burst, b.tokens+elapsed.Seconds()*l.rate)
	}
	b.last = now
	b.tokens--
	if b.tokens >= 0 {
		return 0
	}
	return time.Duration(-b.tokens / l.rate * float64(time.Second))
}

// release returns a reserved token that was never used.
func (l *modelLimiter) release(model string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.buckets[model]; ok {
		b.tokens = math.Min(l.burst, b.tokens+1)
	}
}

// Acquire blocks until model may be called, the context is canceled, or the
// limiter is stopped.
func (l *modelLimiter) Acquire(ctx context.Context, model string) error {
	if l == nil {
		return nil
	}
	select {
	case <-l.stopCh:
		return context.Canceled
	default:
	}
	wait := l.reserve(model)
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		l.release(model)
		return ctx.Err()
	case <-l.stopCh:
		return context.Canceled
	}
}

// Stop makes pending and future Acquire calls fail. Safe to call more than once.
func (l *modelLimiter) Stop() {
	if l == nil {
		return
	}
	l.stopOnce.Do(func() { close(l.stopCh) })
}
