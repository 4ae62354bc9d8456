package token_bucket

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type Limiter interface {
	Allow() bool
}

// TokenBucket пропускает не больше capacity запросов подряд и пополняется
// со скоростью refillRate токенов в секунду. Дробные токены накапливаются.
type TokenBucket struct {
	clock      clockwork.Clock
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
	mu         sync.Mutex
}

func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return NewTokenBucketWithClock(clockwork.NewRealClock(), capacity, refillRate)
}

func NewTokenBucketWithClock(clock clockwork.Clock, capacity int, refillRate float64) *TokenBucket {
	if capacity < 0 {
		capacity = 0
	}
	if refillRate < 0 {
		refillRate = 0
	}
	return &TokenBucket{
		clock:      clock,
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: clock.Now(),
	}
}

func (t *TokenBucket) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()

	if t.tokens >= 1 {
		t.tokens--
		return true
	}
	return false
}

func (t *TokenBucket) refill() {
	now := t.clock.Now()
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	t.lastRefill = now

	t.tokens += elapsed * t.refillRate
	if t.tokens > t.capacity {
		t.tokens = t.capacity
	}
}
