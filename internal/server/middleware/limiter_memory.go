package middleware

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per key in process memory. The bucket holds
// MaxRequests tokens and refills over the window.
type MemoryLimiter struct {
	cfg       RateLimiterConfig
	interval  time.Duration
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryLimiter(cfg RateLimiterConfig) *MemoryLimiter {
	cfg = cfg.withDefaults()
	return &MemoryLimiter{
		cfg:       cfg,
		interval:  cfg.window() / time.Duration(cfg.MaxRequests),
		visitors:  make(map[string]*visitor),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(l.interval), l.cfg.MaxRequests)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	decision := Decision{
		Allowed: v.limiter.AllowN(now, 1),
		Limit:   l.cfg.MaxRequests,
	}

	tokens := v.limiter.TokensAt(now)
	decision.Remaining = int(math.Max(0, math.Floor(tokens)))

	// time until one full token is available again
	missing := 1 - tokens
	if missing < 0 {
		missing = 0
	}
	decision.ResetAt = now.Add(time.Duration(missing * float64(l.interval)))

	return decision, nil
}

// sweep drops buckets idle for longer than a window; they would be full again anyway
func (l *MemoryLimiter) sweep(now time.Time) {
	window := l.cfg.window()
	if now.Sub(l.lastSweep) < window {
		return
	}
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > window {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}
