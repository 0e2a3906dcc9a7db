package grpc

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/baron-go/internal/infrastructure/config"
)

// ActionLimiter keeps one token bucket per game. A bucket left alone long
// enough to refill is dropped, since a fresh one would behave the same.
type ActionLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	lastPrune time.Time
	buckets   map[string]*bucket
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewActionLimiter creates a limiter allowing cfg.PerSecond actions per game
// with bursts of up to cfg.Burst
func NewActionLimiter(cfg config.ActionRateConfig, now func() time.Time) *ActionLimiter {
	idle := time.Hour
	if cfg.PerSecond > 0 {
		idle = time.Duration(float64(cfg.Burst) / cfg.PerSecond * float64(time.Second))
	}
	return &ActionLimiter{
		limit:     rate.Limit(cfg.PerSecond),
		burst:     cfg.Burst,
		idle:      idle,
		now:       now,
		lastPrune: now(),
		buckets:   make(map[string]*bucket),
	}
}

// Allow reports whether an action may be submitted to gameID now
func (l *ActionLimiter) Allow(gameID string) bool {
	now := l.now()

	l.mu.Lock()
	l.prune(now)
	b, ok := l.buckets[gameID]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[gameID] = b
	}
	b.lastSeen = now
	l.mu.Unlock()

	return b.limiter.AllowN(now, 1)
}

// Forget drops the bucket of a game that ended or does not exist
func (l *ActionLimiter) Forget(gameID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, gameID)
}

// Len returns how many games currently hold a bucket
func (l *ActionLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// prune sweeps refilled buckets at most once per refill period. Callers hold l.mu.
func (l *ActionLimiter) prune(now time.Time) {
	if now.Sub(l.lastPrune) < l.idle {
		return
	}
	for id, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.idle {
			delete(l.buckets, id)
		}
	}
	l.lastPrune = now
}
