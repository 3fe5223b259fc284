package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/spdeepak/rex-identity-server/config"
	"github.com/spdeepak/rex-identity-server/internal/error"
)

const (
	bucketTTL       = 5 * time.Minute
	cleanupInterval = time.Minute
)

type bucket struct {
	lim *rate.Limiter
	ts  time.Time
}

// RateLimiter is a token bucket per client IP. The limit is read when a bucket is created, so a config reload
// applies to clients seen after it.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   func() config.RateLimit
	now     func() time.Time
}

// NewRateLimiter starts a cleanup loop that drops idle buckets until ctx is done.
func NewRateLimiter(ctx context.Context, limit func() config.RateLimit) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		now:     time.Now,
	}
	go rl.cleanup(ctx)
	return rl
}

func (rl *RateLimiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evict()
		}
	}
}

func (rl *RateLimiter) evict() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for k, b := range rl.buckets {
		if now.Sub(b.ts) > bucketTTL {
			delete(rl.buckets, k)
		}
	}
}

func newLimiter(limit config.RateLimit) *rate.Limiter {
	if limit.Requests <= 0 || limit.Per <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(limit.Per/time.Duration(limit.Requests)), limit.Requests)
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{lim: newLimiter(rl.limit())}
		rl.buckets[key] = b
	}
	b.ts = rl.now()
	rl.mu.Unlock()
	return b.lim.Allow()
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !rl.allow(ip) {
			tooManyRequests := httperror.New(httperror.TooManyRequests)
			c.AbortWithStatusJSON(tooManyRequests.StatusCode, tooManyRequests)
			return
		}
		c.Next()
	}
}
