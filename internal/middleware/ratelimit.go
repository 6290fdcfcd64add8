package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimiter applies a single per-IP budget to every request it wraps.
// Backed by redis_rate when a Redis client is configured, so the
// budget is shared across every server replica; falls back to an
// in-process golang.org/x/time/rate limiter per IP when REDIS_URL is
// unset, so a single-process deployment still gets a real budget instead
// of none at all.
type RateLimiter struct {
	limiter   *redis_rate.Limiter
	perMinute int

	localMu      sync.Mutex
	localLimiter map[string]*rate.Limiter
}

// NewRateLimiter creates a rate limiter enforcing perMinute requests per
// client IP. A nil redisClient switches it to the local fallback.
func NewRateLimiter(redisClient *redis.Client, perMinute int) *RateLimiter {
	rl := &RateLimiter{perMinute: perMinute}
	if redisClient != nil {
		rl.limiter = redis_rate.NewLimiter(redisClient)
	} else {
		rl.localLimiter = make(map[string]*rate.Limiter)
	}
	return rl
}

// Middleware returns an HTTP middleware enforcing the per-IP budget.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			ip = xff
		}

		if rl.limiter == nil {
			rl.serveLocal(w, r, ip, next)
			return
		}

		key := fmt.Sprintf("rate:ip:%s", ip)
		res, err := rl.limiter.Allow(context.Background(), key, redis_rate.PerMinute(rl.perMinute))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.perMinute))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", res.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(res.ResetAfter).Unix()))

		if res.Allowed == 0 {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(res.RetryAfter.Seconds())))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// serveLocal enforces the budget with a per-IP token bucket refilled at
// perMinute/60 tokens per second, burst capped at perMinute so a client
// can't bank an arbitrarily large allowance while idle.
func (rl *RateLimiter) serveLocal(w http.ResponseWriter, r *http.Request, ip string, next http.Handler) {
	rl.localMu.Lock()
	limiter, ok := rl.localLimiter[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(float64(rl.perMinute)/60.0), rl.perMinute)
		rl.localLimiter[ip] = limiter
	}
	rl.localMu.Unlock()

	w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.perMinute))

	if !limiter.Allow() {
		w.Header().Set("Retry-After", "1")
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	next.ServeHTTP(w, r)
}
