package httpx

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type rateLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware applies a token bucket per client address.
type RateLimitMiddleware struct {
	limiters map[string]*rateLimiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	cleanup  time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewRateLimitMiddleware(rps float64, burst int) *RateLimitMiddleware {
	rl := &RateLimitMiddleware{
		limiters: make(map[string]*rateLimiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		cleanup:  5 * time.Minute,
		stop:     make(chan struct{}),
	}

	go rl.cleanupLimiters()
	return rl
}

// Close stops the background eviction loop.
func (rl *RateLimitMiddleware) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimitMiddleware) cleanupLimiters() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for key, limiter := range rl.limiters {
				if time.Since(limiter.lastSeen) > rl.cleanup {
					delete(rl.limiters, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimitMiddleware) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = &rateLimiter{
			limiter: rate.NewLimiter(rl.rate, rl.burst),
		}
		rl.limiters[key] = limiter
	}
	limiter.lastSeen = time.Now()

	return limiter.limiter
}

func (rl *RateLimitMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.getLimiter(clientKey(r)).Allow() {
			JSONError(r, w, http.StatusTooManyRequests, CodeRateLimited, "Too many requests", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
