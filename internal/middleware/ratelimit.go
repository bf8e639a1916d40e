package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for the rate limiter middleware.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit (tokens added per second).
	RequestsPerSecond float64
	// Burst is the maximum number of requests allowed in a burst.
	Burst int
}

// clientLimiter tracks a per-client rate limiter and when it was last seen.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter returns an HTTP middleware that enforces a per-client
// token-bucket rate limit. When the limit is exceeded it responds with 429
// and a Retry-After header.
func RateLimiter(cfg RateLimitConfig) func(http.Handler) http.Handler {
	var clients sync.Map // map[string]*clientLimiter

	// Background cleanup: remove stale entries every 5 minutes.
	go func() {
		for {
			time.Sleep(5 * time.Minute)
			clients.Range(func(key, value any) bool {
				cl := value.(*clientLimiter)
				if time.Since(cl.lastSeen) > 10*time.Minute {
					clients.Delete(key)
				}
				return true
			})
		}
	}()

	getLimiter := func(ip string) *rate.Limiter {
		if v, ok := clients.Load(ip); ok {
			cl := v.(*clientLimiter)
			cl.lastSeen = time.Now()
			return cl.limiter
		}
		limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
		clients.Store(ip, &clientLimiter{limiter: limiter, lastSeen: time.Now()})
		return limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !getLimiter(clientIP(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client IP address from RemoteAddr, stripping the
// port. Forwarding headers are not consulted.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
