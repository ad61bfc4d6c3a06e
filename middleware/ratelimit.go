// ABOUTME: Rate limiting middleware with fixed-window counters
// ABOUTME: Limits login attempts per client IP and writes per authenticated user

package middleware

import (
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// sweepEvery is how many new windows are opened between sweeps of expired entries
const sweepEvery = 100

type window struct {
	count     int
	expiresAt time.Time
}

// RateLimiter allows at most limit requests per key within each window.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	opened  int
	now     func() time.Time
}

// NewRateLimiter creates a rate limiter that allows limit requests per period.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Allow records a request for key. When denied it returns the time until the window resets.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]

	// The boundary instant opens a new window
	if !ok || !now.Before(w.expiresAt) {
		rl.windows[key] = &window{count: 1, expiresAt: now.Add(rl.period)}
		rl.opened++
		if rl.opened >= sweepEvery {
			rl.sweep(now)
			rl.opened = 0
		}
		return true, 0
	}

	if w.count < rl.limit {
		w.count++
		return true, 0
	}
	return false, w.expiresAt.Sub(now)
}

// Len returns the number of tracked keys
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}

// sweep drops expired windows. Caller holds rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.windows {
		if !now.Before(w.expiresAt) {
			delete(rl.windows, k)
		}
	}
}

// ClientIP keys by the leftmost X-Forwarded-For address, or RemoteAddr.
// X-Forwarded-For is trusted, so deploy behind a proxy that sets it.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		ip := strings.TrimSpace(first)
		if net.ParseIP(ip) != nil {
			return "ip:" + ip
		}
	}

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return "ip:" + host
}

// UserOrIP keys by the authenticated user, falling back to ClientIP.
func UserOrIP(r *http.Request) string {
	if claims := GetUserClaims(r); claims != nil && claims.UserID != "" {
		return "user:" + claims.UserID
	}
	return ClientIP(r)
}

// RateLimit returns middleware enforcing limiter per keyFunc(r).
// A nil limiter disables limiting. An empty key passes through.
func RateLimit(limiter *RateLimiter, keyFunc func(*http.Request) string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if limiter == nil || keyFunc == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next(w, r)
				return
			}

			allowed, retryAfter := limiter.Allow(key)
			if allowed {
				next(w, r)
				return
			}

			retrySeconds := int(math.Ceil(retryAfter.Seconds()))
			slog.Warn("Rate limit exceeded", "key", key, "path", sanitizePath(r.URL.Path), "retry_after", retrySeconds)

			w.Header().Set("Retry-After", strconv.Itoa(retrySeconds))
			writeJSONErrorDetails(w, "Rate limit exceeded", fmt.Sprintf("retry after %d seconds", retrySeconds), http.StatusTooManyRequests)
		}
	}
}
