// ABOUTME: Per-client request budgets for the menu API
// ABOUTME: Fixed-window counters keyed by client IP; the optimize route draws from its own budget

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

// sweepThreshold is how many windows may open between sweeps of stale keys
const sweepThreshold = 100

type window struct {
	used  int
	reset time.Time
}

// Decision is the outcome of charging one request to a client's budget
type Decision struct {
	Allowed   bool
	Remaining int
	Reset     time.Duration // until the client's window restarts
}

// RateLimiter grants each key at most limit requests per period
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	period  time.Duration
	opened  int
	now     func() time.Time
}

// NewRateLimiter creates a limiter granting limit requests per period
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Limit returns the per-period budget
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

// Take charges one request to key
func (rl *RateLimiter) Take(key string) Decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.clients[key]
	// A request at the exact reset instant opens a new window
	if !ok || !now.Before(w.reset) {
		w = &window{reset: now.Add(rl.period)}
		rl.clients[key] = w
		rl.opened++
		if rl.opened >= sweepThreshold {
			rl.sweep(now)
			rl.opened = 0
		}
	}

	if w.used >= rl.limit {
		return Decision{Allowed: false, Remaining: 0, Reset: w.reset.Sub(now)}
	}
	w.used++
	return Decision{Allowed: true, Remaining: rl.limit - w.used, Reset: w.reset.Sub(now)}
}

// Allow reports whether key may make another request, and if not, how long
// until it may
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	d := rl.Take(key)
	if d.Allowed {
		return true, 0
	}
	return false, d.Reset
}

// sweep drops expired windows. Caller holds rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.clients {
		if !now.Before(w.reset) {
			delete(rl.clients, k)
		}
	}
}

// ClientIP keys requests by the leftmost X-Forwarded-For address, falling
// back to the connection's remote address. Deploy behind a proxy that sets
// X-Forwarded-For.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return "ip:" + ip
		}
	}

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return "ip:" + host
}

// RateLimit rejects requests over budget with 429 and a Retry-After header.
// A nil limiter or keyFunc disables limiting, as does an empty key.
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

			d := limiter.Take(key)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if d.Allowed {
				next(w, r)
				return
			}

			retry := int(math.Ceil(d.Reset.Seconds()))
			slog.Warn("Rate limit exceeded", "key", key, "path", r.URL.Path, "retry_after", retry)
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			writeJSONError(w, fmt.Sprintf("Rate limit exceeded, retry in %ds", retry), http.StatusTooManyRequests)
		}
	}
}

// Limits holds the per-route limiters. Nil fields disable limiting.
type Limits struct {
	Optimize *RateLimiter
	Default  *RateLimiter
}

// NewLimits builds per-minute limiters, or empty Limits when disabled
func NewLimits(enabled bool, optimizePerMinute, defaultPerMinute int) Limits {
	if !enabled {
		return Limits{}
	}
	return Limits{
		Optimize: NewRateLimiter(optimizePerMinute, time.Minute),
		Default:  NewRateLimiter(defaultPerMinute, time.Minute),
	}
}
