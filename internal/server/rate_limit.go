package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// RateLimiter admits a fixed number of requests per client and window.
// Clients are tracked in a bounded LRU table, so a flood of distinct
// addresses evicts the least recently seen ones instead of growing memory.
type RateLimiter struct {
	mu      sync.Mutex
	clients *lru.Cache
	rate    int
	window  time.Duration
	now     func() time.Time
}

// window is the admission state of one client.
type window struct {
	remaining int
	start     time.Time
}

// RateLimiterConfig holds configuration for the rate limiter.
type RateLimiterConfig struct {
	// RequestsPerMinute is the number of requests admitted per client and
	// minute. Default: 60.
	RequestsPerMinute int
	// MaxClients is the number of clients tracked at once. Default: 10000.
	MaxClients int
}

// DefaultRateLimiterConfig returns the default rate limiter configuration.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerMinute: 60,
		MaxClients:        10_000,
	}
}

// NewRateLimiter creates a rate limiter. Non-positive settings fall back
// to the defaults.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	def := DefaultRateLimiterConfig()
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = def.RequestsPerMinute
	}
	if config.MaxClients <= 0 {
		config.MaxClients = def.MaxClients
	}
	clients, _ := lru.New(config.MaxClients)
	return &RateLimiter{
		clients: clients,
		rate:    config.RequestsPerMinute,
		window:  time.Minute,
		now:     time.Now,
	}
}

// Allow reports whether a request from clientIP is admitted and consumes
// one slot of its current window.
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.clients.Get(clientIP)
	if !ok || now.Sub(v.(*window).start) >= rl.window {
		rl.clients.Add(clientIP, &window{remaining: rl.rate - 1, start: now})
		return true
	}
	w := v.(*window)
	if w.remaining == 0 {
		return false
	}
	w.remaining--
	return true
}

// Tracked returns the number of clients currently held.
func (rl *RateLimiter) Tracked() int {
	return rl.clients.Len()
}

// RateLimitMiddleware answers 429 to clients that exhausted their window.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(clientIP(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Too Many Requests","message":"Rate limit exceeded. Please try again later."}`))
			return
		}
		next(w, r)
	}
}

// clientIP identifies the caller: the first X-Forwarded-For entry, then
// X-Real-IP, then the remote address without its port.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.Trim(r.RemoteAddr, "[]")
	}
	return host
}
