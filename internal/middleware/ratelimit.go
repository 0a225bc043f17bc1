package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig holds the rate limit settings. The API is public,
// so limits are keyed by client IP rather than by account.
type RateLimiterConfig struct {
	GeneralRate     rate.Limit    // catalog reads (req/sec)
	GeneralBurst    int           // burst size for catalog reads
	RefreshRate     rate.Limit    // manual catalog refreshes (req/sec)
	RefreshBurst    int           // burst size for refreshes
	CleanupInterval time.Duration // idle entry cleanup period
}

// NewRateLimiterConfig derives a config from per-minute request quotas.
func NewRateLimiterConfig(generalPerMinute, refreshPerMinute int) RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(float64(generalPerMinute) / 60.0),
		GeneralBurst:    generalPerMinute,
		RefreshRate:     rate.Limit(float64(refreshPerMinute) / 60.0),
		RefreshBurst:    refreshPerMinute,
		CleanupInterval: 5 * time.Minute,
	}
}

// clientLimiter pairs a limiter with its last access time so idle
// entries can be evicted.
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter manages per-client rate limits: one pool for catalog
// reads and an independent, much tighter pool for manual refreshes.
type RateLimiter struct {
	config RateLimiterConfig

	generalMu       sync.RWMutex
	generalLimiters map[string]*clientLimiter

	refreshMu       sync.RWMutex
	refreshLimiters map[string]*clientLimiter

	stopCh chan struct{}
}

// NewRateLimiter creates a RateLimiter and starts the background
// cleanup of idle entries.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:          config,
		generalLimiters: make(map[string]*clientLimiter),
		refreshLimiters: make(map[string]*clientLimiter),
		stopCh:          make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// GeneralMiddleware returns the rate limit middleware for catalog reads.
func (rl *RateLimiter) GeneralMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			limiter := rl.getOrCreate(&rl.generalMu, rl.generalLimiters, ip, rl.config.GeneralRate, rl.config.GeneralBurst)

			if !limiter.Allow() {
				writeRateLimitResponse(w, rl.config.GeneralRate)
				slog.Warn("rate limit exceeded",
					slog.String("client_ip", ip),
					slog.String("limit_type", "general"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RefreshMiddleware returns the rate limit middleware for manual
// catalog refreshes. It operates independently of the general limit.
func (rl *RateLimiter) RefreshMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			limiter := rl.getOrCreate(&rl.refreshMu, rl.refreshLimiters, ip, rl.config.RefreshRate, rl.config.RefreshBurst)

			if !limiter.Allow() {
				writeRateLimitResponse(w, rl.config.RefreshRate)
				slog.Warn("rate limit exceeded",
					slog.String("client_ip", ip),
					slog.String("limit_type", "refresh"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GeneralLimiterCount returns the number of tracked read limiters.
// For tests and metrics.
func (rl *RateLimiter) GeneralLimiterCount() int {
	rl.generalMu.RLock()
	defer rl.generalMu.RUnlock()
	return len(rl.generalLimiters)
}

// RefreshLimiterCount returns the number of tracked refresh limiters.
// For tests and metrics.
func (rl *RateLimiter) RefreshLimiterCount() int {
	rl.refreshMu.RLock()
	defer rl.refreshMu.RUnlock()
	return len(rl.refreshLimiters)
}

// getOrCreate fetches or creates the limiter for a client in the given
// pool, refreshing its last access time.
func (rl *RateLimiter) getOrCreate(mu *sync.RWMutex, pool map[string]*clientLimiter, ip string, limit rate.Limit, burst int) *rate.Limiter {
	mu.RLock()
	cl, exists := pool[ip]
	mu.RUnlock()

	if exists {
		mu.Lock()
		cl.lastAccess = time.Now()
		mu.Unlock()
		return cl.limiter
	}

	mu.Lock()
	defer mu.Unlock()

	// Re-check under the write lock.
	if cl, exists := pool[ip]; exists {
		cl.lastAccess = time.Now()
		return cl.limiter
	}

	limiter := rate.NewLimiter(limit, burst)
	pool[ip] = &clientLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

// cleanupLoop periodically evicts idle entries in the background.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup removes entries idle for more than twice the cleanup interval.
func (rl *RateLimiter) cleanup() {
	ttl := rl.config.CleanupInterval * 2

	now := time.Now()

	rl.generalMu.Lock()
	for ip, cl := range rl.generalLimiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.generalLimiters, ip)
		}
	}
	rl.generalMu.Unlock()

	rl.refreshMu.Lock()
	for ip, cl := range rl.refreshLimiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.refreshLimiters, ip)
		}
	}
	rl.refreshMu.Unlock()
}

// clientIP extracts the client address: the first entry of
// X-Forwarded-For when a proxy set it, the connection address otherwise.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, found := strings.Cut(fwd, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// writeRateLimitResponse writes a 429 with a Retry-After hint: the
// estimated seconds until one token is replenished.
func writeRateLimitResponse(w http.ResponseWriter, r rate.Limit) {
	retryAfterSec := int(math.Ceil(1.0 / float64(r)))
	if retryAfterSec < 1 {
		retryAfterSec = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	json.NewEncoder(w).Encode(map[string]string{
		"code":     "RATE_LIMIT_EXCEEDED",
		"message":  "Demasiadas solicitudes.",
		"category": "system",
		"action":   "Esperá el tiempo indicado y volvé a intentar.",
	})
}
