package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimit defines limits for an endpoint pattern.
type RateLimit struct {
	Requests int
	Window   time.Duration
}

// RateLimiter implements sliding window rate limiting backed by Redis.
// Turns burn real money on the language-model side, so the chat-facing
// endpoints are limited per client IP.
type RateLimiter struct {
	client *redis.Client
	limits map[string]RateLimit
	logger zerolog.Logger
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(client *redis.Client, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		logger: logger,
		limits: map[string]RateLimit{
			"POST /chat":           {30, time.Minute},
			"POST /vua":            {30, time.Minute},
			"GET /send-sms":        {10, time.Hour},
			"POST /update-profile": {60, time.Minute},
		},
	}
}

// RealIP extracts the real client IP from headers or connection.
func RealIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// Middleware returns the rate limiting middleware.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, ok := rl.limits[r.Method+" "+r.URL.Path]
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ip := RealIP(r)
		key := fmt.Sprintf("ratelimit:ip:%s:%s", ip, r.URL.Path)
		allowed, remaining, resetAt := rl.checkAndIncrement(r, key, limit.Requests, limit.Window)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit.Requests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(time.Until(resetAt).Seconds())))

			rl.logger.Warn().
				Str("ip", ip).
				Str("endpoint", r.URL.Path).
				Msg("rate limit exceeded")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate limit exceeded"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// checkAndIncrement checks the rate limit and increments the counter.
// Returns (allowed, remaining, resetAt).
func (rl *RateLimiter) checkAndIncrement(r *http.Request, key string, limit int, window time.Duration) (bool, int, time.Time) {
	ctx := r.Context()
	now := time.Now()
	windowStart := now.Add(-window)

	pipe := rl.client.Pipeline()

	// Remove old entries outside window
	pipe.ZRemRangeByScore(ctx, key, "-inf", fmt.Sprintf("%d", windowStart.UnixMilli()))

	// Count current entries
	countCmd := pipe.ZCard(ctx, key)

	// Add current request with unique member
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: fmt.Sprintf("%d", now.UnixNano()),
	})

	pipe.Expire(ctx, key, window*2)

	// A Redis outage fails open: the count reads as zero and the
	// request passes. Log it so the outage is visible.
	if _, err := pipe.Exec(ctx); err != nil {
		rl.logger.Error().Err(err).Str("key", key).Msg("rate limit check failed, allowing request")
	}

	count := countCmd.Val()
	remaining := limit - int(count) - 1
	if remaining < 0 {
		remaining = 0
	}

	return count < int64(limit), remaining, now.Add(window)
}
