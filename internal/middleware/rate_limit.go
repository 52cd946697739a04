package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for counter keys
	KeyPrefix string
}

// Counter increments a fixed-window request counter and returns the new count
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter shares counters between API instances through Redis
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter creates a Redis-backed counter
func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

// Incr increments key and sets its expiry in one pipeline
func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := r.client.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incrCmd.Val(), nil
}

// MemoryCounter keeps counters in process memory
type MemoryCounter struct {
	mu      sync.Mutex
	counts  map[string]int64
	expires map[string]time.Time
	now     func() time.Time
}

// NewMemoryCounter creates an in-process counter
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		counts:  make(map[string]int64),
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Incr increments key, dropping expired keys on the way
func (m *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, exp := range m.expires {
		if !now.Before(exp) {
			delete(m.expires, k)
			delete(m.counts, k)
		}
	}

	m.counts[key]++
	if _, ok := m.expires[key]; !ok {
		m.expires[key] = now.Add(window)
	}
	return m.counts[key], nil
}

// RateLimiter limits requests per client IP in fixed windows
type RateLimiter struct {
	counter Counter
	config  RateLimitConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(counter Counter, config RateLimitConfig, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		config:  config,
		logger:  logger,
		now:     time.Now,
	}
}

// NewWriteRateLimiter limits inventory writes to limit per minute per client
func NewWriteRateLimiter(counter Counter, limit int, logger *zap.Logger) *RateLimiter {
	return NewRateLimiter(counter, RateLimitConfig{
		Window:    time.Minute,
		Limit:     limit,
		KeyPrefix: "rate_limit:writes",
	}, logger)
}

// IsAllowed checks if a request from the given client is allowed
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, client string) (bool, int, time.Time, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, client, windowStart.Unix())

	count, err := rl.counter.Incr(ctx, key, rl.config.Window)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	remaining := rl.config.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	resetTime := windowStart.Add(rl.config.Window)
	return int(count) <= rl.config.Limit, remaining, resetTime, nil
}

// WritesOnly returns a Gin middleware that rate limits mutating requests.
// Safe methods pass through untouched.
func (rl *RateLimiter) WritesOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		rl.handle(c)
	}
}

func (rl *RateLimiter) handle(c *gin.Context) {
	allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), c.ClientIP())
	if err != nil {
		// Log error but don't fail the request
		rl.logger.Warn("rate limit check failed", zap.Error(err))
		c.Header("X-RateLimit-Error", "rate limit check failed")
		c.Next()
		return
	}

	// Set rate limit headers
	c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

	if !allowed {
		retryAfter := int(resetTime.Sub(rl.now()).Seconds())
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":       "rate limit exceeded",
			"message":     fmt.Sprintf("You have exceeded the rate limit of %d changes per %v", rl.config.Limit, rl.config.Window),
			"retry_after": retryAfter,
		})
		return
	}

	c.Next()
}
