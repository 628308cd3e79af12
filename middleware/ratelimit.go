package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ariebrainware/biosecure-portal/config"
	"github.com/ariebrainware/biosecure-portal/util"
	"github.com/gin-gonic/gin"
)

const (
	// Rate limiting defaults
	defaultRateLimit  = 5                // 5 attempts
	defaultRateWindow = 15 * time.Minute // per 15 minutes
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// RateLimiter limits signup and login attempts per client IP and path.
// Without Redis every request is allowed.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limit == 0 {
		cfg.Limit = defaultRateLimit
	}
	if cfg.Window == 0 {
		cfg.Window = defaultRateWindow
	}

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		endpoint := c.Request.URL.Path
		ctx := c.Request.Context()

		allowed, err := checkRateLimit(ctx, rateLimitKey(clientIP, endpoint), cfg.Limit, cfg.Window)
		if err != nil {
			// a broken limiter must not lock users out
			util.LogActivity(ctx, util.ActivityEvent{
				EventType: util.EventSuspiciousActivity,
				IP:        clientIP,
				Message:   fmt.Sprintf("Rate limit check failed: %v", err),
			})
			c.Next()
			return
		}

		if !allowed {
			util.LogRateLimitExceeded(ctx, clientIP, endpoint)
			util.CallTooManyRequests(c, util.APIErrorParams{
				Msg: "Too many requests. Please try again later.",
				Err: errors.New("rate limit exceeded"),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func rateLimitKey(clientIP, endpoint string) string {
	return fmt.Sprintf("ratelimit:%s:%s", endpoint, clientIP)
}

// checkRateLimit returns true while the counter for key is within limit.
func checkRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return true, nil
	}

	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}
	// the window starts with the first attempt
	if count == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= int64(limit), nil
}

// ResetRateLimit clears the counter for a client and path.
func ResetRateLimit(ctx context.Context, clientIP, endpoint string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return errors.New("redis not available")
	}
	return rdb.Del(ctx, rateLimitKey(clientIP, endpoint)).Err()
}
