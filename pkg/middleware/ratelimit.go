package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/sorrel/pkg/context"
	"github.com/Ramsey-B/sorrel/pkg/redis"
	"github.com/labstack/echo/v4"
)

type RateLimitConfig struct {
	Limit  int64
	Window time.Duration
}

// RateLimit budgets requests per tenant. Requests without a tenant header
// fall back to the caller's IP. When Redis is unreachable the check fails
// open so the API stays available.
func RateLimit(limiter *redis.RateLimiter, cfg RateLimitConfig, logger ectologger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			key := context.GetTenantID(ctx)
			if key == "" {
				key = c.RealIP()
			}

			result, err := limiter.Allow(ctx, key, cfg.Limit, cfg.Window)
			if err != nil {
				logger.WithContext(ctx).WithError(err).Warn("Rate limit check failed")
				return next(c)
			}

			if !result.Allowed {
				retryAfter := int(result.RetryIn.Seconds()) + 1
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}
