package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portfolio_site/internal/services"
)

// RateLimitMessage is shown when a visitor sends too many messages.
const RateLimitMessage = "Too many messages. Please try again later."

// ContactRateLimit limits submissions per client IP within window. Without a
// cache, or with limit 0, requests pass through.
func ContactRateLimit(cache *services.RedisCache, limit int, window time.Duration, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cache == nil || limit <= 0 {
				return next(c)
			}

			key := "ratelimit:contact:" + c.RealIP()
			count, err := cache.IncrementWindow(c.Request().Context(), key, window)
			if err != nil {
				// fail open, the form service has its own spam protection
				log.Warn("rate limit check failed", zap.Error(err))
				return next(c)
			}
			if count > int64(limit) {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"errors": []map[string]string{{"message": RateLimitMessage}},
				})
			}
			return next(c)
		}
	}
}
