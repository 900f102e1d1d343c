package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/laptop-advisor/internal/metrics"
)

// RateLimit returns Echo middleware that admits requests through a shared
// token bucket refilled at perSecond with the given burst. Rejected requests
// get 429 with a Retry-After header. Operational paths are never limited.
func RateLimit(perSecond float64, burst int, log *slog.Logger) echo.MiddlewareFunc {
	return RateLimitWith(rate.NewLimiter(rate.Limit(perSecond), max(burst, 1)), log)
}

// RateLimitWith is RateLimit over an existing limiter.
func RateLimitWith(limiter *rate.Limiter, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if operational(c.Request().URL.Path) {
				return next(c)
			}

			r := limiter.Reserve()
			if !r.OK() {
				return reject(c, time.Second, log)
			}
			if delay := r.Delay(); delay > 0 {
				r.Cancel()
				return reject(c, delay, log)
			}
			return next(c)
		}
	}
}

func reject(c echo.Context, wait time.Duration, log *slog.Logger) error {
	metrics.RateLimitedTotal.Inc()
	secs := int(math.Ceil(wait.Seconds()))
	log.Debug("request rate limited",
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"retry_after_s", secs,
	)
	c.Response().Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
	return c.JSON(http.StatusTooManyRequests, map[string]string{
		"error": "rate limit exceeded",
	})
}
