package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
)

const requestIDHeader = "X-Request-ID"

// RequestLog returns Echo middleware that logs requests with structured fields.
// It generates a request ID if none is provided and propagates it through
// the response header and echo context. Probe successes are logged once per
// path; probe failures and server errors are logged at warn level. Rate
// limited requests carry the Retry-After value handed to the client.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var seen sync.Map

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := c.Request().URL.Path
			status := c.Response().Status
			var he *echo.HTTPError
			if errors.As(err, &he) && !c.Response().Committed {
				status = he.Code
			}
			ok := status < 400

			level := slog.LevelInfo
			switch {
			case operational(path) && ok:
				if _, logged := seen.LoadOrStore(path, struct{}{}); logged {
					return err
				}
			case operational(path), status >= http.StatusInternalServerError:
				level = slog.LevelWarn
			}

			attrs := []any{
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			}
			if route := c.Path(); route != "" && route != path {
				attrs = append(attrs, "route", route)
			}
			if status == http.StatusTooManyRequests {
				attrs = append(attrs, "retry_after", c.Response().Header().Get("Retry-After"))
			}
			if sc := trace.SpanContextFromContext(c.Request().Context()); sc.HasTraceID() {
				attrs = append(attrs, "trace_id", sc.TraceID().String())
			}
			log.Log(c.Request().Context(), level, "request", attrs...)

			return err
		}
	}
}
