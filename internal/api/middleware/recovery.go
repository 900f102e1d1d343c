package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/laptop-advisor/internal/metrics"
)

const stackSize = 4096

// Recovery returns Echo middleware that turns a handler panic into a 500.
// The panic is counted per route and logged with its stack and the request
// ID set by RequestLog, which is echoed in the response body so a user
// report can be matched to the log line.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				buf := make([]byte, stackSize)
				n := runtime.Stack(buf, false)

				path := routePath(c.Path(), c.Request().URL.Path)
				reqID := requestID(c)
				metrics.PanicsRecoveredTotal.WithLabelValues(path).Inc()

				log.Error("panic recovered",
					"error", fmt.Sprint(r),
					"method", c.Request().Method,
					"path", path,
					"request_id", reqID,
					"stack", string(buf[:n]),
				)

				if c.Response().Committed {
					err = nil
					return
				}
				body := map[string]string{"error": "internal server error"}
				if reqID != "" {
					body["request_id"] = reqID
				}
				err = c.JSON(http.StatusInternalServerError, body)
			}()
			return next(c)
		}
	}
}

// requestID returns the ID stored by RequestLog, falling back to the
// inbound header when Recovery runs without it.
func requestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	return c.Request().Header.Get(requestIDHeader)
}
