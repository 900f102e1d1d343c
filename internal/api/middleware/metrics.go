package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/laptop-advisor/internal/metrics"
)

// probeGauges maps probe paths to their up/down gauge.
var probeGauges = map[string]prometheus.Gauge{
	pathHealthz: metrics.HealthzUp,
	pathReadyz:  metrics.ReadyzUp,
}

// Metrics returns Echo middleware that records request duration and status
// by route template. Operational paths only update the probe gauges.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := routePath(c.Path(), c.Request().URL.Path)

			if operational(path) {
				err := next(c)
				updateProbeGauge(path, c.Response().Status)
				return err
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				// Let echo write the error so the recorded status is final.
				c.Error(err)
			}

			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			metrics.HTTPRequestDuration.
				WithLabelValues(method, path, status).
				Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.
				WithLabelValues(method, path, status).
				Inc()

			return nil
		}
	}
}

func updateProbeGauge(path string, status int) {
	gauge, ok := probeGauges[path]
	if !ok {
		return
	}
	if status >= 200 && status < 300 {
		gauge.Set(1)
	} else {
		gauge.Set(0)
	}
}
