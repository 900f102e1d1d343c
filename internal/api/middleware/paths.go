// Package middleware provides Echo middleware for the laptop-advisor API.
package middleware

// Operational endpoints polled by probes and scrapers. They are excluded
// from request metrics and rate limiting, and their successes are logged
// only once.
const (
	pathHealthz = "/healthz"
	pathReadyz  = "/readyz"
	pathMetrics = "/metrics"
)

func operational(path string) bool {
	switch path {
	case pathHealthz, pathReadyz, pathMetrics:
		return true
	}
	return false
}

// routePath returns the matched route template, falling back to the raw
// URL path for unmatched requests.
func routePath(routed, raw string) string {
	if routed != "" {
		return routed
	}
	return raw
}
