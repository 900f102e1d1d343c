package main

import "errors"

// KnownMetrics is the set of metric names exported by laptop-advisor
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"lpa_http_request_duration_seconds": true,
	"lpa_http_requests_total":           true,
	"lpa_http_rate_limited_total":       true,
	"lpa_http_panics_recovered_total":   true,

	// Health metrics.
	"lpa_healthz_up": true,
	"lpa_readyz_up":  true,

	// Catalog metrics.
	"lpa_catalog_listings":                  true,
	"lpa_catalog_rows_total":                true,
	"lpa_catalog_dropped_total":             true,
	"lpa_catalog_anomalies_total":           true,
	"lpa_snapshot_reloads_total":            true,
	"lpa_snapshot_reload_duration_seconds":  true,
	"lpa_snapshot_loaded_timestamp_seconds": true,

	// Recommendation metrics.
	"lpa_recommend_duration_seconds": true,
	"lpa_recommend_results":          true,
	"lpa_scoring_distribution":       true,

	// Deal metrics.
	"lpa_deals_duration_seconds": true,
	"lpa_deals_found":            true,

	// Notification metrics.
	"lpa_deal_digests_sent_total":       true,
	"lpa_notification_duration_seconds": true,
	"lpa_notification_failures_total":   true,

	// Recording rules.
	"lpa:http_requests:rate5m":          true,
	"lpa:http_errors:rate5m":            true,
	"lpa:catalog_dropped:rate5m":        true,
	"lpa:snapshot_reload_errors:rate5m": true,
	"lpa:recommend_duration:p95_5m":     true,
	"lpa:notification_duration:p95_5m":  true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
