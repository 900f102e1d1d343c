package rules

// RecordingRules returns the pre-computed rate and latency series used by
// the overview dashboard and the alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("lpa-recording-rules", RuleGroup{
		Name: "lpa-recording",
		Rules: []Rule{
			{
				Record: "lpa:http_requests:rate5m",
				Expr:   `sum(rate(lpa_http_requests_total[5m]))`,
			},
			{
				Record: "lpa:http_errors:rate5m",
				Expr:   `sum(rate(lpa_http_requests_total{status=~"5.."}[5m]))`,
			},
			{
				Record: "lpa:catalog_dropped:rate5m",
				Expr:   `sum(rate(lpa_catalog_dropped_total[5m]))`,
			},
			{
				Record: "lpa:snapshot_reload_errors:rate5m",
				Expr:   `sum(rate(lpa_snapshot_reloads_total{result="error"}[5m]))`,
			},
			{
				Record: "lpa:recommend_duration:p95_5m",
				Expr:   `histogram_quantile(0.95, sum(rate(lpa_recommend_duration_seconds_bucket[5m])) by (le))`,
			},
			{
				Record: "lpa:notification_duration:p95_5m",
				Expr:   `histogram_quantile(0.95, sum(rate(lpa_notification_duration_seconds_bucket[5m])) by (le))`,
			},
		},
	})
}
