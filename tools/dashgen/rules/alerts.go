package rules

// AlertRules returns the operational alerts for laptop-advisor.
func AlertRules() PrometheusRule {
	return newPrometheusRule("lpa-alerts", RuleGroup{
		Name: "lpa-alerts",
		Rules: []Rule{
			alert("LpaDown",
				`absent(up{job="laptop-advisor"})`, "2m", "critical",
				"Laptop Advisor is down",
				"The laptop-advisor job has been absent for more than 2 minutes."),
			alert("LpaReadinessDown",
				`lpa_readyz_up == 0`, "2m", "critical",
				"Laptop Advisor readiness check is failing",
				"The readiness probe has been reporting not-ready for more than 2 minutes."),
			alert("LpaHighErrorRate",
				`lpa:http_errors:rate5m / lpa:http_requests:rate5m > 0.05`, "5m", "warning",
				"High HTTP error rate on Laptop Advisor",
				"More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes."),
			alert("LpaHandlerPanics",
				`sum(increase(lpa_http_panics_recovered_total[10m])) > 0`, "0m", "warning",
				"API handlers are panicking",
				"A handler panic was recovered in the last 10 minutes. Search the logs for \"panic recovered\" and the request_id."),
			alert("LpaCatalogEmpty",
				`lpa_catalog_listings == 0`, "5m", "critical",
				"Catalog snapshot has no listings",
				"Every catalog row was dropped or the source is empty. Recommendations return nothing."),
			alert("LpaSnapshotStale",
				`time() - lpa_snapshot_loaded_timestamp_seconds > 3600`, "10m", "warning",
				"Catalog snapshot is stale",
				"The serving snapshot is more than an hour old. Scheduled reloads are failing or not running."),
			alert("LpaReloadErrors",
				`lpa:snapshot_reload_errors:rate5m > 0`, "15m", "warning",
				"Catalog reloads are failing",
				"Catalog reloads have been erroring for 15 minutes. The previous snapshot is still served."),
			alert("LpaNotificationFailures",
				`increase(lpa_notification_failures_total[5m]) > 0`, "1m", "warning",
				"Notification delivery failures detected",
				"One or more deal digests (Discord webhooks) have failed to send."),
		},
	})
}
