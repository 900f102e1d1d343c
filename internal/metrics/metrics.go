// Package metrics defines Prometheus metrics for laptop-advisor.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lpa"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last liveness probe succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last readiness probe succeeded (1) or failed (0).",
	})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	})

	PanicsRecoveredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_panics_recovered_total",
		Help:      "Total number of handler panics recovered, by route.",
	}, []string{"path"})
)

// Catalog metrics.
var (
	CatalogListings = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_listings",
		Help:      "Number of listings in the current catalog snapshot.",
	})

	CatalogRowsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_rows_total",
		Help:      "Total number of raw rows read from the catalog source.",
	})

	CatalogDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_dropped_total",
		Help:      "Total number of rows dropped as invalid, by reason.",
	}, []string{"reason"})

	CatalogAnomaliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_anomalies_total",
		Help:      "Total number of rows dropped by anomaly rules, by rule.",
	}, []string{"rule"})

	SnapshotReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_reloads_total",
		Help:      "Total number of catalog reloads, by result (changed, unchanged, error).",
	}, []string{"result"})

	SnapshotReloadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "snapshot_reload_duration_seconds",
		Help:      "Duration of catalog reloads in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	SnapshotAge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_loaded_timestamp_seconds",
		Help:      "Unix time the current catalog snapshot was loaded.",
	})
)

// Recommendation metrics.
var (
	RecommendDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "recommend_duration_seconds",
		Help:      "Duration of recommendation requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	RecommendResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "recommend_results",
		Help:      "Number of listings returned per recommendation request.",
		Buckets:   prometheus.LinearBuckets(0, 2, 11),
	})

	ScoringDistribution = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scoring_distribution",
		Help:      "Distribution of top recommendation scores.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11), // 0, 10, 20, ..., 100
	})
)

// Deal metrics.
var (
	DealsDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "deals_duration_seconds",
		Help:      "Duration of deal detection in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	DealsFound = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "deals_found",
		Help:      "Number of deals returned by the most recent detection run.",
	})
)

// Notification metrics.
var (
	DigestsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deal_digests_sent_total",
		Help:      "Total number of deal digests sent.",
	})

	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of notification webhook calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})
)
