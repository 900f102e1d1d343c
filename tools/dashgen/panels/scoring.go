package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RecommendLatency returns a timeseries panel showing the p95 recommendation
// latency.
func RecommendLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Recommend Latency (p95)").
		Description("95th percentile time to filter and score the catalog").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`lpa:recommend_duration:p95_5m`, "p95", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.5, 2)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ResultsPerRequest returns a timeseries panel showing the median number of
// listings returned per recommendation.
func ResultsPerRequest() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Results / Request").
		Description("Median number of listings returned per recommendation").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			JobExpr(`histogram_quantile(0.50, sum(rate(lpa_recommend_results_bucket{%s}[15m])) by (le))`),
			"p50", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ScoreDistribution returns a bar gauge panel showing the distribution of
// top recommendation scores across histogram buckets.
func ScoreDistribution() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Score Distribution").
		Description("Distribution of top recommendation scores (0-100)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			JobExpr(`sum(increase(lpa_scoring_distribution_bucket{%s}[1h])) by (le)`),
			"{{le}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}
