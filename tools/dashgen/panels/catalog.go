package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CatalogListings returns a stat panel showing the number of listings in the
// serving snapshot.
func CatalogListings() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Listings").
		Description("Listings in the current catalog snapshot").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(JobExpr(`max(lpa_catalog_listings{%s})`), "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// DroppedRows returns a timeseries panel showing rows dropped during
// processing, split by reason.
func DroppedRows() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Dropped Rows").
		Description("Rows dropped as invalid per reload, by reason").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			JobExpr(`sum(increase(lpa_catalog_dropped_total{%s}[1h])) by (reason)`),
			"{{reason}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("last", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// AnomalyRows returns a timeseries panel showing rows removed by anomaly
// rules, split by rule.
func AnomalyRows() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Anomalies").
		Description("Rows removed by anomaly rules, by rule").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			JobExpr(`sum(increase(lpa_catalog_anomalies_total{%s}[1h])) by (rule)`),
			"{{rule}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("last", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// ReloadResults returns a timeseries panel showing catalog reloads by
// result.
func ReloadResults() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Reloads").
		Description("Catalog reloads per hour by result (changed, unchanged, error)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			JobExpr(`sum(increase(lpa_snapshot_reloads_total{%s}[1h])) by (result)`),
			"{{result}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ReloadDuration returns a timeseries panel showing the p95 catalog reload
// duration.
func ReloadDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Reload Duration (p95)").
		Description("95th percentile catalog reload duration").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			JobExpr(`histogram_quantile(0.95, sum(rate(lpa_snapshot_reload_duration_seconds_bucket{%s}[1h])) by (le))`),
			"p95",
			"A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
