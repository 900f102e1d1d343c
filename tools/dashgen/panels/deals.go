package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// DealsFound returns a stat panel showing the size of the latest deal list.
func DealsFound() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Deals").
		Description("Deals returned by the most recent detection run").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(StatWidth).
		WithTarget(PromQuery(JobExpr(`max(lpa_deals_found{%s})`), "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// DealsDuration returns a timeseries panel showing p50 and p95 deal detection
// durations.
func DealsDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Deal Detection Duration").
		Description("Time to compute market references and rank deals").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(FullWidth - StatWidth).
		WithTarget(PromQuery(
			JobExpr(`histogram_quantile(0.50, sum(rate(lpa_deals_duration_seconds_bucket{%s}[5m])) by (le))`),
			"p50", "A",
		)).
		WithTarget(PromQuery(
			JobExpr(`histogram_quantile(0.95, sum(rate(lpa_deals_duration_seconds_bucket{%s}[5m])) by (le))`),
			"p95", "B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
