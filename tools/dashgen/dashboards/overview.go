// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/laptop-advisor/tools/dashgen/panels"
)

// UID is the stable Grafana identifier of the overview dashboard.
const UID = "lpa-overview"

// BuildOverview constructs the LPA Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("LPA Overview").
		Uid(UID).
		Tags([]string{"lpa", "laptop-advisor"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.SnapshotAge()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()).
		WithPanel(panels.RateLimited()))

	// Row 3: Catalog.
	b.WithRow(dashboard.NewRowBuilder("Catalog").
		WithPanel(panels.CatalogListings()).
		WithPanel(panels.DroppedRows()).
		WithPanel(panels.AnomalyRows()).
		WithPanel(panels.ReloadResults()).
		WithPanel(panels.ReloadDuration()))

	// Row 4: Recommendations.
	b.WithRow(dashboard.NewRowBuilder("Recommendations").
		WithPanel(panels.RecommendLatency()).
		WithPanel(panels.ResultsPerRequest()).
		WithPanel(panels.ScoreDistribution()))

	// Row 5: Deals.
	b.WithRow(dashboard.NewRowBuilder("Deals").
		WithPanel(panels.DealsFound()).
		WithPanel(panels.DealsDuration()))

	// Row 6: Notifications.
	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.DigestsSent()).
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
