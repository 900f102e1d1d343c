package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/laptop-advisor/internal/api/handlers"
	"github.com/donaldgifford/laptop-advisor/internal/engine"
	"github.com/donaldgifford/laptop-advisor/pkg/deals"
	score "github.com/donaldgifford/laptop-advisor/pkg/scorer"
	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

func TestPrintRecommendations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rec     *engine.Recommendation
		explain bool
		want    []string
		notWant []string
	}{
		{
			name: "empty",
			rec:  &engine.Recommendation{Summary: score.Summary{Total: 12}},
			want: []string{"No laptops match (12 listings in catalog)."},
		},
		{
			name: "ranked rows",
			rec: &engine.Recommendation{
				Recommendations: []domain.ScoredListing{{
					Listing: domain.Listing{
						Name: "Lenovo Legion 5", Price: 44000, CPU: "ryzen 7", GPU: "rtx 4060",
						RAMGB: 16, SSDGB: 512, ScreenSize: 15.6,
					},
					Score:       81.25,
					Explanation: "strong gaming GPU",
				}},
				Summary: score.Summary{Found: 1, Matched: 3, Total: 10, MatchShare: 30, BrandDiversity: 1},
			},
			want:    []string{"Lenovo Legion 5", "44.000 TL", "81.2", "rtx 4060", "16GB", "1 of 3 matching listings shown"},
			notWant: []string{"strong gaming GPU"},
		},
		{
			name: "with explanation",
			rec: &engine.Recommendation{
				Recommendations: []domain.ScoredListing{{
					Listing:     domain.Listing{Name: "MacBook Air"},
					Explanation: "light and long battery life",
				}},
			},
			explain: true,
			want:    []string{"light and long battery life"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, PrintRecommendations(&buf, tt.rec, tt.explain))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, buf.String(), nw)
			}
		})
	}
}

func TestPrintDeals(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, PrintDeals(&buf, &engine.DealReport{Threshold: 15}))
	assert.Equal(t, "No deals at 15% or more below market.\n", buf.String())

	list := []domain.DealListing{{
		Listing:             domain.Listing{Name: "Casper Excalibur", Price: 30000},
		MarketPriceEstimate: 45000,
		DiscountPercentage:  33.3,
		DealScore:           72,
		PeerCount:           3,
		Level:               domain.DealGreat,
	}}
	buf.Reset()
	require.NoError(t, PrintDeals(&buf, &engine.DealReport{Deals: list, Summary: deals.Summarize(list)}))
	out := buf.String()
	assert.Contains(t, out, "Casper Excalibur")
	assert.Contains(t, out, "45.000 TL")
	assert.Contains(t, out, "33.3%")
	assert.Contains(t, out, "great")
	assert.Contains(t, out, "1 deals")
}

func TestPrintMarket(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, PrintMarket(&buf, &domain.MarketStats{
		TotalListings: 4,
		AveragePrice:  41250,
		TopBrand:      "lenovo",
		TopBrandCount: 2,
		Brands:        []domain.BrandStat{{Brand: "lenovo", Count: 2, Share: 50, AveragePrice: 44000}},
	}))
	out := buf.String()
	assert.Contains(t, out, "41.250 TL")
	assert.Contains(t, out, "lenovo (2)")
	assert.Contains(t, out, "BRAND")
	assert.Contains(t, out, "50.0%")
}

func TestPrintSnapshot(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, PrintSnapshot(&buf, &engine.Snapshot{
		ID:            uuid.MustParse("6f1c2f57-4a0e-4a59-9d8e-3f0f4a6c1b2d"),
		Digest:        "0123456789abcdef0123456789abcdef",
		LoadedAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		TablesVersion: "2025.1",
		Source:        "csv:laptops.csv",
	}, 7, map[string]int{"missing_price": 1, "bad_name": 2}))
	out := buf.String()
	assert.Contains(t, out, "6f1c2f57-4a0e-4a59-9d8e-3f0f4a6c1b2d")
	assert.Contains(t, out, "0123456789abc...")
	assert.Contains(t, out, "bad_name=2, missing_price=1")
}

func TestPrintImports(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, PrintImports(&buf, nil))
	assert.Equal(t, "No imports found.\n", buf.String())

	buf.Reset()
	require.NoError(t, PrintImports(&buf, []domain.CatalogImport{{ID: "a1", Source: "csv:x.csv", RowCount: 9}}))
	assert.Contains(t, buf.String(), "csv:x.csv")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Monster...", truncate("Monster Tulpar Çelik", 10))
	assert.Equal(t, "Çelik Çel...", truncate("Çelik Çelik Çelik", 12))
}

func TestBindPreferences(t *testing.T) {
	t.Parallel()

	var p handlers.PreferencesBody
	fs := pflag.NewFlagSet("recommend", pflag.ContinueOnError)
	BindPreferences(fs, &p)

	require.NoError(t, fs.Parse([]string{
		"--max-budget=45000", "--purpose=oyun", "--min-ram=16", "--screen=standard", "--gaming-only",
	}))
	assert.InDelta(t, 45000.0, p.MaxBudget, 0)
	assert.Equal(t, "oyun", p.Purpose)
	assert.Equal(t, 16, p.MinRAM)
	assert.Equal(t, "standard", p.Screen)
	assert.True(t, p.GamingOnly)
	assert.Zero(t, p.BatteryImportance)
}
