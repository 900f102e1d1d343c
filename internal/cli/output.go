// Package cli holds the terminal output and flag helpers shared by the
// laptop-advisor and lpa command trees.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/donaldgifford/laptop-advisor/internal/engine"
	"github.com/donaldgifford/laptop-advisor/internal/notify"
	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintRecommendations writes ranked recommendations as a table followed by
// the summary line. With explain set, each row is followed by its
// explanation.
func PrintRecommendations(w io.Writer, rec *engine.Recommendation, explain bool) error {
	if len(rec.Recommendations) == 0 {
		_, err := fmt.Fprintf(w, "No laptops match (%d listings in catalog).\n", rec.Summary.Total)
		return err
	}

	tw := newTabWriter(w)
	tw.writef("#\tNAME\tPRICE\tSCORE\tCPU\tGPU\tRAM\tSSD\tSCREEN\n")
	for i := range rec.Recommendations {
		r := &rec.Recommendations[i]
		tw.writef("%d\t%s\t%s\t%.1f\t%s\t%s\t%dGB\t%dGB\t%.1f\"\n",
			i+1,
			truncate(r.Name, 40),
			notify.FormatPrice(r.Price),
			r.Score,
			r.CPU,
			r.GPU,
			r.RAMGB,
			r.SSDGB,
			r.ScreenSize,
		)
		if explain && r.Explanation != "" {
			tw.writef("\t%s\t\t\t\t\t\t\t\n", r.Explanation)
		}
	}
	if err := tw.finish(); err != nil {
		return err
	}

	s := rec.Summary
	_, err := fmt.Fprintf(w, "\n%d of %d matching listings shown (%d in catalog, %.1f%% match), avg price %s, top score %.1f, %d brands\n",
		s.Found, s.Matched, s.Total, s.MatchShare, notify.FormatPrice(s.AveragePrice), s.TopScore, s.BrandDiversity)
	return err
}

// PrintDeals writes deals as a table followed by the summary line.
func PrintDeals(w io.Writer, report *engine.DealReport) error {
	if len(report.Deals) == 0 {
		_, err := fmt.Fprintf(w, "No deals at %.0f%% or more below market.\n", report.Threshold)
		return err
	}

	tw := newTabWriter(w)
	tw.writef("#\tNAME\tPRICE\tMARKET\tDISCOUNT\tDEAL SCORE\tLEVEL\tPEERS\n")
	for i := range report.Deals {
		d := &report.Deals[i]
		tw.writef("%d\t%s\t%s\t%s\t%.1f%%\t%.1f\t%s\t%d\n",
			i+1,
			truncate(d.Name, 40),
			notify.FormatPrice(d.Price),
			notify.FormatPrice(d.MarketPriceEstimate),
			d.DiscountPercentage,
			d.DealScore,
			d.Level,
			d.PeerCount,
		)
	}
	if err := tw.finish(); err != nil {
		return err
	}

	s := report.Summary
	_, err := fmt.Fprintf(w, "\n%d deals, avg discount %.1f%%, max %.1f%%, total savings %s\n",
		s.Count, s.AverageDiscount, s.MaxDiscount, notify.FormatPrice(s.TotalSavings))
	return err
}

// PrintMarket writes the headline market figures and the brand breakdown.
func PrintMarket(w io.Writer, s *domain.MarketStats) error {
	tw := newTabWriter(w)
	tw.writef("Listings:\t%d\n", s.TotalListings)
	tw.writef("Average price:\t%s\n", notify.FormatPrice(s.AveragePrice))
	tw.writef("Median price:\t%s\n", notify.FormatPrice(s.MedianPrice))
	tw.writef("Price P10-P90:\t%s - %s\n", notify.FormatPrice(s.Prices.P10), notify.FormatPrice(s.Prices.P90))
	tw.writef("Dedicated GPU:\t%d (%.1f%%, avg %s)\n",
		s.DedicatedGPUCount, s.DedicatedGPUShare, notify.FormatPrice(s.DedicatedGPUAvgPrice))
	tw.writef("Integrated GPU:\t%.1f%% (avg %s)\n", s.IntegratedShare, notify.FormatPrice(s.IntegratedAvgPrice))
	tw.writef("Top brand:\t%s (%d)\n", s.TopBrand, s.TopBrandCount)
	tw.writef("Premium / budget / high-end:\t%.1f%% / %.1f%% / %.1f%%\n",
		s.PremiumShare, s.BudgetShare, s.HighEndShare)
	if err := tw.finish(); err != nil {
		return err
	}

	if len(s.Brands) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	tw = newTabWriter(w)
	tw.writef("BRAND\tCOUNT\tSHARE\tAVG PRICE\n")
	for _, b := range s.Brands {
		tw.writef("%s\t%d\t%.1f%%\t%s\n", b.Brand, b.Count, b.Share, notify.FormatPrice(b.AveragePrice))
	}
	return tw.finish()
}

// PrintSnapshot writes snapshot metadata and the processing counts.
func PrintSnapshot(w io.Writer, snap *engine.Snapshot, listings int, dropped map[string]int) error {
	tw := newTabWriter(w)
	tw.writef("Snapshot:\t%s\n", snap.ID)
	tw.writef("Source:\t%s\n", snap.Source)
	tw.writef("Loaded:\t%s\n", snap.LoadedAt.Local().Format(timeLayout))
	tw.writef("Tables:\t%s\n", snap.TablesVersion)
	tw.writef("Digest:\t%s\n", truncate(snap.Digest, 16))
	tw.writef("Listings:\t%d\n", listings)
	if len(dropped) > 0 {
		parts := make([]string, 0, len(dropped))
		for reason, n := range dropped {
			parts = append(parts, fmt.Sprintf("%s=%d", reason, n))
		}
		slices.Sort(parts)
		tw.writef("Dropped:\t%s\n", strings.Join(parts, ", "))
	}
	return tw.finish()
}

// PrintImports writes the import history as a table.
func PrintImports(w io.Writer, imports []domain.CatalogImport) error {
	if len(imports) == 0 {
		_, err := fmt.Fprintln(w, "No imports found.")
		return err
	}
	tw := newTabWriter(w)
	tw.writef("ID\tSOURCE\tROWS\tIMPORTED\n")
	for i := range imports {
		tw.writef("%s\t%s\t%d\t%s\n",
			imports[i].ID,
			imports[i].Source,
			imports[i].RowCount,
			imports[i].ImportedAt.Local().Format(timeLayout),
		)
	}
	return tw.finish()
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
