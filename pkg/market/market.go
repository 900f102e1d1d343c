// Package market computes descriptive statistics over a catalog snapshot.
package market

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/donaldgifford/laptop-advisor/pkg/deals"
	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// Defaults for Options.
const (
	DefaultBudgetCeiling = 30000.0
	DefaultHighEndFloor  = 60000.0
	DefaultHistogramBins = 10
	DefaultTopGPUs       = 8
)

// DefaultPremiumBrands are the brands counted toward the premium share.
var DefaultPremiumBrands = []string{"apple", "dell"}

// Options tunes the segment boundaries used by Compute.
type Options struct {
	BudgetCeiling float64  `yaml:"budget_ceiling" json:"budget_ceiling"`
	HighEndFloor  float64  `yaml:"high_end_floor" json:"high_end_floor"`
	PremiumBrands []string `yaml:"premium_brands" json:"premium_brands"`
	HistogramBins int      `yaml:"histogram_bins" json:"histogram_bins"`
	TopGPUs       int      `yaml:"top_gpus"       json:"top_gpus"`
}

// DefaultOptions returns the stock segment boundaries.
func DefaultOptions() Options {
	return Options{
		BudgetCeiling: DefaultBudgetCeiling,
		HighEndFloor:  DefaultHighEndFloor,
		PremiumBrands: slices.Clone(DefaultPremiumBrands),
		HistogramBins: DefaultHistogramBins,
		TopGPUs:       DefaultTopGPUs,
	}
}

func (o Options) withDefaults() Options {
	if o.BudgetCeiling <= 0 {
		o.BudgetCeiling = DefaultBudgetCeiling
	}
	if o.HighEndFloor <= 0 {
		o.HighEndFloor = DefaultHighEndFloor
	}
	if o.PremiumBrands == nil {
		o.PremiumBrands = DefaultPremiumBrands
	}
	if o.HistogramBins <= 0 {
		o.HistogramBins = DefaultHistogramBins
	}
	if o.TopGPUs <= 0 {
		o.TopGPUs = DefaultTopGPUs
	}
	return o
}

// Compute summarizes listings. Empty input yields zero stats with non-nil
// slices.
func Compute(listings []domain.Listing, opts Options) domain.MarketStats {
	opts = opts.withDefaults()

	stats := domain.MarketStats{
		TotalListings: len(listings),
		Brands:        []domain.BrandStat{},
		GPUs:          []domain.GPUStat{},
		RAM:           []domain.CountStat{},
		SSD:           []domain.CountStat{},
		Screens:       []domain.CountStat{},
		Combos:        []domain.ComboStat{},
		Histogram:     []domain.HistogramBin{},
	}
	if len(listings) == 0 {
		return stats
	}

	n := float64(len(listings))
	prices := make([]float64, 0, len(listings))
	var (
		dedicated, integrated    []float64
		premium, budget, highEnd int
	)
	for i := range listings {
		l := &listings[i]
		prices = append(prices, l.Price)
		if l.HasDedicatedGPU {
			dedicated = append(dedicated, l.Price)
		} else {
			integrated = append(integrated, l.Price)
		}
		if slices.Contains(opts.PremiumBrands, l.Brand) {
			premium++
		}
		if l.Price <= opts.BudgetCeiling {
			budget++
		}
		if l.Price >= opts.HighEndFloor {
			highEnd++
		}
	}

	stats.Prices = Baseline("all", prices)
	stats.AveragePrice = stats.Prices.Mean
	stats.MedianPrice = stats.Prices.P50

	stats.DedicatedGPUCount = len(dedicated)
	stats.DedicatedGPUShare = share(len(dedicated), n)
	stats.DedicatedGPUAvgPrice = deals.Mean(dedicated)
	stats.IntegratedShare = share(len(integrated), n)
	stats.IntegratedAvgPrice = deals.Mean(integrated)

	stats.PremiumShare = share(premium, n)
	stats.BudgetShare = share(budget, n)
	stats.HighEndShare = share(highEnd, n)

	stats.Brands = brandStats(listings)
	stats.BrandCount = len(stats.Brands)
	if len(stats.Brands) > 0 {
		stats.TopBrand = stats.Brands[0].Brand
		stats.TopBrandCount = stats.Brands[0].Count
	}

	stats.GPUs = gpuStats(listings, opts.TopGPUs)
	stats.RAM = countBy(listings, func(l *domain.Listing) string { return fmt.Sprintf("%dGB", l.RAMGB) })
	stats.SSD = countBy(listings, func(l *domain.Listing) string { return storageLabel(l.SSDGB) })
	stats.Screens = countBy(listings, func(l *domain.Listing) string { return string(domain.BucketFor(l.ScreenSize)) })
	stats.Combos = comboStats(listings)
	stats.Histogram = Histogram(prices, opts.HistogramBins)

	return stats
}

// Baseline computes price percentiles for one group of listings.
func Baseline(key string, prices []float64) domain.PriceBaseline {
	b := domain.PriceBaseline{Key: key, SampleCount: len(prices)}
	if len(prices) == 0 {
		return b
	}
	sorted := slices.Clone(prices)
	slices.Sort(sorted)
	b.P10 = deals.Quantile(sorted, 0.10)
	b.P25 = deals.Quantile(sorted, 0.25)
	b.P50 = deals.Quantile(sorted, 0.50)
	b.P75 = deals.Quantile(sorted, 0.75)
	b.P90 = deals.Quantile(sorted, 0.90)
	b.Mean = deals.Mean(sorted)
	return b
}

// Histogram splits prices into bins equal-width buckets between the minimum
// and maximum price. When every price is equal a single bin holds them all.
func Histogram(prices []float64, bins int) []domain.HistogramBin {
	if len(prices) == 0 || bins <= 0 {
		return []domain.HistogramBin{}
	}
	lo, hi := slices.Min(prices), slices.Max(prices)
	if hi == lo {
		return []domain.HistogramBin{{Lower: lo, Upper: hi, Count: len(prices)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]domain.HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + width*float64(i)
		out[i].Upper = lo + width*float64(i+1)
	}
	out[bins-1].Upper = hi

	for _, p := range prices {
		idx := int(math.Floor((p - lo) / width))
		idx = min(max(idx, 0), bins-1)
		out[idx].Count++
	}
	return out
}

type group struct {
	count  int
	sum    float64
	score  float64
	prices []float64
}

func (g *group) add(price, score float64) {
	g.count++
	g.sum += price
	g.score += score
	g.prices = append(g.prices, price)
}

func (g *group) avg() float64 { return g.sum / float64(g.count) }

func brandStats(listings []domain.Listing) []domain.BrandStat {
	groups := map[string]*group{}
	for i := range listings {
		g := groups[listings[i].Brand]
		if g == nil {
			g = &group{}
			groups[listings[i].Brand] = g
		}
		g.add(listings[i].Price, 0)
	}

	n := float64(len(listings))
	out := make([]domain.BrandStat, 0, len(groups))
	for brand, g := range groups {
		out = append(out, domain.BrandStat{
			Brand:        brand,
			Count:        g.count,
			Share:        share(g.count, n),
			AveragePrice: g.avg(),
		})
	}
	slices.SortFunc(out, func(a, b domain.BrandStat) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Brand, b.Brand)
	})
	return out
}

func gpuStats(listings []domain.Listing, top int) []domain.GPUStat {
	groups := map[string]*group{}
	for i := range listings {
		g := groups[listings[i].GPU]
		if g == nil {
			g = &group{}
			groups[listings[i].GPU] = g
		}
		g.add(listings[i].Price, listings[i].GPUScore)
	}

	out := make([]domain.GPUStat, 0, len(groups))
	for gpu, g := range groups {
		out = append(out, domain.GPUStat{
			GPU:          gpu,
			Count:        g.count,
			AveragePrice: g.avg(),
			AverageScore: g.score / float64(g.count),
			Baseline:     Baseline(gpu, g.prices),
		})
	}
	slices.SortFunc(out, func(a, b domain.GPUStat) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.GPU, b.GPU)
	})
	if len(out) > top {
		out = out[:top]
	}
	return out
}

func countBy(listings []domain.Listing, label func(*domain.Listing) string) []domain.CountStat {
	counts := map[string]int{}
	for i := range listings {
		counts[label(&listings[i])]++
	}

	n := float64(len(listings))
	out := make([]domain.CountStat, 0, len(counts))
	for l, c := range counts {
		out = append(out, domain.CountStat{Label: l, Count: c, Share: share(c, n)})
	}
	slices.SortFunc(out, func(a, b domain.CountStat) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Label, b.Label)
	})
	return out
}

func comboStats(listings []domain.Listing) []domain.ComboStat {
	type key struct{ ram, ssd int }
	groups := map[key]*group{}
	for i := range listings {
		k := key{listings[i].RAMGB, listings[i].SSDGB}
		g := groups[k]
		if g == nil {
			g = &group{}
			groups[k] = g
		}
		g.add(listings[i].Price, 0)
	}

	out := make([]domain.ComboStat, 0, len(groups))
	for k, g := range groups {
		out = append(out, domain.ComboStat{
			RAMGB:        k.ram,
			SSDGB:        k.ssd,
			Count:        g.count,
			AveragePrice: g.avg(),
		})
	}
	slices.SortFunc(out, func(a, b domain.ComboStat) int {
		if c := cmp.Compare(a.RAMGB, b.RAMGB); c != 0 {
			return c
		}
		return cmp.Compare(a.SSDGB, b.SSDGB)
	})
	return out
}

func storageLabel(gb int) string {
	if gb >= 1024 && gb%1024 == 0 {
		return fmt.Sprintf("%dTB", gb/1024)
	}
	return fmt.Sprintf("%dGB", gb)
}

// share returns count as a percentage of n.
func share(count int, n float64) float64 {
	if n == 0 {
		return 0
	}
	return float64(count) * 100 / n
}
