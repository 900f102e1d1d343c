// Package domain defines the core business types for the laptop advisor.
package domain

import (
	"strings"
	"time"
)

// Raw column names a catalog source must provide. URL is optional.
const (
	ColumnName       = "name"
	ColumnPrice      = "price"
	ColumnScreenSize = "screen_size"
	ColumnSSD        = "ssd"
	ColumnCPU        = "cpu"
	ColumnRAM        = "ram"
	ColumnOS         = "os"
	ColumnGPU        = "gpu"
	ColumnURL        = "url"
)

// RequiredColumns lists the raw columns every catalog source must expose.
var RequiredColumns = []string{
	ColumnName, ColumnPrice, ColumnScreenSize, ColumnSSD,
	ColumnCPU, ColumnRAM, ColumnOS, ColumnGPU,
}

// Columns lists every raw column in export order.
var Columns = append(append([]string(nil), RequiredColumns...), ColumnURL)

// Unknown is the canonical label for an unrecognised CPU or GPU.
const Unknown = "unknown"

// BrandOther is the brand assigned when no known brand matches.
const BrandOther = "other"

// RawListing is one untouched catalog row. Every field is free text.
type RawListing struct {
	Name       string `json:"name"        db:"name"`
	Price      string `json:"price"       db:"price"`
	ScreenSize string `json:"screen_size" db:"screen_size"`
	SSD        string `json:"ssd"         db:"ssd"`
	CPU        string `json:"cpu"         db:"cpu"`
	RAM        string `json:"ram"         db:"ram"`
	OS         string `json:"os"          db:"os"`
	GPU        string `json:"gpu"         db:"gpu"`
	URL        string `json:"url"         db:"url"`
}

// Field returns the raw value for a column name, or "" for unknown columns.
func (r *RawListing) Field(column string) string {
	switch column {
	case ColumnName:
		return r.Name
	case ColumnPrice:
		return r.Price
	case ColumnScreenSize:
		return r.ScreenSize
	case ColumnSSD:
		return r.SSD
	case ColumnCPU:
		return r.CPU
	case ColumnRAM:
		return r.RAM
	case ColumnOS:
		return r.OS
	case ColumnGPU:
		return r.GPU
	case ColumnURL:
		return r.URL
	default:
		return ""
	}
}

// SetField assigns a raw value by column name. Unknown columns are ignored.
func (r *RawListing) SetField(column, value string) {
	switch column {
	case ColumnName:
		r.Name = value
	case ColumnPrice:
		r.Price = value
	case ColumnScreenSize:
		r.ScreenSize = value
	case ColumnSSD:
		r.SSD = value
	case ColumnCPU:
		r.CPU = value
	case ColumnRAM:
		r.RAM = value
	case ColumnOS:
		r.OS = value
	case ColumnGPU:
		r.GPU = value
	case ColumnURL:
		r.URL = value
	}
}

// Listing is a normalized catalog entry. Lookup scores and classification
// flags are fixed when the listing is built and never change afterwards.
type Listing struct {
	Name       string  `json:"name"          db:"name"`
	Price      float64 `json:"price"         db:"price"`
	ScreenSize float64 `json:"screen_size"   db:"screen_size"`
	RAMGB      int     `json:"ram_gb"        db:"ram_gb"`
	SSDGB      int     `json:"ssd_gb"        db:"ssd_gb"`
	CPU        string  `json:"cpu_canonical" db:"cpu_canonical"`
	GPU        string  `json:"gpu_canonical" db:"gpu_canonical"`
	Brand      string  `json:"brand"         db:"brand"`
	OS         string  `json:"os"            db:"os"`
	URL        string  `json:"url"           db:"url"`

	// Lookup scores
	GPUScore   float64 `json:"gpu_score"   db:"gpu_score"`
	CPUScore   float64 `json:"cpu_score"   db:"cpu_score"`
	BrandScore float64 `json:"brand_score" db:"brand_score"`

	// Classification
	HasDedicatedGPU bool `json:"has_dedicated_gpu" db:"has_dedicated_gpu"`
	IsApple         bool `json:"is_apple"          db:"is_apple"`
	IsGaming        bool `json:"is_gaming"         db:"is_gaming"`
	IsUltrabook     bool `json:"is_ultrabook"      db:"is_ultrabook"`
	IsWorkstation   bool `json:"is_workstation"    db:"is_workstation"`
}

// PerformanceScore blends GPU and CPU scores into a single 0-106 figure.
func (l *Listing) PerformanceScore() float64 {
	return l.GPUScore*0.6 + l.CPUScore*0.4
}

// HasOS reports whether the listing runs the named operating system.
// "macOS" matches Apple listings, anything else is a case-insensitive
// substring match on the OS field.
func (l *Listing) HasOS(os string) bool {
	want := strings.ToLower(strings.TrimSpace(os))
	if want == "" {
		return true
	}
	if want == "macos" || want == "mac" {
		return l.IsApple
	}
	return strings.Contains(strings.ToLower(l.OS), want)
}

// ScoreBreakdown details the per-component scores for a listing.
type ScoreBreakdown struct {
	PriceFit         float64 `json:"price_fit"`
	PricePerformance float64 `json:"price_performance"`
	Purpose          float64 `json:"purpose"`
	Preference       float64 `json:"preference"`
	Hardware         float64 `json:"hardware"`
	Brand            float64 `json:"brand"`
	Total            float64 `json:"total"`
}

// ScoredListing pairs a listing with its preference-dependent score.
type ScoredListing struct {
	Listing
	Score       float64        `json:"score"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
	Highlights  []string       `json:"highlights,omitempty"`
	Explanation string         `json:"explanation,omitempty"`
}

// EstimateSource records how a market price estimate was produced.
type EstimateSource string

// Estimate source constants.
const (
	EstimatePeers    EstimateSource = "peers"
	EstimateFallback EstimateSource = "fallback"
)

// DealLevel grades a deal by its discount.
type DealLevel string

// Deal level constants.
const (
	DealGreat    DealLevel = "great"
	DealVeryGood DealLevel = "very_good"
	DealGood     DealLevel = "good"
)

// DealListing pairs a listing with its market estimate and deal score.
type DealListing struct {
	Listing
	MarketPriceEstimate float64        `json:"market_price_estimate"`
	DiscountPercentage  float64        `json:"discount_percentage"`
	DealScore           float64        `json:"deal_score"`
	PeerCount           int            `json:"peer_count"`
	EstimateSource      EstimateSource `json:"estimate_source"`
	Level               DealLevel      `json:"level"`
	Reasons             []string       `json:"reasons,omitempty"`
}

// Savings returns the absolute amount saved against the market estimate.
func (d *DealListing) Savings() float64 {
	return d.Price * d.DiscountPercentage / 100
}

// PriceBaseline holds percentile statistics for a group of listings.
type PriceBaseline struct {
	Key         string  `json:"key"`
	SampleCount int     `json:"sample_count"`
	P10         float64 `json:"p10"`
	P25         float64 `json:"p25"`
	P50         float64 `json:"p50"`
	P75         float64 `json:"p75"`
	P90         float64 `json:"p90"`
	Mean        float64 `json:"mean"`
}

// CatalogImport records one replacement of the stored raw catalog.
type CatalogImport struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	RowCount   int       `json:"row_count"`
	ImportedAt time.Time `json:"imported_at"`
}
