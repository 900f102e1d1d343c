// Package catalog turns raw listing rows into the canonical, read-only
// catalog used for recommendations, deals and market statistics.
package catalog

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/donaldgifford/laptop-advisor/pkg/normalize"
	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// ErrNoData is returned when a source yields no usable rows.
var ErrNoData = errors.New("no catalog data")

// Drop reasons reported for invalid rows.
const (
	DropMissingPrice     = "missing_price"
	DropNonPositivePrice = "non_positive_price"
	DropLowRAM           = "ram_below_minimum"
	DropLowStorage       = "storage_below_minimum"
)

// Validity floors and classification thresholds.
const (
	MinRAMGB     = 4
	MinStorageGB = 128

	gamingMinGPUScore      = 60
	ultrabookMaxScreen     = 14
	ultrabookMaxGPUScore   = 40
	workstationMinRAMGB    = 16
	workstationMinCPUScore = 80
)

// Report counts what happened to each input row.
type Report struct {
	Input      int            `json:"input"`
	Duplicates int            `json:"duplicates"`
	Dropped    map[string]int `json:"dropped"`
	Anomalies  map[string]int `json:"anomalies"`
	Kept       int            `json:"kept"`
}

// DroppedTotal sums invalid-row drops.
func (r *Report) DroppedTotal() int {
	n := 0
	for _, c := range r.Dropped {
		n += c
	}
	return n
}

// AnomaliesTotal sums anomaly-rule drops.
func (r *Report) AnomaliesTotal() int {
	n := 0
	for _, c := range r.Anomalies {
		n += c
	}
	return n
}

// Catalog is the processed listing set. Listings must not be modified.
type Catalog struct {
	Listings []domain.Listing
	Report   Report
}

// Processor normalizes raw rows into canonical listings.
type Processor struct {
	tables *normalize.Tables
	rules  []AnomalyRule
	log    *slog.Logger
}

// Option configures the Processor.
type Option func(*Processor)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		p.log = l
	}
}

// WithAnomalyRules replaces the default anomaly rules.
func WithAnomalyRules(rules ...AnomalyRule) Option {
	return func(p *Processor) {
		p.rules = rules
	}
}

// NewProcessor creates a Processor. A nil tables value uses the built-in
// lookup tables.
func NewProcessor(tables *normalize.Tables, opts ...Option) *Processor {
	if tables == nil {
		tables = normalize.DefaultTables()
	}
	p := &Processor{
		tables: tables,
		rules:  DefaultAnomalyRules(),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tables returns the lookup tables in use.
func (p *Processor) Tables() *normalize.Tables {
	return p.tables
}

// Process deduplicates rows by (name, price), canonicalizes them and drops
// invalid and anomalous listings. It returns ErrNoData when the input is
// empty or nothing survives.
func (p *Processor) Process(rows []domain.RawListing) (*Catalog, error) {
	report := Report{
		Input:     len(rows),
		Dropped:   make(map[string]int),
		Anomalies: make(map[string]int),
	}
	if len(rows) == 0 {
		return &Catalog{Report: report}, ErrNoData
	}

	type key struct{ name, price string }
	seen := make(map[key]struct{}, len(rows))
	listings := make([]domain.Listing, 0, len(rows))

	for i := range rows {
		r := &rows[i]
		k := key{strings.TrimSpace(r.Name), strings.TrimSpace(r.Price)}
		if _, dup := seen[k]; dup {
			report.Duplicates++
			continue
		}
		seen[k] = struct{}{}

		l, reason := p.Canonicalize(r)
		if reason != "" {
			report.Dropped[reason]++
			continue
		}

		if rule, hit := p.anomaly(&l); hit {
			report.Anomalies[rule]++
			continue
		}

		listings = append(listings, l)
	}

	report.Kept = len(listings)

	p.log.Info("catalog processed",
		"input", report.Input,
		"duplicates", report.Duplicates,
		"dropped", report.DroppedTotal(),
		"anomalies", report.AnomaliesTotal(),
		"kept", report.Kept,
		"tables_version", p.tables.Version,
	)
	for rule, n := range report.Anomalies {
		p.log.Warn("anomalous listings removed", "rule", rule, "count", n)
	}

	if len(listings) == 0 {
		return &Catalog{Listings: listings, Report: report}, ErrNoData
	}
	return &Catalog{Listings: listings, Report: report}, nil
}

// Canonicalize normalizes one raw row. A non-empty reason means the row
// violates a listing invariant and must be dropped.
func (p *Processor) Canonicalize(r *domain.RawListing) (domain.Listing, string) {
	price, ok := normalize.Price(r.Price)
	if !ok {
		return domain.Listing{}, DropMissingPrice
	}
	if price <= 0 {
		return domain.Listing{}, DropNonPositivePrice
	}

	l := domain.Listing{
		Name:       strings.TrimSpace(r.Name),
		Price:      price,
		ScreenSize: normalize.ScreenSize(r.ScreenSize),
		RAMGB:      normalize.RAM(r.RAM),
		SSDGB:      normalize.Storage(r.SSD),
		CPU:        p.tables.CPU.Match(r.CPU),
		GPU:        p.tables.GPU.Match(r.GPU),
		Brand:      p.tables.Brands.Extract(r.Name),
		OS:         strings.TrimSpace(r.OS),
		URL:        strings.TrimSpace(r.URL),
	}
	if l.RAMGB < MinRAMGB {
		return domain.Listing{}, DropLowRAM
	}
	if l.SSDGB < MinStorageGB {
		return domain.Listing{}, DropLowStorage
	}

	l.GPUScore = p.tables.GPU.Score(l.GPU)
	l.CPUScore = p.tables.CPU.Score(l.CPU)
	l.BrandScore = p.tables.Brands.Score(l.Brand)
	classify(&l, p.tables)

	return l, ""
}

func classify(l *domain.Listing, tables *normalize.Tables) {
	osName := normalize.Lower(l.OS)
	l.HasDedicatedGPU = !tables.IsIntegrated(l.GPU)
	l.IsApple = l.Brand == "apple" || strings.Contains(osName, "macos") || strings.Contains(osName, "mac os")
	l.IsGaming = l.GPUScore >= gamingMinGPUScore
	l.IsUltrabook = l.ScreenSize <= ultrabookMaxScreen && l.GPUScore < ultrabookMaxGPUScore
	l.IsWorkstation = l.RAMGB >= workstationMinRAMGB && l.CPUScore >= workstationMinCPUScore
}

func (p *Processor) anomaly(l *domain.Listing) (string, bool) {
	for i := range p.rules {
		if p.rules[i].matches(l, p.log) {
			return p.rules[i].Name, true
		}
	}
	return "", false
}
