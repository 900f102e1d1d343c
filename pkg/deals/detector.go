// Package deals finds listings priced well below similar laptops.
package deals

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"

	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// Defaults for the detector.
const (
	DefaultThreshold       = 15.0
	DefaultMaxResults      = 20
	DefaultFallbackMarkup  = 1.2
	DefaultPerfTolerance   = 0.20
	DefaultRAMToleranceGB  = 4
	minPeers               = 3
	minPeersAfterFence     = 2
	affordableDedicatedMax = 40000
)

// Detector estimates market prices from peer listings and ranks deals.
// It holds no per-call state and is safe for concurrent use.
type Detector struct {
	maxResults     int
	fallbackMarkup float64
	perfTolerance  float64
	ramTolerance   int
	log            *slog.Logger
}

// Option configures the Detector.
type Option func(*Detector)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Detector) {
		d.log = l
	}
}

// WithMaxResults caps the number of deals returned. Zero or less returns all.
func WithMaxResults(n int) Option {
	return func(d *Detector) {
		d.maxResults = n
	}
}

// WithFallbackMarkup sets the multiplier applied to a listing's own price
// when no peer estimate is available.
func WithFallbackMarkup(m float64) Option {
	return func(d *Detector) {
		d.fallbackMarkup = m
	}
}

// WithPeerTolerance sets how far a peer's performance score (as a fraction
// of the candidate's) and RAM may differ from the candidate's.
func WithPeerTolerance(perf float64, ramGB int) Option {
	return func(d *Detector) {
		d.perfTolerance = perf
		d.ramTolerance = ramGB
	}
}

// NewDetector creates a Detector with default settings.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		maxResults:     DefaultMaxResults,
		fallbackMarkup: DefaultFallbackMarkup,
		perfTolerance:  DefaultPerfTolerance,
		ramTolerance:   DefaultRAMToleranceGB,
		log:            slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Estimate is a market price estimate for one listing.
type Estimate struct {
	MarketPrice float64
	Peers       int
	Source      domain.EstimateSource
}

// Find evaluates every listing and returns those discounted by at least
// threshold percent, ranked by deal score, then discount, then price.
// A listing whose evaluation fails is logged and skipped. The input is
// never modified, so abandoning the call through ctx is always safe.
func (d *Detector) Find(ctx context.Context, listings []domain.Listing, threshold float64) ([]domain.DealListing, error) {
	found := make([]domain.DealListing, 0)
	var fallbacks, failures int

	for i := range listings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		deal, err := d.evaluate(listings, i)
		if err != nil {
			failures++
			d.log.Warn("deal evaluation failed, skipping listing",
				"listing", listings[i].Name,
				"error", err,
			)
			continue
		}
		if deal.EstimateSource == domain.EstimateFallback {
			fallbacks++
		}
		if deal.DiscountPercentage >= threshold {
			found = append(found, deal)
		}
	}

	slices.SortStableFunc(found, compareDeals)
	if d.maxResults > 0 && len(found) > d.maxResults {
		found = found[:d.maxResults]
	}

	d.log.Debug("deal detection finished",
		"candidates", len(listings),
		"deals", len(found),
		"fallback_estimates", fallbacks,
		"failures", failures,
		"threshold", threshold,
	)
	return found, nil
}

func compareDeals(a, b domain.DealListing) int {
	if c := cmp.Compare(b.DealScore, a.DealScore); c != 0 {
		return c
	}
	if c := cmp.Compare(b.DiscountPercentage, a.DiscountPercentage); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Price, b.Price); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

func (d *Detector) evaluate(listings []domain.Listing, i int) (deal domain.DealListing, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("evaluating deal: %v", rec)
		}
	}()

	c := &listings[i]
	est := d.Estimate(listings, c)

	deal = domain.DealListing{
		Listing:             *c,
		MarketPriceEstimate: est.MarketPrice,
		DiscountPercentage:  Discount(est.MarketPrice, c.Price),
		PeerCount:           est.Peers,
		EstimateSource:      est.Source,
	}
	deal.DealScore = DealScore(c, deal.DiscountPercentage)
	deal.Level = Level(deal.DiscountPercentage)
	deal.Reasons = Reasons(&deal)

	if math.IsNaN(deal.DealScore) || math.IsNaN(deal.DiscountPercentage) {
		return domain.DealListing{}, fmt.Errorf("non-finite deal values for %q", c.Name)
	}
	return deal, nil
}

// Estimate computes the market price for candidate from its peers: other
// listings (by name) whose performance score is within the performance
// tolerance and whose RAM is within the RAM tolerance. With at least three
// peers and a positive IQR, the estimate is the mean of the fenced peer
// prices when at least two remain. Otherwise it is the candidate's price
// times the fallback markup.
func (d *Detector) Estimate(listings []domain.Listing, candidate *domain.Listing) Estimate {
	perf := candidate.PerformanceScore()
	tol := d.perfTolerance * perf

	var prices []float64
	for i := range listings {
		p := &listings[i]
		if p.Name == candidate.Name {
			continue
		}
		if !(math.Abs(p.PerformanceScore()-perf) <= tol) {
			continue
		}
		if absInt(p.RAMGB-candidate.RAMGB) > d.ramTolerance {
			continue
		}
		prices = append(prices, p.Price)
	}

	if len(prices) >= minPeers {
		if mean, ok := fencedMean(prices, minPeersAfterFence); ok {
			return Estimate{MarketPrice: mean, Peers: len(prices), Source: domain.EstimatePeers}
		}
	}
	return Estimate{
		MarketPrice: candidate.Price * d.fallbackMarkup,
		Peers:       len(prices),
		Source:      domain.EstimateFallback,
	}
}

// Discount returns how far price sits below market, in percent, never
// negative.
func Discount(market, price float64) float64 {
	if !(market > 0) {
		return 0
	}
	return math.Max(0, (market-price)/market*100)
}

// DealScore blends discount with performance, RAM and storage into 0-100.
func DealScore(l *domain.Listing, discount float64) float64 {
	s := discount +
		l.PerformanceScore()/100*10 +
		float64(l.RAMGB)/32*5 +
		float64(l.SSDGB)/1024*3
	return math.Max(0, math.Min(100, s))
}

// Level grades a discount.
func Level(discount float64) domain.DealLevel {
	switch {
	case discount >= 30:
		return domain.DealGreat
	case discount >= 20:
		return domain.DealVeryGood
	default:
		return domain.DealGood
	}
}

// Reasons lists what makes a deal attractive.
func Reasons(d *domain.DealListing) []string {
	var out []string
	if d.DiscountPercentage > 25 {
		out = append(out, fmt.Sprintf("%.0f%% below similar laptops", d.DiscountPercentage))
	}
	if d.HasDedicatedGPU && d.Price < affordableDedicatedMax {
		out = append(out, "dedicated GPU at an entry-level price")
	}
	if d.RAMGB >= 16 && d.SSDGB >= 512 {
		out = append(out, "16GB+ RAM with 512GB+ SSD")
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Summary aggregates a deal list.
type Summary struct {
	Count           int     `json:"count"`
	AverageDiscount float64 `json:"average_discount"`
	MaxDiscount     float64 `json:"max_discount"`
	TotalSavings    float64 `json:"total_savings"`
}

// Summarize aggregates deals. Savings are price × discount / 100.
func Summarize(deals []domain.DealListing) Summary {
	s := Summary{Count: len(deals)}
	if len(deals) == 0 {
		return s
	}
	var sum float64
	for i := range deals {
		sum += deals[i].DiscountPercentage
		s.MaxDiscount = math.Max(s.MaxDiscount, deals[i].DiscountPercentage)
		s.TotalSavings += deals[i].Savings()
	}
	s.AverageDiscount = sum / float64(len(deals))
	return s
}
