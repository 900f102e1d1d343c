package score

import (
	"errors"
	"fmt"
	"math"

	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// ErrInvalidListing is returned when a listing cannot be scored.
var ErrInvalidListing = errors.New("listing cannot be scored")

// Reference capacities at which the hardware components saturate.
const (
	referenceRAMGB = 16
	referenceSSDGB = 1024
)

// Portability factors.
const (
	portableFactor  = 1.2
	dedicatedFactor = 0.5
	appleFactor     = 0.9
	neutralFactor   = 1.0
	compactScreen   = 14
)

// Weights defines the maximum points each scoring component contributes.
type Weights struct {
	PriceFit         float64
	PricePerformance float64
	Purpose          float64
	Performance      float64
	Battery          float64
	Portability      float64
	RAM              float64
	SSD              float64
	Brand            float64
}

// DefaultWeights returns the default scoring weights. They sum to 100.
func DefaultWeights() Weights {
	return Weights{
		PriceFit:         15,
		PricePerformance: 10,
		Purpose:          30,
		Performance:      12,
		Battery:          8,
		Portability:      7,
		RAM:              5,
		SSD:              5,
		Brand:            8,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.PriceFit + w.PricePerformance + w.Purpose +
		w.Performance + w.Battery + w.Portability +
		w.RAM + w.SSD + w.Brand
}

// Validate rejects negative weights and an all-zero set.
func (w Weights) Validate() error {
	var errs []error
	for name, v := range map[string]float64{
		"price_fit":         w.PriceFit,
		"price_performance": w.PricePerformance,
		"purpose":           w.Purpose,
		"performance":       w.Performance,
		"battery":           w.Battery,
		"portability":       w.Portability,
		"ram":               w.RAM,
		"ssd":               w.SSD,
		"brand":             w.Brand,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("weight %s must be a non-negative number (got %v)", name, v))
		}
	}
	if len(errs) == 0 && w.Sum() == 0 {
		errs = append(errs, errors.New("at least one weight must be positive"))
	}
	return errors.Join(errs...)
}

// Score computes the 0-100 suitability of a listing for a preference set.
// It never panics: a failure yields a zero breakdown and an error.
func Score(l *domain.Listing, p *domain.Preferences, w Weights) (b domain.ScoreBreakdown, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			b = domain.ScoreBreakdown{}
			err = fmt.Errorf("%w: %v", ErrInvalidListing, rec)
		}
	}()

	if l == nil || p == nil {
		return domain.ScoreBreakdown{}, fmt.Errorf("%w: missing listing or preferences", ErrInvalidListing)
	}
	if !(l.Price > 0) {
		return domain.ScoreBreakdown{}, fmt.Errorf("%w: non-positive price %v", ErrInvalidListing, l.Price)
	}

	perf := l.PerformanceScore() / 100

	b.PriceFit = priceFit(l.Price, p, w.PriceFit)
	b.PricePerformance = perf * (p.IdealPrice() / l.Price) * w.PricePerformance
	b.Purpose = w.Purpose * perf * PurposeMultiplier(p.Purpose, CategoryOf(l))
	b.Preference = preference(l, p, w, perf)
	b.Hardware = w.RAM*math.Min(float64(l.RAMGB)/referenceRAMGB, 1) +
		w.SSD*math.Min(float64(l.SSDGB)/referenceSSDGB, 1)
	b.Brand = w.Brand * l.BrandScore

	total := b.PriceFit + b.PricePerformance + b.Purpose + b.Preference + b.Hardware + b.Brand
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return domain.ScoreBreakdown{}, fmt.Errorf("%w: non-finite score", ErrInvalidListing)
	}
	b.Total = clamp(math.Round(total*100)/100, 0, 100)

	return b, nil
}

// priceFit falls off linearly from full weight at the ideal price to zero
// at half the budget span away. A zero or reversed range earns full weight.
func priceFit(price float64, p *domain.Preferences, weight float64) float64 {
	span := p.BudgetRange()
	if span <= 0 {
		return weight
	}
	return weight * math.Max(0, 1-math.Abs(price-p.IdealPrice())/(span/2))
}

func preference(l *domain.Listing, p *domain.Preferences, w Weights, perf float64) float64 {
	factor := PortabilityFactor(l)
	return w.Performance*perf*slider(p.PerformanceImportance) +
		w.Battery*factor*slider(p.BatteryImportance) +
		w.Portability*factor*slider(p.PortabilityImportance)
}

func slider(v int) float64 {
	return float64(domain.Importance(v)) / domain.MaxImportance
}

// PortabilityFactor rates how easy a listing is to carry and run on
// battery. Ultrabook-like and compact machines rate highest, non-Apple
// machines with a dedicated GPU lowest.
func PortabilityFactor(l *domain.Listing) float64 {
	switch {
	case l.IsUltrabook || l.ScreenSize <= compactScreen:
		return portableFactor
	case l.HasDedicatedGPU && !l.IsApple:
		return dedicatedFactor
	case l.IsApple:
		return appleFactor
	default:
		return neutralFactor
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
