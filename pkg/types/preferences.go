package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Purpose is the intended use of the laptop.
type Purpose string

// Purpose constants.
const (
	PurposeGaming       Purpose = "gaming"
	PurposePortability  Purpose = "portability"
	PurposeProductivity Purpose = "productivity"
	PurposeDesign       Purpose = "design"
)

// purposeAliases maps accepted spellings, including the Turkish names used
// by the catalog's original audience, to a purpose.
var purposeAliases = map[string]Purpose{
	"gaming":         PurposeGaming,
	"oyun":           PurposeGaming,
	"portability":    PurposePortability,
	"taşınabilirlik": PurposePortability,
	"taşinabilirlik": PurposePortability,
	"tasinabilirlik": PurposePortability,
	"productivity":   PurposeProductivity,
	"üretkenlik":     PurposeProductivity,
	"uretkenlik":     PurposeProductivity,
	"design":         PurposeDesign,
	"tasarım":        PurposeDesign,
	"tasarim":        PurposeDesign,
}

// ParsePurpose resolves a purpose name. Unrecognised values are returned
// as-is so callers can still score them with the neutral multiplier.
func ParsePurpose(s string) Purpose {
	key := strings.ToLower(strings.TrimSpace(s))
	if p, ok := purposeAliases[key]; ok {
		return p
	}
	return Purpose(key)
}

// Known reports whether p is one of the four defined purposes.
func (p Purpose) Known() bool {
	switch p {
	case PurposeGaming, PurposePortability, PurposeProductivity, PurposeDesign:
		return true
	default:
		return false
	}
}

// ScreenBucket is a screen-size range.
type ScreenBucket string

// Screen bucket constants. The buckets do not overlap: compact is up to and
// including 14.5", standard is above 14.5" up to and including 16.5", large
// is above 16.5".
const (
	ScreenAny      ScreenBucket = ""
	ScreenCompact  ScreenBucket = "compact"
	ScreenStandard ScreenBucket = "standard"
	ScreenLarge    ScreenBucket = "large"
)

// Contains reports whether size (inches) falls in the bucket.
func (b ScreenBucket) Contains(size float64) bool {
	switch b {
	case ScreenAny:
		return true
	case ScreenCompact:
		return size <= 14.5
	case ScreenStandard:
		return size > 14.5 && size <= 16.5
	case ScreenLarge:
		return size > 16.5
	default:
		return false
	}
}

// BucketFor returns the bucket that contains size.
func BucketFor(size float64) ScreenBucket {
	switch {
	case size <= 14.5:
		return ScreenCompact
	case size <= 16.5:
		return ScreenStandard
	default:
		return ScreenLarge
	}
}

// Importance slider bounds.
const (
	MinImportance     = 1
	MaxImportance     = 5
	DefaultImportance = 3
)

// Preferences is one recommendation request.
type Preferences struct {
	MinBudget float64 `json:"min_budget"`
	MaxBudget float64 `json:"max_budget"`
	Purpose   Purpose `json:"purpose"`

	PerformanceImportance int `json:"performance_importance,omitempty"`
	BatteryImportance     int `json:"battery_importance,omitempty"`
	PortabilityImportance int `json:"portability_importance,omitempty"`

	Filters Filters `json:"filters"`
}

// Filters are optional hard constraints applied before scoring.
type Filters struct {
	Brand      string       `json:"brand,omitempty"`
	MinRAM     int          `json:"min_ram,omitempty"`
	MinSSD     int          `json:"min_ssd,omitempty"`
	Screen     ScreenBucket `json:"screen,omitempty"`
	OS         string       `json:"os,omitempty"`
	GamingOnly bool         `json:"gaming_only,omitempty"`
}

// Importance returns a slider value in [1, 5]. Zero means unset and maps to
// the mid-scale default.
func Importance(v int) int {
	switch {
	case v == 0:
		return DefaultImportance
	case v < MinImportance:
		return MinImportance
	case v > MaxImportance:
		return MaxImportance
	default:
		return v
	}
}

// IdealPrice is the midpoint of the budget range.
func (p *Preferences) IdealPrice() float64 {
	return (p.MinBudget + p.MaxBudget) / 2
}

// BudgetRange is the width of the budget range. It is zero or negative when
// the bounds are equal or reversed.
func (p *Preferences) BudgetRange() float64 {
	return p.MaxBudget - p.MinBudget
}

// Validate checks the request for values no scoring fallback can repair.
// Equal or reversed budgets are allowed.
func (p *Preferences) Validate() error {
	var errs []error

	if p.MinBudget < 0 {
		errs = append(errs, fmt.Errorf("min_budget must not be negative (got %v)", p.MinBudget))
	}
	if p.MaxBudget <= 0 {
		errs = append(errs, fmt.Errorf("max_budget must be positive (got %v)", p.MaxBudget))
	}
	for name, v := range map[string]int{
		"performance_importance": p.PerformanceImportance,
		"battery_importance":     p.BatteryImportance,
		"portability_importance": p.PortabilityImportance,
	} {
		if v != 0 && (v < MinImportance || v > MaxImportance) {
			errs = append(errs, fmt.Errorf("%s must be between 1 and 5 (got %d)", name, v))
		}
	}
	switch p.Filters.Screen {
	case ScreenAny, ScreenCompact, ScreenStandard, ScreenLarge:
	default:
		errs = append(errs, fmt.Errorf("filters.screen must be compact, standard or large (got %q)", p.Filters.Screen))
	}
	if p.Filters.MinRAM < 0 || p.Filters.MinSSD < 0 {
		errs = append(errs, errors.New("filters.min_ram and filters.min_ssd must not be negative"))
	}

	return errors.Join(errs...)
}

// Match checks if a listing satisfies the budget and every active filter.
func (p *Preferences) Match(l *Listing) bool {
	if l.Price < p.MinBudget || l.Price > p.MaxBudget {
		return false
	}
	return p.Filters.Match(l)
}

// Match checks if a listing satisfies every active filter.
func (f *Filters) Match(l *Listing) bool {
	if !f.matchBrand(l) {
		return false
	}
	if !f.matchSpecs(l) {
		return false
	}
	if !f.Screen.Contains(l.ScreenSize) {
		return false
	}
	if !l.HasOS(f.OS) {
		return false
	}
	return !f.GamingOnly || l.IsGaming
}

func (f *Filters) matchBrand(l *Listing) bool {
	if f.Brand == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(f.Brand), l.Brand)
}

func (f *Filters) matchSpecs(l *Listing) bool {
	if f.MinRAM > 0 && l.RAMGB < f.MinRAM {
		return false
	}
	if f.MinSSD > 0 && l.SSDGB < f.MinSSD {
		return false
	}
	return true
}
