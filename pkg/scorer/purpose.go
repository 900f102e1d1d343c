package score

import domain "github.com/donaldgifford/laptop-advisor/pkg/types"

// Category groups listings for the purpose multiplier table. The
// categories are exclusive and checked in order: Apple, dedicated GPU,
// integrated.
type Category int

// Category constants.
const (
	CategoryIntegrated Category = iota
	CategoryDedicated
	CategoryApple
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryApple:
		return "apple"
	case CategoryDedicated:
		return "dedicated"
	default:
		return "integrated"
	}
}

// CategoryOf classifies a listing.
func CategoryOf(l *domain.Listing) Category {
	switch {
	case l.IsApple:
		return CategoryApple
	case l.HasDedicatedGPU:
		return CategoryDedicated
	default:
		return CategoryIntegrated
	}
}

// Multipliers holds the purpose-fit multiplier for each category.
type Multipliers struct {
	Apple      float64
	Dedicated  float64
	Integrated float64
}

// For returns the multiplier for a category.
func (m Multipliers) For(c Category) float64 {
	switch c {
	case CategoryApple:
		return m.Apple
	case CategoryDedicated:
		return m.Dedicated
	default:
		return m.Integrated
	}
}

// NeutralMultiplier applies to purposes outside the known set.
const NeutralMultiplier = 0.6

// PurposeMultipliers returns the multiplier row for a purpose. Unknown
// purposes get NeutralMultiplier for every category.
func PurposeMultipliers(p domain.Purpose) Multipliers {
	switch p {
	case domain.PurposeGaming:
		return Multipliers{Apple: 0.4, Dedicated: 1.0, Integrated: 0.3}
	case domain.PurposePortability:
		return Multipliers{Apple: 1.0, Dedicated: 0.3, Integrated: 1.0}
	case domain.PurposeProductivity:
		return Multipliers{Apple: 0.8, Dedicated: 0.6, Integrated: 0.7}
	case domain.PurposeDesign:
		return Multipliers{Apple: 1.0, Dedicated: 0.8, Integrated: 0.4}
	default:
		return Multipliers{Apple: NeutralMultiplier, Dedicated: NeutralMultiplier, Integrated: NeutralMultiplier}
	}
}

// PurposeMultiplier returns the multiplier for a purpose and category.
func PurposeMultiplier(p domain.Purpose, c Category) float64 {
	return PurposeMultipliers(p).For(c)
}
