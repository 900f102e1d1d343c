package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

func ultrabook(price float64) domain.Listing {
	return domain.Listing{
		Name: "Zenbook 14", Price: price, ScreenSize: 14, RAMGB: 16, SSDGB: 512,
		CPU: "i7", GPU: "intel iris xe", Brand: "asus",
		GPUScore: 25, CPUScore: 85, BrandScore: 0.82,
		IsUltrabook: true, IsWorkstation: true,
	}
}

func gamingLaptop(price float64) domain.Listing {
	return domain.Listing{
		Name: "Legion 5", Price: price, ScreenSize: 15.6, RAMGB: 16, SSDGB: 1024,
		CPU: "ryzen 7", GPU: "rtx4060", Brand: "lenovo",
		GPUScore: 75, CPUScore: 85, BrandScore: 0.85,
		HasDedicatedGPU: true, IsGaming: true, IsWorkstation: true,
	}
}

func TestScore_DefaultWeights(t *testing.T) {
	t.Parallel()

	w := DefaultWeights()
	assert.InDelta(t, 100.0, w.Sum(), 0.001, "default weights should sum to 100")
	require.NoError(t, w.Validate())
}

func TestWeights_Validate(t *testing.T) {
	t.Parallel()

	w := DefaultWeights()
	w.Battery = -1
	assert.ErrorContains(t, w.Validate(), "weight battery must be a non-negative number")

	assert.ErrorContains(t, Weights{}.Validate(), "at least one weight must be positive")
}

func TestScore_PortabilityScenario(t *testing.T) {
	t.Parallel()

	prefs := &domain.Preferences{
		MinBudget: 20000,
		MaxBudget: 50000,
		Purpose:   domain.ParsePurpose("taşınabilirlik"),
	}

	cheap := ultrabook(35000)

	// Same hardware scores as the ultrabook, but priced high and with a
	// dedicated GPU.
	pricey := cheap
	pricey.Price = 70000
	pricey.HasDedicatedGPU = true
	pricey.IsUltrabook = false

	a, err := Score(&cheap, prefs, DefaultWeights())
	require.NoError(t, err)
	b, err := Score(&pricey, prefs, DefaultWeights())
	require.NoError(t, err)

	assert.InDelta(t, 15.0, a.PriceFit, 0.001, "ideal price earns full price-fit")
	assert.InDelta(t, 0.0, b.PriceFit, 0.001)
	assert.Greater(t, a.PriceFit, b.PriceFit)
	assert.Greater(t, a.Purpose, b.Purpose)
	assert.Greater(t, a.Total, b.Total)
}

func TestScore_Components(t *testing.T) {
	t.Parallel()

	l := gamingLaptop(40000)
	prefs := &domain.Preferences{
		MinBudget:             30000,
		MaxBudget:             50000,
		Purpose:               domain.PurposeGaming,
		PerformanceImportance: 5,
		BatteryImportance:     1,
		PortabilityImportance: 1,
	}

	b, err := Score(&l, prefs, DefaultWeights())
	require.NoError(t, err)

	perf := (75*0.6 + 85*0.4) / 100 // 0.79
	assert.InDelta(t, 15.0, b.PriceFit, 0.001)
	assert.InDelta(t, perf*1*10, b.PricePerformance, 0.001)
	assert.InDelta(t, 30*perf*1.0, b.Purpose, 0.001)
	assert.InDelta(t, 12*perf*1+8*0.5*0.2+7*0.5*0.2, b.Preference, 0.001)
	assert.InDelta(t, 5+5, b.Hardware, 0.001)
	assert.InDelta(t, 8*0.85, b.Brand, 0.001)

	sum := b.PriceFit + b.PricePerformance + b.Purpose + b.Preference + b.Hardware + b.Brand
	assert.InDelta(t, math.Min(sum, 100), b.Total, 0.01)
}

func TestScore_BudgetEdgeCases(t *testing.T) {
	t.Parallel()

	l := gamingLaptop(42000)

	tests := []struct {
		name     string
		min, max float64
	}{
		{name: "equal budget", min: 42000, max: 42000},
		{name: "equal budget off price", min: 30000, max: 30000},
		{name: "reversed budget", min: 50000, max: 30000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, err := Score(&l, &domain.Preferences{MinBudget: tt.min, MaxBudget: tt.max}, DefaultWeights())
			require.NoError(t, err)
			assert.InDelta(t, 15.0, b.PriceFit, 0.001, "no discriminating budget earns full weight")
			assert.False(t, math.IsNaN(b.Total))
		})
	}
}

func TestScore_PriceFitMonotonic(t *testing.T) {
	t.Parallel()

	prefs := &domain.Preferences{MinBudget: 20000, MaxBudget: 60000}
	prev := -1.0
	// Walk towards the ideal price (40000) from above.
	for price := 80000.0; price >= 40000; price -= 2500 {
		l := ultrabook(price)
		b, err := Score(&l, prefs, DefaultWeights())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, b.PriceFit, prev, "price %v", price)
		prev = b.PriceFit
	}
}

func TestScore_HardwareSaturates(t *testing.T) {
	t.Parallel()

	prefs := &domain.Preferences{MinBudget: 20000, MaxBudget: 60000}
	w := DefaultWeights()

	hw := func(ram, ssd int) float64 {
		l := ultrabook(40000)
		l.RAMGB, l.SSDGB = ram, ssd
		b, err := Score(&l, prefs, w)
		require.NoError(t, err)
		return b.Hardware
	}

	assert.InDelta(t, w.RAM+w.SSD, hw(16, 1024), 0.001)
	assert.InDelta(t, hw(16, 1024), hw(64, 4096), 0.001)
	assert.Less(t, hw(8, 512), hw(16, 1024))
}

func TestScore_BoundsAndDeterminism(t *testing.T) {
	t.Parallel()

	listings := []domain.Listing{
		ultrabook(100), ultrabook(1e9), gamingLaptop(1), gamingLaptop(55000),
		{Name: "bare", Price: 1, GPUScore: 110, CPUScore: 100, BrandScore: 1, RAMGB: 128, SSDGB: 8192},
		{Name: "empty", Price: 1e-9},
	}
	prefs := []domain.Preferences{
		{MinBudget: 0, MaxBudget: 1e9, Purpose: domain.PurposeDesign, PerformanceImportance: 5, BatteryImportance: 5, PortabilityImportance: 5},
		{MinBudget: 20000, MaxBudget: 20000, Purpose: "unknown"},
		{MinBudget: 90000, MaxBudget: 10, Purpose: domain.PurposeGaming, PerformanceImportance: -4},
	}

	for i := range listings {
		for j := range prefs {
			first, err := Score(&listings[i], &prefs[j], DefaultWeights())
			require.NoError(t, err)
			again, err := Score(&listings[i], &prefs[j], DefaultWeights())
			require.NoError(t, err)

			assert.Equal(t, first, again, "score must be deterministic")
			assert.GreaterOrEqual(t, first.Total, 0.0)
			assert.LessOrEqual(t, first.Total, 100.0)
		}
	}
}

func TestScore_InvalidInput(t *testing.T) {
	t.Parallel()

	prefs := &domain.Preferences{MinBudget: 1, MaxBudget: 2}

	_, err := Score(nil, prefs, DefaultWeights())
	assert.ErrorIs(t, err, ErrInvalidListing)

	l := ultrabook(0)
	b, err := Score(&l, prefs, DefaultWeights())
	assert.ErrorIs(t, err, ErrInvalidListing)
	assert.Zero(t, b.Total)

	l = ultrabook(math.NaN())
	_, err = Score(&l, prefs, DefaultWeights())
	assert.ErrorIs(t, err, ErrInvalidListing)

	l = ultrabook(30000)
	l.GPUScore = math.Inf(1)
	_, err = Score(&l, prefs, DefaultWeights())
	assert.ErrorIs(t, err, ErrInvalidListing)
}

func TestPurposeMultiplier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		purpose domain.Purpose
		cat     Category
		want    float64
	}{
		{domain.PurposeGaming, CategoryDedicated, 1.0},
		{domain.PurposeGaming, CategoryIntegrated, 0.3},
		{domain.PurposePortability, CategoryDedicated, 0.3},
		{domain.PurposePortability, CategoryIntegrated, 1.0},
		{domain.PurposeDesign, CategoryApple, 1.0},
		{domain.PurposeDesign, CategoryIntegrated, 0.4},
		{domain.Purpose("streaming"), CategoryApple, NeutralMultiplier},
		{domain.Purpose(""), CategoryDedicated, NeutralMultiplier},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, PurposeMultiplier(tt.purpose, tt.cat), 0.001, "%s/%s", tt.purpose, tt.cat)
	}
}

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	apple := domain.Listing{IsApple: true, HasDedicatedGPU: true}
	dedicated := domain.Listing{HasDedicatedGPU: true}
	integrated := domain.Listing{}

	assert.Equal(t, CategoryApple, CategoryOf(&apple), "apple is checked first")
	assert.Equal(t, CategoryDedicated, CategoryOf(&dedicated))
	assert.Equal(t, CategoryIntegrated, CategoryOf(&integrated))
}

func TestPortabilityFactor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		l    domain.Listing
		want float64
	}{
		{"ultrabook", domain.Listing{IsUltrabook: true, ScreenSize: 15}, 1.2},
		{"compact screen", domain.Listing{ScreenSize: 13.3, HasDedicatedGPU: true}, 1.2},
		{"dedicated gpu", domain.Listing{ScreenSize: 15.6, HasDedicatedGPU: true}, 0.5},
		{"large apple", domain.Listing{ScreenSize: 16.2, IsApple: true}, 0.9},
		{"plain", domain.Listing{ScreenSize: 15.6}, 1.0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, PortabilityFactor(&tt.l), 0.001, tt.name)
	}
}
