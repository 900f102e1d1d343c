package domain

// MarketStats summarizes a catalog snapshot.
type MarketStats struct {
	TotalListings int     `json:"total_listings"`
	AveragePrice  float64 `json:"average_price"`
	MedianPrice   float64 `json:"median_price"`
	BrandCount    int     `json:"brand_count"`

	DedicatedGPUCount    int     `json:"dedicated_gpu_count"`
	DedicatedGPUShare    float64 `json:"dedicated_gpu_share"`
	DedicatedGPUAvgPrice float64 `json:"dedicated_gpu_avg_price"`
	IntegratedShare      float64 `json:"integrated_share"`
	IntegratedAvgPrice   float64 `json:"integrated_avg_price"`

	TopBrand      string  `json:"top_brand"`
	TopBrandCount int     `json:"top_brand_count"`
	PremiumShare  float64 `json:"premium_share"`
	BudgetShare   float64 `json:"budget_share"`
	HighEndShare  float64 `json:"high_end_share"`

	Prices PriceBaseline `json:"prices"`

	Brands    []BrandStat    `json:"brands"`
	GPUs      []GPUStat      `json:"gpus"`
	RAM       []CountStat    `json:"ram"`
	SSD       []CountStat    `json:"ssd"`
	Screens   []CountStat    `json:"screens"`
	Combos    []ComboStat    `json:"combos"`
	Histogram []HistogramBin `json:"histogram"`
}

// BrandStat is the listing count and average price for one brand.
type BrandStat struct {
	Brand        string  `json:"brand"`
	Count        int     `json:"count"`
	Share        float64 `json:"share"`
	AveragePrice float64 `json:"average_price"`
}

// GPUStat groups listings by canonical GPU.
type GPUStat struct {
	GPU          string        `json:"gpu"`
	Count        int           `json:"count"`
	AveragePrice float64       `json:"average_price"`
	AverageScore float64       `json:"average_score"`
	Baseline     PriceBaseline `json:"baseline"`
}

// CountStat is a labelled count.
type CountStat struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// ComboStat is the average price of a RAM/SSD configuration.
type ComboStat struct {
	RAMGB        int     `json:"ram_gb"`
	SSDGB        int     `json:"ssd_gb"`
	Count        int     `json:"count"`
	AveragePrice float64 `json:"average_price"`
}

// HistogramBin is one price bucket. The upper bound is exclusive except for
// the last bin.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}
