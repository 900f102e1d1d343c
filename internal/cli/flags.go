package cli

import (
	"github.com/spf13/pflag"

	"github.com/donaldgifford/laptop-advisor/internal/api/handlers"
)

// BindPreferences registers the recommendation flags on fs and writes the
// parsed values into p.
func BindPreferences(fs *pflag.FlagSet, p *handlers.PreferencesBody) {
	fs.Float64Var(&p.MinBudget, "min-budget", 0, "lower budget bound")
	fs.Float64Var(&p.MaxBudget, "max-budget", 0, "upper budget bound (required)")
	fs.StringVar(&p.Purpose, "purpose", "", "gaming, portability, productivity or design")
	fs.IntVar(&p.PerformanceImportance, "performance", 0, "performance importance 1-5")
	fs.IntVar(&p.BatteryImportance, "battery", 0, "battery importance 1-5")
	fs.IntVar(&p.PortabilityImportance, "portability", 0, "portability importance 1-5")
	fs.StringVar(&p.Brand, "brand", "", "only this brand")
	fs.IntVar(&p.MinRAM, "min-ram", 0, "minimum RAM in GB")
	fs.IntVar(&p.MinSSD, "min-ssd", 0, "minimum SSD in GB")
	fs.StringVar(&p.Screen, "screen", "", "screen bucket (compact, standard, large)")
	fs.StringVar(&p.OS, "os", "", "operating system")
	fs.BoolVar(&p.GamingOnly, "gaming-only", false, "only gaming-class listings")
}
