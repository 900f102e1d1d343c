package catalog

import (
	"log/slog"

	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// AnomalyRule removes listings that are known to be mislabeled. Rules run
// after normalization, in order; the first match removes the listing.
type AnomalyRule struct {
	Name   string
	Reason string
	Match  func(l *domain.Listing) bool
}

// UnderpricedGPURule flags listings with the given canonical GPU priced
// below maxPrice.
func UnderpricedGPURule(name, gpu string, maxPrice float64, reason string) AnomalyRule {
	return AnomalyRule{
		Name:   name,
		Reason: reason,
		Match: func(l *domain.Listing) bool {
			return l.GPU == gpu && l.Price < maxPrice
		},
	}
}

// DefaultAnomalyRules returns the built-in rules. The RTX 5060 price floor
// is a catalog heuristic, not a product guarantee.
func DefaultAnomalyRules() []AnomalyRule {
	return []AnomalyRule{
		UnderpricedGPURule(
			"rtx5060-underpriced",
			"rtx5060",
			50000,
			"RTX 5060 listings under 50000 are usually mislabeled lower-tier GPUs",
		),
	}
}

// matches evaluates the rule. A panicking predicate counts as no match.
func (r *AnomalyRule) matches(l *domain.Listing, log *slog.Logger) (hit bool) {
	if r.Match == nil {
		return false
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("anomaly rule panicked", "rule", r.Name, "listing", l.Name, "panic", rec)
			hit = false
		}
	}()
	return r.Match(l)
}
