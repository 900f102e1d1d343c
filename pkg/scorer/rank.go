package score

import (
	"cmp"
	"log/slog"
	"slices"

	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// DefaultTopK is the number of recommendations returned when no K is set.
const DefaultTopK = 8

// Filter returns the listings that satisfy the budget and every active
// filter. The result is a new slice and is empty, never nil, when nothing
// matches.
func Filter(listings []domain.Listing, p *domain.Preferences) []domain.Listing {
	out := make([]domain.Listing, 0)
	for i := range listings {
		if p.Match(&listings[i]) {
			out = append(out, listings[i])
		}
	}
	return out
}

// Rank scores every listing and returns the top k ordered by score
// descending, then price ascending, then name. Listings that fail to score
// are logged and ranked with a score of 0. k <= 0 uses DefaultTopK.
func Rank(
	listings []domain.Listing,
	p *domain.Preferences,
	w Weights,
	k int,
	log *slog.Logger,
) []domain.ScoredListing {
	if log == nil {
		log = slog.Default()
	}
	if k <= 0 {
		k = DefaultTopK
	}

	scored := make([]domain.ScoredListing, 0, len(listings))
	for i := range listings {
		b, err := Score(&listings[i], p, w)
		if err != nil {
			log.Warn("scoring failed, using zero score",
				"listing", listings[i].Name,
				"error", err,
			)
		}
		scored = append(scored, domain.ScoredListing{
			Listing:   listings[i],
			Score:     b.Total,
			Breakdown: b,
		})
	}

	slices.SortStableFunc(scored, compareScored)

	if len(scored) > k {
		scored = scored[:k]
	}
	for i := range scored {
		scored[i].Highlights = Highlights(&scored[i].Listing)
		scored[i].Explanation = Explain(&scored[i].Listing, p)
	}
	return scored
}

func compareScored(a, b domain.ScoredListing) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Price, b.Price); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// Summary describes a recommendation result.
type Summary struct {
	Found          int     `json:"found"`
	Matched        int     `json:"matched"`
	Total          int     `json:"total"`
	MatchShare     float64 `json:"match_share"`
	AveragePrice   float64 `json:"average_price"`
	TopScore       float64 `json:"top_score"`
	BrandDiversity int     `json:"brand_diversity"`
}

// Summarize reports on ranked results. matched is the number of listings
// that passed filtering and total the catalog size.
func Summarize(ranked []domain.ScoredListing, matched, total int) Summary {
	s := Summary{Found: len(ranked), Matched: matched, Total: total}
	if total > 0 {
		s.MatchShare = float64(matched) / float64(total) * 100
	}
	if len(ranked) == 0 {
		return s
	}

	brands := make(map[string]struct{})
	var sum float64
	for i := range ranked {
		sum += ranked[i].Price
		brands[ranked[i].Brand] = struct{}{}
	}
	s.AveragePrice = sum / float64(len(ranked))
	s.TopScore = ranked[0].Score
	s.BrandDiversity = len(brands)
	return s
}
