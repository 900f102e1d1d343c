package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/laptop-advisor/internal/engine"
	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// Recommender produces ranked recommendations.
type Recommender interface {
	Recommend(ctx context.Context, p *domain.Preferences) (*engine.Recommendation, error)
}

// RecommendationsHandler handles recommendation requests.
type RecommendationsHandler struct {
	recommender Recommender
}

// NewRecommendationsHandler creates a new RecommendationsHandler.
func NewRecommendationsHandler(r Recommender) *RecommendationsHandler {
	return &RecommendationsHandler{recommender: r}
}

// --- Input/Output types ---

// PreferencesBody is the request body for recommendations.
type PreferencesBody struct {
	MinBudget             float64 `json:"min_budget,omitempty"             doc:"Lower budget bound"                                minimum:"0"  example:"20000"`
	MaxBudget             float64 `json:"max_budget"                       doc:"Upper budget bound"                                minimum:"0"  example:"45000"`
	Purpose               string  `json:"purpose,omitempty"                doc:"gaming, portability, productivity or design"                    example:"gaming"`
	PerformanceImportance int     `json:"performance_importance,omitempty" doc:"Importance slider 1-5, 0 for default"              minimum:"0"  maximum:"5"`
	BatteryImportance     int     `json:"battery_importance,omitempty"     doc:"Importance slider 1-5, 0 for default"              minimum:"0"  maximum:"5"`
	PortabilityImportance int     `json:"portability_importance,omitempty" doc:"Importance slider 1-5, 0 for default"              minimum:"0"  maximum:"5"`
	Brand                 string  `json:"brand,omitempty"                  doc:"Only this brand"                                                example:"lenovo"`
	MinRAM                int     `json:"min_ram,omitempty"                doc:"Minimum RAM in GB"                                 minimum:"0"`
	MinSSD                int     `json:"min_ssd,omitempty"                doc:"Minimum SSD in GB"                                 minimum:"0"`
	Screen                string  `json:"screen,omitempty"                 doc:"Screen bucket"                                                  enum:"compact,standard,large,"`
	OS                    string  `json:"os,omitempty"                     doc:"Operating system, macOS matches Apple listings"`
	GamingOnly            bool    `json:"gaming_only,omitempty"            doc:"Only gaming-class listings"`
}

// Preferences converts the body to domain preferences.
func (b *PreferencesBody) Preferences() *domain.Preferences {
	return &domain.Preferences{
		MinBudget:             b.MinBudget,
		MaxBudget:             b.MaxBudget,
		Purpose:               domain.ParsePurpose(b.Purpose),
		PerformanceImportance: b.PerformanceImportance,
		BatteryImportance:     b.BatteryImportance,
		PortabilityImportance: b.PortabilityImportance,
		Filters: domain.Filters{
			Brand:      b.Brand,
			MinRAM:     b.MinRAM,
			MinSSD:     b.MinSSD,
			Screen:     domain.ScreenBucket(b.Screen),
			OS:         b.OS,
			GamingOnly: b.GamingOnly,
		},
	}
}

// RecommendInput is the input for a recommendation request.
type RecommendInput struct {
	Body PreferencesBody
}

// RecommendOutput is the response for a recommendation request.
type RecommendOutput struct {
	Body *engine.Recommendation
}

// --- Handlers ---

// Recommend filters and scores the catalog against the request and returns
// the best matches. No match returns 200 with an empty list.
func (h *RecommendationsHandler) Recommend(
	ctx context.Context,
	input *RecommendInput,
) (*RecommendOutput, error) {
	rec, err := h.recommender.Recommend(ctx, input.Body.Preferences())
	if err != nil {
		return nil, apiError("recommendation", err)
	}
	return &RecommendOutput{Body: rec}, nil
}

// RegisterRecommendationRoutes registers recommendation endpoints with the Huma API.
func RegisterRecommendationRoutes(api huma.API, h *RecommendationsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "recommend",
		Method:      http.MethodPost,
		Path:        "/api/v1/recommendations",
		Summary:     "Recommend laptops",
		Description: "Filters the catalog by budget and preferences, scores every match and returns the top results.",
		Tags:        []string{"recommendations"},
		Errors:      []int{http.StatusUnprocessableEntity, http.StatusServiceUnavailable},
	}, h.Recommend)
}
