package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/laptop-advisor/internal/engine"
)

// DealFinder finds discounted listings.
type DealFinder interface {
	Deals(ctx context.Context, threshold float64, limit int) (*engine.DealReport, error)
}

// DealsHandler handles deal queries.
type DealsHandler struct {
	finder DealFinder
}

// NewDealsHandler creates a new DealsHandler.
func NewDealsHandler(f DealFinder) *DealsHandler {
	return &DealsHandler{finder: f}
}

// ListDealsInput is the input for listing deals.
type ListDealsInput struct {
	Threshold float64 `query:"threshold" doc:"Minimum discount percentage, -1 for the server default" default:"-1" minimum:"-1" maximum:"100"`
	Limit     int     `query:"limit"     doc:"Number of deals, 0 for the server default"              default:"0"  minimum:"0"  maximum:"500"`
}

// ListDealsOutput is the response for listing deals.
type ListDealsOutput struct {
	Body *engine.DealReport
}

// ListDeals returns listings priced below their peer-group estimate.
func (h *DealsHandler) ListDeals(ctx context.Context, input *ListDealsInput) (*ListDealsOutput, error) {
	rep, err := h.finder.Deals(ctx, input.Threshold, input.Limit)
	if err != nil {
		return nil, apiError("deal detection", err)
	}
	return &ListDealsOutput{Body: rep}, nil
}

// RegisterDealRoutes registers deal endpoints with the Huma API.
func RegisterDealRoutes(api huma.API, h *DealsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-deals",
		Method:      http.MethodGet,
		Path:        "/api/v1/deals",
		Summary:     "List deals",
		Description: "Returns listings discounted against comparable listings, ranked by deal score.",
		Tags:        []string{"deals"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.ListDeals)
}
