package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/laptop-advisor/internal/engine"
)

// MarketReporter computes market statistics.
type MarketReporter interface {
	Market(ctx context.Context) (*engine.MarketReport, error)
}

// MarketHandler serves market statistics.
type MarketHandler struct {
	reporter MarketReporter
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(r MarketReporter) *MarketHandler {
	return &MarketHandler{reporter: r}
}

// GetMarketOutput is the response for market statistics.
type GetMarketOutput struct {
	Body *engine.MarketReport
}

// GetMarket returns price, brand, GPU and hardware distributions for the catalog.
func (h *MarketHandler) GetMarket(ctx context.Context, _ *struct{}) (*GetMarketOutput, error) {
	rep, err := h.reporter.Market(ctx)
	if err != nil {
		return nil, apiError("market statistics", err)
	}
	return &GetMarketOutput{Body: rep}, nil
}

// RegisterMarketRoutes registers market endpoints with the Huma API.
func RegisterMarketRoutes(api huma.API, h *MarketHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-market",
		Method:      http.MethodGet,
		Path:        "/api/v1/market",
		Summary:     "Market statistics",
		Description: "Returns price percentiles, brand, GPU, RAM, SSD and screen distributions and a price histogram.",
		Tags:        []string{"market"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.GetMarket)
}
