package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/donaldgifford/laptop-advisor/internal/api/handlers"
	"github.com/donaldgifford/laptop-advisor/internal/engine"
	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// Recommend requests ranked recommendations for the given preferences.
func (c *Client) Recommend(ctx context.Context, p *handlers.PreferencesBody) (*engine.Recommendation, error) {
	var rec engine.Recommendation
	if err := c.post(ctx, "/api/v1/recommendations", p, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Deals fetches underpriced listings. A negative threshold or a zero limit
// uses the server defaults.
func (c *Client) Deals(ctx context.Context, threshold float64, limit int) (*engine.DealReport, error) {
	params := url.Values{}
	if threshold >= 0 {
		params.Set("threshold", strconv.FormatFloat(threshold, 'f', -1, 64))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	path := "/api/v1/deals"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var report engine.DealReport
	if err := c.get(ctx, path, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Market fetches the aggregate market statistics.
func (c *Client) Market(ctx context.Context) (*engine.MarketReport, error) {
	var report engine.MarketReport
	if err := c.get(ctx, "/api/v1/market", &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Catalog fetches the current snapshot metadata.
func (c *Client) Catalog(ctx context.Context) (*handlers.CatalogInfo, error) {
	var info handlers.CatalogInfo
	if err := c.get(ctx, "/api/v1/catalog", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// RefreshCatalog forces a reload from the configured source.
func (c *Client) RefreshCatalog(ctx context.Context) (*handlers.CatalogInfo, error) {
	var info handlers.CatalogInfo
	if err := c.post(ctx, "/api/v1/catalog/refresh", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Imports fetches the most recent catalog imports.
func (c *Client) Imports(ctx context.Context, limit int) ([]domain.CatalogImport, error) {
	path := "/api/v1/catalog/imports"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var resp struct {
		Imports []domain.CatalogImport `json:"imports"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Imports, nil
}
