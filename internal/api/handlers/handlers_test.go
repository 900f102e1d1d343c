package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/laptop-advisor/internal/api/handlers"
	"github.com/donaldgifford/laptop-advisor/internal/engine"
	"github.com/donaldgifford/laptop-advisor/internal/store"
	storeMocks "github.com/donaldgifford/laptop-advisor/internal/store/mocks"
	"github.com/donaldgifford/laptop-advisor/pkg/catalog"
	"github.com/donaldgifford/laptop-advisor/pkg/deals"
	score "github.com/donaldgifford/laptop-advisor/pkg/scorer"
	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

var snapshotID = uuid.MustParse("6f1c2f57-4a0e-4a59-9d8e-3f0f4a6c1b2d")

// fakeEngine records the last request and returns canned results.
type fakeEngine struct {
	err       error
	prefs     *domain.Preferences
	threshold float64
	limit     int
	refreshed bool
}

func (f *fakeEngine) Recommend(_ context.Context, p *domain.Preferences) (*engine.Recommendation, error) {
	f.prefs = p
	if f.err != nil {
		return nil, f.err
	}
	return &engine.Recommendation{
		SnapshotID: snapshotID,
		Recommendations: []domain.ScoredListing{{
			Listing:    domain.Listing{Name: "Lenovo Legion 5", Price: 44000, Brand: "lenovo"},
			Score:      81.5,
			Highlights: []string{"strong gaming GPU"},
		}},
		Summary: score.Summary{Found: 1, Matched: 3, Total: 10},
	}, nil
}

func (f *fakeEngine) Deals(_ context.Context, threshold float64, limit int) (*engine.DealReport, error) {
	f.threshold, f.limit = threshold, limit
	if f.err != nil {
		return nil, f.err
	}
	list := []domain.DealListing{{
		Listing:             domain.Listing{Name: "Casper Excalibur", Price: 30000},
		MarketPriceEstimate: 45000,
		DiscountPercentage:  33.33,
		Level:               domain.DealGreat,
	}}
	return &engine.DealReport{SnapshotID: snapshotID, Threshold: 15, Deals: list, Summary: deals.Summarize(list)}, nil
}

func (f *fakeEngine) Market(context.Context) (*engine.MarketReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &engine.MarketReport{
		SnapshotID: snapshotID,
		Stats:      domain.MarketStats{TotalListings: 10, AveragePrice: 41250, TopBrand: "lenovo"},
	}, nil
}

func (f *fakeEngine) snapshot() *engine.Snapshot {
	return &engine.Snapshot{
		ID:            snapshotID,
		Digest:        "abc123",
		LoadedAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		TablesVersion: "2025.1",
		Source:        "csv:laptops.csv",
		Catalog: &catalog.Catalog{
			Listings: make([]domain.Listing, 7),
			Report:   catalog.Report{Input: 9, Duplicates: 1, Dropped: map[string]int{"missing_price": 1}, Kept: 7},
		},
	}
}

func (f *fakeEngine) Snapshot(context.Context) (*engine.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot(), nil
}

func (f *fakeEngine) Refresh(context.Context) (*engine.Snapshot, error) {
	f.refreshed = true
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot(), nil
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       any
		err        error
		wantStatus int
		wantBody   []string
	}{
		{
			name: "ranked results",
			body: map[string]any{
				"min_budget": 20000, "max_budget": 45000, "purpose": "oyun",
				"brand": "lenovo", "screen": "standard", "performance_importance": 5,
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"name":"Lenovo Legion 5"`, `"score":81.5`, `"matched":3`, snapshotID.String()},
		},
		{
			name:       "invalid slider rejected by schema",
			body:       map[string]any{"max_budget": 45000, "battery_importance": 9},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "unknown screen bucket rejected by schema",
			body:       map[string]any{"max_budget": 45000, "screen": "huge"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "engine validation error",
			body:       map[string]any{"max_budget": 0},
			err:        fmt.Errorf("%w: max_budget must be positive", engine.ErrInvalidPreferences),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{"max_budget must be positive"},
		},
		{
			name:       "empty catalog",
			body:       map[string]any{"max_budget": 45000},
			err:        fmt.Errorf("processing catalog: %w", catalog.ErrNoData),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "unexpected failure",
			body:       map[string]any{"max_budget": 45000},
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fe := &fakeEngine{err: tt.err}
			_, api := humatest.New(t)
			handlers.RegisterRecommendationRoutes(api, handlers.NewRecommendationsHandler(fe))

			resp := api.Post("/api/v1/recommendations", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
		})
	}
}

func TestRecommend_MapsPreferences(t *testing.T) {
	t.Parallel()

	fe := &fakeEngine{}
	_, api := humatest.New(t)
	handlers.RegisterRecommendationRoutes(api, handlers.NewRecommendationsHandler(fe))

	resp := api.Post("/api/v1/recommendations", map[string]any{
		"min_budget": 20000, "max_budget": 45000, "purpose": "Tasarım",
		"min_ram": 16, "os": "macOS", "gaming_only": true,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	require.NotNil(t, fe.prefs)
	assert.Equal(t, domain.PurposeDesign, fe.prefs.Purpose)
	assert.InDelta(t, 45000.0, fe.prefs.MaxBudget, 0)
	assert.Equal(t, 16, fe.prefs.Filters.MinRAM)
	assert.Equal(t, "macOS", fe.prefs.Filters.OS)
	assert.True(t, fe.prefs.Filters.GamingOnly)
}

func TestListDeals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		query         string
		err           error
		wantStatus    int
		wantThreshold float64
		wantLimit     int
	}{
		{name: "defaults", query: "", wantStatus: http.StatusOK, wantThreshold: -1, wantLimit: 0},
		{name: "explicit", query: "?threshold=25&limit=5", wantStatus: http.StatusOK, wantThreshold: 25, wantLimit: 5},
		{name: "threshold out of range", query: "?threshold=150", wantStatus: http.StatusUnprocessableEntity},
		{name: "no data", err: catalog.ErrNoData, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fe := &fakeEngine{err: tt.err}
			_, api := humatest.New(t)
			handlers.RegisterDealRoutes(api, handlers.NewDealsHandler(fe))

			resp := api.Get("/api/v1/deals" + tt.query)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.InDelta(t, tt.wantThreshold, fe.threshold, 0)
			assert.Equal(t, tt.wantLimit, fe.limit)
			assert.Contains(t, resp.Body.String(), `"level":"great"`)
			assert.Contains(t, resp.Body.String(), `"market_price_estimate":45000`)
		})
	}
}

func TestGetMarket(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterMarketRoutes(api, handlers.NewMarketHandler(&fakeEngine{}))

	resp := api.Get("/api/v1/market")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total_listings":10`)
	assert.Contains(t, resp.Body.String(), `"top_brand":"lenovo"`)

	_, api = humatest.New(t)
	handlers.RegisterMarketRoutes(api, handlers.NewMarketHandler(&fakeEngine{err: errors.New("boom")}))
	assert.Equal(t, http.StatusInternalServerError, api.Get("/api/v1/market").Code)
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	fe := &fakeEngine{}
	_, api := humatest.New(t)
	handlers.RegisterCatalogRoutes(api, handlers.NewCatalogHandler(fe))

	resp := api.Get("/api/v1/catalog")
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, `"listings":7`)
	assert.Contains(t, body, `"source":"csv:laptops.csv"`)
	assert.Contains(t, body, `"duplicates":1`)
	assert.Contains(t, body, `"missing_price":1`)
	assert.False(t, fe.refreshed)

	resp = api.Post("/api/v1/catalog/refresh")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, fe.refreshed)
}

func TestCatalog_RefreshError(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterCatalogRoutes(api, handlers.NewCatalogHandler(&fakeEngine{err: catalog.ErrNoData}))

	resp := api.Post("/api/v1/catalog/refresh")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestImports(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().QueryRawListings(mock.Anything, mock.MatchedBy(func(q *store.RawListingQuery) bool {
		return q.Search != nil && *q.Search == "legion" && q.GPU == nil && q.Limit == 10
	})).Return([]domain.RawListing{{Name: "Lenovo Legion 5", Price: "44.000 TL"}}, 1, nil).Once()
	ms.EXPECT().ListImports(mock.Anything, 20).Return([]domain.CatalogImport{
		{ID: "a1", Source: "csv:laptops.csv", RowCount: 120},
	}, nil).Once()

	_, api := humatest.New(t)
	handlers.RegisterImportRoutes(api, handlers.NewImportsHandler(ms))

	resp := api.Get("/api/v1/catalog/rows?search=legion&limit=10")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":1`)
	assert.Contains(t, resp.Body.String(), `"price":"44.000 TL"`)

	resp = api.Get("/api/v1/catalog/imports")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"row_count":120`)
}

func TestImports_StoreError(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().ListImports(mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	_, api := humatest.New(t)
	handlers.RegisterImportRoutes(api, handlers.NewImportsHandler(ms))

	resp := api.Get("/api/v1/catalog/imports?limit=5")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checks     []handlers.ReadinessCheck
		wantStatus int
		wantBody   string
	}{
		{name: "no checks", wantStatus: http.StatusOK, wantBody: "ready"},
		{
			name: "all checks pass",
			checks: []handlers.ReadinessCheck{
				{Name: "catalog", Check: func(context.Context) error { return nil }},
			},
			wantStatus: http.StatusOK,
			wantBody:   "ready",
		},
		{
			name: "failing check named",
			checks: []handlers.ReadinessCheck{
				{Name: "catalog", Check: func(context.Context) error { return nil }},
				{Name: "database", Check: func(context.Context) error { return errors.New("refused") }},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `"check":"database"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(tt.checks...))

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)

			rec = httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, strings.Contains(rec.Body.String(), `"status":"ok"`))
		})
	}
}
