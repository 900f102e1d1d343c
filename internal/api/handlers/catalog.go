package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/laptop-advisor/internal/engine"
	"github.com/donaldgifford/laptop-advisor/pkg/catalog"
)

// Snapshotter exposes and reloads the catalog snapshot.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*engine.Snapshot, error)
	Refresh(ctx context.Context) (*engine.Snapshot, error)
}

// CatalogHandler serves catalog metadata and reloads.
type CatalogHandler struct {
	snapshots Snapshotter
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(s Snapshotter) *CatalogHandler {
	return &CatalogHandler{snapshots: s}
}

// CatalogInfo describes the loaded catalog.
type CatalogInfo struct {
	Snapshot *engine.Snapshot `json:"snapshot"`
	Listings int            `json:"listings" doc:"Listings kept after processing"`
	Report   catalog.Report `json:"report"   doc:"Row counts by processing outcome"`
}

func catalogInfo(s *engine.Snapshot) CatalogInfo {
	info := CatalogInfo{Snapshot: s, Listings: len(s.Listings())}
	if s.Catalog != nil {
		info.Report = s.Catalog.Report
	}
	return info
}

// GetCatalogOutput is the response for catalog metadata.
type GetCatalogOutput struct {
	Body CatalogInfo
}

// GetCatalog returns metadata for the current snapshot, loading it if needed.
func (h *CatalogHandler) GetCatalog(ctx context.Context, _ *struct{}) (*GetCatalogOutput, error) {
	snap, err := h.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, apiError("catalog load", err)
	}
	return &GetCatalogOutput{Body: catalogInfo(snap)}, nil
}

// RefreshCatalog reloads the catalog from its source.
func (h *CatalogHandler) RefreshCatalog(ctx context.Context, _ *struct{}) (*GetCatalogOutput, error) {
	snap, err := h.snapshots.Refresh(ctx)
	if err != nil {
		return nil, apiError("catalog refresh", err)
	}
	return &GetCatalogOutput{Body: catalogInfo(snap)}, nil
}

// RegisterCatalogRoutes registers catalog endpoints with the Huma API.
func RegisterCatalogRoutes(api huma.API, h *CatalogHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-catalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog",
		Summary:     "Catalog metadata",
		Description: "Returns the current snapshot identity, source, load time and processing report.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.GetCatalog)

	huma.Register(api, huma.Operation{
		OperationID: "refresh-catalog",
		Method:      http.MethodPost,
		Path:        "/api/v1/catalog/refresh",
		Summary:     "Reload the catalog",
		Description: "Reloads the catalog from its source. An unchanged source keeps the snapshot identity.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.RefreshCatalog)
}
