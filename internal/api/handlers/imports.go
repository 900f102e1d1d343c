package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/laptop-advisor/internal/store"
	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// ImportStore is the store capability behind the import endpoints.
type ImportStore interface {
	QueryRawListings(ctx context.Context, q *store.RawListingQuery) ([]domain.RawListing, int, error)
	ListImports(ctx context.Context, limit int) ([]domain.CatalogImport, error)
}

// ImportsHandler serves the raw rows and history of database imports.
type ImportsHandler struct {
	store ImportStore
}

// NewImportsHandler creates a new ImportsHandler.
func NewImportsHandler(s ImportStore) *ImportsHandler {
	return &ImportsHandler{store: s}
}

// --- Input/Output types ---

// ListRowsInput is the input for listing imported raw rows.
type ListRowsInput struct {
	Search  string `query:"search"   doc:"Case-insensitive name search"`
	GPU     string `query:"gpu"      doc:"Case-insensitive GPU search"`
	Limit   int    `query:"limit"    doc:"Number of results (default 50)"  minimum:"0" maximum:"500"`
	Offset  int    `query:"offset"   doc:"Pagination offset"               minimum:"0"`
	OrderBy string `query:"order_by" doc:"Sort field"                      enum:"name,imported_at,id,"`
}

// ListRowsOutput is the response for listing imported raw rows.
type ListRowsOutput struct {
	Body struct {
		Rows   []domain.RawListing `json:"rows"`
		Total  int                 `json:"total"`
		Limit  int                 `json:"limit"`
		Offset int                 `json:"offset"`
	}
}

// ListImportsInput is the input for the import history.
type ListImportsInput struct {
	Limit int `query:"limit" doc:"Number of imports (default 20)" default:"20" minimum:"1" maximum:"200"`
}

// ListImportsOutput is the response for the import history.
type ListImportsOutput struct {
	Body struct {
		Imports []domain.CatalogImport `json:"imports"`
	}
}

// --- Handlers ---

// ListRows returns imported raw rows with optional search and pagination.
func (h *ImportsHandler) ListRows(ctx context.Context, input *ListRowsInput) (*ListRowsOutput, error) {
	q := &store.RawListingQuery{
		Limit:   input.Limit,
		Offset:  input.Offset,
		OrderBy: input.OrderBy,
	}
	if input.Search != "" {
		q.Search = &input.Search
	}
	if input.GPU != "" {
		q.GPU = &input.GPU
	}

	rows, total, err := h.store.QueryRawListings(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("raw listing query failed: " + err.Error())
	}

	resp := &ListRowsOutput{}
	resp.Body.Rows = rows
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset
	return resp, nil
}

// ListImports returns the most recent imports, newest first.
func (h *ImportsHandler) ListImports(ctx context.Context, input *ListImportsInput) (*ListImportsOutput, error) {
	imports, err := h.store.ListImports(ctx, input.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("import history query failed: " + err.Error())
	}
	resp := &ListImportsOutput{}
	resp.Body.Imports = imports
	return resp, nil
}

// RegisterImportRoutes registers import endpoints with the Huma API.
func RegisterImportRoutes(api huma.API, h *ImportsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-catalog-rows",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/rows",
		Summary:     "List imported rows",
		Description: "Returns the raw rows of the current database import with optional search and pagination.",
		Tags:        []string{"catalog"},
	}, h.ListRows)

	huma.Register(api, huma.Operation{
		OperationID: "list-catalog-imports",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/imports",
		Summary:     "List imports",
		Description: "Returns the history of catalog imports, newest first.",
		Tags:        []string{"catalog"},
	}, h.ListImports)
}
