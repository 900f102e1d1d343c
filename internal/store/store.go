// Package store defines the datastore abstraction for imported catalogs.
// Callers depend on the Store interface so they can be tested with mocks.
package store

import (
	"context"

	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// RawListingQuery defines optional filters for browsing stored rows.
type RawListingQuery struct {
	Search  *string // case-insensitive substring of name
	GPU     *string // case-insensitive substring of gpu
	Limit   int     // default 50
	Offset  int
	OrderBy string // "name", "imported_at", "id"
}

// Store defines all data access operations for the advisor.
type Store interface {
	// Raw listings
	ReplaceRawListings(ctx context.Context, source string, rows []domain.RawListing) (*domain.CatalogImport, error)
	ListRawListings(ctx context.Context) ([]domain.RawListing, error)
	QueryRawListings(ctx context.Context, q *RawListingQuery) ([]domain.RawListing, int, error)
	CountRawListings(ctx context.Context) (int, error)

	// Imports
	ListImports(ctx context.Context, limit int) ([]domain.CatalogImport, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
