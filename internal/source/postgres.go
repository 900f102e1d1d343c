package source

import (
	"context"
	"fmt"

	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// PostgresSource serves the catalog most recently imported into the store.
type PostgresSource struct {
	lister RawListingLister
}

// NewPostgres creates a source backed by the raw listing store.
func NewPostgres(lister RawListingLister) *PostgresSource {
	return &PostgresSource{lister: lister}
}

// Name implements Source.
func (s *PostgresSource) Name() string { return "postgres:raw_listings" }

// Load implements Source.
func (s *PostgresSource) Load(ctx context.Context) ([]domain.RawListing, error) {
	rows, err := s.lister.ListRawListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing raw listings: %w", err)
	}
	if rows == nil {
		rows = []domain.RawListing{}
	}
	return rows, nil
}
