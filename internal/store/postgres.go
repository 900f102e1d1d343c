package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to connString and verifies the connection. A
// pool_max_conns setting in connString overrides the default pool size.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = defaultPoolSize
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// ReplaceRawListings atomically swaps the stored catalog for rows and
// records the import. Readers see either the old or the new catalog.
func (s *PostgresStore) ReplaceRawListings(
	ctx context.Context,
	source string,
	rows []domain.RawListing,
) (*domain.CatalogImport, error) {
	imp := &domain.CatalogImport{Source: source, RowCount: len(rows)}

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, queryDeleteRawListings); err != nil {
			return fmt.Errorf("clearing raw listings: %w", err)
		}

		if err := tx.QueryRow(ctx, queryInsertImport, source, len(rows)).
			Scan(&imp.ID, &imp.ImportedAt); err != nil {
			return fmt.Errorf("recording import: %w", err)
		}

		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{"raw_listings"},
			rawListingColumns,
			pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
				r := &rows[i]
				return []any{
					imp.ID, r.Name, r.Price, r.ScreenSize, r.SSD,
					r.CPU, r.RAM, r.OS, r.GPU, r.URL, imp.ImportedAt,
				}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copying raw listings: %w", err)
		}
		if int(n) != len(rows) {
			return fmt.Errorf("copied %d of %d raw listings", n, len(rows))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return imp, nil
}

// ListRawListings returns the stored catalog in import order.
func (s *PostgresStore) ListRawListings(ctx context.Context) ([]domain.RawListing, error) {
	rows, err := s.pool.Query(ctx, queryListRawListings)
	if err != nil {
		return nil, fmt.Errorf("querying raw listings: %w", err)
	}
	return scanRawListings(rows)
}

// QueryRawListings returns one page of stored rows and the total match
// count.
func (s *PostgresStore) QueryRawListings(
	ctx context.Context,
	q *RawListingQuery,
) ([]domain.RawListing, int, error) {
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting raw listings: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying raw listings: %w", err)
	}
	listings, err := scanRawListings(rows)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// CountRawListings returns the number of stored rows.
func (s *PostgresStore) CountRawListings(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, queryCountRawListings).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting raw listings: %w", err)
	}
	return n, nil
}

// ListImports returns the most recent imports, newest first.
func (s *PostgresStore) ListImports(ctx context.Context, limit int) ([]domain.CatalogImport, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.pool.Query(ctx, queryListImports, min(limit, maxLimit))
	if err != nil {
		return nil, fmt.Errorf("querying imports: %w", err)
	}
	defer rows.Close()

	imports := make([]domain.CatalogImport, 0)
	for rows.Next() {
		var (
			imp domain.CatalogImport
			at  time.Time
		)
		if err := rows.Scan(&imp.ID, &imp.Source, &imp.RowCount, &at); err != nil {
			return nil, fmt.Errorf("scanning import: %w", err)
		}
		imp.ImportedAt = at.UTC()
		imports = append(imports, imp)
	}
	return imports, rows.Err()
}

func scanRawListings(rows pgx.Rows) ([]domain.RawListing, error) {
	defer rows.Close()

	out := make([]domain.RawListing, 0)
	for rows.Next() {
		var r domain.RawListing
		if err := rows.Scan(
			&r.Name, &r.Price, &r.ScreenSize, &r.SSD, &r.CPU, &r.RAM, &r.OS, &r.GPU, &r.URL,
		); err != nil {
			return nil, fmt.Errorf("scanning raw listing: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
