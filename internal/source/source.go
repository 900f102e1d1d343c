// Package source loads raw catalog rows from files or the database.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/donaldgifford/laptop-advisor/internal/config"
	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

var (
	// ErrUnknownDriver is returned by New for an unsupported driver.
	ErrUnknownDriver = errors.New("unknown catalog driver")
	// ErrMissingColumn is returned when a required column is absent from
	// the header row.
	ErrMissingColumn = errors.New("missing required column")
)

// Source yields the raw rows of a catalog.
type Source interface {
	// Load returns every row in source order. An empty source returns an
	// empty slice and no error.
	Load(ctx context.Context) ([]domain.RawListing, error)
	// Name describes the source for logs and metrics.
	Name() string
}

// RawListingLister is the store capability the postgres source needs.
type RawListingLister interface {
	ListRawListings(ctx context.Context) ([]domain.RawListing, error)
}

// New builds the Source selected by cfg.Driver. lister is only used by the
// postgres driver and may be nil otherwise.
func New(cfg *config.CatalogConfig, lister RawListingLister, log *slog.Logger) (Source, error) {
	switch strings.ToLower(cfg.Driver) {
	case config.DriverCSV:
		delim := ','
		if r := []rune(cfg.Delimiter); len(r) == 1 {
			delim = r[0]
		}
		return NewCSV(cfg.Path, WithEncoding(cfg.Encoding), WithDelimiter(delim), WithLogger(log)), nil
	case config.DriverXLSX:
		return NewXLSX(cfg.Path, cfg.Sheet, WithLogger(log)), nil
	case config.DriverPostgres:
		if lister == nil {
			return nil, fmt.Errorf("postgres catalog source needs a store")
		}
		return NewPostgres(lister), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// headerAliases maps alternate header spellings, including the Turkish
// export headers, to column names.
var headerAliases = map[string]string{
	"model":           domain.ColumnName,
	"urun":            domain.ColumnName,
	"ürün":            domain.ColumnName,
	"ad":              domain.ColumnName,
	"fiyat":           domain.ColumnPrice,
	"ekran":           domain.ColumnScreenSize,
	"ekran boyutu":    domain.ColumnScreenSize,
	"screen":          domain.ColumnScreenSize,
	"storage":         domain.ColumnSSD,
	"depolama":        domain.ColumnSSD,
	"işlemci":         domain.ColumnCPU,
	"islemci":         domain.ColumnCPU,
	"processor":       domain.ColumnCPU,
	"bellek":          domain.ColumnRAM,
	"memory":          domain.ColumnRAM,
	"işletim sistemi": domain.ColumnOS,
	"isletim sistemi": domain.ColumnOS,
	"ekran kartı":     domain.ColumnGPU,
	"ekran karti":     domain.ColumnGPU,
	"graphics":        domain.ColumnGPU,
	"link":            domain.ColumnURL,
}

// columnIndex maps column names to their position in header. Unknown
// headers are ignored. Every required column must be present.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		key = strings.ReplaceAll(key, "\u0307", "") // İ lower-cases to i plus a combining dot
		key = strings.ReplaceAll(key, "_", " ")
		if alias, ok := headerAliases[key]; ok {
			key = alias
		}
		key = strings.ReplaceAll(key, " ", "_")
		if _, seen := idx[key]; !seen {
			idx[key] = i
		}
	}

	var errs []error
	for _, col := range domain.RequiredColumns {
		if _, ok := idx[col]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingColumn, col))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return idx, nil
}

// toRaw builds a RawListing from one record. Short records leave the
// missing fields empty.
func toRaw(record []string, idx map[string]int) domain.RawListing {
	var r domain.RawListing
	for col, i := range idx {
		if i < len(record) {
			r.SetField(col, strings.TrimSpace(record[i]))
		}
	}
	return r
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Option configures file sources.
type Option func(*fileOptions)

type fileOptions struct {
	encoding  string
	delimiter rune
	log       *slog.Logger
}

// WithEncoding sets the character encoding of a CSV file.
func WithEncoding(enc string) Option {
	return func(o *fileOptions) {
		o.encoding = enc
	}
}

// WithDelimiter sets the CSV field delimiter.
func WithDelimiter(d rune) Option {
	return func(o *fileOptions) {
		o.delimiter = d
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *fileOptions) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) fileOptions {
	o := fileOptions{encoding: "utf-8", delimiter: ',', log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
