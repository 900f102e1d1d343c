package source

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// XLSXSource reads one worksheet of an Excel workbook. The first non-empty
// row is the header.
type XLSXSource struct {
	path  string
	sheet string
	opts  fileOptions
}

// NewXLSX creates a workbook source. An empty sheet selects the first
// worksheet.
func NewXLSX(path, sheet string, opts ...Option) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet, opts: buildOptions(opts)}
}

// Name implements Source.
func (s *XLSXSource) Name() string { return "xlsx:" + s.path }

// Load implements Source.
func (s *XLSXSource) Load(ctx context.Context) ([]domain.RawListing, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening xlsx catalog: %w", err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	rows, err := fromRecords(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	s.opts.log.Debug("xlsx catalog read", "path", s.path, "sheet", sheet, "rows", len(rows))
	return rows, nil
}

func fromRecords(ctx context.Context, records [][]string) ([]domain.RawListing, error) {
	for len(records) > 0 && blank(records[0]) {
		records = records[1:]
	}
	if len(records) == 0 {
		return []domain.RawListing{}, nil
	}

	idx, err := columnIndex(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]domain.RawListing, 0, len(records)-1)
	for _, record := range records[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if blank(record) {
			continue
		}
		rows = append(rows, toRaw(record, idx))
	}
	return rows, nil
}
