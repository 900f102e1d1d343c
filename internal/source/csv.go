package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// CSVSource reads a delimited text catalog with a header row.
type CSVSource struct {
	path string
	opts fileOptions
}

// NewCSV creates a CSV source for path.
func NewCSV(path string, opts ...Option) *CSVSource {
	return &CSVSource{path: path, opts: buildOptions(opts)}
}

// Name implements Source.
func (s *CSVSource) Name() string { return "csv:" + s.path }

// Load implements Source.
func (s *CSVSource) Load(ctx context.Context) ([]domain.RawListing, error) {
	f, err := os.Open(s.path) //nolint:gosec // catalog path from config
	if err != nil {
		return nil, fmt.Errorf("opening csv catalog: %w", err)
	}
	defer f.Close()

	rows, err := ReadCSV(ctx, f, s.opts.encoding, s.opts.delimiter)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	s.opts.log.Debug("csv catalog read", "path", s.path, "rows", len(rows), "encoding", s.opts.encoding)
	return rows, nil
}

// ReadCSV decodes r from the named encoding and parses it as CSV. Blank
// lines are skipped and rows may have fewer fields than the header.
func ReadCSV(ctx context.Context, r io.Reader, enc string, delimiter rune) ([]domain.RawListing, error) {
	decoder, err := Decoder(enc)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(r, decoder))
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []domain.RawListing{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.RawListing, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		if blank(record) {
			continue
		}
		rows = append(rows, toRaw(record, idx))
	}
	return rows, nil
}

// Decoder returns a transformer that converts the named encoding to UTF-8.
// UTF-8 input has its byte order mark removed.
func Decoder(name string) (transform.Transformer, error) {
	e, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	return e.NewDecoder(), nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", "-")) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "windows-1254", "cp1254", "turkish":
		return charmap.Windows1254, nil
	case "iso-8859-9", "latin5", "latin-5":
		return charmap.ISO8859_9, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}
