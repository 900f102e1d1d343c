package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/laptop-advisor/internal/config"
)

const testCatalog = `name,price,screen_size,ssd,cpu,ram,os,gpu,url
Lenovo Legion 5,44.000 TL,15.6,512GB,AMD Ryzen 7 7735HS,16GB,FreeDOS,NVIDIA RTX 4060,https://example.com/1
Asus TUF A15,45.000 TL,15.6,512GB,AMD Ryzen 7 7735HS,16GB,FreeDOS,NVIDIA RTX 4060,https://example.com/2
MSI Katana 15,46.000 TL,15.6,512GB,AMD Ryzen 7 7735HS,16GB,FreeDOS,NVIDIA RTX 4060,https://example.com/3
Casper Excalibur G870,30.000 TL,15.6,512GB,AMD Ryzen 7 7735HS,16GB,FreeDOS,NVIDIA RTX 4060,https://example.com/4
`

func testConfig(t *testing.T, csv string) *config.Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "laptops.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	cfg := config.Default()
	cfg.Catalog.Path = path
	return cfg
}

func testServer(t *testing.T, cfg *config.Config, pinger func(context.Context) error) http.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng, err := buildEngine(cfg, nil, nil, log)
	require.NoError(t, err)
	return newServer(cfg, eng, nil, pinger, log)
}

func TestServer_Routes(t *testing.T) {
	t.Parallel()

	srv := testServer(t, testConfig(t, testCatalog), nil)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{name: "healthz", method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK, wantBody: `"ok"`},
		{name: "readyz", method: http.MethodGet, path: "/readyz", wantStatus: http.StatusOK, wantBody: `"ready"`},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK, wantBody: "lpa_"},
		{name: "openapi", method: http.MethodGet, path: "/openapi.json", wantStatus: http.StatusOK, wantBody: "/api/v1/recommendations"},
		{name: "swagger", method: http.MethodGet, path: "/swagger", wantStatus: http.StatusMovedPermanently},
		{name: "market", method: http.MethodGet, path: "/api/v1/market", wantStatus: http.StatusOK, wantBody: `"total_listings":4`},
		{name: "deals", method: http.MethodGet, path: "/api/v1/deals", wantStatus: http.StatusOK, wantBody: "Casper Excalibur G870"},
		{name: "catalog", method: http.MethodGet, path: "/api/v1/catalog", wantStatus: http.StatusOK, wantBody: `"listings":4`},
		{
			name:       "recommend",
			method:     http.MethodPost,
			path:       "/api/v1/recommendations",
			body:       `{"max_budget":45000,"purpose":"gaming"}`,
			wantStatus: http.StatusOK,
			wantBody:   "Lenovo Legion 5",
		},
		{
			name:       "recommend invalid",
			method:     http.MethodPost,
			path:       "/api/v1/recommendations",
			body:       `{"max_budget":0}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{name: "imports disabled without store", method: http.MethodGet, path: "/api/v1/catalog/imports", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var body io.Reader = http.NoBody
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}

			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestServer_Readiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		csv        string
		pinger     func(context.Context) error
		wantStatus int
		wantCheck  string
	}{
		{
			name:       "empty catalog",
			csv:        "name,price,screen_size,ssd,cpu,ram,os,gpu\n",
			wantStatus: http.StatusServiceUnavailable,
			wantCheck:  "catalog",
		},
		{
			name:       "database down",
			csv:        testCatalog,
			pinger:     func(context.Context) error { return errors.New("connection refused") },
			wantStatus: http.StatusServiceUnavailable,
			wantCheck:  "database",
		},
		{
			name:       "database up",
			csv:        testCatalog,
			pinger:     func(context.Context) error { return nil },
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := testServer(t, testConfig(t, tt.csv), tt.pinger)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCheck != "" {
				assert.Contains(t, rec.Body.String(), `"check":"`+tt.wantCheck+`"`)
			}
		})
	}
}

func TestServer_RateLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, testCatalog)
	cfg.API.RateLimit.Enabled = true
	cfg.API.RateLimit.PerSecond = 0.001
	cfg.API.RateLimit.Burst = 1
	srv := testServer(t, cfg, nil)

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/market", http.NoBody))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))
	assert.Equal(t, http.StatusOK, rec.Code, "probes bypass the limiter")
}

func TestImportCatalogConfig(t *testing.T) {
	t.Parallel()

	base := config.CatalogConfig{Driver: config.DriverPostgres, Encoding: "utf-8", Delimiter: ",", TablesPath: "tables.yaml"}

	tests := []struct {
		name       string
		path       string
		opts       importOptions
		wantDriver string
		wantSheet  string
		wantEnc    string
		wantDelim  string
	}{
		{name: "csv", path: "laptops.csv", wantDriver: config.DriverCSV, wantEnc: "utf-8", wantDelim: ","},
		{name: "xlsx upper case", path: "LAPTOPS.XLSX", opts: importOptions{sheet: "Listings"}, wantDriver: config.DriverXLSX, wantSheet: "Listings", wantEnc: "utf-8", wantDelim: ","},
		{name: "legacy csv", path: "export.txt", opts: importOptions{encoding: "windows-1254", delimiter: ";"}, wantDriver: config.DriverCSV, wantEnc: "windows-1254", wantDelim: ";"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cc := importCatalogConfig(base, tt.path, &tt.opts)
			assert.Equal(t, tt.path, cc.Path)
			assert.Equal(t, tt.wantDriver, cc.Driver)
			assert.Equal(t, tt.wantSheet, cc.Sheet)
			assert.Equal(t, tt.wantEnc, cc.Encoding)
			assert.Equal(t, tt.wantDelim, cc.Delimiter)
			assert.Equal(t, "tables.yaml", cc.TablesPath)
		})
	}
}

func TestLocalLogLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "warn", localLogLevel("info"))
	assert.Equal(t, "warn", localLogLevel(""))
	assert.Equal(t, "error", localLogLevel("error"))
	assert.Equal(t, "DEBUG", localLogLevel("DEBUG"))
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := versionCommand()
	c.SetOut(&buf)
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())
	assert.Equal(t, "laptop-advisor dev\n", buf.String())
}
