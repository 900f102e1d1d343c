package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/donaldgifford/laptop-advisor/internal/config"
	"github.com/donaldgifford/laptop-advisor/internal/engine"
	"github.com/donaldgifford/laptop-advisor/internal/notify"
	"github.com/donaldgifford/laptop-advisor/internal/source"
	"github.com/donaldgifford/laptop-advisor/internal/store"
	"github.com/donaldgifford/laptop-advisor/pkg/catalog"
	"github.com/donaldgifford/laptop-advisor/pkg/deals"
	"github.com/donaldgifford/laptop-advisor/pkg/logger"
	"github.com/donaldgifford/laptop-advisor/pkg/normalize"
)

const notifyTimeout = 15 * time.Second

var errNoDatabase = errors.New("database.host is not configured")

// openStore connects to Postgres. It returns errNoDatabase when no database
// is configured.
func openStore(ctx context.Context, cfg *config.Config) (*store.PostgresStore, error) {
	if cfg.Database.Host == "" {
		return nil, errNoDatabase
	}
	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return st, nil
}

// loadTables returns the configured lookup tables or the built-in ones.
func loadTables(cfg *config.CatalogConfig) (*normalize.Tables, error) {
	if cfg.TablesPath == "" {
		return normalize.DefaultTables(), nil
	}
	t, err := normalize.LoadTables(cfg.TablesPath)
	if err != nil {
		return nil, fmt.Errorf("loading lookup tables: %w", err)
	}
	return t, nil
}

// newNotifier returns the Discord notifier when enabled, otherwise a no-op.
func newNotifier(cfg *config.NotificationsConfig, log *slog.Logger) notify.Notifier {
	if cfg.Discord.Enabled && cfg.Discord.WebhookURL != "" {
		return notify.NewDiscordNotifier(cfg.Discord.WebhookURL,
			notify.WithHTTPClient(&http.Client{Timeout: notifyTimeout}),
		)
	}
	return notify.NewNoOpNotifier(logger.Component(log, "notify"))
}

// buildEngine wires the catalog source, processor, detector and notifier
// into an Engine. lister may be nil unless the catalog driver is postgres.
func buildEngine(
	cfg *config.Config,
	lister source.RawListingLister,
	n notify.Notifier,
	log *slog.Logger,
) (*engine.Engine, error) {
	src, err := source.New(&cfg.Catalog, lister, logger.Component(log, "source"))
	if err != nil {
		return nil, fmt.Errorf("creating catalog source: %w", err)
	}

	tables, err := loadTables(&cfg.Catalog)
	if err != nil {
		return nil, err
	}

	processor := catalog.NewProcessor(tables,
		catalog.WithLogger(logger.Component(log, "catalog")),
		catalog.WithAnomalyRules(cfg.Catalog.Rules()...),
	)

	// The engine applies the result limit itself.
	detector := deals.NewDetector(
		deals.WithLogger(logger.Component(log, "deals")),
		deals.WithMaxResults(0),
		deals.WithFallbackMarkup(cfg.Deals.FallbackMarkup),
		deals.WithPeerTolerance(cfg.Deals.PerfTolerance, cfg.Deals.RAMToleranceGB),
	)

	return engine.NewEngine(src, processor, detector, n,
		engine.WithLogger(logger.Component(log, "engine")),
		engine.WithWeights(cfg.Scoring.Weights.ToWeights()),
		engine.WithTopK(cfg.Scoring.TopK),
		engine.WithCacheTTL(cfg.Catalog.CacheTTL),
		engine.WithDealThreshold(cfg.Deals.DealThreshold()),
		engine.WithDealLimit(cfg.Deals.MaxResults),
		engine.WithDigestSize(cfg.Deals.DigestSize),
		engine.WithMarketOptions(cfg.Market),
	), nil
}
