package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/laptop-advisor/internal/api/handlers"
	"github.com/donaldgifford/laptop-advisor/internal/cli"
	"github.com/donaldgifford/laptop-advisor/internal/config"
	"github.com/donaldgifford/laptop-advisor/internal/engine"
	"github.com/donaldgifford/laptop-advisor/internal/source"
	"github.com/donaldgifford/laptop-advisor/internal/store"
	"github.com/donaldgifford/laptop-advisor/pkg/logger"
)

// localEngine builds an engine over the configured source without a
// notifier. The returned cleanup closes the store when one was opened.
func localEngine(ctx context.Context) (*engine.Engine, func(), error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(localLogLevel(cfg.Logging.Level), cfg.Logging.Format)

	cleanup := func() {}
	var lister source.RawListingLister
	if cfg.Catalog.Driver == config.DriverPostgres {
		var st *store.PostgresStore
		st, err = openStore(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		lister, cleanup = st, st.Close
	}

	eng, err := buildEngine(cfg, lister, nil, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return eng, cleanup, nil
}

// localLogLevel raises info to warn so table output stays readable. Debug
// and levels above warn are kept.
func localLogLevel(level string) string {
	if l := logger.ParseLevel(level); l == slog.LevelDebug || l >= slog.LevelWarn {
		return level
	}
	return "warn"
}

func recommendCommand() *cobra.Command {
	var (
		prefs   handlers.PreferencesBody
		explain bool
	)

	c := &cobra.Command{
		Use:   "recommend",
		Short: "Rank laptops against a budget and preferences",
		Example: `  laptop-advisor recommend --max-budget 45000 --purpose gaming
  laptop-advisor recommend --min-budget 20000 --max-budget 35000 --purpose portability --battery 5 --explain`,
		RunE: func(c *cobra.Command, _ []string) error {
			eng, cleanup, err := localEngine(c.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			rec, err := eng.Recommend(c.Context(), prefs.Preferences())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return cli.JSON(c.OutOrStdout(), rec)
			}
			return cli.PrintRecommendations(c.OutOrStdout(), rec, explain)
		},
	}
	cli.BindPreferences(c.Flags(), &prefs)
	c.Flags().BoolVar(&explain, "explain", false, "print why each laptop was picked")
	return c
}

func dealsCommand() *cobra.Command {
	var (
		threshold float64
		limit     int
	)

	c := &cobra.Command{
		Use:   "deals",
		Short: "List listings priced below comparable laptops",
		Example: `  laptop-advisor deals
  laptop-advisor deals --threshold 25 --limit 5 -o json`,
		RunE: func(c *cobra.Command, _ []string) error {
			eng, cleanup, err := localEngine(c.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := eng.Deals(c.Context(), threshold, limit)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return cli.JSON(c.OutOrStdout(), report)
			}
			return cli.PrintDeals(c.OutOrStdout(), report)
		},
	}
	c.Flags().Float64Var(&threshold, "threshold", -1, "minimum discount percent (default from config)")
	c.Flags().IntVar(&limit, "limit", 0, "number of deals (default from config)")
	return c
}

func marketCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "Show catalog-wide market statistics",
		RunE: func(c *cobra.Command, _ []string) error {
			eng, cleanup, err := localEngine(c.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := eng.Market(c.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return cli.JSON(c.OutOrStdout(), report)
			}
			return cli.PrintMarket(c.OutOrStdout(), &report.Stats)
		},
	}
}

