package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/laptop-advisor/internal/cli"
	"github.com/donaldgifford/laptop-advisor/internal/config"
	"github.com/donaldgifford/laptop-advisor/internal/source"
	"github.com/donaldgifford/laptop-advisor/pkg/catalog"
	"github.com/donaldgifford/laptop-advisor/pkg/logger"
)

const importTimeout = 5 * time.Minute

type importOptions struct {
	sheet     string
	encoding  string
	delimiter string
	dryRun    bool
}

func importCommand() *cobra.Command {
	var opts importOptions

	c := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a CSV or XLSX catalog into Postgres",
		Long: "Reads a catalog file, checks that it yields usable listings, and replaces the\n" +
			"raw_listings table with its rows in one transaction.",
		Example: `  laptop-advisor import laptops.csv
  laptop-advisor import laptops.xlsx --sheet Listings
  laptop-advisor import export.csv --encoding windows-1254 --delimiter ';' --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runImport(c, args[0], &opts)
		},
	}
	c.Flags().StringVar(&opts.sheet, "sheet", "", "XLSX sheet name (default first sheet)")
	c.Flags().StringVar(&opts.encoding, "encoding", "", "CSV encoding (default from config)")
	c.Flags().StringVar(&opts.delimiter, "delimiter", "", "CSV delimiter (default from config)")
	c.Flags().BoolVar(&opts.dryRun, "dry-run", false, "validate the file without writing to the database")
	return c
}

// importCatalogConfig derives the source settings for path from the
// configured catalog and the command flags.
func importCatalogConfig(base config.CatalogConfig, path string, opts *importOptions) config.CatalogConfig {
	cc := base
	cc.Path = path
	cc.Driver = config.DriverCSV
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".xlsx" || ext == ".xlsm" {
		cc.Driver = config.DriverXLSX
	}
	if opts.sheet != "" {
		cc.Sheet = opts.sheet
	}
	if opts.encoding != "" {
		cc.Encoding = opts.encoding
	}
	if opts.delimiter != "" {
		cc.Delimiter = opts.delimiter
	}
	return cc
}

func runImport(c *cobra.Command, path string, opts *importOptions) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), importTimeout)
	defer cancel()

	cc := importCatalogConfig(cfg.Catalog, path, opts)
	src, err := source.New(&cc, nil, logger.Component(log, "source"))
	if err != nil {
		return err
	}

	rows, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	tables, err := loadTables(&cfg.Catalog)
	if err != nil {
		return err
	}
	processed, err := catalog.NewProcessor(tables,
		catalog.WithLogger(logger.Component(log, "catalog")),
		catalog.WithAnomalyRules(cfg.Catalog.Rules()...),
	).Process(rows)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	log.Info("catalog file checked",
		"rows", len(rows),
		"usable", processed.Report.Kept,
		"duplicates", processed.Report.Duplicates,
		"dropped", processed.Report.DroppedTotal(),
	)

	if opts.dryRun {
		if jsonOutput() {
			return cli.JSON(c.OutOrStdout(), processed.Report)
		}
		_, err := fmt.Fprintf(c.OutOrStdout(), "%d rows read, %d usable listings (dry run, nothing written).\n",
			len(rows), processed.Report.Kept)
		return err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	imp, err := st.ReplaceRawListings(ctx, src.Name(), rows)
	if err != nil {
		return err
	}
	log.Info("catalog imported", "import", imp.ID, "rows", imp.RowCount)

	if jsonOutput() {
		return cli.JSON(c.OutOrStdout(), imp)
	}
	_, err = fmt.Fprintf(c.OutOrStdout(), "Imported %d rows from %s (import %s).\n", imp.RowCount, path, imp.ID)
	return err
}
