package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/laptop-advisor/internal/api/handlers"
	"github.com/donaldgifford/laptop-advisor/internal/cli"
)

func catalogCmd() *cobra.Command {
	catalogRoot := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and refresh the catalog snapshot",
		Long: "The server answers every query from a cached snapshot of the catalog.\n" +
			"Use these commands to see which snapshot is live, force a reload, or\n" +
			"list database imports.",
	}

	catalogRoot.AddCommand(
		catalogShowCmd(),
		catalogRefreshCmd(),
		catalogImportsCmd(),
	)

	return catalogRoot
}

func printCatalogInfo(c *cobra.Command, info *handlers.CatalogInfo) error {
	if jsonOutput() {
		return cli.JSON(c.OutOrStdout(), info)
	}
	if info.Snapshot == nil {
		_, err := fmt.Fprintln(c.OutOrStdout(), "No snapshot loaded.")
		return err
	}
	return cli.PrintSnapshot(c.OutOrStdout(), info.Snapshot, info.Listings, info.Report.Dropped)
}

func catalogShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the live snapshot",
		RunE: func(c *cobra.Command, _ []string) error {
			info, err := newClient().Catalog(c.Context())
			if err != nil {
				return err
			}
			return printCatalogInfo(c, info)
		},
	}
}

func catalogRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload the catalog from its source",
		RunE: func(c *cobra.Command, _ []string) error {
			info, err := newClient().RefreshCatalog(c.Context())
			if err != nil {
				return err
			}
			return printCatalogInfo(c, info)
		},
	}
}

func catalogImportsCmd() *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "imports",
		Short: "List database imports, newest first",
		RunE: func(c *cobra.Command, _ []string) error {
			imports, err := newClient().Imports(c.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return cli.JSON(c.OutOrStdout(), imports)
			}
			return cli.PrintImports(c.OutOrStdout(), imports)
		},
	}
	c.Flags().IntVar(&limit, "limit", 20, "number of imports")
	return c
}
