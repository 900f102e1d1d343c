package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/laptop-advisor/internal/cli"
)

func marketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "Show catalog-wide market statistics",
		Example: `  lpa market
  lpa market --output json`,
		RunE: func(c *cobra.Command, _ []string) error {
			report, err := newClient().Market(c.Context())
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
