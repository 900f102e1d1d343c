package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/laptop-advisor/internal/cli"
)

func dealsCmd() *cobra.Command {
	var (
		threshold float64
		limit     int
	)

	c := &cobra.Command{
		Use:   "deals",
		Short: "List listings priced below comparable laptops",
		Example: `  lpa deals
  lpa deals --threshold 25 --limit 5`,
		RunE: func(c *cobra.Command, _ []string) error {
			report, err := newClient().Deals(c.Context(), threshold, limit)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return cli.JSON(c.OutOrStdout(), report)
			}
			return cli.PrintDeals(c.OutOrStdout(), report)
		},
	}
	c.Flags().Float64Var(&threshold, "threshold", -1, "minimum discount percent (default from server)")
	c.Flags().IntVar(&limit, "limit", 0, "number of deals (default from server)")
	return c
}
