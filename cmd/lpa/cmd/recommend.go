package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/laptop-advisor/internal/api/handlers"
	"github.com/donaldgifford/laptop-advisor/internal/cli"
)

func recommendCmd() *cobra.Command {
	var (
		prefs   handlers.PreferencesBody
		explain bool
	)

	c := &cobra.Command{
		Use:   "recommend",
		Short: "Rank laptops against a budget and preferences",
		Example: `  lpa recommend --max-budget 45000 --purpose gaming
  lpa recommend --max-budget 30000 --purpose tasarım --min-ram 16 --explain
  lpa recommend --max-budget 60000 --os macOS --output json`,
		RunE: func(c *cobra.Command, _ []string) error {
			rec, err := newClient().Recommend(c.Context(), &prefs)
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
