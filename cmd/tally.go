package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/capital-ej/ejatlas-cli/internal/acs"
	"github.com/capital-ej/ejatlas-cli/internal/tabulate"
)

var tallyCmd = &cobra.Command{
	Use:   "tally",
	Short: "Print the majority race/ethnicity tract tally",
	Long: `Fetches ACS race/ethnicity estimates and counts, per category, the tracts
where that category holds the plurality. Tracts tied across categories count
once under every tied category.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		catalog, err := acs.LoadCatalog()
		if err != nil {
			return eris.Wrap(err, "tally")
		}

		records, err := fetchDemographics(ctx, cfg, newFetcher(), catalog)
		if err != nil {
			return eris.Wrap(err, "tally")
		}

		tallies := tabulate.MajorityByTract(records, catalog.Codes(acs.GroupRace), catalog.Label)

		fmt.Printf("%-40s %8s\n", "Category", "Tracts")
		total := 0
		for _, t := range tallies {
			fmt.Printf("%-40s %8d\n", t.Label, t.Tracts)
			total += t.Tracts
		}
		fmt.Printf("%-40s %8d\n", "Total (ties counted per category)", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tallyCmd)
}
