package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/capital-ej/ejatlas-cli/internal/acs"
)

var censusCmd = &cobra.Command{
	Use:   "census",
	Short: "Fetch ACS tract demographics for the study area",
	Long: `Fetches tract-level ACS 5-year estimates (median household income plus the
race/ethnicity categories) for the study counties and prints a per-variable
record count. No geometry is downloaded; use "run" for the full render.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if year, _ := cmd.Flags().GetInt("year"); year != 0 {
			cfg.Census.Year = year
		}

		catalog, err := acs.LoadCatalog()
		if err != nil {
			return eris.Wrap(err, "census")
		}

		records, err := fetchDemographics(ctx, cfg, newFetcher(), catalog)
		if err != nil {
			return eris.Wrap(err, "census")
		}

		zap.L().Info("census fetch complete", zap.Int("records", len(records)))

		counts := make(map[string]int)
		tracts := make(map[string]bool)
		for _, r := range records {
			counts[r.Variable]++
			tracts[r.GEOID] = true
		}

		fmt.Printf("%-14s %-40s %8s\n", "Variable", "Label", "Records")
		for _, v := range append(catalog.Codes(acs.GroupIncome), catalog.Codes(acs.GroupRace)...) {
			fmt.Printf("%-14s %-40s %8d\n", v, catalog.Label(v), counts[v])
		}
		fmt.Printf("\n%d tracts, ACS %d 5-year\n", len(tracts), cfg.Census.Year)
		return nil
	},
}

func init() {
	censusCmd.Flags().Int("year", 0, "ACS 5-year vintage (default: from config)")
	rootCmd.AddCommand(censusCmd)
}
