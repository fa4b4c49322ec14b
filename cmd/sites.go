package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/capital-ej/ejatlas-cli/internal/model"
	"github.com/capital-ej/ejatlas-cli/internal/sites"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Load and classify NYSDEC remediation sites",
	Long: `Downloads the statewide environmental site remediation database, removes
duplicate rows, classifies each site as hazardous or remediated by its class
code, filters to the study counties, and prints the category breakdown.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		f := newFetcher()

		records, err := sites.Load(ctx, f, cfg.Sites.CSVURL)
		if err != nil {
			return eris.Wrap(err, "sites")
		}
		deduped := sites.Dedupe(records)

		statewide, _ := cmd.Flags().GetBool("statewide")
		scoped := deduped
		if !statewide {
			scoped = sites.FilterCounties(deduped, cfg.Study.CountyNames)
		}

		var hazardous, remediated, excluded, unmapped int
		for _, r := range scoped {
			switch r.Category {
			case model.CategoryHazardous:
				hazardous++
			case model.CategoryRemediated:
				remediated++
			default:
				excluded++
			}
			if !r.HasPoint {
				unmapped++
			}
		}

		fmt.Printf("Loaded %d rows (%d after dedupe, %d in scope)\n",
			len(records), len(deduped), len(scoped))
		fmt.Printf("  hazardous:  %d\n", hazardous)
		fmt.Printf("  remediated: %d\n", remediated)
		fmt.Printf("  excluded:   %d\n", excluded)
		fmt.Printf("  without usable coordinates (tabular only): %d\n", unmapped)
		return nil
	},
}

func init() {
	sitesCmd.Flags().Bool("statewide", false, "skip the study-county filter")
	rootCmd.AddCommand(sitesCmd)
}
