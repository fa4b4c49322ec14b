package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/capital-ej/ejatlas-cli/internal/acs"
	"github.com/capital-ej/ejatlas-cli/internal/model"
	"github.com/capital-ej/ejatlas-cli/internal/render"
	"github.com/capital-ej/ejatlas-cli/internal/tabulate"
)

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"render"},
	Short:   "Run the full pipeline and render every artifact",
	Long: `Fetches the two upstream feeds (ACS demographics with TIGER tract
boundaries; the NYSDEC site database), tabulates them, and renders the
summary table, the interactive site table, the demographic choropleth,
the site marker map, and the spreadsheet export.

The feeds are independent and fetched concurrently; a failure of either
aborts the render.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			cfg.Render.OutputDir = out
		}
		if year, _ := cmd.Flags().GetInt("year"); year != 0 {
			cfg.Census.Year = year
		}

		catalog, err := acs.LoadCatalog()
		if err != nil {
			return eris.Wrap(err, "run")
		}

		f := newFetcher()
		log := zap.L().With(zap.String("command", "run"))

		var (
			tracts      []model.TractRecord
			shapes      []model.TractShape
			siteRecords []model.SiteRecord
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			if tracts, err = fetchDemographics(gctx, cfg, f, catalog); err != nil {
				return err
			}
			shapes, err = fetchTractShapes(gctx, cfg, f)
			return err
		})
		g.Go(func() error {
			var err error
			siteRecords, err = loadSites(gctx, cfg, f)
			return err
		})
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "run: fetch upstream feeds")
		}

		log.Info("feeds loaded",
			zap.Int("tract_records", len(tracts)),
			zap.Int("tract_shapes", len(shapes)),
			zap.Int("site_records", len(siteRecords)),
		)

		tallies := tabulate.MajorityByTract(tracts, catalog.Codes(acs.GroupRace), catalog.Label)

		r := render.New(cfg.Render.OutputDir, cfg.Render.Title)
		err = r.RenderAll(render.Inputs{
			Tracts:   tracts,
			Shapes:   shapes,
			Sites:    siteRecords,
			Tallies:  tallies,
			SiteRows: tabulate.DisplayColumns(siteRecords),
			Catalog:  catalog,
			Viewport: render.CapitalDistrictViewport(),
		})
		if err != nil {
			return eris.Wrap(err, "run: render artifacts")
		}

		fmt.Printf("Artifacts written to %s (render %s)\n", cfg.Render.OutputDir, r.RunID())
		return nil
	},
}

func init() {
	runCmd.Flags().String("out", "", "output directory (default: from config)")
	runCmd.Flags().Int("year", 0, "ACS 5-year vintage (default: from config)")
	rootCmd.AddCommand(runCmd)
}
