package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/capital-ej/ejatlas-cli/internal/acs"
	"github.com/capital-ej/ejatlas-cli/internal/config"
	"github.com/capital-ej/ejatlas-cli/internal/fetcher"
	"github.com/capital-ej/ejatlas-cli/internal/model"
	"github.com/capital-ej/ejatlas-cli/internal/sites"
	"github.com/capital-ej/ejatlas-cli/internal/tiger"
)

// newFetcher builds the shared HTTP fetcher with the courtesy rate limits.
func newFetcher() fetcher.Fetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		RateLimiters: fetcher.DefaultRateLimiters(),
	})
}

// fetchDemographics pulls ACS estimates for every catalog variable in the
// study area.
func fetchDemographics(ctx context.Context, cfg *config.Config, f fetcher.Fetcher, catalog *acs.Catalog) ([]model.TractRecord, error) {
	client := acs.NewClient(cfg.Census.BaseURL, cfg.Census.APIKey, f)

	variables := append(catalog.Codes(acs.GroupIncome), catalog.Codes(acs.GroupRace)...)
	records, err := client.FetchTracts(ctx, acs.Query{
		Year:       cfg.Census.Year,
		Variables:  variables,
		StateFIPS:  cfg.Study.StateFIPS,
		CountyFIPS: cfg.Study.CountyFIPS,
	})
	if err != nil {
		return nil, eris.Wrap(err, "fetch demographics")
	}
	return records, nil
}

// fetchTractShapes downloads the TIGER shapefile and returns study-area
// tract boundaries in canonical lon/lat.
func fetchTractShapes(ctx context.Context, cfg *config.Config, f fetcher.Fetcher) ([]model.TractShape, error) {
	shpPath, err := tiger.FetchTractShapefile(ctx, f,
		cfg.Census.TIGERBaseURL, cfg.Census.Year, cfg.Study.StateFIPS, cfg.Census.TempDir)
	if err != nil {
		return nil, eris.Wrap(err, "fetch tract shapes")
	}

	shapes, err := tiger.ReadTractShapes(shpPath, cfg.Study.CountyFIPS)
	if err != nil {
		return nil, eris.Wrap(err, "read tract shapes")
	}
	return shapes, nil
}

// loadSites downloads the statewide site database and narrows it to the
// study counties: dedupe first, then the case-sensitive county filter.
func loadSites(ctx context.Context, cfg *config.Config, f fetcher.Fetcher) ([]model.SiteRecord, error) {
	records, err := sites.Load(ctx, f, cfg.Sites.CSVURL)
	if err != nil {
		return nil, err
	}
	records = sites.Dedupe(records)
	return sites.FilterCounties(records, cfg.Study.CountyNames), nil
}
