// Package tiger downloads TIGER/Line tract shapefiles and converts their
// polygon boundaries into canonical lon/lat geometries keyed by GEOID.
package tiger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/capital-ej/ejatlas-cli/internal/fetcher"
)

// TractURL returns the TIGER/Line tract shapefile URL for a state and year.
func TractURL(baseURL string, year int, stateFIPS string) string {
	return fmt.Sprintf("%s/TIGER%d/TRACT/tl_%d_%s_tract.zip", baseURL, year, year, stateFIPS)
}

// FetchTractShapefile downloads and extracts the tract shapefile for one
// state, returning the path to the extracted .shp file.
func FetchTractShapefile(ctx context.Context, f fetcher.Fetcher, baseURL string, year int, stateFIPS, tempDir string) (string, error) {
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return "", eris.Wrap(err, "tiger: create temp dir")
	}

	url := TractURL(baseURL, year, stateFIPS)
	zipName := fmt.Sprintf("tl_%d_%s_tract.zip", year, stateFIPS)
	zipPath := filepath.Join(tempDir, zipName)

	log := zap.L().With(zap.String("component", "tiger"))
	log.Info("downloading tract shapefile", zap.String("url", url))

	if _, err := f.DownloadToFile(ctx, url, zipPath); err != nil {
		return "", eris.Wrap(err, "tiger: download tract shapefile")
	}

	extractDir := filepath.Join(tempDir, fmt.Sprintf("tract_%d_%s", year, stateFIPS))
	files, err := fetcher.ExtractZIP(zipPath, extractDir)
	if err != nil {
		return "", eris.Wrap(err, "tiger: extract tract shapefile")
	}

	for _, fp := range files {
		if strings.HasSuffix(strings.ToLower(fp), ".shp") {
			return fp, nil
		}
	}
	return "", eris.New("tiger: no .shp file in archive")
}
