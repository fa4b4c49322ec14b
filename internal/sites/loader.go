package sites

import (
	"context"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/capital-ej/ejatlas-cli/internal/fetcher"
	"github.com/capital-ej/ejatlas-cli/internal/model"
)

// Load downloads the statewide remediation site CSV and parses every row
// into a typed SiteRecord with its hazard classification attached.
// Rows with missing or malformed coordinates are kept for tabular output
// but flagged HasPoint=false so they never reach a map layer.
func Load(ctx context.Context, f fetcher.Fetcher, csvURL string) ([]model.SiteRecord, error) {
	log := zap.L().With(zap.String("component", "sites"))
	log.Info("downloading remediation site database", zap.String("url", csvURL))

	body, err := f.Download(ctx, csvURL)
	if err != nil {
		return nil, eris.Wrap(err, "sites: download")
	}
	defer body.Close() //nolint:errcheck

	var records []model.SiteRecord
	var badCoords int

	err = fetcher.ForEachRow(ctx, body, fetcher.CSVOptions{LazyQuotes: true, TrimSpace: true}, func(header, row []string) error {
		idx := fetcher.HeaderIndex(header)

		rec := model.SiteRecord{
			ProgramType:   fetcher.Column(row, idx, "program type"),
			ProgramNumber: fetcher.Column(row, idx, "program number"),
			SiteName:      fetcher.Column(row, idx, "site name"),
			ClassCode:     strings.TrimSpace(fetcher.Column(row, idx, "site class")),
			Address:       joinAddress(fetcher.Column(row, idx, "address1"), fetcher.Column(row, idx, "address2")),
			Locality:      fetcher.Column(row, idx, "locality"),
			County:        fetcher.Column(row, idx, "county"),
			ZipCode:       fetcher.Column(row, idx, "zipcode"),
			DECRegion:     fetcher.Column(row, idx, "dec region"),
		}
		rec.Category = Classify(rec.ClassCode)

		lon, lat, ok := parseCoordinates(
			fetcher.Column(row, idx, "longitude"),
			fetcher.Column(row, idx, "latitude"),
		)
		if ok {
			rec.Longitude = lon
			rec.Latitude = lat
			rec.HasPoint = true
		} else {
			badCoords++
		}

		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "sites: parse csv")
	}

	if badCoords > 0 {
		log.Warn("site records without usable coordinates excluded from maps",
			zap.Int("records", badCoords),
		)
	}
	log.Info("remediation site database loaded", zap.Int("records", len(records)))

	return records, nil
}

// Dedupe removes rows whose identifying tuple is identical, keeping the
// first representative of each group. Applying it twice is a no-op.
func Dedupe(records []model.SiteRecord) []model.SiteRecord {
	seen := make(map[string]bool, len(records))
	out := make([]model.SiteRecord, 0, len(records))

	for _, r := range records {
		key := strings.Join([]string{
			r.ProgramType,
			r.ProgramNumber,
			r.SiteName,
			r.ClassCode,
			r.Address,
			r.Locality,
			r.County,
			r.ZipCode,
			r.DECRegion,
			strconv.FormatFloat(r.Longitude, 'f', -1, 64),
			strconv.FormatFloat(r.Latitude, 'f', -1, 64),
		}, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}

	return out
}

// FilterCounties keeps records whose county exactly matches one of the
// given names. Matching is case-sensitive.
func FilterCounties(records []model.SiteRecord, counties []string) []model.SiteRecord {
	wanted := make(map[string]bool, len(counties))
	for _, c := range counties {
		wanted[c] = true
	}

	var out []model.SiteRecord
	for _, r := range records {
		if wanted[r.County] {
			out = append(out, r)
		}
	}
	return out
}

// ByCategory partitions mappable records into the hazardous and remediated
// layers. Excluded records and records without a point appear in neither.
func ByCategory(records []model.SiteRecord) (hazardous, remediated []model.SiteRecord) {
	for _, r := range records {
		if !r.HasPoint {
			continue
		}
		switch r.Category {
		case model.CategoryHazardous:
			hazardous = append(hazardous, r)
		case model.CategoryRemediated:
			remediated = append(remediated, r)
		}
	}
	return hazardous, remediated
}

// joinAddress merges the two address lines, dropping an empty second line.
func joinAddress(a1, a2 string) string {
	a1, a2 = strings.TrimSpace(a1), strings.TrimSpace(a2)
	if a2 == "" {
		return a1
	}
	if a1 == "" {
		return a2
	}
	return a1 + ", " + a2
}

// parseCoordinates validates a lon/lat pair. Zero-valued and out-of-range
// coordinates count as malformed.
func parseCoordinates(lonStr, latStr string) (lon, lat float64, ok bool) {
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if errLon != nil || errLat != nil {
		return 0, 0, false
	}
	if lon == 0 && lat == 0 {
		return 0, 0, false
	}
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return 0, 0, false
	}
	return lon, lat, true
}
