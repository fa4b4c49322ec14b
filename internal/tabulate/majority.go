// Package tabulate aggregates typed records into the display tables:
// the majority race/ethnicity tally and the site inventory projection.
package tabulate

import (
	"github.com/capital-ej/ejatlas-cli/internal/model"
)

// WinnersByTract finds, per tract, the race/ethnicity variable(s) holding
// the maximum estimate. Ties retain every tied variable, in raceVars order.
// A tract with no positive estimate defines no plurality and is omitted.
func WinnersByTract(records []model.TractRecord, raceVars []string) map[string][]string {
	wanted := make(map[string]bool, len(raceVars))
	for _, v := range raceVars {
		wanted[v] = true
	}

	// Estimates by tract, race variables only.
	byTract := make(map[string]map[string]float64)
	for _, r := range records {
		if !wanted[r.Variable] || r.Estimate == nil {
			continue
		}
		if byTract[r.GEOID] == nil {
			byTract[r.GEOID] = make(map[string]float64, len(raceVars))
		}
		byTract[r.GEOID][r.Variable] = *r.Estimate
	}

	winners := make(map[string][]string, len(byTract))
	for geoid, estimates := range byTract {
		max := 0.0
		for _, e := range estimates {
			if e > max {
				max = e
			}
		}
		if max <= 0 {
			continue // all-zero tract defines no plurality
		}
		for _, v := range raceVars {
			if e, ok := estimates[v]; ok && e == max {
				winners[geoid] = append(winners[geoid], v)
			}
		}
	}

	return winners
}

// MajorityByTract counts, per race/ethnicity variable, the tracts where
// that variable holds the maximum estimate. A tract whose estimates tie
// across variables counts once under every tied variable. Output order
// follows raceVars; variables with zero winning tracts still appear.
func MajorityByTract(records []model.TractRecord, raceVars []string, label func(code string) string) []model.MajorityTally {
	counts := make(map[string]int, len(raceVars))
	for _, ws := range WinnersByTract(records, raceVars) {
		for _, v := range ws {
			counts[v]++
		}
	}

	tallies := make([]model.MajorityTally, 0, len(raceVars))
	for _, v := range raceVars {
		tallies = append(tallies, model.MajorityTally{
			Variable: v,
			Label:    label(v),
			Tracts:   counts[v],
		})
	}
	return tallies
}

// --- display projection ---

// SiteRow is the fixed column subset of a site record shown in tables.
type SiteRow struct {
	SiteName      string
	ProgramNumber string
	ProgramType   string
	ClassCode     string
	Category      model.SiteCategory
	Address       string
	Locality      string
	County        string
	ZipCode       string
}

// DisplayColumns projects site records into presentation rows,
// preserving source order.
func DisplayColumns(records []model.SiteRecord) []SiteRow {
	rows := make([]SiteRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, SiteRow{
			SiteName:      r.SiteName,
			ProgramNumber: r.ProgramNumber,
			ProgramType:   r.ProgramType,
			ClassCode:     r.ClassCode,
			Category:      r.Category,
			Address:       r.Address,
			Locality:      r.Locality,
			County:        r.County,
			ZipCode:       r.ZipCode,
		})
	}
	return rows
}
