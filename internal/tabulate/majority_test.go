package tabulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capital-ej/ejatlas-cli/internal/model"
)

const (
	varWhite = "B03002_003E"
	varBlack = "B03002_004E"
)

var raceVars = []string{varWhite, varBlack}

func rec(geoid, variable string, estimate float64) model.TractRecord {
	e := estimate
	return model.TractRecord{GEOID: geoid, Variable: variable, Estimate: &e}
}

func labelOf(code string) string {
	switch code {
	case varWhite:
		return "White"
	case varBlack:
		return "Black"
	}
	return code
}

func TestMajorityByTract_TiesCountUnderEveryCategory(t *testing.T) {
	// Tract A: White 80, Black 20. Tract B: tied 40/40.
	records := []model.TractRecord{
		rec("A", varWhite, 80), rec("A", varBlack, 20),
		rec("B", varWhite, 40), rec("B", varBlack, 40),
	}

	tallies := MajorityByTract(records, raceVars, labelOf)
	require.Len(t, tallies, 2)
	assert.Equal(t, model.MajorityTally{Variable: varWhite, Label: "White", Tracts: 2}, tallies[0])
	assert.Equal(t, model.MajorityTally{Variable: varBlack, Label: "Black", Tracts: 1}, tallies[1])
}

func TestMajorityByTract_TieExampleBothReported(t *testing.T) {
	// The tied tract alone reports one tract under each category.
	records := []model.TractRecord{
		rec("B", varWhite, 40), rec("B", varBlack, 40),
	}

	tallies := MajorityByTract(records, raceVars, labelOf)
	assert.Equal(t, 1, tallies[0].Tracts)
	assert.Equal(t, 1, tallies[1].Tracts)
}

func TestMajorityByTract_AllZeroTractExcluded(t *testing.T) {
	records := []model.TractRecord{
		rec("Z", varWhite, 0), rec("Z", varBlack, 0),
		rec("A", varWhite, 10), rec("A", varBlack, 5),
	}

	tallies := MajorityByTract(records, raceVars, labelOf)
	assert.Equal(t, 1, tallies[0].Tracts)
	assert.Equal(t, 0, tallies[1].Tracts)
}

func TestMajorityByTract_NilEstimatesIgnored(t *testing.T) {
	records := []model.TractRecord{
		{GEOID: "A", Variable: varWhite, Estimate: nil},
		rec("A", varBlack, 5),
	}

	tallies := MajorityByTract(records, raceVars, labelOf)
	assert.Equal(t, 0, tallies[0].Tracts)
	assert.Equal(t, 1, tallies[1].Tracts)
}

func TestMajorityByTract_CountsSumToTractsWithPlurality(t *testing.T) {
	records := []model.TractRecord{
		rec("A", varWhite, 80), rec("A", varBlack, 20),
		rec("B", varWhite, 30), rec("B", varBlack, 70),
		rec("C", varWhite, 0), rec("C", varBlack, 0), // no plurality
		rec("D", varWhite, 50), rec("D", varBlack, 50), // tie: counts twice
	}

	tallies := MajorityByTract(records, raceVars, labelOf)
	sum := 0
	for _, ta := range tallies {
		sum += ta.Tracts
	}
	// 3 tracts define a plurality; the tie adds one extra count.
	assert.Equal(t, 4, sum)
}

func TestMajorityByTract_IgnoresNonRaceVariables(t *testing.T) {
	records := []model.TractRecord{
		rec("A", "B19013_001E", 99999), // income must not influence the tally
		rec("A", varWhite, 10), rec("A", varBlack, 20),
	}

	tallies := MajorityByTract(records, raceVars, labelOf)
	assert.Equal(t, 0, tallies[0].Tracts)
	assert.Equal(t, 1, tallies[1].Tracts)
}

func TestWinnersByTract_OrderFollowsRaceVars(t *testing.T) {
	records := []model.TractRecord{
		rec("B", varBlack, 40), rec("B", varWhite, 40),
	}

	winners := WinnersByTract(records, raceVars)
	require.Contains(t, winners, "B")
	assert.Equal(t, []string{varWhite, varBlack}, winners["B"])
}

func TestDisplayColumns_PreservesOrder(t *testing.T) {
	records := []model.SiteRecord{
		{SiteName: "Second", ProgramNumber: "2", County: "Albany", Category: model.CategoryHazardous},
		{SiteName: "First", ProgramNumber: "1", County: "Rensselaer", Category: model.CategoryRemediated},
	}

	rows := DisplayColumns(records)
	require.Len(t, rows, 2)
	assert.Equal(t, "Second", rows[0].SiteName)
	assert.Equal(t, "First", rows[1].SiteName)
	assert.Equal(t, model.CategoryRemediated, rows[1].Category)
}
