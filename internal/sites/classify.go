// Package sites loads the NYSDEC Environmental Site Remediation database
// and prepares it for tabulation and mapping: deduplication, hazard
// classification, county filtering, and point geometry.
package sites

import "github.com/capital-ej/ejatlas-cli/internal/model"

// Site class codes drawn from the NYSDEC remediation program vocabulary.
// "02" through "04" and the letter codes A/P/PR mark sites that are active,
// potential, or still posing a threat; "05", C, and N mark sites where
// remediation is complete or no further action is required.
var (
	hazardousCodes = map[string]bool{
		"02": true,
		"03": true,
		"04": true,
		"A":  true,
		"P":  true,
		"PR": true,
	}
	remediatedCodes = map[string]bool{
		"05": true,
		"C":  true,
		"N":  true,
	}
)

// Classify maps a site class code to exactly one category.
// Codes outside both fixed sets are excluded.
func Classify(code string) model.SiteCategory {
	switch {
	case hazardousCodes[code]:
		return model.CategoryHazardous
	case remediatedCodes[code]:
		return model.CategoryRemediated
	default:
		return model.CategoryExcluded
	}
}
