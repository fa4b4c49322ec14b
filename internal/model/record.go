// Package model holds the typed records flowing through the atlas pipeline.
// Every upstream row is parsed into one of these structs at the wire
// boundary; no string-keyed column access survives past the parsers.
package model

import (
	"github.com/twpayne/go-geom"
)

// SiteCategory is the derived hazard bucket for a remediation site.
type SiteCategory string

const (
	CategoryHazardous  SiteCategory = "hazardous"
	CategoryRemediated SiteCategory = "remediated"
	CategoryExcluded   SiteCategory = "excluded"
)

// TractRecord is one Census tract's ACS estimate for one variable.
type TractRecord struct {
	GEOID         string   `json:"geoid"`
	Name          string   `json:"name"`
	Variable      string   `json:"variable"`
	Estimate      *float64 `json:"estimate"`        // nil when the API reports a jam value
	MarginOfError *float64 `json:"margin_of_error"` // nil when unreported
	StateFIPS     string   `json:"state_fips"`
	CountyFIPS    string   `json:"county_fips"`
	TractCode     string   `json:"tract_code"`
}

// TractShape is a tract boundary in canonical EPSG:4326 lon/lat.
type TractShape struct {
	GEOID    string             `json:"geoid"`
	Geometry *geom.MultiPolygon `json:"-"`
}

// SiteRecord is one NYSDEC environmental remediation program entry.
type SiteRecord struct {
	ProgramType   string       `json:"program_type"`
	ProgramNumber string       `json:"program_number"`
	SiteName      string       `json:"site_name"`
	ClassCode     string       `json:"class_code"`
	Address       string       `json:"address"`
	Locality      string       `json:"locality"`
	County        string       `json:"county"`
	ZipCode       string       `json:"zip_code"`
	DECRegion     string       `json:"dec_region"`
	Longitude     float64      `json:"longitude"`
	Latitude      float64      `json:"latitude"`
	HasPoint      bool         `json:"has_point"` // false when coordinates were missing or malformed
	Category      SiteCategory `json:"category"`
}

// Point returns the site's location as an EPSG:4326 point.
// Only meaningful when HasPoint is true.
func (s SiteRecord) Point() *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{s.Longitude, s.Latitude}).SetSRID(4326)
}

// MajorityTally is the tract count for one race/ethnicity category.
type MajorityTally struct {
	Variable string `json:"variable"`
	Label    string `json:"label"`
	Tracts   int    `json:"tracts"`
}
