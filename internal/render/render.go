// Package render turns tabulated records into self-contained document
// artifacts: static and interactive HTML tables, Leaflet maps, and a
// spreadsheet export. Presentation only; no invariant beyond every record
// with valid geometry appearing in exactly one layer.
package render

import (
	"embed"
	"html/template"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/capital-ej/ejatlas-cli/internal/acs"
	"github.com/capital-ej/ejatlas-cli/internal/model"
	"github.com/capital-ej/ejatlas-cli/internal/tabulate"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Viewport fixes the initial map view and panning bounds.
type Viewport struct {
	CenterLat float64 `json:"center_lat"`
	CenterLng float64 `json:"center_lng"`
	Zoom      int     `json:"zoom"`
	// Panning bounds: south-west and north-east corners.
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// CapitalDistrictViewport covers the three-county study area.
func CapitalDistrictViewport() Viewport {
	return Viewport{
		CenterLat: 42.75, CenterLng: -73.80, Zoom: 10,
		MinLat: 42.20, MinLng: -74.60,
		MaxLat: 43.25, MaxLng: -73.20,
	}
}

// Inputs carries everything the renderer consumes. All fields are read-only.
type Inputs struct {
	Tracts   []model.TractRecord
	Shapes   []model.TractShape
	Sites    []model.SiteRecord
	Tallies  []model.MajorityTally
	SiteRows []tabulate.SiteRow
	Catalog  *acs.Catalog
	Viewport Viewport
}

// Renderer writes artifacts into one output directory, stamping each run.
type Renderer struct {
	outDir string
	title  string
	runID  string
}

// New creates a Renderer targeting the given directory.
func New(outDir, title string) *Renderer {
	return &Renderer{
		outDir: outDir,
		title:  title,
		runID:  uuid.NewString(),
	}
}

// RunID returns the identifier stamped into every artifact of this render.
func (r *Renderer) RunID() string { return r.runID }

// RenderAll writes the full artifact set: summary table, interactive site
// table, demographic choropleth, site marker map, and the XLSX export.
func (r *Renderer) RenderAll(in Inputs) error {
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return eris.Wrap(err, "render: create output dir")
	}

	log := zap.L().With(zap.String("component", "render"), zap.String("run_id", r.runID))

	steps := []struct {
		name string
		fn   func(Inputs) error
	}{
		{"summary.html", r.SummaryTable},
		{"sites_table.html", r.SiteTable},
		{"demographics.html", r.Choropleth},
		{"sites_map.html", r.SiteMap},
		{"sites.xlsx", r.SiteXLSX},
	}
	for _, s := range steps {
		if err := s.fn(in); err != nil {
			return err
		}
		log.Info("artifact written", zap.String("artifact", s.name))
	}

	return nil
}

func (r *Renderer) writeFile(name string, data []byte) error {
	path := filepath.Join(r.outDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "render: write %s", name)
	}
	return nil
}
