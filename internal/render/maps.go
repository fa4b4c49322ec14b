package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/capital-ej/ejatlas-cli/internal/acs"
	"github.com/capital-ej/ejatlas-cli/internal/model"
	"github.com/capital-ej/ejatlas-cli/internal/sites"
	"github.com/capital-ej/ejatlas-cli/internal/tabulate"
)

// Marker colors for the site layers.
const (
	hazardousColor  = "#d7191c"
	remediatedColor = "#1a9641"
)

type legendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// layerPayload is one togglable map layer, colors precomputed per feature.
type layerPayload struct {
	Name     string                     `json:"name"`
	Kind     string                     `json:"kind"` // "polygon" or "point"
	Visible  bool                       `json:"visible"`
	Features *geojson.FeatureCollection `json:"features"`
	Legend   []legendEntry              `json:"legend"`
}

type mapPayload struct {
	Title    string         `json:"title"`
	Viewport Viewport       `json:"viewport"`
	Layers   []layerPayload `json:"layers"`
}

// Choropleth renders the demographic map: an income polygon layer with a
// binned color scale and a majority race/ethnicity polygon layer.
func (r *Renderer) Choropleth(in Inputs) error {
	shapes := make(map[string]model.TractShape, len(in.Shapes))
	for _, s := range in.Shapes {
		shapes[s.GEOID] = s
	}

	incomeLayer := incomePolygons(in, shapes)
	raceLayer := racePolygons(in, shapes)

	return r.renderMap("demographics.html", mapPayload{
		Title:    r.title + " — Demographics",
		Viewport: in.Viewport,
		Layers:   []layerPayload{incomeLayer, raceLayer},
	})
}

// SiteMap renders the remediation site marker map with independently
// togglable hazardous and remediated layers.
func (r *Renderer) SiteMap(in Inputs) error {
	hazardous, remediated := sites.ByCategory(in.Sites)

	return r.renderMap("sites_map.html", mapPayload{
		Title:    r.title + " — Remediation Sites",
		Viewport: in.Viewport,
		Layers: []layerPayload{
			siteMarkers("Hazardous sites", hazardous, hazardousColor),
			siteMarkers("Remediated sites", remediated, remediatedColor),
		},
	})
}

func (r *Renderer) renderMap(name string, payload mapPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return eris.Wrapf(err, "render: marshal %s payload", name)
	}

	var buf bytes.Buffer
	err = templates.ExecuteTemplate(&buf, "map.tmpl", map[string]any{
		"Title":   payload.Title,
		"RunID":   r.runID,
		"Payload": template.JS(raw), //nolint:gosec // payload is json.Marshal output
	})
	if err != nil {
		return eris.Wrapf(err, "render: execute %s", name)
	}

	return r.writeFile(name, buf.Bytes())
}

// incomePolygons builds the median-income choropleth layer.
// Tracts without an income estimate or without geometry are left out.
func incomePolygons(in Inputs, shapes map[string]model.TractShape) layerPayload {
	incomeVars := in.Catalog.Codes(acs.GroupIncome)
	incomeVar := ""
	if len(incomeVars) > 0 {
		incomeVar = incomeVars[0]
	}

	type tractIncome struct {
		rec   model.TractRecord
		value float64
	}
	var withIncome []tractIncome
	var values []float64
	for _, rec := range in.Tracts {
		if rec.Variable != incomeVar || rec.Estimate == nil {
			continue
		}
		if _, ok := shapes[rec.GEOID]; !ok {
			continue
		}
		withIncome = append(withIncome, tractIncome{rec: rec, value: *rec.Estimate})
		values = append(values, *rec.Estimate)
	}

	bins := fitBins(values, incomeRamp)

	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	for _, ti := range withIncome {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       ti.rec.GEOID,
			Geometry: shapes[ti.rec.GEOID].Geometry,
			Properties: map[string]any{
				"geoid": ti.rec.GEOID,
				"color": binColor(bins, ti.value),
				"popup": fmt.Sprintf("%s<br>Median household income: $%.0f",
					template.HTMLEscapeString(ti.rec.Name), ti.value),
			},
		})
	}

	legend := make([]legendEntry, 0, len(bins))
	for _, b := range bins {
		legend = append(legend, legendEntry{Label: "$" + b.Label, Color: b.Color})
	}

	return layerPayload{
		Name:     in.Catalog.Label(incomeVar),
		Kind:     "polygon",
		Visible:  true,
		Features: fc,
		Legend:   legend,
	}
}

// racePolygons colors each tract by its plurality race/ethnicity category.
// A tied tract is colored by its first winner but the popup names them all.
func racePolygons(in Inputs, shapes map[string]model.TractShape) layerPayload {
	raceVars := in.Catalog.Codes(acs.GroupRace)
	winners := tabulate.WinnersByTract(in.Tracts, raceVars)

	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	for geoid, ws := range winners {
		shape, ok := shapes[geoid]
		if !ok || len(ws) == 0 {
			continue
		}

		labels := make([]string, 0, len(ws))
		for _, w := range ws {
			labels = append(labels, in.Catalog.Label(w))
		}

		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       geoid,
			Geometry: shape.Geometry,
			Properties: map[string]any{
				"geoid": geoid,
				"color": in.Catalog.Color(ws[0]),
				"popup": fmt.Sprintf("Tract %s<br>Plurality: %s",
					template.HTMLEscapeString(geoid),
					template.HTMLEscapeString(strings.Join(labels, ", "))),
			},
		})
	}

	var legend []legendEntry
	for _, v := range in.Catalog.Group(acs.GroupRace) {
		legend = append(legend, legendEntry{Label: v.Label, Color: v.Color})
	}

	return layerPayload{
		Name:     "Majority race/ethnicity",
		Kind:     "polygon",
		Features: fc,
		Legend:   legend,
	}
}

// siteMarkers builds one point layer from records that carry a valid point.
func siteMarkers(name string, records []model.SiteRecord, color string) layerPayload {
	// Empty slice keeps "features" a JSON array even for an empty layer.
	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	for _, s := range records {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       s.ProgramNumber,
			Geometry: s.Point(),
			Properties: map[string]any{
				"color": color,
				"popup": fmt.Sprintf("%s<br>%s<br>Class %s (%s)",
					template.HTMLEscapeString(s.SiteName),
					template.HTMLEscapeString(s.Locality),
					template.HTMLEscapeString(s.ClassCode),
					s.Category),
			},
		})
	}

	return layerPayload{
		Name:     name,
		Kind:     "point",
		Visible:  true,
		Features: fc,
		Legend:   []legendEntry{{Label: name, Color: color}},
	}
}
