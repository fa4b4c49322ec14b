package tiger

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/capital-ej/ejatlas-cli/internal/model"
)

// TIGER/Line ships geometry in NAD83 lon/lat.
const tigerSRID = 4269

// ReadTractShapes reads a tract shapefile and returns one TractShape per
// record, reprojected to canonical EPSG:4326 and filtered to the given
// county FIPS codes (all counties when the filter is empty).
// Records whose geometry cannot be converted are skipped and logged.
func ReadTractShapes(shpPath string, countyFIPS []string) ([]model.TractShape, error) {
	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "tiger: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToUpper(name)] = i
	}
	geoidIdx, ok := fieldIdx["GEOID"]
	if !ok {
		return nil, eris.New("tiger: shapefile has no GEOID field")
	}
	countyIdx, hasCounty := fieldIdx["COUNTYFP"]

	wanted := make(map[string]bool, len(countyFIPS))
	for _, c := range countyFIPS {
		wanted[c] = true
	}

	var shapes []model.TractShape
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()

		geoid := strings.TrimSpace(strings.TrimRight(reader.Attribute(geoidIdx), "\x00"))
		if geoid == "" {
			skipped++
			continue
		}

		if len(wanted) > 0 && hasCounty {
			county := strings.TrimSpace(strings.TrimRight(reader.Attribute(countyIdx), "\x00"))
			if !wanted[county] {
				continue
			}
		}

		poly, ok := shape.(*shp.Polygon)
		if !ok || poly == nil {
			skipped++
			continue
		}

		mp := polygonToMultiPolygon(poly)
		if mp == nil {
			skipped++
			continue
		}

		canonical, err := Reproject(mp)
		if err != nil {
			skipped++
			continue
		}

		shapes = append(shapes, model.TractShape{
			GEOID:    geoid,
			Geometry: canonical.(*geom.MultiPolygon),
		})
	}

	if skipped > 0 {
		zap.L().Warn("tiger: skipped tract records with unusable geometry",
			zap.Int("skipped", skipped),
		)
	}

	return shapes, nil
}

// ShapeIndex keys tract shapes by GEOID for joining against ACS records.
func ShapeIndex(shapes []model.TractShape) map[string]model.TractShape {
	idx := make(map[string]model.TractShape, len(shapes))
	for _, s := range shapes {
		idx[s.GEOID] = s
	}
	return idx
}

// polygonToMultiPolygon converts a shapefile Polygon to a geom.MultiPolygon
// carrying the TIGER source SRID.
func polygonToMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(tigerSRID)

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		ring := geom.NewLinearRingFlat(geom.XY, flat)
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("tiger: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}

		if err := mp.Push(poly); err != nil {
			zap.L().Debug("tiger: skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
