package tiger

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// CanonicalSRID is the coordinate system every geometry is normalized to
// before tabulation or rendering: WGS84 lon/lat.
const CanonicalSRID = 4326

const webMercatorRadius = 6378137.0

// Reproject normalizes a geometry to EPSG:4326 lon/lat.
//
//   - 4326 is returned unchanged (idempotent).
//   - 4269 (NAD83, what TIGER ships) differs from WGS84 by less than a
//     meter at this scale; coordinates pass through and only the SRID
//     is relabeled.
//   - 3857 (spherical web mercator) gets the inverse mercator transform.
//
// Any other SRID is an error: the pipeline refuses to guess a datum.
func Reproject(g geom.T) (geom.T, error) {
	switch g.SRID() {
	case CanonicalSRID:
		return g, nil
	case tigerSRID:
		return rebuild(g, g.FlatCoords(), CanonicalSRID)
	case 3857:
		flat := g.FlatCoords()
		out := make([]float64, len(flat))
		stride := g.Stride()
		for i := 0; i+1 < len(flat); i += stride {
			out[i], out[i+1] = inverseMercator(flat[i], flat[i+1])
			for k := 2; k < stride; k++ {
				out[i+k] = flat[i+k]
			}
		}
		return rebuild(g, out, CanonicalSRID)
	default:
		return nil, eris.Errorf("tiger: cannot reproject from SRID %d", g.SRID())
	}
}

// inverseMercator converts spherical-mercator meters to lon/lat degrees.
func inverseMercator(x, y float64) (lon, lat float64) {
	lon = x / webMercatorRadius * 180 / math.Pi
	lat = (2*math.Atan(math.Exp(y/webMercatorRadius)) - math.Pi/2) * 180 / math.Pi
	return lon, lat
}

// rebuild constructs a geometry of the same shape from new flat coordinates.
func rebuild(g geom.T, flat []float64, srid int) (geom.T, error) {
	switch t := g.(type) {
	case *geom.Point:
		return geom.NewPointFlat(t.Layout(), flat).SetSRID(srid), nil
	case *geom.Polygon:
		return geom.NewPolygonFlat(t.Layout(), flat, t.Ends()).SetSRID(srid), nil
	case *geom.MultiPolygon:
		return geom.NewMultiPolygonFlat(t.Layout(), flat, t.Endss()).SetSRID(srid), nil
	default:
		return nil, eris.Errorf("tiger: unsupported geometry type %T", g)
	}
}
