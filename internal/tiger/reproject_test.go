package tiger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func squareMultiPolygon(srid int) *geom.MultiPolygon {
	mp := geom.NewMultiPolygon(geom.XY).SetSRID(srid)
	poly := geom.NewPolygon(geom.XY)
	_ = poly.Push(geom.NewLinearRingFlat(geom.XY, []float64{
		-73.9, 42.6,
		-73.9, 42.8,
		-73.7, 42.8,
		-73.7, 42.6,
		-73.9, 42.6,
	}))
	_ = mp.Push(poly)
	return mp
}

func TestReproject_CanonicalIsIdentity(t *testing.T) {
	g := squareMultiPolygon(CanonicalSRID)

	out, err := Reproject(g)
	require.NoError(t, err)
	assert.Equal(t, CanonicalSRID, out.SRID())
	assert.Equal(t, g.FlatCoords(), out.FlatCoords())
}

func TestReproject_Idempotent(t *testing.T) {
	g := squareMultiPolygon(tigerSRID)

	once, err := Reproject(g)
	require.NoError(t, err)
	twice, err := Reproject(once)
	require.NoError(t, err)

	assert.Equal(t, CanonicalSRID, twice.SRID())
	require.Len(t, twice.FlatCoords(), len(once.FlatCoords()))
	for i := range once.FlatCoords() {
		assert.InDelta(t, once.FlatCoords()[i], twice.FlatCoords()[i], 1e-9)
	}
}

func TestReproject_NAD83RelabelsOnly(t *testing.T) {
	g := squareMultiPolygon(tigerSRID)

	out, err := Reproject(g)
	require.NoError(t, err)
	assert.Equal(t, CanonicalSRID, out.SRID())
	assert.Equal(t, g.FlatCoords(), out.FlatCoords())
}

func TestReproject_WebMercator(t *testing.T) {
	// Origin of the mercator plane is (0, 0) lon/lat.
	p := geom.NewPointFlat(geom.XY, []float64{0, 0}).SetSRID(3857)
	out, err := Reproject(p)
	require.NoError(t, err)
	coords := out.FlatCoords()
	assert.InDelta(t, 0, coords[0], 1e-9)
	assert.InDelta(t, 0, coords[1], 1e-9)

	// Known fixed point: -8238310.24, 4970071.58 is about -74.006, 40.7128.
	p = geom.NewPointFlat(geom.XY, []float64{-8238310.24, 4970071.58}).SetSRID(3857)
	out, err = Reproject(p)
	require.NoError(t, err)
	coords = out.FlatCoords()
	assert.InDelta(t, -74.006, coords[0], 1e-3)
	assert.InDelta(t, 40.7128, coords[1], 1e-3)
}

func TestReproject_UnknownSRIDFails(t *testing.T) {
	p := geom.NewPointFlat(geom.XY, []float64{600000, 4500000}).SetSRID(26918)
	_, err := Reproject(p)
	require.Error(t, err)
}
