package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitBins_EqualIntervals(t *testing.T) {
	bins := fitBins([]float64{0, 30, 60}, []string{"a", "b", "c"})
	require.Len(t, bins, 3)

	assert.Equal(t, 0.0, bins[0].Lower)
	assert.Equal(t, 20.0, bins[0].Upper)
	assert.Equal(t, 40.0, bins[1].Upper)
	assert.Equal(t, 60.0, bins[2].Upper)
	assert.Equal(t, "a", bins[0].Color)
	assert.Equal(t, "c", bins[2].Color)
}

func TestFitBins_EmptyValues(t *testing.T) {
	assert.Nil(t, fitBins(nil, incomeRamp), "empty layer is a valid outcome")
}

func TestFitBins_DegenerateRange(t *testing.T) {
	bins := fitBins([]float64{50, 50, 50}, []string{"a", "b"})
	require.Len(t, bins, 1)
	assert.Equal(t, 50.0, bins[0].Lower)
	assert.Equal(t, 50.0, bins[0].Upper)
}

func TestBinColor(t *testing.T) {
	bins := fitBins([]float64{0, 90}, []string{"low", "mid", "high"})
	require.Len(t, bins, 3)

	assert.Equal(t, "low", binColor(bins, 0))
	assert.Equal(t, "low", binColor(bins, 29))
	assert.Equal(t, "mid", binColor(bins, 45))
	assert.Equal(t, "high", binColor(bins, 75))
	// Top bin is upper-inclusive: the maximum lands in the last bin.
	assert.Equal(t, "high", binColor(bins, 90))
}
