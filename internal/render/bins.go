package render

import (
	"fmt"
	"math"
)

// yellow-to-red sequential ramp for the income choropleth.
var incomeRamp = []string{"#ffffb2", "#fed976", "#feb24c", "#fd8d3c", "#f03b20", "#bd0026"}

// Bin is one class of a binned color scale.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Color string  `json:"color"`
	Label string  `json:"label"`
}

// fitBins builds an equal-interval color scale over the value range.
// Returns nil when no values are present (an empty layer is a valid outcome).
func fitBins(values []float64, ramp []string) []Bin {
	if len(values) == 0 || len(ramp) == 0 {
		return nil
	}

	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	n := len(ramp)
	if min == max {
		// Degenerate range: one bin covering the single value.
		return []Bin{{Lower: min, Upper: max, Color: ramp[n-1], Label: formatBound(min)}}
	}

	width := (max - min) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		lower := min + float64(i)*width
		upper := lower + width
		if i == n-1 {
			upper = max
		}
		bins[i] = Bin{
			Lower: lower,
			Upper: upper,
			Color: ramp[i],
			Label: fmt.Sprintf("%s – %s", formatBound(lower), formatBound(upper)),
		}
	}
	return bins
}

// binColor returns the color for a value; the top bin is upper-inclusive.
func binColor(bins []Bin, v float64) string {
	for i, b := range bins {
		if v < b.Upper || i == len(bins)-1 {
			return b.Color
		}
	}
	return ""
}

func formatBound(v float64) string {
	if math.Abs(v) >= 1000 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
