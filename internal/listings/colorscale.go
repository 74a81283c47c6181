package listings

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// lutSize matches the resolution of the usual 256-entry colormap lookup table.
const lutSize = 256

// ColorScale maps positions in [0, 1] onto a piecewise-linear RGB gradient
// through evenly spaced stops.
type ColorScale struct {
	stops []colorful.Color
}

// RdYlGn is the diverging red-yellow-green scale: 0 is dark red, 0.5 pale
// yellow and 1 dark green.
var RdYlGn = MustColorScale(
	"#a50026", "#d73027", "#f46d43", "#fdae61", "#fee08b", "#ffffbf",
	"#d9ef8b", "#a6d96a", "#66bd63", "#1a9850", "#006837",
)

func MustColorScale(hexes ...string) ColorScale {
	if len(hexes) < 2 {
		panic("color scale needs at least two stops")
	}
	stops := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		stops[i] = c
	}
	return ColorScale{stops: stops}
}

// At returns the hex color at position x. Positions outside [0, 1] are clamped
// and NaN maps to the midpoint.
func (s ColorScale) At(x float64) string {
	if math.IsNaN(x) {
		x = 0.5
	}

	idx := int(math.Floor(x * lutSize))
	if idx < 0 {
		idx = 0
	}
	if idx > lutSize-1 {
		idx = lutSize - 1
	}
	t := float64(idx) / float64(lutSize-1)

	segments := len(s.stops) - 1
	pos := t * float64(segments)
	i := int(pos)
	if i >= segments {
		return s.stops[segments].Hex()
	}
	return s.stops[i].BlendRgb(s.stops[i+1], pos-float64(i)).Hex()
}

// Midpoint is the color used when every value sits at the same position.
func (s ColorScale) Midpoint() string {
	return s.At(0.5)
}
