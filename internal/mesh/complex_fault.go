package mesh

import (
	"fmt"
	"math"

	"faultline/internal/geo"
	"faultline/internal/rupture"
)

// ComplexFault resamples both edges to a shared column count and fills each
// column by interpolating from the top edge point to the bottom edge point.
func ComplexFault(s rupture.ComplexFaultSurface) (*Grid, error) {
	if err := checkSpacing(s.GridSpacing); err != nil {
		return nil, err
	}
	if s.TopTrace.Empty() || s.BottomTrace.Empty() {
		return nil, fmt.Errorf("%w: complex fault needs both edges", ErrInvalidSurface)
	}
	if err := checkTrace("top edge", s.TopTrace); err != nil {
		return nil, err
	}
	if err := checkTrace("bottom edge", s.BottomTrace); err != nil {
		return nil, err
	}

	cols, err := divisions(math.Max(s.TopTrace.Length(), s.BottomTrace.Length()), s.GridSpacing)
	if err != nil {
		return nil, err
	}
	top := s.TopTrace.Resample(cols)
	bottom := s.BottomTrace.Resample(cols)

	var width float64
	for c := range cols {
		width = math.Max(width, geo.Distance3D(top[c], bottom[c]))
	}
	rows, err := divisions(width, s.GridSpacing)
	if err != nil {
		return nil, err
	}

	g, err := allocate(rows, cols)
	if err != nil {
		return nil, err
	}
	for r := range rows {
		t := 0.0
		if rows > 1 {
			t = float64(r) / float64(rows-1)
		}
		for c := range cols {
			g.set(r, c, geo.Interpolate(top[c], bottom[c], t))
		}
	}
	return g, nil
}
