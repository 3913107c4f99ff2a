package mesh

import (
	"fmt"
	"math"

	"faultline/internal/geo"
	"faultline/internal/rupture"
)

// SimpleFault projects the trace down dip between the upper and lower
// seismogenic depths. The dip direction is 90 degrees clockwise from the
// trace strike.
func SimpleFault(s rupture.SimpleFaultSurface) (*Grid, error) {
	if err := checkSpacing(s.GridSpacing); err != nil {
		return nil, err
	}
	if s.Trace.Empty() {
		return nil, fmt.Errorf("%w: empty fault trace", ErrInvalidSurface)
	}
	if err := checkTrace("fault trace", s.Trace); err != nil {
		return nil, err
	}
	if !finite(s.UpperSeismogenicDepth) || !finite(s.LowerSeismogenicDepth) {
		return nil, fmt.Errorf("%w: seismogenic depths must be finite, got %v and %v",
			ErrInvalidSurface, s.UpperSeismogenicDepth, s.LowerSeismogenicDepth)
	}
	if math.IsNaN(s.Dip) || s.Dip <= 0 || s.Dip > 90 {
		return nil, fmt.Errorf("%w: dip must be in (0, 90], got %v", ErrInvalidSurface, s.Dip)
	}
	if s.LowerSeismogenicDepth < s.UpperSeismogenicDepth {
		return nil, fmt.Errorf("%w: lower seismogenic depth %v above upper %v",
			ErrInvalidSurface, s.LowerSeismogenicDepth, s.UpperSeismogenicDepth)
	}

	dip := s.Dip * math.Pi / 180
	dipDirection := math.Mod(s.Trace.Strike()+90, 360)
	horizontalPerDepth := 0.0
	if s.Dip < 90 {
		horizontalPerDepth = 1 / math.Tan(dip)
	}

	cols, err := divisions(s.Trace.Length(), s.GridSpacing)
	if err != nil {
		return nil, err
	}
	top := s.Trace.Resample(cols)
	for i, p := range top {
		down := s.UpperSeismogenicDepth - p.Depth
		top[i] = geo.Destination(p, dipDirection, down*horizontalPerDepth, down)
	}

	width := (s.LowerSeismogenicDepth - s.UpperSeismogenicDepth) / math.Sin(dip)
	rows, err := divisions(width, s.GridSpacing)
	if err != nil {
		return nil, err
	}
	rowStep := 0.0
	if rows > 1 {
		rowStep = width / float64(rows-1)
	}

	g, err := allocate(rows, cols)
	if err != nil {
		return nil, err
	}
	for r := range rows {
		along := rowStep * float64(r)
		for c, p := range top {
			g.set(r, c, geo.Destination(p, dipDirection, along*math.Cos(dip), along*math.Sin(dip)))
		}
	}
	return g, nil
}
