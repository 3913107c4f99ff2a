package geo

import "slices"

// FaultTrace is an ordered sequence of locations describing the surface
// extent of a fault. The zero value is an empty, unnamed trace.
type FaultTrace struct {
	name   string
	points []Location
}

// NewFaultTrace builds a trace from points, copying the slice.
func NewFaultTrace(name string, points ...Location) FaultTrace {
	return FaultTrace{name: name, points: slices.Clone(points)}
}

// Name returns the trace label. It carries no geometric meaning.
func (t FaultTrace) Name() string { return t.name }

// Len reports the number of points.
func (t FaultTrace) Len() int { return len(t.points) }

// Empty reports whether the trace holds no points.
func (t FaultTrace) Empty() bool { return len(t.points) == 0 }

// Points returns a copy of the trace points in order.
func (t FaultTrace) Points() []Location { return slices.Clone(t.points) }

// At returns the i-th point.
func (t FaultTrace) At(i int) Location { return t.points[i] }

// First returns the first point, or the zero Location for an empty trace.
func (t FaultTrace) First() Location {
	if len(t.points) == 0 {
		return Location{}
	}
	return t.points[0]
}

// Last returns the final point, or the zero Location for an empty trace.
func (t FaultTrace) Last() Location {
	if len(t.points) == 0 {
		return Location{}
	}
	return t.points[len(t.points)-1]
}

// Length sums the horizontal lengths of the trace segments in km.
func (t FaultTrace) Length() float64 {
	var total float64
	for i := 1; i < len(t.points); i++ {
		total += HorizontalDistance(t.points[i-1], t.points[i])
	}
	return total
}

// Strike is the azimuth from the first to the last point. Single-point and
// closed traces report 0.
func (t FaultTrace) Strike() float64 {
	if len(t.points) < 2 {
		return 0
	}
	first, last := t.First(), t.Last()
	if HorizontalDistance(first, last) == 0 {
		return 0
	}
	return Azimuth(first, last)
}

// Resample returns n points evenly spaced along the trace by horizontal
// length, keeping both end points. Depth is interpolated along each segment.
func (t FaultTrace) Resample(n int) []Location {
	if n <= 0 || len(t.points) == 0 {
		return nil
	}
	if len(t.points) == 1 || n == 1 {
		out := make([]Location, n)
		for i := range out {
			out[i] = t.points[0]
		}
		return out
	}

	total := t.Length()
	out := make([]Location, 0, n)
	out = append(out, t.points[0])
	if total == 0 {
		for i := 1; i < n; i++ {
			out = append(out, t.points[0])
		}
		return out
	}

	step := total / float64(n-1)
	seg := 0
	segStart := 0.0
	segLen := HorizontalDistance(t.points[0], t.points[1])
	for i := 1; i < n-1; i++ {
		target := step * float64(i)
		for seg < len(t.points)-2 && target > segStart+segLen {
			segStart += segLen
			seg++
			segLen = HorizontalDistance(t.points[seg], t.points[seg+1])
		}
		frac := 0.0
		if segLen > 0 {
			frac = (target - segStart) / segLen
		}
		out = append(out, Interpolate(t.points[seg], t.points[seg+1], frac))
	}
	out = append(out, t.points[len(t.points)-1])
	return out
}
