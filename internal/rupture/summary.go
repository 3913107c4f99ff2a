package rupture

import "faultline/internal/geo"

// Summary is a flat, serialisable view of a rupture used for JSON output
// and catalog rows.
type Summary struct {
	Source         string         `json:"source"`
	Kind           Kind           `json:"kind"`
	Magnitude      float64        `json:"magnitude"`
	TectonicRegion string         `json:"tectonic_region"`
	Rake           float64        `json:"rake"`
	Hypocenter     *geo.Location  `json:"hypocenter,omitempty"`
	Strike         *float64       `json:"strike,omitempty"`
	Dip            *float64       `json:"dip,omitempty"`
	UpperDepth     *float64       `json:"upper_seismogenic_depth,omitempty"`
	LowerDepth     *float64       `json:"lower_seismogenic_depth,omitempty"`
	GridSpacing    *float64       `json:"grid_spacing,omitempty"`
	Trace          []geo.Location `json:"trace,omitempty"`
	TopEdge        []geo.Location `json:"top_edge,omitempty"`
	BottomEdge     []geo.Location `json:"bottom_edge,omitempty"`
	PointCount     int            `json:"point_count"`
}

// Summarize flattens r. A nil rupture yields the zero Summary.
func Summarize(r *Rupture) Summary {
	if r == nil {
		return Summary{}
	}
	out := Summary{
		Source:         r.Source,
		Kind:           r.Kind(),
		Magnitude:      r.Magnitude,
		TectonicRegion: r.TectonicRegion.String(),
		Rake:           r.Rake,
	}
	if r.Hypocenter != nil {
		h := *r.Hypocenter
		out.Hypocenter = &h
	}

	switch s := r.Surface.(type) {
	case PointSurface:
		out.Strike = ptr(s.Strike)
		out.Dip = ptr(s.Dip)
		out.PointCount = s.PointCount()
	case SimpleFaultSurface:
		out.Dip = ptr(s.Dip)
		out.UpperDepth = ptr(s.UpperSeismogenicDepth)
		out.LowerDepth = ptr(s.LowerSeismogenicDepth)
		out.GridSpacing = ptr(s.GridSpacing)
		out.Trace = s.Trace.Points()
		out.PointCount = s.PointCount()
	case ComplexFaultSurface:
		out.GridSpacing = ptr(s.GridSpacing)
		out.TopEdge = s.TopTrace.Points()
		out.BottomEdge = s.BottomTrace.Points()
		out.PointCount = s.PointCount()
	}
	return out
}

func ptr(v float64) *float64 { return &v }
