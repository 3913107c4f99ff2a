// Package rupture defines the in-memory rupture model produced by the NRML
// reader: scalar source properties plus exactly one surface variant.
//
// Surface is a closed set. Consumers switch on the concrete type (or on
// Kind) and may rely on the three variants below being the only ones.
package rupture

import (
	"faultline/internal/geo"
	"faultline/internal/tectonic"
)

// Kind names a surface variant.
type Kind string

const (
	KindPoint        Kind = "point"
	KindSimpleFault  Kind = "simple_fault"
	KindComplexFault Kind = "complex_fault"
)

// Kinds lists the variants in dispatch priority order.
func Kinds() []Kind {
	return []Kind{KindPoint, KindSimpleFault, KindComplexFault}
}

// Surface is the geometric surface of a rupture.
type Surface interface {
	Kind() Kind
	// PointCount is the number of input locations the surface was built from.
	PointCount() int
	sealed()
}

// PointSurface is a rupture collapsed onto a single location.
type PointSurface struct {
	Location geo.Location
	Strike   float64
	Dip      float64
}

// SimpleFaultSurface is a planar fault hanging from a surface trace.
type SimpleFaultSurface struct {
	Trace                 geo.FaultTrace
	Dip                   float64
	UpperSeismogenicDepth float64
	LowerSeismogenicDepth float64
	GridSpacing           float64
}

// ComplexFaultSurface is an uneven fault bounded by a top and bottom edge.
type ComplexFaultSurface struct {
	TopTrace    geo.FaultTrace
	BottomTrace geo.FaultTrace
	GridSpacing float64
}

func (PointSurface) Kind() Kind        { return KindPoint }
func (SimpleFaultSurface) Kind() Kind  { return KindSimpleFault }
func (ComplexFaultSurface) Kind() Kind { return KindComplexFault }

func (PointSurface) PointCount() int          { return 1 }
func (s SimpleFaultSurface) PointCount() int  { return s.Trace.Len() }
func (s ComplexFaultSurface) PointCount() int { return s.TopTrace.Len() + s.BottomTrace.Len() }

func (PointSurface) sealed()        {}
func (SimpleFaultSurface) sealed()  {}
func (ComplexFaultSurface) sealed() {}

// Rupture is a modelled seismic source event.
type Rupture struct {
	// Source identifies the document the rupture was read from.
	Source         string
	Magnitude      float64
	TectonicRegion tectonic.Region
	Rake           float64
	// Hypocenter is set for point ruptures only.
	Hypocenter *geo.Location
	Surface    Surface
}

// Kind reports the surface variant, or "" when no surface is attached.
func (r *Rupture) Kind() Kind {
	if r == nil || r.Surface == nil {
		return ""
	}
	return r.Surface.Kind()
}
