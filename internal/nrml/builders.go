package nrml

import (
	"fmt"

	"faultline/internal/geo"
	"faultline/internal/rupture"
)

// geometry is what a builder contributes to a rupture.
type geometry struct {
	rake       float64
	hypocenter *geo.Location
	surface    rupture.Surface
}

func buildGeometry(doc *Document, kind rupture.Kind, gridSpacing float64) (geometry, error) {
	switch kind {
	case rupture.KindPoint:
		return buildPoint(doc)
	case rupture.KindSimpleFault:
		return buildSimpleFault(doc, gridSpacing)
	case rupture.KindComplexFault:
		return buildComplexFault(doc, gridSpacing)
	default:
		return geometry{}, newError(KindUnknownRuptureType, "", fmt.Sprintf("no builder for %q", kind))
	}
}

func buildPoint(doc *Document) (geometry, error) {
	hypocenter, err := doc.Location(fieldPos)
	if err != nil {
		return geometry{}, err
	}
	rake, err := doc.Float(fieldRake)
	if err != nil {
		return geometry{}, err
	}
	strike, err := doc.Float(fieldStrike)
	if err != nil {
		return geometry{}, err
	}
	dip, err := doc.Float(fieldDip)
	if err != nil {
		return geometry{}, err
	}
	return geometry{
		rake:       rake,
		hypocenter: &hypocenter,
		surface: rupture.PointSurface{
			Location: hypocenter,
			Strike:   strike,
			Dip:      dip,
		},
	}, nil
}

func buildSimpleFault(doc *Document, gridSpacing float64) (geometry, error) {
	rake, err := doc.Float(fieldRake)
	if err != nil {
		return geometry{}, err
	}
	dip, err := doc.Float(fieldDip)
	if err != nil {
		return geometry{}, err
	}
	upper, err := doc.Float(fieldUpperDepth)
	if err != nil {
		return geometry{}, err
	}
	lower, err := doc.Float(fieldLowerDepth)
	if err != nil {
		return geometry{}, err
	}
	trace, err := requireTrace(doc, fieldPosList, "")
	if err != nil {
		return geometry{}, err
	}
	return geometry{
		rake: rake,
		surface: rupture.SimpleFaultSurface{
			Trace:                 trace,
			Dip:                   dip,
			UpperSeismogenicDepth: upper,
			LowerSeismogenicDepth: lower,
			GridSpacing:           gridSpacing,
		},
	}, nil
}

func buildComplexFault(doc *Document, gridSpacing float64) (geometry, error) {
	rake, err := doc.Float(fieldRake)
	if err != nil {
		return geometry{}, err
	}
	top, err := requireTrace(doc, fieldTopEdge, "")
	if err != nil {
		return geometry{}, err
	}
	bottom, err := requireTrace(doc, fieldBottomEdge, "")
	if err != nil {
		return geometry{}, err
	}
	return geometry{
		rake: rake,
		surface: rupture.ComplexFaultSurface{
			TopTrace:    top,
			BottomTrace: bottom,
			GridSpacing: gridSpacing,
		},
	}, nil
}

// requireTrace reads a trace that must hold at least one point.
func requireTrace(doc *Document, f Field, name string) (geo.FaultTrace, error) {
	trace, err := doc.Trace(f, name)
	if err != nil {
		return geo.FaultTrace{}, err
	}
	if trace.Empty() {
		return geo.FaultTrace{}, newError(KindMalformedGeometry, f.path, "position list is empty")
	}
	return trace, nil
}
