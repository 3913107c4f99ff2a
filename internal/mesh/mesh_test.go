package mesh_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faultline/internal/geo"
	"faultline/internal/mesh"
	"faultline/internal/rupture"
)

// eastTrace runs due east along the equator for roughly lengthKm.
func eastTrace(lengthKm float64, depth float64) geo.FaultTrace {
	lon := lengthKm / geo.EarthRadiusKm * 180 / math.Pi
	return geo.NewFaultTrace("", geo.NewLocation(0, 0, depth), geo.NewLocation(0, lon, depth))
}

func TestPointGrid(t *testing.T) {
	loc := geo.NewLocation(40.363, -124.704, 30)
	g, err := mesh.Build(rupture.PointSurface{Location: loc, Strike: 10, Dip: 80})
	require.NoError(t, err)
	assert.Equal(t, 1, g.Rows())
	assert.Equal(t, 1, g.Cols())
	assert.Equal(t, loc, g.At(0, 0))
}

func TestSimpleFaultVertical(t *testing.T) {
	surface := rupture.SimpleFaultSurface{
		Trace:                 eastTrace(10, 0),
		Dip:                   90,
		UpperSeismogenicDepth: 0,
		LowerSeismogenicDepth: 10,
		GridSpacing:           1,
	}
	g, err := mesh.SimpleFault(surface)
	require.NoError(t, err)

	assert.Equal(t, 11, g.Cols())
	assert.Equal(t, 11, g.Rows())
	assert.Equal(t, 121, g.Len())

	for r := range g.Rows() {
		for c := range g.Cols() {
			p := g.At(r, c)
			assert.InDelta(t, float64(r), p.Depth, 1e-9)
			assert.InDelta(t, 0, geo.HorizontalDistance(g.At(0, c), p), 1e-6)
		}
	}
	assert.InDelta(t, 0, geo.HorizontalDistance(surface.Trace.First(), g.At(0, 0)), 1e-9)
	assert.InDelta(t, 0, geo.HorizontalDistance(surface.Trace.Last(), g.At(0, g.Cols()-1)), 1e-6)
}

func TestSimpleFaultDippingProjectsDownDip(t *testing.T) {
	surface := rupture.SimpleFaultSurface{
		Trace:                 eastTrace(4, 0),
		Dip:                   45,
		UpperSeismogenicDepth: 5,
		LowerSeismogenicDepth: 15,
		GridSpacing:           2,
	}
	g, err := mesh.SimpleFault(surface)
	require.NoError(t, err)

	top, bottom := g.Row(0), g.Row(g.Rows()-1)
	for c := range g.Cols() {
		assert.InDelta(t, 5, top[c].Depth, 1e-9)
		assert.InDelta(t, 15, bottom[c].Depth, 1e-9)
	}

	origin := surface.Trace.First()
	assert.InDelta(t, 5, geo.HorizontalDistance(origin, top[0]), 1e-6)
	assert.InDelta(t, 15, geo.HorizontalDistance(origin, bottom[0]), 1e-6)
	assert.Less(t, bottom[0].Latitude, 0.0, "east striking fault dips south")

	lo, hi := g.DepthRange()
	assert.InDelta(t, 5, lo, 1e-9)
	assert.InDelta(t, 15, hi, 1e-9)

	width := 10 / math.Sin(math.Pi/4)
	assert.Equal(t, int(math.Ceil(width/2))+1, g.Rows())
}

func TestSimpleFaultSinglePointTrace(t *testing.T) {
	g, err := mesh.SimpleFault(rupture.SimpleFaultSurface{
		Trace:                 geo.NewFaultTrace("", geo.NewLocation(10, 10, 0)),
		Dip:                   90,
		UpperSeismogenicDepth: 2,
		LowerSeismogenicDepth: 2,
		GridSpacing:           1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, g.Rows())
	assert.Equal(t, 1, g.Cols())
	assert.InDelta(t, 2, g.At(0, 0).Depth, 1e-9)
}

func TestSimpleFaultRejectsBadParameters(t *testing.T) {
	valid := rupture.SimpleFaultSurface{
		Trace:                 eastTrace(5, 0),
		Dip:                   60,
		UpperSeismogenicDepth: 0,
		LowerSeismogenicDepth: 10,
		GridSpacing:           1,
	}
	tests := map[string]func(*rupture.SimpleFaultSurface){
		"zero dip":         func(s *rupture.SimpleFaultSurface) { s.Dip = 0 },
		"overturned dip":   func(s *rupture.SimpleFaultSurface) { s.Dip = 120 },
		"inverted depths":  func(s *rupture.SimpleFaultSurface) { s.LowerSeismogenicDepth = -1 },
		"zero spacing":     func(s *rupture.SimpleFaultSurface) { s.GridSpacing = 0 },
		"NaN spacing":      func(s *rupture.SimpleFaultSurface) { s.GridSpacing = math.NaN() },
		"empty fault line": func(s *rupture.SimpleFaultSurface) { s.Trace = geo.FaultTrace{} },
		"NaN lower depth":  func(s *rupture.SimpleFaultSurface) { s.LowerSeismogenicDepth = math.NaN() },
		"NaN upper depth":  func(s *rupture.SimpleFaultSurface) { s.UpperSeismogenicDepth = math.NaN() },
		"infinite depth":   func(s *rupture.SimpleFaultSurface) { s.LowerSeismogenicDepth = math.Inf(1) },
		"infinite dip":     func(s *rupture.SimpleFaultSurface) { s.Dip = math.Inf(1) },
		"NaN trace point": func(s *rupture.SimpleFaultSurface) {
			s.Trace = geo.NewFaultTrace("", geo.NewLocation(0, math.NaN(), 0), geo.NewLocation(0, 0.05, 0))
		},
		"spacing too fine": func(s *rupture.SimpleFaultSurface) { s.GridSpacing = 1e-12 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			s := valid
			mutate(&s)
			var err error
			require.NotPanics(t, func() { _, err = mesh.Build(s) })
			assert.ErrorIs(t, err, mesh.ErrInvalidSurface)
		})
	}
}

func TestComplexFaultInterpolatesBetweenEdges(t *testing.T) {
	surface := rupture.ComplexFaultSurface{
		TopTrace:    eastTrace(6, 0),
		BottomTrace: eastTrace(6, 10),
		GridSpacing: 2,
	}
	g, err := mesh.ComplexFault(surface)
	require.NoError(t, err)

	assert.Equal(t, 4, g.Cols())
	assert.Equal(t, 6, g.Rows())
	for c := range g.Cols() {
		assert.InDelta(t, 0, g.At(0, c).Depth, 1e-9)
		assert.InDelta(t, 10, g.At(g.Rows()-1, c).Depth, 1e-9)
		assert.InDelta(t, 4, g.At(2, c).Depth, 1e-9)
	}
	assert.Equal(t, surface.TopTrace.First(), g.At(0, 0))
	assert.Equal(t, surface.BottomTrace.Last(), g.At(g.Rows()-1, g.Cols()-1))
}

func TestComplexFaultEdgesOfDifferentLength(t *testing.T) {
	top := geo.NewFaultTrace("",
		geo.NewLocation(40.363, -124.704, 0.5),
		geo.NewLocation(41.214, -124.977, 0.5),
		geo.NewLocation(42.096, -125.140, 0.5),
	)
	bottom := geo.NewFaultTrace("",
		geo.NewLocation(40.347, -123.829, 20.4),
		geo.NewLocation(41.218, -124.137, 17.6),
	)
	g, err := mesh.ComplexFault(rupture.ComplexFaultSurface{TopTrace: top, BottomTrace: bottom, GridSpacing: 10})
	require.NoError(t, err)

	require.Greater(t, g.Rows(), 1)
	require.Greater(t, g.Cols(), 1)
	assert.Len(t, g.Points(), g.Rows()*g.Cols())
	assert.Equal(t, top.First(), g.At(0, 0))
	assert.Equal(t, top.Last(), g.At(0, g.Cols()-1))
	assert.Equal(t, bottom.Last(), g.At(g.Rows()-1, g.Cols()-1))
}

func TestComplexFaultRequiresBothEdges(t *testing.T) {
	_, err := mesh.ComplexFault(rupture.ComplexFaultSurface{TopTrace: eastTrace(3, 0), GridSpacing: 1})
	assert.ErrorIs(t, err, mesh.ErrInvalidSurface)
}

func TestComplexFaultRejectsBadParameters(t *testing.T) {
	valid := rupture.ComplexFaultSurface{
		TopTrace:    eastTrace(6, 0),
		BottomTrace: eastTrace(6, 10),
		GridSpacing: 2,
	}
	tests := map[string]func(*rupture.ComplexFaultSurface){
		"NaN top longitude": func(s *rupture.ComplexFaultSurface) {
			s.TopTrace = geo.NewFaultTrace("", geo.NewLocation(0, 0, 0), geo.NewLocation(0, math.NaN(), 0))
		},
		"infinite bottom depth": func(s *rupture.ComplexFaultSurface) {
			s.BottomTrace = geo.NewFaultTrace("", geo.NewLocation(0, 0, math.Inf(1)), geo.NewLocation(0, 0.05, 10))
		},
		"NaN bottom latitude": func(s *rupture.ComplexFaultSurface) {
			s.BottomTrace = geo.NewFaultTrace("", geo.NewLocation(math.NaN(), 0, 10))
		},
		"infinite spacing": func(s *rupture.ComplexFaultSurface) { s.GridSpacing = math.Inf(1) },
		"spacing too fine": func(s *rupture.ComplexFaultSurface) { s.GridSpacing = 1e-12 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			s := valid
			mutate(&s)
			var err error
			require.NotPanics(t, func() { _, err = mesh.Build(s) })
			assert.ErrorIs(t, err, mesh.ErrInvalidSurface)
		})
	}
}

func TestBuildNilSurface(t *testing.T) {
	_, err := mesh.Build(nil)
	assert.ErrorIs(t, err, mesh.ErrInvalidSurface)
}
