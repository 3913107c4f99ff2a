// Package mesh turns rupture surfaces into regular grids of locations.
//
// The reader attaches a grid spacing to every fault surface but never meshes
// it; callers that need discrete points (hazard integration, display) call
// Build. Rows run down dip from the top edge, columns run along strike in
// trace order.
package mesh

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"faultline/internal/geo"
	"faultline/internal/rupture"
)

// ErrInvalidSurface reports surface parameters that cannot be meshed.
var ErrInvalidSurface = errors.New("invalid surface")

// Grid is a rows x cols matrix of locations stored row-major.
type Grid struct {
	rows   int
	cols   int
	points []geo.Location
}

func newGrid(rows, cols int) *Grid {
	return &Grid{rows: rows, cols: cols, points: make([]geo.Location, rows*cols)}
}

// Rows is the number of points down dip.
func (g *Grid) Rows() int { return g.rows }

// Cols is the number of points along strike.
func (g *Grid) Cols() int { return g.cols }

// Len is the total number of points.
func (g *Grid) Len() int { return len(g.points) }

// At returns the point at row r, column c.
func (g *Grid) At(r, c int) geo.Location { return g.points[r*g.cols+c] }

func (g *Grid) set(r, c int, loc geo.Location) { g.points[r*g.cols+c] = loc }

// Row returns a copy of row r.
func (g *Grid) Row(r int) []geo.Location {
	return slices.Clone(g.points[r*g.cols : (r+1)*g.cols])
}

// Points returns a copy of every point, row-major.
func (g *Grid) Points() []geo.Location { return slices.Clone(g.points) }

// DepthRange returns the shallowest and deepest point depths.
func (g *Grid) DepthRange() (float64, float64) {
	if len(g.points) == 0 {
		return 0, 0
	}
	lo, hi := g.points[0].Depth, g.points[0].Depth
	for _, p := range g.points[1:] {
		lo = math.Min(lo, p.Depth)
		hi = math.Max(hi, p.Depth)
	}
	return lo, hi
}

// Build meshes any surface variant.
func Build(s rupture.Surface) (*Grid, error) {
	switch surface := s.(type) {
	case rupture.PointSurface:
		return Point(surface), nil
	case rupture.SimpleFaultSurface:
		return SimpleFault(surface)
	case rupture.ComplexFaultSurface:
		return ComplexFault(surface)
	case nil:
		return nil, fmt.Errorf("%w: no surface", ErrInvalidSurface)
	default:
		return nil, fmt.Errorf("%w: unsupported surface %T", ErrInvalidSurface, s)
	}
}

// Point returns a single-cell grid holding the rupture location.
func Point(s rupture.PointSurface) *Grid {
	g := newGrid(1, 1)
	g.set(0, 0, s.Location)
	return g
}

func checkSpacing(spacing float64) error {
	if math.IsNaN(spacing) || math.IsInf(spacing, 0) || spacing <= 0 {
		return fmt.Errorf("%w: grid spacing must be positive, got %v", ErrInvalidSurface, spacing)
	}
	return nil
}

// MaxPoints bounds the number of grid points a single surface may produce.
const MaxPoints = 4_000_000

// divisions returns how many points cover length at the given spacing,
// always at least one.
func divisions(length, spacing float64) (int, error) {
	ratio := length / spacing
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0, fmt.Errorf("%w: cannot grid length %v at spacing %v", ErrInvalidSurface, length, spacing)
	}
	if ratio > MaxPoints {
		return 0, fmt.Errorf("%w: length %v km at spacing %v km exceeds %d points", ErrInvalidSurface, length, spacing, MaxPoints)
	}
	if length <= 0 {
		return 1, nil
	}
	return int(math.Ceil(ratio-1e-9)) + 1, nil
}

func allocate(rows, cols int) (*Grid, error) {
	if rows*cols > MaxPoints {
		return nil, fmt.Errorf("%w: %d x %d grid exceeds %d points", ErrInvalidSurface, rows, cols, MaxPoints)
	}
	return newGrid(rows, cols), nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// checkTrace rejects traces with non-finite coordinates.
func checkTrace(name string, t geo.FaultTrace) error {
	for i, p := range t.Points() {
		if !finite(p.Latitude) || !finite(p.Longitude) || !finite(p.Depth) {
			return fmt.Errorf("%w: %s point %d is not finite (%v)", ErrInvalidSurface, name, i, p)
		}
	}
	return nil
}
