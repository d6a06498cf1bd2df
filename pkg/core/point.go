package core

import (
	"math"
	"strconv"
)

// =============================================================================
// Point
// =============================================================================

// Point is a single (x, y) pair plotted on the chart.
// Points are values; a sequence of points is replaced wholesale, never edited.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FormatValue renders a coordinate the way tables display it:
// shortest representation that round-trips.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// =============================================================================
// Bounds
// =============================================================================

// Bounds holds the axis ranges used to scale the chart.
type Bounds struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`
}

// DefaultBounds returns the [0, 1] x [0, 1] range a fresh chart starts with.
func DefaultBounds() Bounds {
	return Bounds{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
}

// ComputeBounds returns the min/max of X and Y over every point.
// The second return value is false when points is empty, in which case
// the returned bounds are DefaultBounds.
func ComputeBounds(points []Point) (Bounds, bool) {
	if len(points) == 0 {
		return DefaultBounds(), false
	}

	b := Bounds{
		MinX: points[0].X,
		MaxX: points[0].X,
		MinY: points[0].Y,
		MaxY: points[0].Y,
	}
	for _, p := range points[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b, true
}

// IsFinite reports whether all four bounds are real numbers.
func (b Bounds) IsFinite() bool {
	for _, v := range []float64{b.MinX, b.MaxX, b.MinY, b.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
