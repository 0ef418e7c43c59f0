// Package geometry provides the planar primitives the volume pipeline is
// built on: points, polygons, area computation and containment predicates.
// It is deliberately free of I/O and of the rest of the application so its
// correctness can be tested in isolation.
package geometry

import "math"

// Point is a position in the document's native coordinate units.
type Point struct {
	X float64
	Y float64
}

// Finite reports whether both coordinates are finite real numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Mid returns the midpoint of p and q.
func (p Point) Mid(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Lerp returns the linear interpolation between p and q at parameter t.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}
