// Package svg turns SVG documents into closed polygonal outlines. It walks
// the XML element tree, parses path data into line, cubic Bézier and
// elliptical arc segments, and flattens everything into polygons at a fixed
// sampling resolution.
package svg

import (
	"math"

	"svgvolume/internal/geometry"
)

// Segment is one piece of a continuous subpath. The set of implementations
// is closed (Line, Cubic and Arc), so consumers can switch exhaustively.
// Quadratic path commands are degree-elevated to cubics at parse time to
// keep the set closed.
type Segment interface {
	// Sample returns the flattened point sequence for the segment,
	// including both endpoints. Curved segments return n+1 points at
	// uniform parameter increments; lines return exactly their two
	// endpoints regardless of n.
	Sample(n int) []geometry.Point
}

// Line is a straight segment.
type Line struct {
	Start geometry.Point
	End   geometry.Point
}

func (l Line) Sample(int) []geometry.Point {
	return []geometry.Point{l.Start, l.End}
}

// Cubic is a cubic Bézier segment with two control handles.
type Cubic struct {
	Start    geometry.Point
	Control1 geometry.Point
	Control2 geometry.Point
	End      geometry.Point
}

// bernstein evaluates the cubic Bernstein-basis interpolation of one
// coordinate at parameter t.
func bernstein(p0, p1, p2, p3, t float64) float64 {
	u := 1 - t

	return u*u*u*p0 + 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t*p3
}

func (c Cubic) Sample(n int) []geometry.Point {
	if n < 1 {
		n = 1
	}
	pts := make([]geometry.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		pts = append(pts, geometry.Point{
			X: bernstein(c.Start.X, c.Control1.X, c.Control2.X, c.End.X, t),
			Y: bernstein(c.Start.Y, c.Control1.Y, c.Control2.Y, c.End.Y, t),
		})
	}

	return pts
}

// Arc is an elliptical arc in center parameterization: ellipse center,
// radii, axis rotation Phi, start angle Theta and signed sweep Delta, all
// angles in radians. Endpoint-parameterized SVG arc commands are converted
// to this form by the path parser.
type Arc struct {
	Center geometry.Point
	Rx     float64
	Ry     float64
	Phi    float64
	Theta  float64
	Delta  float64
}

// pointAt evaluates the rotated ellipse at angle eta. The x and y
// components use cos and sin respectively; collapsing both onto the same
// trigonometric term would flatten the ellipse into a line.
func (a Arc) pointAt(eta float64) geometry.Point {
	sinPhi, cosPhi := math.Sincos(a.Phi)
	cosEta, sinEta := math.Cos(eta), math.Sin(eta)

	return geometry.Point{
		X: a.Center.X + a.Rx*cosEta*cosPhi - a.Ry*sinEta*sinPhi,
		Y: a.Center.Y + a.Rx*cosEta*sinPhi + a.Ry*sinEta*cosPhi,
	}
}

func (a Arc) Sample(n int) []geometry.Point {
	if n < 1 {
		n = 1
	}
	pts := make([]geometry.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		pts = append(pts, a.pointAt(a.Theta+a.Delta*t))
	}

	return pts
}
