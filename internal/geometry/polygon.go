package geometry

import "math"

// epsilon is the tolerance used by the boundary and degeneracy predicates.
// Coordinates come from millimetre-scale drawings, so absolute tolerance is
// appropriate.
const epsilon = 1e-9

// Polygon is the boundary of a simple planar region as an ordered vertex
// sequence. The closing edge from the last vertex back to the first is
// implicit; a near-duplicate first/last vertex (as produced by sampled
// circles) is tolerated and does not disturb area or containment.
type Polygon []Point

// SignedArea returns the raw shoelace sum: positive for counter-clockwise
// winding, negative for clockwise.
func (pg Polygon) SignedArea() float64 {
	if len(pg) < 3 {
		return 0
	}
	var sum float64
	for i := range pg {
		a := pg[i]
		b := pg[(i+1)%len(pg)]
		sum += a.X*b.Y - b.X*a.Y
	}

	return sum / 2
}

// Area returns the unsigned planar area enclosed by the polygon.
func (pg Polygon) Area() float64 {
	return math.Abs(pg.SignedArea())
}

// Degenerate reports whether the polygon must be excluded from the working
// set: fewer than three vertices, a non-finite coordinate, or an enclosed
// area indistinguishable from zero (which covers all-collinear vertices).
func (pg Polygon) Degenerate() bool {
	if len(pg) < 3 {
		return true
	}
	for _, p := range pg {
		if !p.Finite() {
			return true
		}
	}

	return pg.Area() <= epsilon
}

// onSegment reports whether p lies on the segment a-b, within tolerance.
func onSegment(p, a, b Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > epsilon*(1+math.Abs(b.X-a.X)+math.Abs(b.Y-a.Y)) {
		return false
	}

	return p.X >= math.Min(a.X, b.X)-epsilon && p.X <= math.Max(a.X, b.X)+epsilon &&
		p.Y >= math.Min(a.Y, b.Y)-epsilon && p.Y <= math.Max(a.Y, b.Y)+epsilon
}

// ContainsPoint reports whether p lies inside the polygon or on its
// boundary. Interior membership uses the crossing-number (even-odd) rule.
func (pg Polygon) ContainsPoint(p Point) bool {
	if len(pg) < 3 {
		return false
	}

	in := false
	for i := range pg {
		a := pg[i]
		b := pg[(i+1)%len(pg)]
		if onSegment(p, a, b) {
			return true
		}
		// count edges crossed by the horizontal ray from p towards +x
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				in = !in
			}
		}
	}

	return in
}

// Covers reports whether every point of inner lies within or on the boundary
// of pg. The test checks every vertex of inner plus the midpoint of every
// edge, which is exact up to the polyline flattening already applied to
// curved shapes. Partially overlapping polygons are undefined input; Covers
// simply returns false for them, which leaves their nesting depth untouched.
func (pg Polygon) Covers(inner Polygon) bool {
	if len(pg) < 3 || len(inner) < 3 {
		return false
	}

	for i := range inner {
		if !pg.ContainsPoint(inner[i]) {
			return false
		}
		if !pg.ContainsPoint(inner[i].Mid(inner[(i+1)%len(inner)])) {
			return false
		}
	}

	return true
}
