package volume

import (
	"svgvolume/internal/svg"
)

// ResolveNesting assigns every shape a nesting depth: the number of other
// shapes whose polygon fully covers it. All ordered pairs are tested, so a
// shape inside two rings ends up at depth 2. Quadratic in the number of
// shapes, which matches the small shape counts of real drawings.
func ResolveNesting(shapes []*svg.Shape) {
	for i, inner := range shapes {
		depth := 0
		for j, outer := range shapes {
			if i == j {
				continue
			}
			if outer.Polygon.Covers(inner.Polygon) {
				depth++
			}
		}
		inner.NestingDepth = depth
	}
}

// NetArea sums shape areas with parity signs: shapes at even nesting depth
// add their area, shapes at odd depth (holes) subtract it. The raw sum is
// returned unclamped; a drawing of holes without outlines yields a negative
// area that surfaces as a negative volume.
func NetArea(shapes []*svg.Shape) float64 {
	var sum float64
	for _, s := range shapes {
		if s.NestingDepth%2 == 0 {
			sum += s.Polygon.Area()
		} else {
			sum -= s.Polygon.Area()
		}
	}

	return sum
}
