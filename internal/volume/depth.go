package volume

import (
	"math"
	"strconv"
	"strings"

	"svgvolume/pkg/serrors"
)

// ParseDepth converts the client-supplied depth text into a number. The
// accepted grammar is deliberately narrow: decimal digits with at most one
// dot. A leading dot is read as "0." so inputs like ".5" work. Signs,
// exponents and whitespace are rejected.
func ParseDepth(text string) (float64, error) {
	if text == "" {
		return 0, serrors.With(serrors.ErrInvalidDepth, "depth is empty")
	}
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}

	dots := 0
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
		case r == '.':
			dots++
			if dots > 1 {
				return 0, serrors.With(serrors.ErrInvalidDepth, "depth %q has multiple dots", text)
			}
		default:
			return 0, serrors.With(serrors.ErrInvalidDepth, "depth %q contains invalid character %q", text, r)
		}
	}

	depth, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, serrors.Wrap(serrors.ErrInvalidDepth, err, "could not parse depth %q", text)
	}

	return depth, nil
}

// Compute converts a net cross-section area and a pour depth into
// millilitres, treating drawing units as millimetres (mm³ → ml). Non-finite
// or negative inputs are rejected rather than propagated.
func Compute(netArea, depth float64) (float64, error) {
	if math.IsNaN(depth) || math.IsInf(depth, 0) || depth < 0 {
		return 0, serrors.With(serrors.ErrInvalidDepth, "depth must be finite and non-negative, got %v", depth)
	}
	if math.IsNaN(netArea) || math.IsInf(netArea, 0) {
		return 0, serrors.With(serrors.ErrExtraction, "net area is not finite")
	}

	return netArea * depth / 1000, nil
}
