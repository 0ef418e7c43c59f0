package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"svgvolume/internal/config"
	"svgvolume/internal/geometry"

	"golang.org/x/net/html/charset"
)

// Shape pairs an extracted polygon with the number of other shapes that
// fully cover it. Shapes live only for the duration of one calculation.
type Shape struct {
	Polygon      geometry.Polygon
	NestingDepth int
}

// Options hold the curve flattening resolution for each sampled element
// kind. They are threaded into the extractor explicitly rather than read
// from process-wide state.
type Options struct {
	// CurveSamples is the subdivision count for cubic Bézier and arc
	// path segments.
	CurveSamples int
	// CircleSamples is the subdivision count for circle elements.
	CircleSamples int
	// EllipseSamples is the subdivision count for ellipse elements.
	EllipseSamples int
}

// NewOptions constructs extraction options from the application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		CurveSamples:   cfg.Geometry.CurveSamples,
		CircleSamples:  cfg.Geometry.CircleSamples,
		EllipseSamples: cfg.Geometry.EllipseSamples,
	}
}

// Extractor walks SVG documents and produces the closed polygonal outlines
// of every supported element. Elements and attributes outside the supported
// set (styling, groups, transforms, text, ...) are skipped without error.
type Extractor struct {
	options Options
}

// NewExtractor returns an Extractor using the provided sampling options.
// Non-positive sample counts fall back to 1000.
func NewExtractor(options Options) *Extractor {
	if options.CurveSamples <= 0 {
		options.CurveSamples = 1000
	}
	if options.CircleSamples <= 0 {
		options.CircleSamples = 1000
	}
	if options.EllipseSamples <= 0 {
		options.EllipseSamples = 1000
	}

	return &Extractor{options: options}
}

// elementFunc converts one SVG element into zero or more candidate polygons.
type elementFunc func(e *Extractor, attrs []xml.Attr) ([]geometry.Polygon, error)

var elementFuncs = map[string]elementFunc{
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  ellipseF,
	"path":     pathF,
	"polygon":  polygonF,
	"polyline": polygonF, // an open polyline closes implicitly for area purposes
}

// ExtractFile extracts shapes from the SVG document at the given path.
func (e *Extractor) ExtractFile(path string) ([]*Shape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open svg document: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return e.Extract(f)
}

// Extract parses the document and returns every non-degenerate outline as a
// Shape with nesting depth zero. Candidate polygons that enclose no area or
// carry non-finite coordinates are dropped silently: documents commonly
// contain single-point paths and other zero-area artifacts that are not
// meaningful shapes. A malformed XML document or malformed path data aborts
// the whole extraction.
func (e *Extractor) Extract(r io.Reader) ([]*Shape, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var shapes []*Shape
	for {
		tok, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}

			return nil, fmt.Errorf("could not parse svg document: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		ef, ok := elementFuncs[se.Name.Local]
		if !ok {
			continue
		}
		polys, err := ef(e, se.Attr)
		if err != nil {
			return nil, fmt.Errorf("could not extract %s element: %w", se.Name.Local, err)
		}
		for _, pg := range polys {
			if pg.Degenerate() {
				continue
			}
			shapes = append(shapes, &Shape{Polygon: pg})
		}
	}

	return shapes, nil
}

// attrFloat reads a float attribute, defaulting to 0 when absent.
func attrFloat(attrs []xml.Attr, name string) (float64, error) {
	for _, attr := range attrs {
		if attr.Name.Local != name {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(attr.Value), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s attribute %q", name, attr.Value)
		}

		return f, nil
	}

	return 0, nil
}

func attrString(attrs []xml.Attr, name string) string {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}

	return ""
}

func rectF(_ *Extractor, attrs []xml.Attr) ([]geometry.Polygon, error) {
	var x, y, w, h float64
	var err error
	for name, dst := range map[string]*float64{"x": &x, "y": &y, "width": &w, "height": &h} {
		if *dst, err = attrFloat(attrs, name); err != nil {
			return nil, err
		}
	}

	return []geometry.Polygon{{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}}, nil
}

// sampleEllipse walks the full perimeter in n steps. Both angle 0 and angle
// 2π are emitted, so the first and last points nearly coincide; area and
// containment tolerate the duplicate.
func sampleEllipse(cx, cy, rx, ry float64, n int) geometry.Polygon {
	pg := make(geometry.Polygon, 0, n+1)
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pg = append(pg, geometry.Point{
			X: cx + rx*math.Cos(a),
			Y: cy + ry*math.Sin(a),
		})
	}

	return pg
}

func circleF(e *Extractor, attrs []xml.Attr) ([]geometry.Polygon, error) {
	cx, err := attrFloat(attrs, "cx")
	if err != nil {
		return nil, err
	}
	cy, err := attrFloat(attrs, "cy")
	if err != nil {
		return nil, err
	}
	r, err := attrFloat(attrs, "r")
	if err != nil {
		return nil, err
	}

	return []geometry.Polygon{sampleEllipse(cx, cy, r, r, e.options.CircleSamples)}, nil
}

func ellipseF(e *Extractor, attrs []xml.Attr) ([]geometry.Polygon, error) {
	cx, err := attrFloat(attrs, "cx")
	if err != nil {
		return nil, err
	}
	cy, err := attrFloat(attrs, "cy")
	if err != nil {
		return nil, err
	}
	rx, err := attrFloat(attrs, "rx")
	if err != nil {
		return nil, err
	}
	ry, err := attrFloat(attrs, "ry")
	if err != nil {
		return nil, err
	}

	return []geometry.Polygon{sampleEllipse(cx, cy, rx, ry, e.options.EllipseSamples)}, nil
}

func pathF(e *Extractor, attrs []xml.Attr) ([]geometry.Polygon, error) {
	data := attrString(attrs, "d")
	if data == "" {
		return nil, nil
	}
	subpaths, err := ParsePath(data)
	if err != nil {
		return nil, err
	}

	var polys []geometry.Polygon
	for _, sub := range subpaths {
		var pg geometry.Polygon
		for _, seg := range sub {
			pg = append(pg, seg.Sample(e.options.CurveSamples)...)
		}
		// a subpath yields a polygon only with at least 3 points
		if len(pg) >= 3 {
			polys = append(polys, pg)
		}
	}

	return polys, nil
}

func polygonF(_ *Extractor, attrs []xml.Attr) ([]geometry.Polygon, error) {
	raw := strings.FieldsFunc(attrString(attrs, "points"), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("points attribute has odd number of coordinates")
	}

	pg := make(geometry.Polygon, 0, len(raw)/2)
	for i := 0; i < len(raw); i += 2 {
		x, err := strconv.ParseFloat(raw[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid points coordinate %q", raw[i])
		}
		y, err := strconv.ParseFloat(raw[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid points coordinate %q", raw[i+1])
		}
		pg = append(pg, geometry.Point{X: x, Y: y})
	}

	return []geometry.Polygon{pg}, nil
}
