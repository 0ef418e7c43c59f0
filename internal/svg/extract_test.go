package svg_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"svgvolume/internal/svg"

	"github.com/stretchr/testify/require"
)

func testExtractor() *svg.Extractor {
	return svg.NewExtractor(svg.Options{
		CurveSamples:   1000,
		CircleSamples:  1000,
		EllipseSamples: 1000,
	})
}

func extract(t *testing.T, doc string) []*svg.Shape {
	t.Helper()
	shapes, err := testExtractor().Extract(strings.NewReader(doc))
	require.NoError(t, err)

	return shapes
}

func TestExtract_Rect(t *testing.T) {
	shapes := extract(t, `<svg xmlns="http://www.w3.org/2000/svg"><rect x="10" y="20" width="200" height="100"/></svg>`)
	require.Len(t, shapes, 1)
	require.Zero(t, shapes[0].NestingDepth)
	require.InDelta(t, 20000.0, shapes[0].Polygon.Area(), 1e-9)
}

func TestExtract_RectDefaultsMissingAttributes(t *testing.T) {
	// x and y default to 0
	shapes := extract(t, `<svg><rect width="10" height="10"/></svg>`)
	require.Len(t, shapes, 1)
	require.InDelta(t, 100.0, shapes[0].Polygon.Area(), 1e-9)
}

func TestExtract_Circle(t *testing.T) {
	shapes := extract(t, `<svg><circle cx="150" cy="150" r="100"/></svg>`)
	require.Len(t, shapes, 1)
	exact := math.Pi * 100 * 100
	require.InDelta(t, exact, shapes[0].Polygon.Area(), exact*1e-4)
}

func TestExtract_Ellipse(t *testing.T) {
	shapes := extract(t, `<svg><ellipse cx="0" cy="0" rx="100" ry="50"/></svg>`)
	require.Len(t, shapes, 1)
	exact := math.Pi * 100 * 50
	require.InDelta(t, exact, shapes[0].Polygon.Area(), exact*1e-4)
}

func TestExtract_PathSubpaths(t *testing.T) {
	// an outer square with an inner square as a second subpath
	doc := `<svg><path d="M0 0 H200 V200 H0 Z M50 50 H150 V150 H50 Z"/></svg>`
	shapes := extract(t, doc)
	require.Len(t, shapes, 2)
	require.InDelta(t, 40000.0, shapes[0].Polygon.Area(), 1e-9)
	require.InDelta(t, 10000.0, shapes[1].Polygon.Area(), 1e-9)
}

func TestExtract_PathCurves(t *testing.T) {
	// a full circle of radius 100 drawn as two arc commands
	doc := `<svg><path d="M -100 0 A 100 100 0 0 1 100 0 A 100 100 0 0 1 -100 0 Z"/></svg>`
	shapes := extract(t, doc)
	require.Len(t, shapes, 1)
	exact := math.Pi * 100 * 100
	require.InDelta(t, exact, shapes[0].Polygon.Area(), exact*1e-4)
}

func TestExtract_Polygon(t *testing.T) {
	shapes := extract(t, `<svg><polygon points="0,0 100,0 100,100 0,100"/></svg>`)
	require.Len(t, shapes, 1)
	require.InDelta(t, 10000.0, shapes[0].Polygon.Area(), 1e-9)
}

func TestExtract_PolylineClosesImplicitly(t *testing.T) {
	shapes := extract(t, `<svg><polyline points="0 0 100 0 100 100"/></svg>`)
	require.Len(t, shapes, 1)
	require.InDelta(t, 5000.0, shapes[0].Polygon.Area(), 1e-9)
}

func TestExtract_SkipsUnsupportedElements(t *testing.T) {
	doc := `<svg>
		<g transform="translate(5,5)"><text x="0" y="0">hi</text></g>
		<rect width="10" height="10"/>
	</svg>`
	shapes := extract(t, doc)
	require.Len(t, shapes, 1)
}

func TestExtract_DropsDegenerateShapes(t *testing.T) {
	doc := `<svg>
		<rect width="0" height="10"/>
		<circle cx="5" cy="5" r="0"/>
		<path d="M5 5"/>
		<path d="M0 0 L10 10"/>
		<rect width="10" height="10"/>
	</svg>`
	shapes := extract(t, doc)
	require.Len(t, shapes, 1)
	require.InDelta(t, 100.0, shapes[0].Polygon.Area(), 1e-9)
}

func TestExtract_DocumentOrder(t *testing.T) {
	doc := `<svg>
		<rect width="1" height="1"/>
		<rect width="2" height="2"/>
		<rect width="3" height="3"/>
	</svg>`
	shapes := extract(t, doc)
	require.Len(t, shapes, 3)
	require.InDelta(t, 1.0, shapes[0].Polygon.Area(), 1e-9)
	require.InDelta(t, 4.0, shapes[1].Polygon.Area(), 1e-9)
	require.InDelta(t, 9.0, shapes[2].Polygon.Area(), 1e-9)
}

func TestExtract_CharsetDeclaration(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>" +
		"<svg><desc>caf\xe9</desc><rect width=\"10\" height=\"10\"/></svg>"
	shapes := extract(t, doc)
	require.Len(t, shapes, 1)
}

func TestExtract_Errors(t *testing.T) {
	for name, doc := range map[string]string{
		"malformed xml":        `<svg><rect width="10"`,
		"bad rect attribute":   `<svg><rect width="wide" height="10"/></svg>`,
		"bad path data":        `<svg><path d="M0 0 L10 %"/></svg>`,
		"odd polygon points":   `<svg><polygon points="0,0 10,0 10"/></svg>`,
		"bad polygon number":   `<svg><polygon points="0,0 a,b"/></svg>`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := testExtractor().Extract(strings.NewReader(doc))
			require.Error(t, err)
		})
	}
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shape.svg")
	require.NoError(t, os.WriteFile(path, []byte(`<svg><rect width="20" height="20"/></svg>`), 0o600))

	shapes, err := testExtractor().ExtractFile(path)
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	require.InDelta(t, 400.0, shapes[0].Polygon.Area(), 1e-9)
}

func TestExtractFile_Missing(t *testing.T) {
	_, err := testExtractor().ExtractFile(filepath.Join(t.TempDir(), "absent.svg"))
	require.Error(t, err)
}

func TestNewExtractor_SampleFallback(t *testing.T) {
	ex := svg.NewExtractor(svg.Options{})
	shapes, err := ex.Extract(strings.NewReader(`<svg><circle r="100"/></svg>`))
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	exact := math.Pi * 100 * 100
	require.InDelta(t, exact, shapes[0].Polygon.Area(), exact*1e-4)
}
