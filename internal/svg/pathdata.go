package svg

import (
	"fmt"
	"math"
	"strconv"

	"svgvolume/internal/geometry"
)

// pathScanner tokenizes SVG path data: command letters, numbers and arc
// flags, separated by whitespace and commas.
type pathScanner struct {
	data string
	pos  int
}

func (s *pathScanner) skipSep() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\t', '\n', '\r', ',':
			s.pos++
		default:
			return
		}
	}
}

func (s *pathScanner) done() bool {
	return s.pos >= len(s.data)
}

// command consumes the next byte if it is a command letter.
func (s *pathScanner) command() (byte, bool) {
	c := s.data[s.pos]
	if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
		s.pos++

		return c, true
	}

	return 0, false
}

// hasNumber reports whether the next token could start a number. Command
// handlers use it to consume repeated coordinate sets.
func (s *pathScanner) hasNumber() bool {
	s.skipSep()
	if s.done() {
		return false
	}
	c := s.data[s.pos]

	return c == '+' || c == '-' || c == '.' || c >= '0' && c <= '9'
}

func (s *pathScanner) digits() {
	for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
		s.pos++
	}
}

// number scans one number token. A '.' terminates the fraction of the
// previous number, so "1.5.5" yields 1.5 followed by 0.5 as the SVG grammar
// requires.
func (s *pathScanner) number() (float64, error) {
	s.skipSep()
	start := s.pos
	if s.pos < len(s.data) && (s.data[s.pos] == '+' || s.data[s.pos] == '-') {
		s.pos++
	}
	s.digits()
	if s.pos < len(s.data) && s.data[s.pos] == '.' {
		s.pos++
		s.digits()
	}
	if s.pos < len(s.data) && (s.data[s.pos] == 'e' || s.data[s.pos] == 'E') {
		mark := s.pos
		s.pos++
		if s.pos < len(s.data) && (s.data[s.pos] == '+' || s.data[s.pos] == '-') {
			s.pos++
		}
		if s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
			s.digits()
		} else {
			// not an exponent, e.g. an 'e' command letter following
			s.pos = mark
		}
	}

	tok := s.data[start:s.pos]
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("path data: expected number at offset %d", start)
	}

	return f, nil
}

// flag scans an arc flag, which is a bare '0' or '1' that may be glued to
// the following number ("a1 1 0 011 1").
func (s *pathScanner) flag() (bool, error) {
	s.skipSep()
	if s.done() {
		return false, fmt.Errorf("path data: expected arc flag at offset %d", s.pos)
	}
	switch s.data[s.pos] {
	case '0':
		s.pos++

		return false, nil
	case '1':
		s.pos++

		return true, nil
	}

	return false, fmt.Errorf("path data: expected arc flag at offset %d", s.pos)
}

// pathParser turns a token stream into continuous subpaths of segments.
type pathParser struct {
	scan pathScanner

	cur   geometry.Point
	start geometry.Point

	// previous control points, for the smooth S/T command reflections
	cubicControl geometry.Point
	quadControl  geometry.Point
	lastCmd      byte

	segments []Segment
	subpaths [][]Segment
}

// ParsePath parses SVG path data into continuous subpaths. A subpath ends
// where the path data breaks continuity, i.e. at every moveto; a closepath
// contributes its closing line but keeps the subpath open for further
// segments starting at the same point.
func ParsePath(data string) ([][]Segment, error) {
	p := &pathParser{scan: pathScanner{data: data}}
	for {
		p.scan.skipSep()
		if p.scan.done() {
			break
		}
		c, ok := p.scan.command()
		if !ok {
			return nil, fmt.Errorf("path data: unexpected character %q at offset %d", p.scan.data[p.scan.pos], p.scan.pos)
		}
		if err := p.apply(c); err != nil {
			return nil, err
		}
		p.lastCmd = c
	}
	p.flush()

	return p.subpaths, nil
}

func (p *pathParser) flush() {
	if len(p.segments) > 0 {
		p.subpaths = append(p.subpaths, p.segments)
		p.segments = nil
	}
}

func (p *pathParser) pair(rel bool) (geometry.Point, error) {
	x, err := p.scan.number()
	if err != nil {
		return geometry.Point{}, err
	}
	y, err := p.scan.number()
	if err != nil {
		return geometry.Point{}, err
	}
	if rel {
		return geometry.Point{X: p.cur.X + x, Y: p.cur.Y + y}, nil
	}

	return geometry.Point{X: x, Y: y}, nil
}

func (p *pathParser) moveTo(pt geometry.Point) {
	p.flush()
	p.cur = pt
	p.start = pt
}

func (p *pathParser) lineTo(pt geometry.Point) {
	p.segments = append(p.segments, Line{Start: p.cur, End: pt})
	p.cur = pt
}

//nolint: gocyclo // one case per path command
func (p *pathParser) apply(c byte) error {
	rel := c >= 'a'
	switch c {
	case 'M', 'm':
		first := true
		for first || p.scan.hasNumber() {
			pt, err := p.pair(rel)
			if err != nil {
				return err
			}
			if first {
				p.moveTo(pt)
				first = false
			} else {
				// extra coordinate pairs are implicit linetos
				p.lineTo(pt)
			}
		}

	case 'L', 'l':
		for p.scan.hasNumber() {
			pt, err := p.pair(rel)
			if err != nil {
				return err
			}
			p.lineTo(pt)
		}

	case 'H', 'h':
		for p.scan.hasNumber() {
			x, err := p.scan.number()
			if err != nil {
				return err
			}
			if rel {
				x += p.cur.X
			}
			p.lineTo(geometry.Point{X: x, Y: p.cur.Y})
		}

	case 'V', 'v':
		for p.scan.hasNumber() {
			y, err := p.scan.number()
			if err != nil {
				return err
			}
			if rel {
				y += p.cur.Y
			}
			p.lineTo(geometry.Point{X: p.cur.X, Y: y})
		}

	case 'C', 'c':
		for p.scan.hasNumber() {
			c1, err := p.pair(rel)
			if err != nil {
				return err
			}
			c2, err := p.pair(rel)
			if err != nil {
				return err
			}
			end, err := p.pair(rel)
			if err != nil {
				return err
			}
			p.cubicTo(c1, c2, end)
		}

	case 'S', 's':
		smooth := p.lastCmd == 'C' || p.lastCmd == 'c' || p.lastCmd == 'S' || p.lastCmd == 's'
		for p.scan.hasNumber() {
			c2, err := p.pair(rel)
			if err != nil {
				return err
			}
			end, err := p.pair(rel)
			if err != nil {
				return err
			}
			c1 := p.cur
			if smooth {
				c1 = reflect(p.cubicControl, p.cur)
			}
			p.cubicTo(c1, c2, end)
			smooth = true
		}

	case 'Q', 'q':
		for p.scan.hasNumber() {
			q, err := p.pair(rel)
			if err != nil {
				return err
			}
			end, err := p.pair(rel)
			if err != nil {
				return err
			}
			p.quadTo(q, end)
		}

	case 'T', 't':
		smooth := p.lastCmd == 'Q' || p.lastCmd == 'q' || p.lastCmd == 'T' || p.lastCmd == 't'
		for p.scan.hasNumber() {
			end, err := p.pair(rel)
			if err != nil {
				return err
			}
			q := p.cur
			if smooth {
				q = reflect(p.quadControl, p.cur)
			}
			p.quadTo(q, end)
			smooth = true
		}

	case 'A', 'a':
		for p.scan.hasNumber() {
			rx, err := p.scan.number()
			if err != nil {
				return err
			}
			ry, err := p.scan.number()
			if err != nil {
				return err
			}
			rot, err := p.scan.number()
			if err != nil {
				return err
			}
			large, err := p.scan.flag()
			if err != nil {
				return err
			}
			sweep, err := p.scan.flag()
			if err != nil {
				return err
			}
			end, err := p.pair(rel)
			if err != nil {
				return err
			}
			p.segments = append(p.segments, arcFromEndpoints(p.cur, rx, ry, rot, large, sweep, end))
			p.cur = end
		}

	case 'Z', 'z':
		if len(p.segments) > 0 && p.cur != p.start {
			p.lineTo(p.start)
		}
		p.cur = p.start

	default:
		return fmt.Errorf("path data: unsupported command %q", c)
	}

	return nil
}

func (p *pathParser) cubicTo(c1, c2, end geometry.Point) {
	p.segments = append(p.segments, Cubic{Start: p.cur, Control1: c1, Control2: c2, End: end})
	p.cubicControl = c2
	p.cur = end
}

// quadTo degree-elevates a quadratic Bézier to the equivalent cubic.
func (p *pathParser) quadTo(q, end geometry.Point) {
	c1 := p.cur.Lerp(q, 2.0/3.0)
	c2 := end.Lerp(q, 2.0/3.0)
	p.segments = append(p.segments, Cubic{Start: p.cur, Control1: c1, Control2: c2, End: end})
	p.quadControl = q
	p.cur = end
}

// reflect mirrors a control point about the current point.
func reflect(control, about geometry.Point) geometry.Point {
	return geometry.Point{X: 2*about.X - control.X, Y: 2*about.Y - control.Y}
}

// arcFromEndpoints converts an endpoint-parameterized SVG arc command to
// center parameterization following the SVG spec (F.6.5), including the
// radius scale-up when the requested ellipse cannot reach both endpoints.
// Zero radii and coincident endpoints degrade to a straight line.
func arcFromEndpoints(start geometry.Point, rx, ry, rotDeg float64, large, sweep bool, end geometry.Point) Segment {
	if rx == 0 || ry == 0 || start == end {
		return Line{Start: start, End: end}
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	phi := rotDeg * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	dx2 := (start.X - end.X) / 2
	dy2 := (start.Y - end.Y) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// grow the radii minimally when no ellipse with the requested ones
	// passes through both endpoints
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := math.Sqrt(math.Max(0, num/den))
	if large == sweep {
		co = -co
	}
	cxp := co * rx * y1p / ry
	cyp := -co * ry * x1p / rx

	center := geometry.Point{
		X: cosPhi*cxp - sinPhi*cyp + (start.X+end.X)/2,
		Y: sinPhi*cxp + cosPhi*cyp + (start.Y+end.Y)/2,
	}

	theta := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	thetaEnd := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx)
	delta := thetaEnd - theta
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	return Arc{Center: center, Rx: rx, Ry: ry, Phi: phi, Theta: theta, Delta: delta}
}
