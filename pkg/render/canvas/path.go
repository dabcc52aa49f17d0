package canvas

import (
	"math"
	"strings"
)

// Op is a path construction command.
type Op uint8

// Path commands.
const (
	OpMove Op = iota
	OpLine
	OpCubic
	OpClose
)

// connectEps is the distance under which an appended path's start counts
// as the current point.
const connectEps = 1e-6

// Segment is one path command. Move and Line use Pts[0]; Cubic uses
// Pts[0] and Pts[1] as control points and Pts[2] as the end point.
type Segment struct {
	Op  Op
	Pts [3]Point
}

// End returns the point the segment finishes at. Close segments have none.
func (s Segment) End() Point {
	switch s.Op {
	case OpCubic:
		return s.Pts[2]
	default:
		return s.Pts[0]
	}
}

// Path is a sequence of move, line and cubic Bézier segments.
// The zero value is an empty path.
type Path struct {
	segs []Segment
}

// Segments returns the path's segments. The slice must not be modified.
func (p *Path) Segments() []Segment { return p.segs }

// Empty reports whether the path has no segments.
func (p *Path) Empty() bool { return len(p.segs) == 0 }

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.segs = append(p.segs, Segment{Op: OpMove, Pts: [3]Point{{x, y}}})
}

// LineTo adds a straight segment to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.segs = append(p.segs, Segment{Op: OpLine, Pts: [3]Point{{x, y}}})
}

// CubicTo adds a cubic Bézier segment with control points (x1, y1),
// (x2, y2) ending at (x, y).
func (p *Path) CubicTo(x1, y1, x2, y2, x, y float64) {
	p.segs = append(p.segs, Segment{Op: OpCubic, Pts: [3]Point{{x1, y1}, {x2, y2}, {x, y}}})
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.segs = append(p.segs, Segment{Op: OpClose})
}

// Start returns the first point of the path.
func (p *Path) Start() (Point, bool) {
	if len(p.segs) == 0 {
		return Point{}, false
	}
	return p.segs[0].Pts[0], true
}

// Current returns the point the path currently ends at.
func (p *Path) Current() (Point, bool) {
	for i := len(p.segs) - 1; i >= 0; i-- {
		if p.segs[i].Op != OpClose {
			return p.segs[i].End(), true
		}
	}
	return Point{}, false
}

// Append adds q's segments to p. With connect set, q's leading move becomes
// a line from p's current point, and is dropped when it would be a
// zero-length line.
func (p *Path) Append(q Path, connect bool) {
	segs := q.segs
	if connect && len(segs) > 0 && segs[0].Op == OpMove {
		if cur, ok := p.Current(); ok {
			start := segs[0].Pts[0]
			segs = segs[1:]
			if !cur.Near(start, connectEps) {
				p.LineTo(start.X, start.Y)
			}
		}
	}
	p.segs = append(p.segs, segs...)
}

// Transform returns a copy of p with every point mapped through m.
func (p *Path) Transform(m Matrix) Path {
	out := Path{segs: make([]Segment, len(p.segs))}
	for i, s := range p.segs {
		out.segs[i] = s
		n := pointCount(s.Op)
		for j := 0; j < n; j++ {
			out.segs[i].Pts[j] = m.Apply(s.Pts[j])
		}
	}
	return out
}

// Bounds returns the box enclosing every point of p, control points
// included. The curve itself always lies inside this box.
func (p *Path) Bounds() Rect {
	r := Rect{
		Min: Point{math.Inf(1), math.Inf(1)},
		Max: Point{math.Inf(-1), math.Inf(-1)},
	}
	for _, s := range p.segs {
		for j := 0; j < pointCount(s.Op); j++ {
			q := s.Pts[j]
			r.Min.X = math.Min(r.Min.X, q.X)
			r.Min.Y = math.Min(r.Min.Y, q.Y)
			r.Max.X = math.Max(r.Max.X, q.X)
			r.Max.Y = math.Max(r.Max.Y, q.Y)
		}
	}
	if len(p.segs) == 0 {
		return Rect{}
	}
	return r
}

// SVGData formats p as the d attribute of an SVG path element.
func (p *Path) SVGData() string {
	var b strings.Builder
	for i, s := range p.segs {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch s.Op {
		case OpMove:
			b.WriteString("M " + num(s.Pts[0].X) + " " + num(s.Pts[0].Y))
		case OpLine:
			b.WriteString("L " + num(s.Pts[0].X) + " " + num(s.Pts[0].Y))
		case OpCubic:
			b.WriteString("C " +
				num(s.Pts[0].X) + " " + num(s.Pts[0].Y) + " " +
				num(s.Pts[1].X) + " " + num(s.Pts[1].Y) + " " +
				num(s.Pts[2].X) + " " + num(s.Pts[2].Y))
		case OpClose:
			b.WriteString("Z")
		}
	}
	return b.String()
}

func pointCount(op Op) int {
	switch op {
	case OpCubic:
		return 3
	case OpClose:
		return 0
	default:
		return 1
	}
}

// RoundedRect returns a closed rounded rectangle with corner radius r,
// clamped to half the shorter side.
func RoundedRect(x, y, w, h, r float64) Path {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	var p Path
	if r == 0 {
		p.MoveTo(x, y)
		p.LineTo(x+w, y)
		p.LineTo(x+w, y+h)
		p.LineTo(x, y+h)
		p.Close()
		return p
	}
	d := 2 * r
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.Append(Arc(x+w-d, y, d, d, 90, -90), true)
	p.LineTo(x+w, y+h-r)
	p.Append(Arc(x+w-d, y+h-d, d, d, 0, -90), true)
	p.LineTo(x+r, y+h)
	p.Append(Arc(x, y+h-d, d, d, 270, -90), true)
	p.LineTo(x, y+r)
	p.Append(Arc(x, y, d, d, 180, -90), true)
	p.Close()
	return p
}
