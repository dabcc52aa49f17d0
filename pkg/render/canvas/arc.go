package canvas

import "math"

// maxArcSegment bounds the sweep approximated by one cubic Bézier.
const maxArcSegment = math.Pi / 2

// Arc returns an open elliptical arc inscribed in the frame (x, y, w, h).
//
// Angles are in degrees and follow the frame-relative convention: the
// point at angle θ is
//
//	(cx + w/2·cos θ, cy − h/2·sin θ)
//
// where (cx, cy) is the frame center, so 0° points right, 90° points up
// and positive extents sweep counter-clockwise on screen. 45° always lands
// on the frame diagonal, whatever the aspect ratio. The arc is split into
// cubic segments of at most 90° each and starts with a move to its first
// point.
func Arc(x, y, w, h, start, extent float64) Path {
	cx, cy := x+w/2, y+h/2
	rx, ry := w/2, h/2
	at := func(u, v float64) Point { return Point{cx + u*rx, cy + v*ry} }

	theta0 := start * math.Pi / 180
	sweep := extent * math.Pi / 180

	var p Path
	s0 := unit(theta0)
	first := at(s0.X, s0.Y)
	p.MoveTo(first.X, first.Y)

	n := int(math.Ceil(math.Abs(sweep) / maxArcSegment))
	if n == 0 {
		return p
	}
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := 0; i < n; i++ {
		a0 := theta0 + float64(i)*step
		a1 := a0 + step
		p0, p3 := unit(a0), unit(a1)
		d0, d1 := tangent(a0), tangent(a1)
		c1 := p0.Add(d0.Mul(k))
		c2 := p3.Sub(d1.Mul(k))
		q1, q2, q3 := at(c1.X, c1.Y), at(c2.X, c2.Y), at(p3.X, p3.Y)
		p.CubicTo(q1.X, q1.Y, q2.X, q2.Y, q3.X, q3.Y)
	}
	return p
}

// ArcPoint returns the point at angle deg on the arc frame (x, y, w, h),
// using the same convention as Arc.
func ArcPoint(x, y, w, h, deg float64) Point {
	u := unit(deg * math.Pi / 180)
	return Point{x + w/2 + u.X*w/2, y + h/2 + u.Y*h/2}
}

// unit is the point at angle a on the unit circle with y pointing down.
func unit(a float64) Point {
	s, c := math.Sincos(a)
	return Point{c, -s}
}

// tangent is the derivative of unit at a.
func tangent(a float64) Point {
	s, c := math.Sincos(a)
	return Point{-s, -c}
}
