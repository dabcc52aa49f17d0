package canvas

import (
	"fmt"
	"math"
)

// Point is a position in canvas pixels, y growing downward.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by k.
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

// Near reports whether p and q are within eps on both axes.
func (p Point) Near(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Matrix is a 2D affine transform in SVG order:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix { return Matrix{A: 1, D: 1} }

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Matrix { return Matrix{A: 1, D: 1, E: tx, F: ty} }

// Scale returns a scaling by (sx, sy) about the origin.
func Scale(sx, sy float64) Matrix { return Matrix{A: sx, D: sy} }

// Rotate returns a rotation by angle radians about the origin. Positive
// angles turn the x axis toward the y axis, which is clockwise on screen.
func Rotate(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{A: c, B: s, C: -s, D: c}
}

// RotateAbout returns a rotation by angle radians about (px, py).
func RotateAbout(angle, px, py float64) Matrix {
	return Translate(px, py).Mul(Rotate(angle)).Mul(Translate(-px, -py))
}

// Mul returns m*n: the transform that applies n first, then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms p.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// IsIdentity reports whether m is the identity within eps.
func (m Matrix) IsIdentity(eps float64) bool {
	return m.Near(Identity(), eps)
}

// Near reports whether every coefficient of m and n is within eps.
func (m Matrix) Near(n Matrix, eps float64) bool {
	return math.Abs(m.A-n.A) <= eps && math.Abs(m.B-n.B) <= eps &&
		math.Abs(m.C-n.C) <= eps && math.Abs(m.D-n.D) <= eps &&
		math.Abs(m.E-n.E) <= eps && math.Abs(m.F-n.F) <= eps
}

// IsTranslation reports whether m only translates.
func (m Matrix) IsTranslation(eps float64) bool {
	return math.Abs(m.A-1) <= eps && math.Abs(m.B) <= eps &&
		math.Abs(m.C) <= eps && math.Abs(m.D-1) <= eps
}

// SVG formats m as an SVG transform attribute value.
func (m Matrix) SVG() string {
	return fmt.Sprintf("matrix(%s %s %s %s %s %s)", num(m.A), num(m.B), num(m.C), num(m.D), num(m.E), num(m.F))
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Point
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// num formats a coordinate compactly for SVG output.
func num(v float64) string {
	if math.Abs(v) < 1e-9 {
		return "0"
	}
	return fmt.Sprintf("%.3f", v)
}
