package canvas

import (
	"image/color"

	"github.com/matzehuels/flowviz/pkg/fonts"
)

// Stroke describes how outlines are drawn.
type Stroke struct {
	Width float64
	// Dash is the dash and gap length; 0 draws a solid line. Dashed lines
	// use butt caps and bevel joins.
	Dash float64
}

// Solid returns a solid stroke of the given width.
func Solid(width float64) Stroke { return Stroke{Width: width} }

// Dashed returns a dashed stroke of the given width and dash length.
func Dashed(width, dash float64) Stroke { return Stroke{Width: width, Dash: dash} }

// TextMetrics are the measurements of one string in the current font.
type TextMetrics = fonts.Metrics

// Canvas receives draw commands from the chart engine.
//
// All coordinates are in user space: they pass through the current
// transform, which Rotate modifies. Implementations are single-owner and
// not safe for concurrent use.
type Canvas interface {
	// SetColor sets the color for subsequent fills, strokes and text.
	SetColor(c color.Color)
	// SetStroke sets the stroke used by StrokeRoundedRect.
	SetStroke(s Stroke)
	// SetFontSize selects the label font at size pixels.
	SetFontSize(size float64)

	// FillRoundedRect fills a rectangle whose corners have radius r.
	FillRoundedRect(x, y, w, h, r float64)
	// StrokeRoundedRect outlines a rectangle whose corners have radius r.
	StrokeRoundedRect(x, y, w, h, r float64)
	// StrokePath outlines p with the given stroke.
	StrokePath(p Path, s Stroke)
	// DrawText draws s with its baseline starting at (x, y).
	DrawText(s string, x, y float64)

	// Rotate turns the coordinate system by angle radians about (px, py).
	// The rotation composes with the current transform and persists until
	// rotated back.
	Rotate(angle, px, py float64)

	// MeasureText measures s in the current font.
	MeasureText(s string) TextMetrics
}

// state is the drawing state shared by the backends.
type state struct {
	color    color.Color
	stroke   Stroke
	fontSize float64
	ctm      Matrix
}

func newState() state {
	return state{
		color:    color.Black,
		stroke:   Solid(1),
		fontSize: 12,
		ctm:      Identity(),
	}
}

func (s *state) rotate(angle, px, py float64) {
	s.ctm = s.ctm.Mul(RotateAbout(angle, px, py))
}
