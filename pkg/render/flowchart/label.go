package flowchart

import (
	"math"

	"github.com/matzehuels/flowviz/pkg/errors"
	"github.com/matzehuels/flowviz/pkg/render/canvas"
)

// HAlign is the horizontal alignment of a label relative to its
// reference point.
type HAlign int

// Horizontal alignments.
const (
	AlignCenter HAlign = iota
	AlignLeft
	AlignRight
)

// VAlign is the vertical alignment of a label relative to its reference
// point.
type VAlign int

// Vertical alignments.
const (
	AlignMiddle VAlign = iota
	AlignTop
	AlignBottom
)

func (h HAlign) String() string {
	switch h {
	case AlignCenter:
		return "center"
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	}
	return "invalid"
}

func (v VAlign) String() string {
	switch v {
	case AlignMiddle:
		return "middle"
	case AlignTop:
		return "top"
	case AlignBottom:
		return "bottom"
	}
	return "invalid"
}

// ParseHAlign accepts "l", "m", "r" and the full names.
func ParseHAlign(s string) (HAlign, error) {
	switch s {
	case "m", "center", "middle":
		return AlignCenter, nil
	case "l", "left":
		return AlignLeft, nil
	case "r", "right":
		return AlignRight, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidAlignment, "illegal horizontal alignment %q", s)
}

// ParseVAlign accepts "u", "m", "d" and the full names.
func ParseVAlign(s string) (VAlign, error) {
	switch s {
	case "m", "middle", "center":
		return AlignMiddle, nil
	case "u", "top", "up":
		return AlignTop, nil
	case "d", "bottom", "down":
		return AlignBottom, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidAlignment, "illegal vertical alignment %q", s)
}

// Baseline returns where text starts so that it sits at ref with the given
// alignment, measured with m.
func Baseline(ref canvas.Point, m canvas.TextMetrics, h HAlign, v VAlign) (canvas.Point, error) {
	var b canvas.Point
	switch v {
	case AlignMiddle:
		b.Y = ref.Y - m.LineHeight/2 + m.Ascent
	case AlignTop:
		b.Y = ref.Y + m.Ascent
	case AlignBottom:
		b.Y = ref.Y - m.LineHeight + m.Ascent
	default:
		return b, errors.New(errors.ErrCodeInvalidAlignment, "illegal vertical alignment %d", int(v))
	}
	switch h {
	case AlignCenter:
		b.X = ref.X - m.Width/2
	case AlignLeft:
		b.X = ref.X
	case AlignRight:
		b.X = ref.X - m.Width
	default:
		return b, errors.New(errors.ErrCodeInvalidAlignment, "illegal horizontal alignment %d", int(h))
	}
	return b, nil
}

// PlaceLabel draws text around anchor with one DrawText call.
//
// The reference point lies radius to the left of anchor, or to the right
// for left-aligned text. When rotation (degrees) is non-zero the canvas is
// turned about anchor for the draw, so the reference point orbits it. A
// balanced label is also turned back about the reference point, which
// keeps the glyphs upright while the position still orbits. Every rotation
// is reverted before returning. An illegal alignment draws nothing.
func PlaceLabel(c canvas.Canvas, text string, anchor canvas.Point, rotation, radius float64, h HAlign, v VAlign, balanced bool) error {
	ref := canvas.Pt(anchor.X-radius, anchor.Y)
	if h == AlignLeft {
		ref.X = anchor.X + radius
	}
	b, err := Baseline(ref, c.MeasureText(text), h, v)
	if err != nil {
		return err
	}

	rad := rotation * math.Pi / 180
	if rotation != 0 {
		c.Rotate(rad, anchor.X, anchor.Y)
		if balanced {
			c.Rotate(-rad, ref.X, ref.Y)
		}
	}
	c.DrawText(text, b.X, b.Y)
	if rotation != 0 {
		if balanced {
			c.Rotate(rad, ref.X, ref.Y)
		}
		c.Rotate(-rad, anchor.X, anchor.Y)
	}
	return nil
}
