package canvas

import (
	"image/color"
	"math"
	"testing"
)

func TestRecorderCapturesState(t *testing.T) {
	r := NewRecorder()
	r.SetColor(color.NRGBA{R: 10, G: 20, B: 30, A: 40})
	r.SetStroke(Solid(2))
	r.FillRoundedRect(1, 2, 3, 4, 0.5)
	r.StrokeRoundedRect(1, 2, 3, 4, 0.5)

	r.Rotate(math.Pi/2, 5, 5)
	r.SetFontSize(20)
	r.DrawText("hi", 7, 8)
	r.Rotate(-math.Pi/2, 5, 5)

	var p Path
	p.MoveTo(0, 0)
	p.LineTo(1, 1)
	r.StrokePath(p, Dashed(3, 6))

	if got := len(r.Commands); got != 4 {
		t.Fatalf("commands = %d, want 4", got)
	}
	fill := r.Filter(CmdFillRect)[0]
	if fill.Color != (color.NRGBA{R: 10, G: 20, B: 30, A: 40}) || fill.W != 3 || fill.R != 0.5 {
		t.Errorf("fill = %+v", fill)
	}
	if got := r.Filter(CmdStrokeRect)[0].Stroke; got != Solid(2) {
		t.Errorf("stroke rect stroke = %+v, want solid 2", got)
	}

	text := r.Filter(CmdText)[0]
	if text.FontSize != 20 || text.Text != "hi" {
		t.Errorf("text = %+v", text)
	}
	if text.Transform.IsIdentity(1e-12) {
		t.Error("text should be drawn under the rotation")
	}

	path := r.Filter(CmdStrokePath)[0]
	if path.Stroke.Dash != 6 {
		t.Errorf("path dash = %v, want 6", path.Stroke.Dash)
	}
	if !path.Transform.IsIdentity(1e-12) {
		t.Errorf("path transform = %+v, want identity after unrotate", path.Transform)
	}
	if !r.Transform().IsIdentity(1e-12) {
		t.Errorf("Transform() = %+v, want identity", r.Transform())
	}
}

func TestRecorderMetrics(t *testing.T) {
	r := NewRecorder()
	r.SetFontSize(10)
	m := r.MeasureText("abcd")
	if math.Abs(m.Width-24) > 1e-9 || math.Abs(m.Ascent-8) > 1e-9 || math.Abs(m.LineHeight-12) > 1e-9 {
		t.Errorf("MeasureText() = %+v, want {24 8 12}", m)
	}
}
