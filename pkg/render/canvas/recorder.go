package canvas

import (
	"image/color"
	"unicode/utf8"
)

// Command kinds captured by Recorder.
const (
	CmdFillRect   = "fill-rect"
	CmdStrokeRect = "stroke-rect"
	CmdStrokePath = "stroke-path"
	CmdText       = "text"
)

// Command is one recorded draw call.
type Command struct {
	Kind   string
	Color  color.NRGBA
	Stroke Stroke
	// Transform is the current transform when the call was made.
	Transform Matrix
	// X, Y, W, H and R are the rectangle for rect commands; X and Y are the
	// baseline start for text.
	X, Y, W, H, R float64
	Path          Path
	Text          string
	FontSize      float64
}

// Recorder is a Canvas that stores draw calls instead of drawing them.
//
// Text is measured with fixed monospace metrics scaled by the font size:
// each rune advances 0.6em, the ascent is 0.8em and the line height 1.2em.
// Recorder backs tests and the layout JSON export.
type Recorder struct {
	Commands []Command
	st       state
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{st: newState()}
}

func (r *Recorder) SetColor(c color.Color) { r.st.color = c }
func (r *Recorder) SetStroke(s Stroke)     { r.st.stroke = s }
func (r *Recorder) SetFontSize(size float64) {
	r.st.fontSize = size
}

func (r *Recorder) FillRoundedRect(x, y, w, h, rad float64) {
	r.add(Command{Kind: CmdFillRect, X: x, Y: y, W: w, H: h, R: rad})
}

func (r *Recorder) StrokeRoundedRect(x, y, w, h, rad float64) {
	r.add(Command{Kind: CmdStrokeRect, X: x, Y: y, W: w, H: h, R: rad, Stroke: r.st.stroke})
}

func (r *Recorder) StrokePath(p Path, s Stroke) {
	r.add(Command{Kind: CmdStrokePath, Path: p, Stroke: s})
}

func (r *Recorder) DrawText(s string, x, y float64) {
	r.add(Command{Kind: CmdText, Text: s, X: x, Y: y, FontSize: r.st.fontSize})
}

func (r *Recorder) Rotate(angle, px, py float64) { r.st.rotate(angle, px, py) }

func (r *Recorder) MeasureText(s string) TextMetrics {
	size := r.st.fontSize
	return TextMetrics{
		Width:      0.6 * size * float64(utf8.RuneCountInString(s)),
		Ascent:     0.8 * size,
		LineHeight: 1.2 * size,
	}
}

// Transform returns the current transform.
func (r *Recorder) Transform() Matrix { return r.st.ctm }

// Filter returns the recorded commands of one kind.
func (r *Recorder) Filter(kind string) []Command {
	var out []Command
	for _, c := range r.Commands {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) add(c Command) {
	c.Color = color.NRGBAModel.Convert(r.st.color).(color.NRGBA)
	c.Transform = r.st.ctm
	r.Commands = append(r.Commands, c)
}

var _ Canvas = (*Recorder)(nil)
