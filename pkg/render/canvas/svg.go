package canvas

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font"

	"github.com/matzehuels/flowviz/pkg/fonts"
)

// SVGOption configures an SVG canvas.
type SVGOption func(*SVG)

// WithFontFamily sets the CSS font-family written on text elements.
func WithFontFamily(family string) SVGOption {
	return func(s *SVG) { s.family = family }
}

// WithEmbeddedFont embeds the measuring font as a data URI so viewers draw
// labels with the exact metrics used for placement.
func WithEmbeddedFont() SVGOption {
	return func(s *SVG) { s.embedFont = true }
}

// WithBackground paints the whole canvas before any other drawing.
func WithBackground(c color.Color) SVGOption {
	return func(s *SVG) { s.background = c }
}

// SVG is a Canvas that writes an SVG document with ajstarks/svgo.
type SVG struct {
	buf        bytes.Buffer
	doc        *svg.SVG
	st         state
	src        *fonts.Source
	face       font.Face
	family     string
	embedFont  bool
	background color.Color
	finished   bool
}

// NewSVG starts an SVG document of the given size in pixels.
func NewSVG(width, height float64, opts ...SVGOption) (*SVG, error) {
	s := &SVG{st: newState(), family: fonts.FallbackFontFamily}
	for _, opt := range opts {
		opt(s)
	}
	src, err := fonts.NewSource()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	s.src = src
	s.face = src.Face(s.st.fontSize)

	w, h := int(math.Ceil(width)), int(math.Ceil(height))
	s.doc = svg.New(&s.buf)
	s.doc.Startview(w, h, 0, 0, w, h)
	if s.embedFont {
		s.doc.Def()
		s.doc.Style("text/css", fmt.Sprintf(
			"@font-face { font-family: '%s'; font-weight: bold; src: url(data:font/ttf;base64,%s) format('truetype'); }",
			fonts.FontFamily, fonts.MonoBoldTTFBase64()))
		s.doc.DefEnd()
		s.family = fmt.Sprintf("'%s', %s", fonts.FontFamily, s.family)
	}
	if s.background != nil {
		s.doc.Rect(0, 0, w, h, fillStyle(s.background))
	}
	return s, nil
}

func (s *SVG) SetColor(c color.Color) { s.st.color = c }
func (s *SVG) SetStroke(st Stroke)    { s.st.stroke = st }

func (s *SVG) SetFontSize(size float64) {
	if size == s.st.fontSize {
		return
	}
	s.face.Close()
	s.face = s.src.Face(size)
	s.st.fontSize = size
}

func (s *SVG) FillRoundedRect(x, y, w, h, r float64) {
	p := RoundedRect(x, y, w, h, r)
	s.doc.Path(p.SVGData(), s.attrs(fillStyle(s.st.color)+";stroke:none", s.st.ctm)...)
}

func (s *SVG) StrokeRoundedRect(x, y, w, h, r float64) {
	p := RoundedRect(x, y, w, h, r)
	s.doc.Path(p.SVGData(), s.attrs("fill:none;"+strokeStyle(s.st.color, s.st.stroke), s.st.ctm)...)
}

func (s *SVG) StrokePath(p Path, st Stroke) {
	s.doc.Path(p.SVGData(), s.attrs("fill:none;"+strokeStyle(s.st.color, st), s.st.ctm)...)
}

func (s *SVG) DrawText(text string, x, y float64) {
	m := s.st.ctm.Mul(Translate(x, y))
	style := fmt.Sprintf("font-family:%s;font-weight:bold;font-size:%spx;%s", s.family, num(s.st.fontSize), fillStyle(s.st.color))
	s.doc.Text(0, 0, text, s.attrs(style, m)...)
}

func (s *SVG) Rotate(angle, px, py float64) { s.st.rotate(angle, px, py) }

func (s *SVG) MeasureText(text string) TextMetrics {
	return fonts.Measure(s.face, text)
}

// Bytes finishes the document and returns it. Drawing after Bytes has no
// effect on the returned document.
func (s *SVG) Bytes() []byte {
	if !s.finished {
		s.doc.End()
		s.finished = true
		s.face.Close()
	}
	return s.buf.Bytes()
}

// attrs pairs a style with the transform attribute, omitted for identity.
func (s *SVG) attrs(style string, m Matrix) []string {
	if m.IsIdentity(1e-12) {
		return []string{style}
	}
	return []string{style, fmt.Sprintf(`transform="%s"`, m.SVG())}
}

func strokeStyle(c color.Color, st Stroke) string {
	n := nrgba(c)
	out := fmt.Sprintf("stroke:%s;stroke-width:%s", hexColor(n), num(st.Width))
	if n.A < 255 {
		out += fmt.Sprintf(";stroke-opacity:%.3f", float64(n.A)/255)
	}
	if st.Dash > 0 {
		out += fmt.Sprintf(";stroke-dasharray:%s;stroke-linecap:butt;stroke-linejoin:bevel", num(st.Dash))
	} else {
		out += ";stroke-linecap:square;stroke-linejoin:miter"
	}
	return out
}

func fillStyle(c color.Color) string {
	n := nrgba(c)
	out := "fill:" + hexColor(n)
	if n.A < 255 {
		out += fmt.Sprintf(";fill-opacity:%.3f", float64(n.A)/255)
	}
	return out
}

func hexColor(n color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

var _ Canvas = (*SVG)(nil)
