package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/flowviz/pkg/fonts"
)

// DefaultJPEGQuality is used by EncodeJPEG when quality is out of range.
const DefaultJPEGQuality = 92

// RasterOption configures a Raster canvas.
type RasterOption func(*Raster)

// WithRasterBackground fills the image before any other drawing.
func WithRasterBackground(c color.Color) RasterOption {
	return func(r *Raster) { r.background = c }
}

// Raster is a Canvas that draws into an RGBA image with fogleman/gg.
type Raster struct {
	dc         *gg.Context
	st         state
	src        *fonts.Source
	face       font.Face
	background color.Color
}

// NewRaster creates an image of the given size in pixels.
func NewRaster(width, height float64, opts ...RasterOption) (*Raster, error) {
	r := &Raster{st: newState()}
	for _, opt := range opts {
		opt(r)
	}
	src, err := fonts.NewSource()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	r.src = src
	r.face = src.Face(r.st.fontSize)

	r.dc = gg.NewContext(int(math.Ceil(width)), int(math.Ceil(height)))
	if r.background != nil {
		r.dc.SetColor(r.background)
		r.dc.Clear()
	}
	r.dc.SetFontFace(r.face)
	r.dc.SetColor(r.st.color)
	return r, nil
}

func (r *Raster) SetColor(c color.Color) {
	r.st.color = c
	r.dc.SetColor(c)
}

func (r *Raster) SetStroke(s Stroke) { r.st.stroke = s }

func (r *Raster) SetFontSize(size float64) {
	if size == r.st.fontSize {
		return
	}
	r.face.Close()
	r.face = r.src.Face(size)
	r.st.fontSize = size
	r.dc.SetFontFace(r.face)
}

func (r *Raster) FillRoundedRect(x, y, w, h, rad float64) {
	r.dc.DrawRoundedRectangle(x, y, w, h, rad)
	r.dc.Fill()
}

func (r *Raster) StrokeRoundedRect(x, y, w, h, rad float64) {
	r.applyStroke(r.st.stroke)
	r.dc.DrawRoundedRectangle(x, y, w, h, rad)
	r.dc.Stroke()
}

func (r *Raster) StrokePath(p Path, s Stroke) {
	r.applyStroke(s)
	for _, seg := range p.Segments() {
		switch seg.Op {
		case OpMove:
			r.dc.MoveTo(seg.Pts[0].X, seg.Pts[0].Y)
		case OpLine:
			r.dc.LineTo(seg.Pts[0].X, seg.Pts[0].Y)
		case OpCubic:
			r.dc.CubicTo(seg.Pts[0].X, seg.Pts[0].Y, seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y)
		case OpClose:
			r.dc.ClosePath()
		}
	}
	r.dc.Stroke()
}

func (r *Raster) DrawText(s string, x, y float64) {
	r.dc.DrawString(s, x, y)
}

func (r *Raster) Rotate(angle, px, py float64) {
	r.st.rotate(angle, px, py)
	r.dc.RotateAbout(angle, px, py)
}

func (r *Raster) MeasureText(s string) TextMetrics {
	return fonts.Measure(r.face, s)
}

// Image returns the drawn image.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// EncodeJPEG writes the image as JPEG. JPEG has no alpha channel, so
// transparent pixels come out black unless a background was set.
func (r *Raster) EncodeJPEG(w io.Writer, quality int) error {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return jpeg.Encode(w, r.dc.Image(), &jpeg.Options{Quality: quality})
}

// Close releases the font face.
func (r *Raster) Close() error {
	return r.face.Close()
}

func (r *Raster) applyStroke(s Stroke) {
	r.dc.SetLineWidth(s.Width)
	if s.Dash > 0 {
		r.dc.SetDash(s.Dash)
		r.dc.SetLineCapButt()
		r.dc.SetLineJoinBevel()
		return
	}
	r.dc.SetDash()
	r.dc.SetLineCapSquare()
	r.dc.SetLineJoinRound()
}

var _ Canvas = (*Raster)(nil)
