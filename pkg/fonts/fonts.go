// Package fonts provides the embedded label font and text metrics.
//
// Labels are measured and rasterized with Go Mono Bold, which ships with
// golang.org/x/image, so text metrics are identical on every machine and
// need no system fonts. The SVG backend can embed the same font as a data
// URI so viewers draw exactly what was measured.
package fonts

import (
	"encoding/base64"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomonobold"
)

// FontFamily is the CSS font-family name of the embedded font.
const FontFamily = "Go Mono"

// FallbackFontFamily lists fonts used when the embedded font is not loaded.
const FallbackFontFamily = `'Go Mono', 'Courier New', monospace`

// MonoBoldTTF returns the TTF font data.
func MonoBoldTTF() []byte {
	return gomonobold.TTF
}

var (
	parsed     *truetype.Font
	parseErr   error
	parsedOnce sync.Once
)

// monoBold parses the embedded font once. The parsed font is read-only and
// safe to share; faces are not.
func monoBold() (*truetype.Font, error) {
	parsedOnce.Do(func() {
		parsed, parseErr = truetype.Parse(gomonobold.TTF)
	})
	return parsed, parseErr
}

// Source builds faces of the embedded font. Building a face from a Source
// cannot fail, so canvases load one up front and resize freely.
type Source struct {
	font *truetype.Font
}

// NewSource parses the embedded font, once per process.
func NewSource() (*Source, error) {
	f, err := monoBold()
	if err != nil {
		return nil, err
	}
	return &Source{font: f}, nil
}

// Face returns a face at size points and 72 DPI, so one point is one pixel.
// Faces cache glyphs internally and must not be shared between goroutines.
func (s *Source) Face(size float64) font.Face {
	return truetype.NewFace(s.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// NewFace returns a face of the embedded font at size points.
func NewFace(size float64) (font.Face, error) {
	src, err := NewSource()
	if err != nil {
		return nil, err
	}
	return src.Face(size), nil
}

// Metrics are the measurements of one string in one face.
type Metrics struct {
	Width      float64 // advance width of the whole string
	Ascent     float64 // baseline to top of the line
	LineHeight float64 // recommended distance between baselines
}

// Measure returns the metrics of s drawn with face.
func Measure(face font.Face, s string) Metrics {
	m := face.Metrics()
	return Metrics{
		Width:      fixedToFloat(font.MeasureString(face, s)),
		Ascent:     fixedToFloat(m.Ascent),
		LineHeight: fixedToFloat(m.Height),
	}
}

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// MonoBoldTTFBase64 returns the TTF font data as a base64 string.
// The result is cached after first computation.
func MonoBoldTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(gomonobold.TTF)
	})
	return ttfBase64
}
