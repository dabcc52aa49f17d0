package style

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/flowviz/pkg/errors"
)

// Transparent is returned by ParseColor for "none" and "transparent".
var Transparent = color.NRGBA{}

// ParseColor decodes "#RRGGBB" or "#RGB" into an opaque color, and
// "#RRGGBBAA" into a color with the given alpha. The words
// "none" and "transparent" decode to a fully transparent color, which the
// chart skips when filling boxes.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "none", "transparent":
		return Transparent, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if digits := s[1:]; !validHexLength(len(digits)) || strings.Trim(digits, hexDigits) != "" {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q: want #RGB, #RRGGBB or #RRGGBBAA", s)
	}
	alpha := uint64(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid alpha in %q", s)
		}
		alpha = a
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha)}, nil
}

const hexDigits = "0123456789abcdefABCDEF"

func validHexLength(n int) bool { return n == 3 || n == 6 || n == 8 }

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the RGB channels of c as "#rrggbb".
func Hex(c color.NRGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}
