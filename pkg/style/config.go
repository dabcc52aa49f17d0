package style

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/flowviz/pkg/errors"
)

// validate is the shared validator instance.
var validate = validator.New()

// Per-value rules for the curve tables.
const (
	angleRule     = "gt=-90,lt=90"
	alphaRule     = "gte=0,lte=255"
	thicknessRule = "gt=0"
)

// MaxCanvasSide bounds the canvas width and height in pixels, after
// scaling.
const MaxCanvasSide = 8192

// SizeRow is one row of the per-depth box size table.
type SizeRow struct {
	Width   float64 `json:"width" toml:"width" yaml:"width" validate:"gt=0"`
	Height  float64 `json:"height" toml:"height" yaml:"height" validate:"gt=0"`
	Spacing float64 `json:"spacing" toml:"spacing" yaml:"spacing" validate:"gte=0"`
}

// Config is the immutable drawing configuration of a flow chart.
//
// Every table is indexed by depth modulo its length, so any non-negative
// depth resolves to a row. Methods never modify the receiver; setters
// return a changed copy.
type Config struct {
	// Canvas size in pixels.
	Width  float64 `json:"width" toml:"width" yaml:"width" validate:"gt=0,lte=8192"`
	Height float64 `json:"height" toml:"height" yaml:"height" validate:"gt=0,lte=8192"`

	// Margin is the x of the first column (left margin, or top margin once
	// the diagram is rotated).
	Margin float64 `json:"margin" toml:"margin" yaml:"margin"`
	// Gap is the vertical space between boxes of one column.
	Gap float64 `json:"gap" toml:"gap" yaml:"gap" validate:"gte=0"`
	// Rotate turns the finished diagram 90° clockwise.
	Rotate bool `json:"rotate" toml:"rotate" yaml:"rotate"`

	Sizes     []SizeRow `json:"sizes" toml:"sizes" yaml:"sizes" validate:"min=1,dive"`
	Thickness []float64 `json:"thickness" toml:"thickness" yaml:"thickness" validate:"min=1,dive,gt=0"`
	Angles    []float64 `json:"angles" toml:"angles" yaml:"angles" validate:"min=1,dive,gt=-90,lt=90"`
	Alphas    []int     `json:"alphas" toml:"alphas" yaml:"alphas" validate:"min=1,dive,gte=0,lte=255"`

	// Dash is the dash length of connector strokes; 0 draws solid curves.
	Dash float64 `json:"dash" toml:"dash" yaml:"dash" validate:"gte=0"`

	FontFamily string `json:"font_family" toml:"font_family" yaml:"font_family" validate:"required"`
	// FontSize fixes the label size; 0 derives it from the box width.
	FontSize float64 `json:"font_size" toml:"font_size" yaml:"font_size" validate:"gte=0"`
	// LabelRatio scales box width into label font size when FontSize is 0.
	LabelRatio float64 `json:"label_ratio" toml:"label_ratio" yaml:"label_ratio" validate:"gt=0"`
	FontColor  string  `json:"font_color" toml:"font_color" yaml:"font_color" validate:"required"`
	// Background is painted under the diagram; empty leaves it transparent.
	Background string `json:"background" toml:"background" yaml:"background"`
	// BorderWidth strokes box borders; 0 fills boxes only.
	BorderWidth float64 `json:"border_width" toml:"border_width" yaml:"border_width" validate:"gte=0"`

	// Scale multiplies every pixel value, see [Config.Scaled].
	Scale int `json:"scale" toml:"scale" yaml:"scale" validate:"gte=1"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Width:  1800,
		Height: 1200,
		Margin: 200,
		Gap:    30,
		Sizes: []SizeRow{
			{Width: 36, Height: 72, Spacing: 162},
			{Width: 36, Height: 72, Spacing: 162},
			{Width: 36, Height: 90, Spacing: 198},
			{Width: 36, Height: 108, Spacing: 144},
			{Width: 36, Height: 108, Spacing: 144},
			{Width: 36, Height: 108, Spacing: 144},
		},
		Thickness:  []float64{6},
		Angles:     []float64{30},
		Alphas:     []int{180},
		FontFamily: "Courier New",
		LabelRatio: 0.618,
		FontColor:  "#000000",
		Scale:      1,
	}
}

// Validate checks every field and returns the first violation as an
// ErrCodeInvalidConfig error.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if k := float64(c.Scale); c.Width*k > MaxCanvasSide || c.Height*k > MaxCanvasSide {
		return errors.New(errors.ErrCodeInvalidConfig, "Config.Scale: %gx%g at scale %d exceeds %d pixels per side",
			c.Width, c.Height, c.Scale, MaxCanvasSide)
	}
	if _, err := ParseColor(c.FontColor); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "font_color")
	}
	if c.Background != "" {
		if _, err := ParseColor(c.Background); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "background")
		}
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format.
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
	}

	for _, e := range validationErrs {
		field := e.Namespace()
		switch e.Tag() {
		case "required":
			return errors.New(errors.ErrCodeInvalidConfig, "%s: field is required", field)
		case "min":
			return errors.New(errors.ErrCodeInvalidConfig, "%s: needs at least %s entries", field, e.Param())
		default:
			return errors.New(errors.ErrCodeInvalidConfig, "%s: %v violates %s=%s", field, e.Value(), e.Tag(), e.Param())
		}
	}
	return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
}

// wrap maps a non-negative depth onto a table of length n.
func wrap(d, n int) int {
	return ((d % n) + n) % n
}

// SizeRow returns the box size row for depth d.
func (c Config) SizeRow(d int) SizeRow {
	return c.Sizes[wrap(d, len(c.Sizes))]
}

// ThicknessAt returns the connector thickness for source depth d.
func (c Config) ThicknessAt(d int) float64 {
	return c.Thickness[wrap(d, len(c.Thickness))]
}

// AngleAt returns the connector fan angle in degrees for source depth d.
func (c Config) AngleAt(d int) float64 {
	return c.Angles[wrap(d, len(c.Angles))]
}

// AlphaAt returns the connector alpha for source depth d.
func (c Config) AlphaAt(d int) uint8 {
	return uint8(c.Alphas[wrap(d, len(c.Alphas))])
}

// LabelSize returns the label font size for a box of the given width.
func (c Config) LabelSize(boxWidth float64) float64 {
	if c.FontSize > 0 {
		return c.FontSize
	}
	return float64(int(boxWidth*c.LabelRatio + 1))
}

// WithCurves returns a copy of c with the given curve tables.
//
// Each table is checked on its own: an empty table or one with an
// out-of-range value is ignored and the previous table kept. The returned
// error lists the rejected tables; the returned Config is always usable.
func (c Config) WithCurves(angles []float64, alphas []int, thickness []float64) (Config, error) {
	var rejected []error
	if err := checkTable("angles", angles, angleRule); err != nil {
		rejected = append(rejected, err)
	} else {
		c.Angles = slices.Clone(angles)
	}
	if err := checkTable("alphas", alphas, alphaRule); err != nil {
		rejected = append(rejected, err)
	} else {
		c.Alphas = slices.Clone(alphas)
	}
	if err := checkTable("thickness", thickness, thicknessRule); err != nil {
		rejected = append(rejected, err)
	} else {
		c.Thickness = slices.Clone(thickness)
	}
	if len(rejected) == 0 {
		return c, nil
	}
	return c, joinConfigErrors(rejected)
}

func checkTable[T float64 | int](name string, table []T, rule string) error {
	if len(table) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: table is empty", name)
	}
	for i, v := range table {
		if err := validate.Var(v, rule); err != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "%s[%d]: %v outside %s", name, i, v, rule)
		}
	}
	return nil
}

func joinConfigErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	msg := errs[0].Error()
	for _, e := range errs[1:] {
		msg += "; " + e.Error()
	}
	return errors.New(errors.ErrCodeInvalidConfig, "rejected curve tables: %s", msg)
}

// Scaled returns a copy of c with every pixel value multiplied by Scale and
// Scale reset to 1.
func (c Config) Scaled() Config {
	if c.Scale <= 1 {
		return c
	}
	k := float64(c.Scale)
	c.Width *= k
	c.Height *= k
	c.Margin *= k
	c.Gap *= k
	c.Dash *= k
	c.FontSize *= k
	c.BorderWidth *= k

	sizes := make([]SizeRow, len(c.Sizes))
	for i, r := range c.Sizes {
		sizes[i] = SizeRow{Width: r.Width * k, Height: r.Height * k, Spacing: r.Spacing * k}
	}
	c.Sizes = sizes

	thickness := make([]float64, len(c.Thickness))
	for i, t := range c.Thickness {
		thickness[i] = t * k
	}
	c.Thickness = thickness

	c.Scale = 1
	return c
}

// String summarises the canvas settings for logs.
func (c Config) String() string {
	return fmt.Sprintf("%gx%g margin=%g gap=%g rotate=%t scale=%d", c.Width, c.Height, c.Margin, c.Gap, c.Rotate, c.Scale)
}
