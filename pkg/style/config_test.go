package style

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/flowviz/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
}

func TestSizeRowWraps(t *testing.T) {
	cfg := Default()
	tests := []struct {
		depth int
		want  SizeRow
	}{
		{0, cfg.Sizes[0]},
		{2, cfg.Sizes[2]},
		{6, cfg.Sizes[0]},
		{7, cfg.Sizes[1]},
		{13, cfg.Sizes[1]},
	}

	for _, tt := range tests {
		if got := cfg.SizeRow(tt.depth); got != tt.want {
			t.Errorf("SizeRow(%d) = %+v, want %+v", tt.depth, got, tt.want)
		}
	}
}

func TestCurveLookupsWrap(t *testing.T) {
	cfg := Default()
	cfg.Angles = []float64{10, 20, 30}
	cfg.Alphas = []int{100, 200}
	cfg.Thickness = []float64{4}

	if got := cfg.AngleAt(4); got != 20 {
		t.Errorf("AngleAt(4) = %v, want 20", got)
	}
	if got := cfg.AlphaAt(3); got != 200 {
		t.Errorf("AlphaAt(3) = %v, want 200", got)
	}
	if got := cfg.ThicknessAt(9); got != 4 {
		t.Errorf("ThicknessAt(9) = %v, want 4", got)
	}
}

func TestWithCurves(t *testing.T) {
	tests := []struct {
		name          string
		angles        []float64
		alphas        []int
		thickness     []float64
		wantAngles    []float64
		wantAlphas    []int
		wantThickness []float64
		wantErr       bool
	}{
		{
			name:   "all valid",
			angles: []float64{45, -45}, alphas: []int{0, 255}, thickness: []float64{2},
			wantAngles: []float64{45, -45}, wantAlphas: []int{0, 255}, wantThickness: []float64{2},
		},
		{
			name:   "angle at bound rejected",
			angles: []float64{90}, alphas: []int{100}, thickness: []float64{3},
			wantAngles: []float64{30}, wantAlphas: []int{100}, wantThickness: []float64{3},
			wantErr: true,
		},
		{
			name:   "alpha out of range rejected",
			angles: []float64{10}, alphas: []int{256}, thickness: []float64{3},
			wantAngles: []float64{10}, wantAlphas: []int{180}, wantThickness: []float64{3},
			wantErr: true,
		},
		{
			name:   "zero thickness rejected",
			angles: []float64{10}, alphas: []int{10}, thickness: []float64{1, 0},
			wantAngles: []float64{10}, wantAlphas: []int{10}, wantThickness: []float64{6},
			wantErr: true,
		},
		{
			name:       "empty tables rejected",
			wantAngles: []float64{30}, wantAlphas: []int{180}, wantThickness: []float64{6},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Default().WithCurves(tt.angles, tt.alphas, tt.thickness)
			if (err != nil) != tt.wantErr {
				t.Fatalf("WithCurves() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("WithCurves() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
			if !slices.Equal(got.Angles, tt.wantAngles) {
				t.Errorf("Angles = %v, want %v", got.Angles, tt.wantAngles)
			}
			if !slices.Equal(got.Alphas, tt.wantAlphas) {
				t.Errorf("Alphas = %v, want %v", got.Alphas, tt.wantAlphas)
			}
			if !slices.Equal(got.Thickness, tt.wantThickness) {
				t.Errorf("Thickness = %v, want %v", got.Thickness, tt.wantThickness)
			}
		})
	}
}

func TestWithCurvesDoesNotAlias(t *testing.T) {
	angles := []float64{10}
	cfg, err := Default().WithCurves(angles, []int{1}, []float64{1})
	if err != nil {
		t.Fatal(err)
	}
	angles[0] = 80
	if cfg.Angles[0] != 10 {
		t.Errorf("Angles[0] = %v, want 10 after caller mutation", cfg.Angles[0])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, "Width"},
		{"negative gap", func(c *Config) { c.Gap = -1 }, "Gap"},
		{"no sizes", func(c *Config) { c.Sizes = nil }, "Sizes"},
		{"bad size row", func(c *Config) { c.Sizes = []SizeRow{{Width: 0, Height: 1}} }, "Width"},
		{"bad angle", func(c *Config) { c.Angles = []float64{-90} }, "Angles"},
		{"bad scale", func(c *Config) { c.Scale = 0 }, "Scale"},
		{"huge width", func(c *Config) { c.Width = 1e6 }, "Width"},
		{"huge height", func(c *Config) { c.Height = MaxCanvasSide + 1 }, "Height"},
		{"scaled past limit", func(c *Config) { c.Width, c.Scale = 5000, 2 }, "Scale"},
		{"bad font color", func(c *Config) { c.FontColor = "blue" }, "font_color"},
		{"bad background", func(c *Config) { c.Background = "#12" }, "background"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Validate() error %q does not mention %s", err, tt.field)
			}
		})
	}
}

func TestValidateAcceptsLimit(t *testing.T) {
	cfg := Default()
	cfg.Width, cfg.Height, cfg.Scale = MaxCanvasSide/2, MaxCanvasSide/2, 2
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() at the size limit = %v", err)
	}
}

func TestScaled(t *testing.T) {
	cfg := Default()
	cfg.Scale = 2
	got := cfg.Scaled()

	if got.Width != 3600 || got.Margin != 400 || got.Gap != 60 {
		t.Errorf("Scaled() canvas = %v, want 3600 wide, margin 400, gap 60", got)
	}
	if got.Sizes[2] != (SizeRow{Width: 72, Height: 180, Spacing: 396}) {
		t.Errorf("Scaled().Sizes[2] = %+v", got.Sizes[2])
	}
	if got.Thickness[0] != 12 {
		t.Errorf("Scaled().Thickness[0] = %v, want 12", got.Thickness[0])
	}
	if got.Scale != 1 {
		t.Errorf("Scaled().Scale = %d, want 1", got.Scale)
	}
	if cfg.Sizes[2].Height != 90 {
		t.Error("Scaled() must not modify the receiver's tables")
	}
}

func TestLabelSize(t *testing.T) {
	cfg := Default()
	if got := cfg.LabelSize(36); got != 23 {
		t.Errorf("LabelSize(36) = %v, want 23", got)
	}
	cfg.FontSize = 12
	if got := cfg.LabelSize(36); got != 12 {
		t.Errorf("LabelSize(36) with FontSize = %v, want 12", got)
	}
}
