package io

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/flowviz/pkg/errors"
	"github.com/matzehuels/flowviz/pkg/flow"
)

func tsv(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestReadTSV(t *testing.T) {
	input := tsv(
		"id\tdown\tup\tdepth\tlabel\tfill\tborder",
		"crude\tgas;fuel\t-\t0\tCrude\t#C80000\t#C80000",
		"",
		"gas\t-\t-\t1\tGas\t#C8000080\t#000000",
		"fuel\t-\tcrude\t1\tFuel oil\t#00A000\t#00A000\textra",
	)

	g, err := ReadTSV(strings.NewReader(input), WithHeader())
	if err != nil {
		t.Fatalf("ReadTSV() error = %v", err)
	}

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
	gas := g.NodeByID("gas")
	if gas.Depth != 1 || gas.Label != "Gas" || gas.Fill != (color.NRGBA{R: 200, A: 128}) {
		t.Errorf("gas = %+v", gas)
	}
	if got := g.NodeByID("fuel").Label; got != "Fuel oil" {
		t.Errorf("fuel label = %q", got)
	}
	if got := len(g.Layer(1)); got != 2 {
		t.Errorf("layer 1 size = %d, want 2", got)
	}
	if got := g.EdgeCount(); got != 2 {
		t.Errorf("EdgeCount() = %d, want 2", got)
	}
}

func TestReadTSVWithoutHeader(t *testing.T) {
	g, err := ReadTSV(strings.NewReader("a\tb\t-\t0\tA\t#000000\t#000000\r\n"))
	if err != nil {
		t.Fatalf("ReadTSV() error = %v", err)
	}
	b := g.NodeByID("b")
	if b == nil || b.Declared() || b.Depth != 0 || b.Fill != flow.DefaultColor {
		t.Errorf("neighbour-only node = %+v, want an undeclared default", b)
	}
	if got := g.NodeByID("a").Border; got != (color.NRGBA{A: 255}) {
		t.Errorf("border = %+v, want opaque black", got)
	}
}

func TestReadTSVUpstreamColumn(t *testing.T) {
	tests := []struct {
		name     string
		upstream string
		want     []string
	}{
		{"dash keeps links from other records", "-", []string{"a", "b"}},
		{"list replaces", "b", []string{"b"}},
		{"empty column clears", "", nil},
		{"dash ends the list", "b;-;a", []string{"b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tsv(
				"a\tx\t-\t0\tA\t#000000\t#000000",
				"b\tx\t-\t0\tB\t#000000\t#000000",
				"x\t-\t"+tt.upstream+"\t1\tX\t#000000\t#000000",
			)
			g, err := ReadTSV(strings.NewReader(input))
			if err != nil {
				t.Fatalf("ReadTSV() error = %v", err)
			}
			var got []string
			for _, i := range g.NodeByID("x").Upstream() {
				got = append(got, g.Node(i).ID)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("upstream = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadTSVErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine string
	}{
		{"too few fields", tsv("a\tb\t-\t0"), "line 1"},
		{"bad depth", tsv("a\t-\t-\t0\tA\t#000000\t#000000", "b\t-\t-\ttwo\tB\t#000000\t#000000"), "line 2"},
		{"negative depth", tsv("a\t-\t-\t-1\tA\t#000000\t#000000"), "line 1"},
		{"bad color", tsv("", "a\t-\t-\t0\tA\t#00000G\t#000000"), "line 2"},
		{"bad neighbour", tsv("a\tb;c\x02\t-\t0\tA\t#000000\t#000000"), "line 1"},
		{"empty id", tsv("\t-\t-\t0\tA\t#000000\t#000000"), "line 1"},
		{"control character in label", tsv("a\t-\t-\t0\tA\x01\t#000000\t#000000"), "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTSV(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidRecord) {
				t.Fatalf("ReadTSV() error = %v, want %s", err, errors.ErrCodeInvalidRecord)
			}
			if errors.StageOf(err) != errors.StageIngest {
				t.Errorf("stage = %q, want ingest", errors.StageOf(err))
			}
			if !strings.Contains(err.Error(), tt.wantLine) {
				t.Errorf("error %q does not name %s", err, tt.wantLine)
			}
		})
	}
}

func TestImportTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.tsv")
	if err := os.WriteFile(path, []byte("a\t-\t-\t0\tA\t#000000\t#000000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := ImportTSV(path)
	if err != nil {
		t.Fatalf("ImportTSV() error = %v", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}

	_, err = ImportTSV(filepath.Join(t.TempDir(), "missing.tsv"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportTSV(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestReadTSVLegacyLayers(t *testing.T) {
	input := tsv(
		"a\t-\t-\t0\tA\t#000000\t#000000",
		"a\t-\t-\t1\tA\t#000000\t#000000",
	)
	g, err := ReadTSV(strings.NewReader(input), WithGraphOptions(flow.WithLegacyLayers()))
	if err != nil {
		t.Fatalf("ReadTSV() error = %v", err)
	}
	if len(g.Layer(0)) != 1 || len(g.Layer(1)) != 1 {
		t.Errorf("layers = %v / %v, want a in both", g.Layer(0), g.Layer(1))
	}
}
