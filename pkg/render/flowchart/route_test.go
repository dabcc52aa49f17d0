package flowchart

import (
	"image/color"
	"math"
	"testing"

	"github.com/matzehuels/flowviz/pkg/flow"
	"github.com/matzehuels/flowviz/pkg/render/canvas"
	"github.com/matzehuels/flowviz/pkg/style"
)

func endpoints(t *testing.T, p canvas.Path) (canvas.Point, canvas.Point) {
	t.Helper()
	start, ok := p.Start()
	if !ok {
		t.Fatal("empty path")
	}
	end, _ := p.Current()
	return start, end
}

func TestNewCurve(t *testing.T) {
	tests := []struct {
		name         string
		p1, p2       canvas.Point
		angle        float64
		wantFrom     canvas.Point
		wantTo       canvas.Point
		wantDiagonal bool
		wantW, wantH float64
	}{
		{
			name: "same sign", p1: canvas.Pt(0, 0), p2: canvas.Pt(100, 100), angle: 30,
			wantFrom: canvas.Pt(0, 0), wantTo: canvas.Pt(100, 100),
			wantW: 100 / math.Cos(math.Pi/6), wantH: 200,
		},
		{
			name: "diagonal", p1: canvas.Pt(0, 100), p2: canvas.Pt(100, 0), angle: 30,
			wantFrom: canvas.Pt(0, 100), wantTo: canvas.Pt(100, 0), wantDiagonal: true,
			wantW: 100 / math.Cos(math.Pi/6), wantH: 200,
		},
		{
			name: "target left of source is swapped", p1: canvas.Pt(100, 100), p2: canvas.Pt(0, 0), angle: 30,
			wantFrom: canvas.Pt(0, 0), wantTo: canvas.Pt(100, 100),
			wantW: 100 / math.Cos(math.Pi/6), wantH: 200,
		},
		{
			name: "level", p1: canvas.Pt(10, 50), p2: canvas.Pt(60, 50), angle: 0,
			wantFrom: canvas.Pt(10, 50), wantTo: canvas.Pt(60, 50),
			wantW: 50, wantH: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCurve(tt.p1, tt.p2, tt.angle)
			if c.From != tt.wantFrom || c.To != tt.wantTo {
				t.Errorf("NewCurve() from %v to %v, want %v to %v", c.From, c.To, tt.wantFrom, tt.wantTo)
			}
			if c.Diagonal != tt.wantDiagonal {
				t.Errorf("Diagonal = %v, want %v", c.Diagonal, tt.wantDiagonal)
			}
			if math.Abs(c.W-tt.wantW) > 1e-9 || math.Abs(c.H-tt.wantH) > 1e-9 {
				t.Errorf("frame = %vx%v, want %vx%v", c.W, c.H, tt.wantW, tt.wantH)
			}

			start, end := endpoints(t, c.Path())
			if !start.Near(tt.wantFrom, 1e-9) || !end.Near(tt.wantTo, 1e-9) {
				t.Errorf("Path() runs %v to %v, want %v to %v", start, end, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestCurvePassesThroughMidpoint(t *testing.T) {
	for _, pts := range [][2]canvas.Point{
		{canvas.Pt(0, 0), canvas.Pt(100, 100)},
		{canvas.Pt(0, 100), canvas.Pt(100, 0)},
	} {
		p := NewCurve(pts[0], pts[1], 30).Path()
		segs := p.Segments()
		if len(segs) != 3 {
			t.Fatalf("segments = %d, want move and two cubics", len(segs))
		}
		if got := segs[1].End(); !got.Near(canvas.Pt(50, 50), 1e-9) {
			t.Errorf("arcs join at %v, want (50,50)", got)
		}
	}
}

func TestEndpointsFanAcrossEdges(t *testing.T) {
	src := &flow.Node{X: 0, Y: 100, Width: 36, Height: 72}
	dst := &flow.Node{X: 200, Y: 40, Width: 36, Height: 72}

	tests := []struct {
		name                       string
		fanSrc, fanDst, nSrc, nDst int
		wantY1, wantY2             float64
	}{
		{"single edge is centered", 0, 0, 1, 1, 136, 76},
		{"first of three", 0, 0, 3, 1, 100 + 3 + 27, 76},
		{"last of three", 2, 1, 3, 2, 100 + 15 + 27, 40 + 9 + 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1, p2 := Endpoints(src, dst, tt.fanSrc, tt.fanDst, tt.nSrc, tt.nDst, 6)
			if p1 != canvas.Pt(36, tt.wantY1) {
				t.Errorf("source point = %v, want (36,%v)", p1, tt.wantY1)
			}
			if p2 != canvas.Pt(200, tt.wantY2) {
				t.Errorf("target point = %v, want (200,%v)", p2, tt.wantY2)
			}
		})
	}
}

func TestEdgeStyleForUsesSourceDepth(t *testing.T) {
	cfg := style.Default()
	cfg, err := cfg.WithCurves([]float64{10, 20}, []int{100, 200}, []float64{2, 4})
	if err != nil {
		t.Fatalf("WithCurves() error = %v", err)
	}
	cfg.Dash = 8
	src := &flow.Node{Depth: 3, Fill: color.NRGBA{R: 1, G: 2, B: 3, A: 255}}

	got := EdgeStyleFor(cfg, src)
	want := EdgeStyle{Thickness: 4, Angle: 20, Color: color.NRGBA{R: 1, G: 2, B: 3, A: 200}, Dash: 8}
	if got != want {
		t.Errorf("EdgeStyleFor() = %+v, want %+v", got, want)
	}
	if s := got.Stroke(); s != canvas.Dashed(4, 8) {
		t.Errorf("Stroke() = %+v, want dashed", s)
	}
}

func TestRouterSkipsOneSidedEdges(t *testing.T) {
	g := flow.New()
	mustIngest(t, g,
		flow.Record{ID: "a", Depth: 0, Downstream: []string{"b", "c"}},
		flow.Record{ID: "b", Depth: 1},
		// c owns its upstream list and drops a from it.
		flow.Record{ID: "c", Depth: 1, Upstream: []string{}},
		// d lists a upstream, but a never lists d downstream.
		flow.Record{ID: "d", Depth: 1, Upstream: []string{"a"}},
	)
	cfg := style.Default()
	l := assign(g, cfg, cfg.Margin)

	rec := canvas.NewRecorder()
	edges := NewRouter(cfg, nil).Route(g, l, rec)

	if len(edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(edges))
	}
	if from, to := g.Node(edges[0].From).ID, g.Node(edges[0].To).ID; from != "a" || to != "b" {
		t.Errorf("edge = %s->%s, want a->b", from, to)
	}
	if got := len(rec.Filter(canvas.CmdStrokePath)); got != 1 {
		t.Errorf("stroked paths = %d, want 1", got)
	}
}

func TestRouteEdgeEndsOnBoxes(t *testing.T) {
	g := flow.New()
	mustIngest(t, g,
		flow.Record{ID: "a", Depth: 0, Downstream: []string{"x", "y"}},
		flow.Record{ID: "b", Depth: 0, Downstream: []string{"x"}},
		flow.Record{ID: "x", Depth: 1},
		flow.Record{ID: "y", Depth: 1},
	)
	cfg := style.Default()
	l := assign(g, cfg, cfg.Margin)

	for _, e := range NewRouter(cfg, nil).Edges(g, l) {
		src, dst := g.Node(e.From), g.Node(e.To)
		start, end := endpoints(t, e.Path)
		if math.Abs(start.X-(src.X+src.Width)) > 1e-9 || start.Y < src.Y || start.Y > src.Y+src.Height {
			t.Errorf("%s->%s starts at %v, off the source's right edge", src.ID, dst.ID, start)
		}
		if math.Abs(end.X-dst.X) > 1e-9 || end.Y < dst.Y || end.Y > dst.Y+dst.Height {
			t.Errorf("%s->%s ends at %v, off the target's left edge", src.ID, dst.ID, end)
		}
	}
}
