package flowchart

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/flowviz/pkg/flow"
	"github.com/matzehuels/flowviz/pkg/render/canvas"
	"github.com/matzehuels/flowviz/pkg/style"
)

// buildGraph declares node i at depths[i] and links node i to node i+1
// whenever their depths are adjacent.
func buildGraph(depths []int) *flow.Graph {
	g := flow.New()
	for i, d := range depths {
		r := flow.Record{ID: fmt.Sprint(i), Depth: d, Fill: flow.DefaultColor}
		if i+1 < len(depths) && depths[i+1] == d+1 {
			r.Downstream = []string{fmt.Sprint(i + 1)}
		}
		g.Ingest(r)
	}
	return g
}

func TestLayoutProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	cfg := style.Default()

	properties.Property("columns share one x and move right with depth", prop.ForAll(
		func(depths []int) bool {
			g := buildGraph(depths)
			l := assign(g, cfg, cfg.Margin)
			prev := math.Inf(-1)
			for _, d := range l.Depths {
				x := g.Node(g.Layer(d)[0]).X
				if x <= prev {
					return false
				}
				for _, i := range g.Layer(d) {
					if g.Node(i).X != x {
						return false
					}
				}
				prev = x
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 4)),
	))

	properties.Property("boxes in a column never overlap", prop.ForAll(
		func(depths []int) bool {
			g := buildGraph(depths)
			l := assign(g, cfg, cfg.Margin)
			for _, d := range l.Depths {
				layer := g.Layer(d)
				for k := 0; k+1 < len(layer); k++ {
					a, b := g.Node(layer[k]), g.Node(layer[k+1])
					if b.Y < a.Y+a.Height+cfg.Gap-1e-9 {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.TestingRun(t)
}

func TestConnectorProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300

	properties := gopter.NewProperties(parameters)

	properties.Property("connectors join the two attachment points", prop.ForAll(
		func(x1, y1, x2, y2, angle float64) bool {
			p1, p2 := canvas.Pt(x1, y1), canvas.Pt(x2, y2)
			p := NewCurve(p1, p2, angle).Path()
			start, _ := p.Start()
			end, _ := p.Current()
			eps := 1e-6 * (1 + math.Abs(x1) + math.Abs(x2) + math.Abs(y1) + math.Abs(y2))
			forward := start.Near(p1, eps) && end.Near(p2, eps)
			backward := start.Near(p2, eps) && end.Near(p1, eps)
			return forward || backward
		},
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
		gen.Float64Range(-80, 80),
	))

	properties.Property("connectors start left and end right", prop.ForAll(
		func(x1, y1, x2, y2 float64) bool {
			p := NewCurve(canvas.Pt(x1, y1), canvas.Pt(x2, y2), 30).Path()
			start, _ := p.Start()
			end, _ := p.Current()
			return start.X <= end.X+1e-9
		},
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
	))

	properties.Property("balanced labels keep glyphs upright", prop.ForAll(
		func(rotation, radius float64) bool {
			rec := canvas.NewRecorder()
			if err := PlaceLabel(rec, "label", canvas.Pt(100, 100), rotation, radius, AlignLeft, AlignTop, true); err != nil {
				return false
			}
			text := rec.Filter(canvas.CmdText)[0]
			return text.Transform.IsTranslation(1e-9) && rec.Transform().IsIdentity(1e-9)
		},
		gen.Float64Range(-360, 360),
		gen.Float64Range(0, 200),
	))

	properties.TestingRun(t)
}
