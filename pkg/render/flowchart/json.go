package flowchart

import (
	"encoding/json"

	"github.com/matzehuels/flowviz/pkg/flow"
	"github.com/matzehuels/flowviz/pkg/style"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	edges    []Edge
	withPath bool
}

// WithJSONEdges includes the drawn connectors, as returned by
// [Chart.Paint] or [Router.Edges].
func WithJSONEdges(edges []Edge) JSONOption {
	return func(r *jsonRenderer) { r.edges = edges }
}

// WithJSONPaths adds each connector's SVG path data to its edge entry.
func WithJSONPaths() JSONOption { return func(r *jsonRenderer) { r.withPath = true } }

type jsonOutput struct {
	Width   float64          `json:"width"`
	Height  float64          `json:"height"`
	Rotate  bool             `json:"rotate,omitempty"`
	StartX  float64          `json:"start_x"`
	EndX    float64          `json:"end_x"`
	Layers  map[int][]string `json:"layers"`
	Skipped []int            `json:"skipped,omitempty"`
	Boxes   []jsonBox        `json:"boxes"`
	Edges   []jsonEdge       `json:"edges,omitempty"`
}

type jsonBox struct {
	ID     string  `json:"id"`
	Label  string  `json:"label,omitempty"`
	Depth  int     `json:"depth"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   string  `json:"fill"`
	Border string  `json:"border"`
}

type jsonEdge struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Thickness float64 `json:"thickness"`
	Angle     float64 `json:"angle"`
	Color     string  `json:"color"`
	Alpha     uint8   `json:"alpha"`
	Dash      float64 `json:"dash,omitempty"`
	Path      string  `json:"path,omitempty"`
}

// RenderJSON exports a laid-out graph as a pretty-printed JSON document:
// canvas settings, the layer order, every placed box and, with
// [WithJSONEdges], the connectors. Coordinates are those of the unrotated
// diagram. It does not modify g.
func RenderJSON(g *flow.Graph, l Layout, cfg style.Config, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Rotate:  cfg.Rotate,
		StartX:  l.StartX,
		EndX:    l.EndX,
		Layers:  make(map[int][]string, len(l.Depths)),
		Skipped: l.Skipped,
		Boxes:   buildJSONBoxes(g, l),
		Edges:   buildJSONEdges(g, r.edges, r.withPath),
	}
	for _, d := range l.Depths {
		ids := make([]string, 0, len(g.Layer(d)))
		for _, i := range g.Layer(d) {
			ids = append(ids, g.Node(i).ID)
		}
		out.Layers[d] = ids
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONBoxes(g *flow.Graph, l Layout) []jsonBox {
	boxes := make([]jsonBox, 0, l.PlacedCount())
	seen := make(map[flow.Index]bool, l.PlacedCount())
	for _, d := range l.Depths {
		for _, i := range g.Layer(d) {
			if seen[i] {
				continue
			}
			seen[i] = true
			n := g.Node(i)
			boxes = append(boxes, jsonBox{
				ID:     n.ID,
				Label:  n.Label,
				Depth:  n.Depth,
				X:      n.X,
				Y:      n.Y,
				Width:  n.Width,
				Height: n.Height,
				Fill:   style.Hex(n.Fill),
				Border: style.Hex(n.Border),
			})
		}
	}
	return boxes
}

func buildJSONEdges(g *flow.Graph, edges []Edge, withPath bool) []jsonEdge {
	out := make([]jsonEdge, 0, len(edges))
	for _, e := range edges {
		je := jsonEdge{
			From:      g.Node(e.From).ID,
			To:        g.Node(e.To).ID,
			Thickness: e.Style.Thickness,
			Angle:     e.Style.Angle,
			Color:     style.Hex(e.Style.Color),
			Alpha:     e.Style.Color.A,
			Dash:      e.Style.Dash,
		}
		if withPath {
			je.Path = e.Path.SVGData()
		}
		out = append(out, je)
	}
	return out
}
