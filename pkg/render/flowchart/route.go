package flowchart

import (
	"image/color"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowviz/pkg/flow"
	"github.com/matzehuels/flowviz/pkg/render/canvas"
	"github.com/matzehuels/flowviz/pkg/style"
)

// EdgeStyle is the resolved stroke of one connector.
type EdgeStyle struct {
	Thickness float64
	// Angle is the fan angle in degrees, inside (-90, 90).
	Angle float64
	Color color.NRGBA
	// Dash is the dash length; 0 strokes solid.
	Dash float64
}

// Stroke returns the canvas stroke for s.
func (s EdgeStyle) Stroke() canvas.Stroke {
	if s.Dash > 0 {
		return canvas.Dashed(s.Thickness, s.Dash)
	}
	return canvas.Solid(s.Thickness)
}

// EdgeStyleFor resolves the connector style of an edge leaving src. Every
// table is looked up by the source depth; the color is the source fill
// with the depth's alpha.
func EdgeStyleFor(cfg style.Config, src *flow.Node) EdgeStyle {
	c := src.Fill
	c.A = cfg.AlphaAt(src.Depth)
	return EdgeStyle{
		Thickness: cfg.ThicknessAt(src.Depth),
		Angle:     cfg.AngleAt(src.Depth),
		Color:     c,
		Dash:      cfg.Dash,
	}
}

// Curve is the two-arc connector between two points.
//
// From is always the leftmost point. A diagonal pair, where one point is
// lower-left and the other upper-right, is built as the same-sign pair with
// the y values swapped and then mirrored back about the shared vertical
// span, so a single construction serves both orientations.
type Curve struct {
	From, To canvas.Point
	// Angle is the fan angle in degrees.
	Angle float64
	// Diagonal reports whether the mirrored construction is used.
	Diagonal bool
	// W and H are the size of the frame both arcs are inscribed in.
	W, H float64
}

// NewCurve prepares the connector from p1 to p2 with the given fan angle.
func NewCurve(p1, p2 canvas.Point, angle float64) Curve {
	if p2.X < p1.X {
		p1, p2 = p2, p1
	}
	c := Curve{From: p1, To: p2, Angle: angle}
	c.Diagonal = (p1.X-p2.X)*(p1.Y-p2.Y) < 0

	rad := angle * math.Pi / 180
	c.W = (p2.X - p1.X) / math.Cos(rad)
	c.H = math.Abs(p2.Y-p1.Y) / (1 - math.Sin(rad))
	return c
}

// Path builds the connector. The first arc leaves From heading right and
// turns by 90-Angle degrees; the second arc continues from its end and
// arrives at To heading right.
func (c Curve) Path() canvas.Path {
	x1, y1, x2, y2 := c.From.X, c.From.Y, c.To.X, c.To.Y
	if c.Diagonal {
		y1, y2 = y2, y1
	}
	p := canvas.Arc(x1-c.W/2, y1, c.W, c.H, 90, c.Angle-90)
	p.Append(canvas.Arc(x2-c.W/2, y2-c.H, c.W, c.H, 180+c.Angle, 90-c.Angle), true)
	if c.Diagonal {
		return p.Transform(canvas.Translate(0, y1+y2).Mul(canvas.Scale(1, -1)))
	}
	return p
}

// Endpoints returns where the connector for an edge attaches.
//
// The outgoing fan is spread over the right edge of src and the incoming
// fan over the left edge of dst, both centered on their box:
//
//	y = box.Y + (0.5+fan)*thickness + (box.Height - count*thickness)/2
func Endpoints(src, dst *flow.Node, fanSrc, fanDst, srcCount, dstCount int, thickness float64) (canvas.Point, canvas.Point) {
	y1 := src.Y + (0.5+float64(fanSrc))*thickness + (src.Height-float64(srcCount)*thickness)/2
	y2 := dst.Y + (0.5+float64(fanDst))*thickness + (dst.Height-float64(dstCount)*thickness)/2
	return canvas.Pt(src.X+src.Width, y1), canvas.Pt(dst.X, y2)
}

// RouteEdge returns the connector path for one edge. fanSrc is the edge's
// position in src's downstream list and fanDst its position in dst's
// upstream list; srcCount and dstCount are the lengths of those lists.
func RouteEdge(src, dst *flow.Node, fanSrc, fanDst, srcCount, dstCount int, s EdgeStyle) canvas.Path {
	p1, p2 := Endpoints(src, dst, fanSrc, fanDst, srcCount, dstCount, s.Thickness)
	return NewCurve(p1, p2, s.Angle).Path()
}

// Edge is one drawn connector.
type Edge struct {
	From, To flow.Index
	Style    EdgeStyle
	Path     canvas.Path
}

// Router draws the connectors of a laid-out graph.
type Router struct {
	cfg    style.Config
	logger *log.Logger
}

// NewRouter returns a router using cfg's curve tables.
func NewRouter(cfg style.Config, logger *log.Logger) *Router {
	if logger == nil {
		logger = discardLogger()
	}
	return &Router{cfg: cfg, logger: logger}
}

// Edges computes the connectors of every node in the laid-out columns, in
// column order and then downstream order. Edges whose target does not list
// the source upstream are skipped, as are edges to nodes the layout did
// not place.
func (r *Router) Edges(g *flow.Graph, l Layout) []Edge {
	var edges []Edge
	for _, d := range l.Depths {
		for _, si := range g.Layer(d) {
			src := g.Node(si)
			down := src.Downstream()
			for i, di := range down {
				dst := g.Node(di)
				fan := g.UpstreamPosition(di, si)
				if fan < 0 {
					r.logger.Debug("skip one-sided edge", "from", src.ID, "to", dst.ID)
					continue
				}
				if !l.Placed(di) {
					r.logger.Debug("skip edge to unplaced node", "from", src.ID, "to", dst.ID, "depth", dst.Depth)
					continue
				}
				s := EdgeStyleFor(r.cfg, src)
				edges = append(edges, Edge{
					From:  si,
					To:    di,
					Style: s,
					Path:  RouteEdge(src, dst, i, fan, len(down), len(dst.Upstream()), s),
				})
			}
		}
	}
	return edges
}

// Route strokes every connector of g onto cv and returns them.
func (r *Router) Route(g *flow.Graph, l Layout, cv canvas.Canvas) []Edge {
	edges := r.Edges(g, l)
	for _, e := range edges {
		cv.SetColor(e.Style.Color)
		cv.StrokePath(e.Path, e.Style.Stroke())
	}
	return edges
}
