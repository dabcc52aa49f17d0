package flowchart

import (
	"image/color"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowviz/pkg/errors"
	"github.com/matzehuels/flowviz/pkg/flow"
	"github.com/matzehuels/flowviz/pkg/render/canvas"
	"github.com/matzehuels/flowviz/pkg/style"
)

// LabelRotation is the angle node labels are drawn at, reading bottom to
// top along the box.
const LabelRotation = -90

// cornerDivisor turns a box width into its corner radius.
const cornerDivisor = 12

// Option configures a Chart.
type Option func(*Chart)

// WithLogger sets the logger for skipped edges and layers.
func WithLogger(l *log.Logger) Option {
	return func(c *Chart) {
		if l != nil {
			c.logger = l
		}
	}
}

// Chart draws a flow graph in three passes: positions, connectors, then
// boxes with their labels. Boxes are painted after the connectors so they
// cover the curve ends.
type Chart struct {
	cfg    style.Config
	logger *log.Logger

	labelH HAlign
	labelV VAlign
}

// New returns a chart drawing with cfg. The configuration is used as is;
// callers validate and scale it beforehand.
func New(cfg style.Config, opts ...Option) *Chart {
	c := &Chart{cfg: cfg, logger: discardLogger(), labelH: AlignCenter, labelV: AlignMiddle}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the chart's configuration.
func (c *Chart) Config() style.Config { return c.cfg }

// StartX returns the x of the first column: the margin, shifted by
// (Width-Height)/2 when the diagram is rotated.
func (c *Chart) StartX() float64 {
	if c.cfg.Rotate {
		return c.cfg.Margin + (c.cfg.Width-c.cfg.Height)/2
	}
	return c.cfg.Margin
}

// Layout runs the position pass over the whole graph. It fails with
// ErrCodePrecondition when no column could be placed.
func (c *Chart) Layout(g *flow.Graph) (Layout, error) {
	if g.NodeCount() == 0 {
		return Layout{}, errors.AtStage(errors.StageLayout, errors.ErrCodePrecondition, "graph is empty")
	}
	l := assign(g, c.cfg, c.StartX())
	if l.Empty() {
		return l, errors.AtStage(errors.StageLayout, errors.ErrCodePrecondition, "no nodes at depth 0, depths present: %v", g.Depths())
	}
	if len(l.Skipped) > 0 {
		c.logger.Warn("depths after a gap are not drawn", "gap_at", len(l.Depths), "skipped", l.Skipped)
	}
	c.logger.Debug("layout done", "columns", len(l.Depths), "nodes", l.PlacedCount(), "end_x", l.EndX)
	return l, nil
}

// Paint runs the connector and box passes onto cv. l must come from
// [Chart.Layout] on the same graph.
func (c *Chart) Paint(g *flow.Graph, l Layout, cv canvas.Canvas) ([]Edge, error) {
	if l.Empty() {
		return nil, errors.AtStage(errors.StagePaint, errors.ErrCodePrecondition, "graph has no layout")
	}
	fontColor, err := style.ParseColor(c.cfg.FontColor)
	if err != nil {
		return nil, errors.WithStage(errors.StagePaint, err)
	}

	if c.cfg.Rotate {
		cv.Rotate(math.Pi/2, c.cfg.Width/2, c.cfg.Height/2)
		defer cv.Rotate(-math.Pi/2, c.cfg.Width/2, c.cfg.Height/2)
	}

	edges := NewRouter(c.cfg, c.logger).Route(g, l, cv)

	for _, d := range l.Depths {
		for _, i := range g.Layer(d) {
			if err := c.paintNode(cv, g.Node(i), fontColor); err != nil {
				return edges, errors.WithStage(errors.StagePaint, err)
			}
		}
	}
	return edges, nil
}

// Draw lays out g and paints it onto cv.
func (c *Chart) Draw(g *flow.Graph, cv canvas.Canvas) (Layout, error) {
	l, err := c.Layout(g)
	if err != nil {
		return l, err
	}
	if _, err := c.Paint(g, l, cv); err != nil {
		return l, err
	}
	return l, nil
}

func (c *Chart) paintNode(cv canvas.Canvas, n *flow.Node, fontColor color.NRGBA) error {
	r := n.Width / cornerDivisor
	if n.Fill.A > 0 {
		cv.SetColor(n.Fill)
		cv.FillRoundedRect(n.X, n.Y, n.Width, n.Height, r)
	}
	if c.cfg.BorderWidth > 0 && n.Border.A > 0 {
		cv.SetColor(n.Border)
		cv.SetStroke(canvas.Solid(c.cfg.BorderWidth))
		cv.StrokeRoundedRect(n.X, n.Y, n.Width, n.Height, r)
	}
	if n.Label == "" {
		return nil
	}
	cv.SetColor(fontColor)
	cv.SetFontSize(c.cfg.LabelSize(n.Width))
	center := canvas.Pt(n.CenterX(), n.CenterY())
	return PlaceLabel(cv, n.Label, center, LabelRotation, 0, c.labelH, c.labelV, false)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
