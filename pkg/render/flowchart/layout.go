package flowchart

import (
	"github.com/matzehuels/flowviz/pkg/flow"
	"github.com/matzehuels/flowviz/pkg/style"
)

// Layout is the result of the position pass.
type Layout struct {
	// Depths lists the columns that were placed, in drawing order. Columns
	// start at depth 0 and stop before the first depth without nodes.
	Depths []int
	// Skipped lists populated depths past that first gap. Their nodes keep
	// the default position and are neither routed nor painted.
	Skipped []int
	// StartX is the x of the first column; EndX the cursor after the last.
	StartX, EndX float64

	placed map[flow.Index]struct{}
}

// Empty reports whether no column was placed.
func (l Layout) Empty() bool { return len(l.Depths) == 0 }

// Placed reports whether node i received a position.
func (l Layout) Placed(i flow.Index) bool {
	_, ok := l.placed[i]
	return ok
}

// PlacedCount returns the number of distinct nodes that received a position.
func (l Layout) PlacedCount() int { return len(l.placed) }

// AssignPositions places every node of the contiguous layers 0, 1, 2, ...
// and returns the horizontal cursor after the last column.
//
// Each column is centered vertically on cfg.Height, gaps included, with no
// clamping: a column taller than the canvas starts at a negative y. Nodes
// are sized from the size row of their own depth and stacked in layer
// order, each one its own height plus cfg.Gap below the previous. The
// cursor advances by the column row's width plus spacing.
func AssignPositions(g *flow.Graph, cfg style.Config, startX float64) float64 {
	return assign(g, cfg, startX).EndX
}

func assign(g *flow.Graph, cfg style.Config, startX float64) Layout {
	l := Layout{StartX: startX, placed: make(map[flow.Index]struct{})}
	x := startX
	d := 0
	for ; g.HasLayer(d); d++ {
		layer := g.Layer(d)
		row := cfg.SizeRow(d)
		y := (cfg.Height - float64(len(layer))*(cfg.Gap+row.Height) + cfg.Gap) / 2
		for _, i := range layer {
			n := g.Node(i)
			own := cfg.SizeRow(n.Depth)
			n.X, n.Y = x, y
			n.Width, n.Height = own.Width, own.Height
			y += n.Height + cfg.Gap
			l.placed[i] = struct{}{}
		}
		x += row.Width + row.Spacing
		l.Depths = append(l.Depths, d)
	}
	for _, depth := range g.Depths() {
		if depth > d {
			l.Skipped = append(l.Skipped, depth)
		}
	}
	l.EndX = x
	return l
}
