package pipeline

import (
	"github.com/matzehuels/flowviz/pkg/flow"
	"github.com/matzehuels/flowviz/pkg/render/flowchart"
)

// Layout runs the position pass over g. opts must have been validated.
func Layout(g *flow.Graph, opts Options) (flowchart.Layout, error) {
	return newChart(opts).Layout(g)
}

func newChart(opts Options) *flowchart.Chart {
	return flowchart.New(opts.cfg, flowchart.WithLogger(opts.Logger))
}
