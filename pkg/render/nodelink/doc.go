// Package nodelink exports laid-out flow diagrams as Graphviz DOT.
//
// # Overview
//
// The flowviz layout is computed by [flowchart]; this package does not ask
// Graphviz to lay anything out. Each node is written with a pinned
// position (pos="x,y!") and the graph selects the neato engine, which
// honours pinned positions and only draws the edges:
//
//	l, _ := chart.Layout(g)
//	dot := nodelink.ToDOT(g, l, cfg, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT text is useful on its own for tools that post-process Graphviz
// files. Edges are emitted only for connectors the flow chart draws, with
// the connector's color and thickness.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF conversion requires librsvg (rsvg-convert).
package nodelink
