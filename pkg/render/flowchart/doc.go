// Package flowchart lays out and draws layered flow diagrams.
//
// # Overview
//
// A [flow.Graph] is drawn in three strictly sequential passes:
//
//  1. [AssignPositions] places every node of the contiguous layers
//     0, 1, 2, ... in columns, centering each column vertically.
//  2. The [Router] strokes a two-arc connector for every edge registered on
//     both ends, fanned over the source's right edge and the target's left
//     edge.
//  3. Boxes are filled over the connector ends and labeled with
//     [PlaceLabel], rotated to read along the box.
//
// [Chart] runs the passes against any [canvas.Canvas]:
//
//	chart := flowchart.New(cfg, flowchart.WithLogger(logger))
//	layout, err := chart.Draw(g, cv)
//
// Painting needs a layout covering the whole graph, so [Chart.Paint]
// refuses an empty [Layout] with a stage-tagged precondition error.
//
// # Connectors
//
// A connector from (x1, y1) to (x2, y2) with fan angle a is two elliptical
// arcs in a frame of
//
//	w = (x2-x1)/cos(a)    h = |y2-y1|/(1-sin(a))
//
// see [Curve]. Thickness, angle and alpha come from the style tables at the
// source node's depth; the color is the source fill.
//
// # Labels
//
// [PlaceLabel] aligns text on a reference point using measured metrics,
// never the backend's own text layout. Alignments are the enumerations
// [HAlign] and [VAlign]; [ParseHAlign] and [ParseVAlign] read the short
// l/m/r and u/m/d forms.
//
// # JSON
//
// [RenderJSON] exports the computed boxes and connectors for external
// tools.
//
// [flow.Graph]: github.com/matzehuels/flowviz/pkg/flow#Graph
// [canvas.Canvas]: github.com/matzehuels/flowviz/pkg/render/canvas#Canvas
package flowchart
