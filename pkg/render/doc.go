// Package render holds the output side of flowviz.
//
// # Overview
//
// Drawing happens in subpackages:
//
//   - [canvas]: the drawing surface (SVG, raster, recorder), paths and
//     transformation matrices
//   - [flowchart]: layout, connector routing, label placement and the
//     paint pass for layered flow diagrams
//   - [nodelink]: Graphviz DOT export of a laid-out diagram
//
// # Format Conversion
//
// [ToPDF], [ToEPS] and [ToPNG] convert an SVG document using the external
// rsvg-convert tool (from librsvg):
//
//	pdf, err := render.ToPDF(ctx, svg.Bytes())
//	eps, err := render.ToEPS(ctx, svg.Bytes())
//
// PNG and JPEG are normally drawn natively by [canvas.Raster]; [ToPNG] is
// kept for scaled conversions of existing SVG files.
package render
