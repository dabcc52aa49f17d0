// Package style holds the drawing configuration of flow charts.
//
// # Overview
//
// A [Config] carries the canvas size, the first-column margin, the vertical
// gap between boxes, and four depth-indexed tables: box sizes
// ([SizeRow]: width, height and spacing to the next column), connector
// thickness, connector fan angle and connector alpha. Lookups such as
// [Config.SizeRow] wrap the depth modulo the table length, so a table of
// six rows serves depth 7 with row 1.
//
// Configs are values. Layout and routing receive a copy and never mutate
// it; [Config.WithCurves] and [Config.Scaled] return changed copies.
//
// # Files
//
// [Load] layers a TOML or YAML document over a base config:
//
//	width = 2400
//	height = 1400
//	angles = [30, 45]
//	alphas = [180]
//
//	[[sizes]]
//	width = 36
//	height = 72
//	spacing = 162
//
// Fields are checked with go-playground/validator. Curve tables keep the
// reject-and-keep rule: a table with a value outside its range (angles in
// (-90, 90), alphas in [0, 255], thickness above 0) is ignored with a
// warning and the previous table stays in effect.
//
// # Colors
//
// [ParseColor] decodes "#RRGGBB" hex strings with go-colorful. "none"
// yields a transparent color; transparent fills are not painted.
package style
