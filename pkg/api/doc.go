// Package api serves flow diagram rendering over HTTP.
//
// # Endpoints
//
//	POST /render   render the TSV records in the request body
//	GET  /healthz  liveness probe
//	GET  /metrics  Prometheus metrics
//
// /render takes the output format and per-request overrides of the
// server's base configuration as query parameters:
//
//	format   svg, png, jpeg, pdf, eps, dot or json (default svg)
//	width    canvas width in pixels
//	height   canvas height in pixels
//	rotate   rotate the diagram 90° clockwise
//	dash     connector dash length, 0 for solid
//	header   skip the first line of the body
//	engine   native or graphviz
//	legacy   keep re-declared nodes in every layer
//
// The response body is the artifact. X-Render-ID carries the run ID and
// X-Cache reports whether the artifact was served from the cache. Errors
// are JSON objects with code, stage and message fields.
package api
