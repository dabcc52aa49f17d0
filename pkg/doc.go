// Package pkg provides the core libraries for flowviz layered flow diagrams.
//
// # Overview
//
// Flowviz draws flow diagrams: columns of labeled boxes, one column per
// depth, joined by smooth two-arc curves from each box to the boxes it
// flows into. The pkg directory is organized into four main areas:
//
//  1. [flow] and [io] - Node store, layer index and record ingestion
//  2. [render] - Layout, connector routing, label placement and canvases
//  3. [cache], [observability] - Infrastructure shared by CLI and server
//  4. [pipeline], [api] - Orchestration (ingest → layout → render) and the
//     HTTP render service
//
// # Architecture
//
// The typical data flow through flowviz:
//
//	TSV records
//	     ↓
//	[io] package (parse records, build the graph)
//	     ↓
//	[flow] package (nodes, adjacency, layers)
//	     ↓
//	[render/flowchart] package (layout, connectors, labels)
//	     ↓
//	[render/canvas] / [render/nodelink] (SVG, PNG, JPEG, DOT, JSON)
//	     ↓
//	[render] converters (PDF, EPS)
//
// # Quick Start
//
// Read records and render an SVG:
//
//	import (
//	    "github.com/matzehuels/flowviz/pkg/io"
//	    "github.com/matzehuels/flowviz/pkg/render/canvas"
//	    "github.com/matzehuels/flowviz/pkg/render/flowchart"
//	    "github.com/matzehuels/flowviz/pkg/style"
//	)
//
//	g, _ := io.ReadTSV(r, io.WithHeader())
//	cfg := style.Default()
//	cv, _ := canvas.NewSVG(cfg.Width, cfg.Height)
//	_, _ = flowchart.New(cfg).Draw(g, cv)
//	svg := cv.Bytes()
//
// Most callers use [pipeline.Runner] instead, which adds caching, hooks and
// the remaining output formats.
//
// # Main Packages
//
// [flow] - Arena of nodes keyed by identifier with idempotent adjacency
// lists and the depth-to-identifiers layer map.
//
// [render/flowchart] - Layout assignment, connector routing and label
// placement, driven by an immutable [style.Config].
//
// [style] - Drawing configuration loaded from TOML or YAML and validated.
//
// [pipeline] - Runs ingest, layout and render with artifact caching.
//
// [api] - chi HTTP server exposing POST /render, /healthz and /metrics.
package pkg
