// Package flow provides the node store and layer index behind layered flow
// diagrams.
//
// # Overview
//
// A flow diagram is a set of labeled boxes arranged in columns by integer
// depth, joined by curves from each box's right edge to the left edge of
// the boxes it flows into. This package holds the bookkeeping: nodes keyed
// by identifier, their upstream and downstream adjacency, and the
// depth-to-identifiers layer map that the layout pass walks.
//
// # Basic Usage
//
// Create a graph with [New] and feed it one [Record] per declared node with
// [Graph.Ingest]. Records may mention neighbours before those neighbours are
// declared; such nodes are created at depth 0 with a 40x30 blue box and are
// filled in when their own record arrives:
//
//	g := flow.New()
//	g.Ingest(flow.Record{ID: "crude", Depth: 0, Downstream: []string{"fuel"}})
//	g.Ingest(flow.Record{ID: "fuel", Depth: 1})
//
// # Arena
//
// Nodes live in a slice and refer to each other by [Index]. Adjacency lists
// never hold the same index twice; [Graph.AddDownstream] and
// [Graph.AddUpstream] are idempotent. An edge exists for drawing purposes
// only when both sides list each other, see [Graph.Connected].
//
// # Layers
//
// [Graph.Layer] returns declared identifiers for a depth in first-seen
// order. A node re-declared at another depth moves to the new layer. The
// older behaviour, where the node also stays in its first layer, is
// available through [WithLegacyLayers].
//
// # Concurrency
//
// Graph is not safe for concurrent use. A graph is built, laid out and
// drawn by a single owner and discarded after one render.
package flow
