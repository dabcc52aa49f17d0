package flow

import (
	"errors"
	"image/color"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.Ingest] when the record ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrNegativeDepth is returned by [Graph.Ingest] when a record declares
	// a depth below zero. Depths index the layer map and the style tables.
	ErrNegativeDepth = errors.New("node depth must not be negative")
)

// Defaults for nodes created before their own record is seen.
const (
	DefaultWidth  = 40
	DefaultHeight = 30
)

// DefaultColor is the fill and border color of auto-created nodes.
var DefaultColor = color.NRGBA{R: 0, G: 0, B: 255, A: 255}

// Index addresses a node inside a [Graph]. Indices are stable for the
// lifetime of the graph because nodes are never deleted.
type Index int

// NoIndex is returned by lookups that find nothing.
const NoIndex Index = -1

// Node is a labeled box in a layered flow diagram.
//
// Position and size are written by the layout pass; before layout a node
// carries the defaults (40x30 at the origin). Adjacency lists hold indices
// into the owning graph and never contain duplicates.
type Node struct {
	ID     string
	Depth  int
	Label  string
	Fill   color.NRGBA
	Border color.NRGBA

	X, Y          float64 // top-left corner
	Width, Height float64

	declared   bool
	downstream []Index
	upstream   []Index
}

// Declared reports whether the node's own record has been ingested, as
// opposed to a node known only as someone's neighbour.
func (n *Node) Declared() bool { return n.declared }

// Downstream returns the ordered downstream adjacency list. The slice is
// owned by the graph and must not be modified.
func (n *Node) Downstream() []Index { return n.downstream }

// Upstream returns the ordered upstream adjacency list. The slice is owned
// by the graph and must not be modified.
func (n *Node) Upstream() []Index { return n.upstream }

// CenterX returns the horizontal center of the node's box.
func (n *Node) CenterX() float64 { return n.X + n.Width/2 }

// CenterY returns the vertical center of the node's box.
func (n *Node) CenterY() float64 { return n.Y + n.Height/2 }

// Graph is an arena of nodes keyed by identifier, plus the layer index that
// groups declared identifiers by depth in first-seen order.
//
// The zero value is not usable - use New to create a valid Graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes  []*Node
	byID   map[string]Index
	layers map[int][]Index

	legacyLayers bool
}

// Option configures a Graph.
type Option func(*Graph)

// WithLegacyLayers keeps a node in every layer it was ever declared in.
//
// By default, re-declaring a node at a different depth moves it to the new
// layer. With this option the node stays in its earlier layer as well, so
// the layout pass places it once per layer and the last placement wins.
func WithLegacyLayers() Option {
	return func(g *Graph) { g.legacyLayers = true }
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		byID:   make(map[string]Index),
		layers: make(map[int][]Index),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Ensure returns the index of the node with the given ID, creating a node
// with default depth, size and colors if none exists.
func (g *Graph) Ensure(id string) Index {
	if i, ok := g.byID[id]; ok {
		return i
	}
	i := Index(len(g.nodes))
	g.nodes = append(g.nodes, &Node{
		ID:     id,
		Fill:   DefaultColor,
		Border: DefaultColor,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	})
	g.byID[id] = i
	return i
}

// Lookup returns the index of the node with the given ID.
func (g *Graph) Lookup(id string) (Index, bool) {
	i, ok := g.byID[id]
	return i, ok
}

// Node returns the node at index i, or nil if i is out of range.
func (g *Graph) Node(i Index) *Node {
	if i < 0 || int(i) >= len(g.nodes) {
		return nil
	}
	return g.nodes[i]
}

// NodeByID returns the node with the given ID, or nil.
func (g *Graph) NodeByID(id string) *Node {
	if i, ok := g.byID[id]; ok {
		return g.nodes[i]
	}
	return nil
}

// Nodes returns all nodes in creation order.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// NodeCount returns the number of nodes, including auto-created neighbours.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// AddDownstream appends to to from's downstream list. Adding an existing
// relationship again is a no-op; the return value reports whether the list
// changed.
func (g *Graph) AddDownstream(from, to Index) bool {
	n := g.nodes[from]
	if slices.Contains(n.downstream, to) {
		return false
	}
	n.downstream = append(n.downstream, to)
	return true
}

// AddUpstream appends up to of's upstream list. Adding an existing
// relationship again is a no-op; the return value reports whether the list
// changed.
func (g *Graph) AddUpstream(of, up Index) bool {
	n := g.nodes[of]
	if slices.Contains(n.upstream, up) {
		return false
	}
	n.upstream = append(n.upstream, up)
	return true
}

// ClearUpstream empties of's upstream list.
func (g *Graph) ClearUpstream(of Index) {
	g.nodes[of].upstream = nil
}

// UpstreamPosition returns the position of up in of's upstream list, or -1
// if the relationship is not registered on of's side.
func (g *Graph) UpstreamPosition(of, up Index) int {
	return slices.Index(g.nodes[of].upstream, up)
}

// Connected reports whether from lists to downstream and to lists from
// upstream. Only such mutual pairs are drawn.
func (g *Graph) Connected(from, to Index) bool {
	return slices.Contains(g.nodes[from].downstream, to) && g.UpstreamPosition(to, from) >= 0
}

// EdgeCount returns the number of mutually registered edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for i, n := range g.nodes {
		for _, to := range n.downstream {
			if g.UpstreamPosition(to, Index(i)) >= 0 {
				count++
			}
		}
	}
	return count
}

// Layer returns the node indices declared at depth d in first-seen order.
// The slice is owned by the graph and must not be modified.
func (g *Graph) Layer(d int) []Index { return g.layers[d] }

// HasLayer reports whether any node has been declared at depth d.
func (g *Graph) HasLayer(d int) bool {
	_, ok := g.layers[d]
	return ok
}

// Depths returns every populated depth in ascending order.
func (g *Graph) Depths() []int {
	return slices.Sorted(maps.Keys(g.layers))
}

// LayerCount returns the number of populated depths.
func (g *Graph) LayerCount() int { return len(g.layers) }

// setLayer records i at depth d.
func (g *Graph) setLayer(i Index, prev, d int, wasDeclared bool) {
	if wasDeclared && prev != d && !g.legacyLayers {
		g.removeFromLayer(i, prev)
	}
	if !slices.Contains(g.layers[d], i) {
		g.layers[d] = append(g.layers[d], i)
	}
}

func (g *Graph) removeFromLayer(i Index, d int) {
	layer := g.layers[d]
	pos := slices.Index(layer, i)
	if pos < 0 {
		return
	}
	layer = slices.Delete(layer, pos, pos+1)
	if len(layer) == 0 {
		delete(g.layers, d)
		return
	}
	g.layers[d] = layer
}
