package flow

import "image/color"

// Record is one pre-parsed node declaration.
//
// Downstream lists the nodes this node flows into. Upstream, when non-nil,
// replaces the node's upstream list; a nil Upstream leaves whatever earlier
// records registered in place.
type Record struct {
	ID         string
	Downstream []string
	Upstream   []string
	Depth      int
	Label      string
	Fill       color.NRGBA
	Border     color.NRGBA
}

// Ingest applies a record to the graph.
//
// The declared node is created if needed and its depth, label and colors
// are overwritten (last write wins). Each downstream neighbour is created
// with defaults if unknown and linked in both directions. A non-nil
// Upstream clears the node's upstream list and re-adds the listed nodes on
// this node's side only; the upstream node's downstream list is untouched,
// so the pair is drawn only if that node's own record lists this one.
func (g *Graph) Ingest(r Record) (Index, error) {
	if r.ID == "" {
		return NoIndex, ErrInvalidNodeID
	}
	if r.Depth < 0 {
		return NoIndex, ErrNegativeDepth
	}

	i := g.Ensure(r.ID)
	n := g.nodes[i]
	prev, wasDeclared := n.Depth, n.declared

	n.Depth = r.Depth
	n.Label = r.Label
	n.Fill = r.Fill
	n.Border = r.Border
	n.declared = true
	g.setLayer(i, prev, r.Depth, wasDeclared)

	for _, id := range r.Downstream {
		ds := g.Ensure(id)
		g.AddDownstream(i, ds)
		g.AddUpstream(ds, i)
	}

	if r.Upstream != nil {
		g.ClearUpstream(i)
		for _, id := range r.Upstream {
			g.AddUpstream(i, g.Ensure(id))
		}
	}
	return i, nil
}
