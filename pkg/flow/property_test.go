package flow

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestGraphInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("adding a relationship twice leaves the lists unchanged", prop.ForAll(
		func(pairs []int) bool {
			g := New()
			for i := 0; i+1 < len(pairs); i += 2 {
				a := g.Ensure(fmt.Sprint(pairs[i]))
				b := g.Ensure(fmt.Sprint(pairs[i+1]))
				g.AddDownstream(a, b)
				g.AddUpstream(b, a)
			}
			before := make([][2]int, g.NodeCount())
			for i, n := range g.Nodes() {
				before[i] = [2]int{len(n.Downstream()), len(n.Upstream())}
			}
			for i := 0; i+1 < len(pairs); i += 2 {
				a, _ := g.Lookup(fmt.Sprint(pairs[i]))
				b, _ := g.Lookup(fmt.Sprint(pairs[i+1]))
				if g.AddDownstream(a, b) || g.AddUpstream(b, a) {
					return false
				}
			}
			for i, n := range g.Nodes() {
				if before[i] != [2]int{len(n.Downstream()), len(n.Upstream())} {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 8)),
	))

	properties.Property("declared nodes live in exactly their current layer", prop.ForAll(
		func(decls []int) bool {
			g := New()
			for i := 0; i+1 < len(decls); i += 2 {
				id := fmt.Sprint(decls[i])
				if _, err := g.Ingest(Record{ID: id, Depth: decls[i+1]}); err != nil {
					return false
				}
			}
			seen := make(map[Index]int)
			for _, d := range g.Depths() {
				for _, idx := range g.Layer(d) {
					seen[idx]++
					if g.Node(idx).Depth != d {
						return false
					}
				}
			}
			for i, n := range g.Nodes() {
				if n.Declared() && seen[Index(i)] != 1 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 5)),
	))

	properties.TestingRun(t)
}
