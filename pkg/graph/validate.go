package graph

import (
	"fmt"
)

// Validate checks the row and fragment invariants of the graph.
//
// It reports the first violation found, wrapped in ErrCorruptedGraph:
//   - rows are numbered 0..n-1 in layout order and never empty
//   - every visible node sits on the row of its layout, every drawn node is visible
//   - no open edge joins a visible node to a collapsed one, in either direction
//   - every fragment's hide edge is live and its members point back at it
func (g *Graph) Validate() error {
	drawn := make(map[NodeID]int)
	for i, r := range g.rows {
		if r.index != i {
			return fmt.Errorf("%w: row %d has index %d", ErrCorruptedGraph, i, r.index)
		}
		if i > 0 && g.rows[i-1].layout >= r.layout {
			return fmt.Errorf("%w: row %d is out of layout order", ErrCorruptedGraph, i)
		}
		if len(r.nodes) == 0 {
			return fmt.Errorf("%w: row %d is empty", ErrCorruptedGraph, i)
		}
		for _, id := range r.nodes {
			if !g.IsVisible(id) {
				return fmt.Errorf("%w: row %d draws hidden node %d", ErrCorruptedGraph, i, id)
			}
			if g.nodes[id].layout != r.layout {
				return fmt.Errorf("%w: node %d drawn on the wrong row", ErrCorruptedGraph, id)
			}
			drawn[id] = i
		}
	}

	for i := range g.nodes {
		id := NodeID(i)
		if !g.IsVisible(id) {
			continue
		}
		if _, ok := drawn[id]; !ok {
			return fmt.Errorf("%w: visible node %d is not drawn", ErrCorruptedGraph, id)
		}
		for _, e := range g.OpenDownEdges(id) {
			if g.IsCollapsed(g.edges[e].to) {
				return NewErrBrokenChain(id, e, "edge leads into a collapsed fragment")
			}
		}
		for _, e := range g.OpenUpEdges(id) {
			if g.IsCollapsed(g.edges[e].from) {
				return NewErrBrokenChain(id, e, "edge comes out of a collapsed fragment")
			}
		}
	}

	for hideEdge, f := range g.fragments {
		e := g.edges[hideEdge]
		if e.dead || e.typ != HideBranch || e.from != f.Up || e.to != f.Down {
			return fmt.Errorf("%w: fragment %d has a stale hide edge", ErrCorruptedGraph, hideEdge)
		}
		for _, n := range f.Nodes {
			if g.nodeHiddenBy[n] != hideEdge {
				return fmt.Errorf("%w: node %d is not owned by fragment %d", ErrCorruptedGraph, n, hideEdge)
			}
		}
		for _, fe := range f.Edges {
			if g.edgeHiddenBy[fe] != hideEdge {
				return fmt.Errorf("%w: edge %d is not owned by fragment %d", ErrCorruptedGraph, fe, hideEdge)
			}
		}
	}

	return nil
}
