package graph

import (
	"slices"
	"sort"
	"strconv"

	"github.com/utkarsh5026/loggraph/pkg/hides"
)

// HideBranch collapses the simple chain between up and down into a single
// HideBranch edge.
//
// The chain follows visible down edges from up. Every node strictly between
// up and down must have exactly one visible up edge and one visible down
// edge, and there must be at least one such node. The new edge carries the
// branch of the first edge of the chain.
//
// The returned interval covers old rows [row(up)+1, row(down)+1).
func (g *Graph) HideBranch(up, down NodeID) (Interval, error) {
	if !g.validNode(up) || !g.validNode(down) {
		return Interval{}, NewErrNoChain(up, down, ErrUnknownNode.Error())
	}
	if !g.IsVisible(up) || !g.IsVisible(down) {
		return Interval{}, NewErrNoChain(up, down, "both endpoints must be visible")
	}
	if g.nodes[up].layout >= g.nodes[down].layout {
		return Interval{}, NewErrNoChain(up, down, "up node must be above down node")
	}

	nodes, edges, err := g.findChain(up, down)
	if err != nil {
		return Interval{}, err
	}

	hideEdge := g.addEdge(HideBranch, up, down, g.edges[edges[0]].branch)
	frag := &Fragment{
		HideEdge: hideEdge,
		Up:       up,
		Down:     down,
		Nodes:    nodes,
		Edges:    edges,
	}
	for _, n := range nodes {
		g.nodeHiddenBy[n] = hideEdge
	}
	for _, e := range edges {
		g.edgeHiddenBy[e] = hideEdge
	}
	g.fragments[hideEdge] = frag
	upLayout := g.nodes[up].layout
	g.fragmentsByUp[upLayout] = append(g.fragmentsByUp[upLayout], hideEdge)

	iv := g.relayout(upLayout+1, g.nodes[down].layout)
	g.recalculateHidden(upLayout)
	g.logger.Debug("branch hidden",
		"up", up,
		"down", down,
		"edge", hideEdge,
		"nodes", len(nodes),
		"interval", iv.String())
	return iv, nil
}

// findChain returns the collapsible nodes and edges between up and down
func (g *Graph) findChain(up, down NodeID) ([]NodeID, []EdgeID, error) {
	downLayout := g.nodes[down].layout
	reason := "no visible path"

	for _, first := range g.visibleEdges(g.nodes[up].down) {
		var nodes []NodeID
		edges := []EdgeID{first}
		cur := g.edges[first].to

		for cur != down {
			if g.nodes[cur].layout >= downLayout {
				break
			}
			ups := g.visibleEdges(g.nodes[cur].up)
			downs := g.visibleEdges(g.nodes[cur].down)
			if len(ups) != 1 || len(downs) != 1 {
				reason = "chain branches at node " + strconv.Itoa(int(cur))
				break
			}
			nodes = append(nodes, cur)
			edges = append(edges, downs[0])
			cur = g.edges[downs[0]].to
		}

		if cur != down {
			continue
		}
		if len(nodes) == 0 {
			reason = "nothing to hide between adjacent nodes"
			continue
		}
		return nodes, edges, nil
	}

	return nil, nil, NewErrNoChain(up, down, reason)
}

// ShowBranch expands a HideBranch edge back into the chain it replaced.
//
// Showing anything but a live, visible HideBranch edge fails with an error
// wrapping ErrInvalidState and leaves the graph untouched.
func (g *Graph) ShowBranch(id EdgeID) (Interval, error) {
	if !g.validEdge(id) {
		return Interval{}, NewErrNotHideEdge(id, ErrUnknownEdge.Error())
	}
	e := g.edges[id]
	if e.typ != HideBranch {
		return Interval{}, NewErrNotHideEdge(id, "edge type is "+e.typ.String())
	}
	if e.dead {
		return Interval{}, NewErrNotHideEdge(id, "edge was already shown")
	}
	if outer, ok := g.edgeHiddenBy[id]; ok {
		return Interval{}, NewErrNotHideEdge(id, "edge is collapsed inside edge "+strconv.Itoa(int(outer)))
	}
	frag, ok := g.fragments[id]
	if !ok {
		return Interval{}, NewErrBrokenChain(e.from, id, "hide edge has no fragment")
	}

	for _, n := range frag.Nodes {
		delete(g.nodeHiddenBy, n)
	}
	for _, fe := range frag.Edges {
		delete(g.edgeHiddenBy, fe)
	}
	delete(g.fragments, id)

	upLayout := g.nodes[e.from].layout
	g.fragmentsByUp[upLayout] = slices.DeleteFunc(g.fragmentsByUp[upLayout], func(x EdgeID) bool {
		return x == id
	})
	if len(g.fragmentsByUp[upLayout]) == 0 {
		delete(g.fragmentsByUp, upLayout)
	}

	g.nodes[e.from].down = removeEdge(g.nodes[e.from].down, id)
	g.nodes[e.to].up = removeEdge(g.nodes[e.to].up, id)
	g.edges[id].dead = true

	iv := g.relayout(upLayout+1, g.nodes[e.to].layout)
	g.recalculateHidden(upLayout)
	g.logger.Debug("branch shown",
		"edge", id,
		"nodes", len(frag.Nodes),
		"interval", iv.String())
	return iv, nil
}

func removeEdge(list []EdgeID, id EdgeID) []EdgeID {
	return slices.DeleteFunc(slices.Clone(list), func(x EdgeID) bool {
		return x == id
	})
}

// Fragments returns every live fragment ordered by hide edge
func (g *Graph) Fragments() []Fragment {
	ids := make([]EdgeID, 0, len(g.fragments))
	for id := range g.fragments {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]Fragment, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneFragment(g.fragments[id]))
	}
	return out
}

// FragmentByHideEdge returns the fragment behind a HideBranch edge
func (g *Graph) FragmentByHideEdge(id EdgeID) (Fragment, bool) {
	f, ok := g.fragments[id]
	if !ok {
		return Fragment{}, false
	}
	return cloneFragment(f), true
}

// FragmentOf returns the fragment that directly collapsed edge id
func (g *Graph) FragmentOf(id EdgeID) (Fragment, bool) {
	hideEdge, ok := g.edgeHiddenBy[id]
	if !ok {
		return Fragment{}, false
	}
	return g.FragmentByHideEdge(hideEdge)
}

// Show expands a fragment. It makes *Graph a FragmentManager.
func (g *Graph) Show(f Fragment) (Interval, error) {
	return g.ShowBranch(f.HideEdge)
}

// CollapsesFrom reports the fragments whose up node lies on layout row row,
// for the hidden commit calculator. Only real commits are listed as hidden.
func (g *Graph) CollapsesFrom(row int) []hides.Collapse {
	ids := g.fragmentsByUp[row]
	if len(ids) == 0 {
		return nil
	}

	out := make([]hides.Collapse, 0, len(ids))
	for _, id := range ids {
		f := g.fragments[id]
		col := hides.Collapse{
			UpRow:   g.nodes[f.Up].layout,
			DownRow: g.nodes[f.Down].layout,
		}
		for _, n := range f.Nodes {
			if g.nodes[n].typ != EdgeNode {
				col.Hidden = append(col.Hidden, g.nodes[n].commit.Hash)
			}
		}
		out = append(out, col)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DownRow < out[j].DownRow
	})
	return out
}

// HiddenCommits returns the hidden commit calculator of the graph. It is
// built on first use and recalculated by every later HideBranch and
// ShowBranch, so callers may hold on to it.
func (g *Graph) HiddenCommits() *hides.Calculator {
	if g.hidden == nil {
		g.hidden = hides.NewCalculator(g.model, g)
		g.hidden.Calculate()
	}
	return g.hidden
}

// recalculateHidden refreshes the calculator below the up node of a
// fragment that was just added or removed
func (g *Graph) recalculateHidden(upLayout int) {
	if g.hidden != nil {
		g.hidden.Recalculate(upLayout + 1)
	}
}

func cloneFragment(f *Fragment) Fragment {
	return Fragment{
		HideEdge: f.HideEdge,
		Up:       f.Up,
		Down:     f.Down,
		Nodes:    slices.Clone(f.Nodes),
		Edges:    slices.Clone(f.Edges),
	}
}
