package graph

import (
	"log/slog"
)

// Decorator answers visibility questions for the fixer
type Decorator interface {
	// IsVisible reports whether the node is drawn
	IsVisible(id NodeID) bool

	// IsCollapsed reports whether the node sits inside a fragment
	IsCollapsed(id NodeID) bool
}

// FragmentManager finds and expands collapsed fragments
type FragmentManager interface {
	FragmentOf(edge EdgeID) (Fragment, bool)
	Show(f Fragment) (Interval, error)
}

// BranchShowFixer repairs the graph after an external visibility change.
//
// When nodes come back into view their edges may lead into or out of
// collapsed fragments. The fixer expands the smallest set of fragments that
// makes every such neighbour visible again.
type BranchShowFixer struct {
	graph     *Graph
	decorator Decorator
	fragments FragmentManager
	logger    *slog.Logger
}

// NewBranchShowFixer creates a fixer for g. Passing g itself as decorator and
// fragment manager is the normal setup.
func NewBranchShowFixer(g *Graph, decorator Decorator, fragments FragmentManager) *BranchShowFixer {
	return &BranchShowFixer{
		graph:     g,
		decorator: decorator,
		fragments: fragments,
		logger:    g.logger.With("component", "branch-show-fixer"),
	}
}

// FixCrashBranches expands the fragments hiding the neighbours of nodes that
// are in next but not in prev: targets of their down edges, and sources of
// their up edges (a merge commit collapsed while its side branch was
// filtered). A second call with the same sets does nothing.
func (f *BranchShowFixer) FixCrashBranches(prev, next map[NodeID]struct{}) error {
	for _, id := range f.essentialNodes(prev, next) {
		for _, e := range f.graph.OpenDownEdges(id) {
			if err := f.repair(id, e, f.graph.edges[e].to); err != nil {
				return err
			}
		}
		for _, e := range f.graph.OpenUpEdges(id) {
			if err := f.repair(id, e, f.graph.edges[e].from); err != nil {
				return err
			}
		}
	}
	return nil
}

// repair shows other, the far end of edge e of node id, if it is collapsed
func (f *BranchShowFixer) repair(id NodeID, e EdgeID, other NodeID) error {
	if f.decorator.IsVisible(other) || !f.decorator.IsCollapsed(other) {
		return nil
	}
	if err := f.showNode(other); err != nil {
		f.logger.Error("cannot repair hidden edge end",
			"node", id,
			"edge", e,
			"other", other,
			"error", err)
		return err
	}
	return nil
}

// essentialNodes returns the drawn nodes that just became visible
func (f *BranchShowFixer) essentialNodes(prev, next map[NodeID]struct{}) []NodeID {
	var out []NodeID
	for _, row := range f.graph.rows {
		for _, id := range row.nodes {
			if _, ok := next[id]; !ok {
				continue
			}
			if _, ok := prev[id]; ok {
				continue
			}
			if f.decorator.IsVisible(id) {
				out = append(out, id)
			}
		}
	}
	return out
}

// showNode expands enclosing fragments until id is no longer collapsed
func (f *BranchShowFixer) showNode(id NodeID) error {
	limit := f.graph.NodeCount()
	for steps := 0; f.decorator.IsCollapsed(id); steps++ {
		if steps > limit {
			return NewErrBrokenChain(id, -1, "node stays collapsed after expanding every enclosing fragment")
		}

		frag, err := f.enclosingFragment(id)
		if err != nil {
			return err
		}
		iv, err := f.fragments.Show(frag)
		if err != nil {
			return err
		}
		f.logger.Debug("fragment shown for hidden target",
			"target", id,
			"edge", frag.HideEdge,
			"interval", iv.String())
	}
	return nil
}

// enclosingFragment walks down the collapsed chain from id to the first
// node that is not collapsed and returns the fragment of the last edge.
func (f *BranchShowFixer) enclosingFragment(id NodeID) (Fragment, error) {
	cur := id
	for steps := 0; steps <= f.graph.NodeCount(); steps++ {
		e, frag, ok := f.chainEdge(cur)
		if !ok {
			return Fragment{}, NewErrBrokenChain(cur, -1, "collapsed node has no collapsed down edge")
		}

		next := f.graph.edges[e].to
		if !f.decorator.IsCollapsed(next) {
			return frag, nil
		}
		cur = next
	}
	return Fragment{}, NewErrBrokenChain(id, -1, "hidden chain does not reach a visible node")
}

// chainEdge returns the collapsed down edge of id that belongs to the same
// fragment as id
func (f *BranchShowFixer) chainEdge(id NodeID) (EdgeID, Fragment, bool) {
	for _, e := range f.graph.StructuralDownEdges(id) {
		frag, ok := f.fragments.FragmentOf(e)
		if ok && frag.Contains(id) {
			return e, frag, true
		}
	}
	return -1, Fragment{}, false
}
