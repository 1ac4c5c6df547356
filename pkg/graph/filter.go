package graph

import (
	"slices"
)

// SetBranchVisible shows or hides every node of branch b.
//
// This is the external visibility change a log viewer applies when a user
// toggles a branch. It only edits rows; edges from visible nodes into
// collapsed fragments that become exposed are left for BranchShowFixer.
// Unknown branches and no-op changes return an empty interval.
func (g *Graph) SetBranchVisible(b Branch, visible bool) Interval {
	if b < 0 || int(b) >= g.branches || g.hiddenBranches[b] == !visible {
		return Interval{}
	}

	if visible {
		delete(g.hiddenBranches, b)
	} else {
		g.hiddenBranches[b] = true
	}

	iv := g.relayout(0, len(g.layoutNodes)-1)
	g.logger.Debug("branch visibility changed",
		"branch", b,
		"visible", visible,
		"rows", len(g.rows))
	return iv
}

// HiddenBranches returns the branches currently filtered out
func (g *Graph) HiddenBranches() []Branch {
	out := make([]Branch, 0, len(g.hiddenBranches))
	for b := range g.hiddenBranches {
		out = append(out, b)
	}
	slices.Sort(out)
	return out
}
