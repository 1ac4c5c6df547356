package graph

import (
	"fmt"
	"slices"
)

// Run is a maximal simple chain that HideBranch accepts: every node strictly
// between Up and Down has one visible up edge and one visible down edge.
type Run struct {
	Up   NodeID
	Down NodeID
	Len  int
}

// LinearRuns lists the collapsible runs of the current view, top to bottom
func (g *Graph) LinearRuns() []Run {
	var runs []Run
	for _, r := range g.rows {
		for _, up := range r.nodes {
			if g.isChainLink(up) {
				continue
			}
			for _, first := range g.visibleEdges(g.nodes[up].down) {
				cur := g.edges[first].to
				length := 0
				for g.isChainLink(cur) {
					length++
					cur = g.edges[g.visibleEdges(g.nodes[cur].down)[0]].to
				}
				if length > 0 {
					runs = append(runs, Run{Up: up, Down: cur, Len: length})
				}
			}
		}
	}
	return runs
}

func (g *Graph) isChainLink(id NodeID) bool {
	return len(g.visibleEdges(g.nodes[id].up)) == 1 && len(g.visibleEdges(g.nodes[id].down)) == 1
}

// CheckRoundTrips hides and shows again every linear run, one at a time,
// and checks that the graph stays valid and comes back to the same rows.
// It returns the number of runs checked.
func (g *Graph) CheckRoundTrips() (int, error) {
	runs := g.LinearRuns()
	for _, run := range runs {
		before := g.NodeRows()

		iv, err := g.HideBranch(run.Up, run.Down)
		if err != nil {
			return 0, fmt.Errorf("hide %d..%d: %w", run.Up, run.Down, err)
		}
		if err := g.Validate(); err != nil {
			return 0, fmt.Errorf("after hiding %d..%d: %w", run.Up, run.Down, err)
		}

		hide := g.nodes[run.Up].down[len(g.nodes[run.Up].down)-1]
		if _, err := g.ShowBranch(hide); err != nil {
			return 0, fmt.Errorf("show %d..%d: %w", run.Up, run.Down, err)
		}
		if err := g.Validate(); err != nil {
			return 0, fmt.Errorf("after showing %d..%d: %w", run.Up, run.Down, err)
		}

		if !slices.EqualFunc(before, g.NodeRows(), sameRow) {
			return 0, NewErrBrokenChain(run.Up, hide,
				fmt.Sprintf("rows differ after round trip over %s", iv))
		}
	}
	return len(runs), nil
}

func sameRow(a, b NodeRow) bool {
	return a.index == b.index && a.layout == b.layout && slices.Equal(a.nodes, b.nodes)
}
