package graph

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/utkarsh5026/loggraph/pkg/commit"
	"github.com/utkarsh5026/loggraph/pkg/common/logger"
)

// BuildOption configures Build
type BuildOption func(*buildOptions)

type buildOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger used by the graph and its fixer
func WithLogger(l *slog.Logger) BuildOption {
	return func(o *buildOptions) {
		o.logger = l
	}
}

// laneSlot is an edge in flight: it left a commit above and is heading to
// the parent at row target, occupying one lane on every row in between.
type laneSlot struct {
	target int
	last   NodeID
	branch Branch
	child  NodeID
}

// GraphBuilder lays a commit sequence out into rows.
//
// The builder uses a lane allocation algorithm that:
//  1. Puts commit i on layout row i
//  2. Keeps a commit in the lane of the first edge arriving at it
//  3. Continues the first parent in the commit's own lane
//  4. Gives every other parent the first free lane
//  5. Drops an edge node on every row an edge crosses, so every edge joins
//     neighbouring rows
type GraphBuilder struct {
	graph *Graph
	index map[commit.Hash]int

	// lanes[i] is the edge occupying lane i, nil if free
	lanes []*laneSlot
}

// Build creates a graph from a commit sequence.
//
// Commits must be ordered children first (see commit.TopoSort). Parents
// that are not part of the model turn their child into an end commit node.
func Build(model commit.CommitsModel, opts ...BuildOption) (*Graph, error) {
	o := buildOptions{logger: logger.With("component", "graph")}
	for _, opt := range opts {
		opt(&o)
	}

	b := &GraphBuilder{
		graph: newGraph(model, o.logger),
		index: make(map[commit.Hash]int, model.Len()),
		lanes: make([]*laneSlot, 0, 10),
	}
	if err := b.build(); err != nil {
		return nil, err
	}
	return b.graph, nil
}

func (b *GraphBuilder) build() error {
	g := b.graph
	n := g.model.Len()

	for i := 0; i < n; i++ {
		c := g.model.CommitAt(i)
		if c == nil {
			return fmt.Errorf("commit %d is nil", i)
		}
		if _, dup := b.index[c.Hash]; dup {
			return fmt.Errorf("duplicate commit %s", c.Hash)
		}
		b.index[c.Hash] = i
	}

	branches, err := b.assignBranches()
	if err != nil {
		return err
	}

	// commit nodes first, so NodeID(i) is commit i
	for i := 0; i < n; i++ {
		c := g.model.CommitAt(i)
		typ := CommitNode
		for _, p := range c.Parents {
			if _, ok := b.index[p]; !ok {
				typ = EndCommitNode
				break
			}
		}
		id := g.addNode(node{typ: typ, commit: c, branch: branches[i], layout: i, lane: -1})
		g.byCommit[c.Hash] = id
	}

	g.layoutNodes = make([][]NodeID, n)
	for i := 0; i < n; i++ {
		b.processRow(i, branches)
	}

	for i := range g.layoutNodes {
		row := g.layoutNodes[i]
		sort.Slice(row, func(a, c int) bool {
			return g.nodes[row[a]].lane < g.nodes[row[c]].lane
		})
	}

	g.relayout(0, n-1)

	g.logger.Debug("graph built",
		"commits", n,
		"nodes", len(g.nodes),
		"edges", len(g.edges),
		"lanes", g.Width(),
		"branches", g.branches)
	return nil
}

// assignBranches walks first-parent chains from the top: every commit not
// yet claimed starts a new branch that follows its first parents until it
// meets a commit already claimed by an earlier chain.
func (b *GraphBuilder) assignBranches() ([]Branch, error) {
	g := b.graph
	n := g.model.Len()
	branches := make([]Branch, n)
	for i := range branches {
		branches[i] = -1
	}

	for i := 0; i < n; i++ {
		c := g.model.CommitAt(i)
		for _, p := range c.Parents {
			if idx, ok := b.index[p]; ok && idx <= i {
				return nil, fmt.Errorf("commit %s is listed after its child %s", p, c.Hash)
			}
		}
	}

	for i := 0; i < n; i++ {
		if branches[i] >= 0 {
			continue
		}
		branch := Branch(g.branches)
		g.branches++

		for cur := i; cur >= 0 && branches[cur] < 0; {
			branches[cur] = branch
			cur = b.firstParent(cur)
		}
	}
	return branches, nil
}

// firstParent returns the row of the first parent of row, or -1 if it is
// not loaded
func (b *GraphBuilder) firstParent(row int) int {
	c := b.graph.model.CommitAt(row)
	if len(c.Parents) == 0 {
		return -1
	}
	if idx, ok := b.index[c.Parents[0]]; ok {
		return idx
	}
	return -1
}

// processRow places commit row on its lane, terminates the edges arriving
// at it, extends the edges crossing it and opens edges to its parents.
func (b *GraphBuilder) processRow(row int, branches []Branch) {
	g := b.graph
	self := NodeID(row)
	g.layoutNodes[row] = append(g.layoutNodes[row], self)

	lane := -1
	for i, slot := range b.lanes {
		if slot == nil || slot.target != row {
			continue
		}
		if lane < 0 {
			lane = i
		}
		g.addEdge(Usual, slot.last, self, slot.branch)
		b.lanes[i] = nil
	}
	if lane < 0 {
		lane = b.allocateLane(-1)
	}
	g.nodes[self].lane = lane
	if lane > g.maxLane {
		g.maxLane = lane
	}

	for i, slot := range b.lanes {
		if slot == nil {
			continue
		}
		en := g.addNode(node{
			typ:    EdgeNode,
			commit: g.nodes[slot.child].commit,
			branch: slot.branch,
			layout: row,
			lane:   i,
			span:   [2]NodeID{slot.child, NodeID(slot.target)},
		})
		g.addEdge(Usual, slot.last, en, slot.branch)
		slot.last = en
		g.layoutNodes[row] = append(g.layoutNodes[row], en)
	}

	c := g.model.CommitAt(row)
	for pi, p := range c.Parents {
		target, ok := b.index[p]
		if !ok {
			continue
		}
		branch := branches[row]
		if pi > 0 {
			branch = branches[target]
		}
		slot := &laneSlot{target: target, last: self, branch: branch, child: self}
		if pi == 0 {
			b.lanes[lane] = slot
		} else {
			b.lanes[b.allocateLane(lane)] = slot
		}
	}
}

// allocateLane returns the first free lane other than skip, growing the
// lane list when every lane is taken
func (b *GraphBuilder) allocateLane(skip int) int {
	for i, slot := range b.lanes {
		if slot == nil && i != skip {
			return i
		}
	}
	b.lanes = append(b.lanes, nil)
	if len(b.lanes)-1 == skip {
		b.lanes = append(b.lanes, nil)
	}
	return len(b.lanes) - 1
}
