package graph

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/utkarsh5026/loggraph/pkg/commit"
	"github.com/utkarsh5026/loggraph/pkg/hides"
)

type node struct {
	typ    NodeType
	commit *commit.Commit
	branch Branch
	layout int
	lane   int

	// up and down hold every live edge touching the node, collapsed or not
	up   []EdgeID
	down []EdgeID

	// span holds the commit nodes an edge node lies between
	span [2]NodeID
}

type edge struct {
	typ    EdgeType
	from   NodeID
	to     NodeID
	branch Branch
	dead   bool
}

// Graph is the commit graph of a log together with its visibility state.
//
// Nodes and edges live in arenas and are addressed by NodeID and EdgeID.
// Commit node IDs equal the commit's position in the source model. Hiding a
// run never deletes arena entries: collapsed nodes and edges are marked and
// restored on show, so row layout is a pure function of the visibility state.
//
// Thread Safety:
// Graph is not thread-safe. All mutations must be serialized by the caller,
// and readers must not observe the graph while a mutation runs.
type Graph struct {
	model commit.CommitsModel
	nodes []node
	edges []edge

	// layoutNodes[i] lists the nodes of fully expanded row i by lane
	layoutNodes [][]NodeID
	rows        []NodeRow
	byCommit    map[commit.Hash]NodeID
	maxLane     int
	branches    int

	fragments      map[EdgeID]*Fragment
	nodeHiddenBy   map[NodeID]EdgeID
	edgeHiddenBy   map[EdgeID]EdgeID
	fragmentsByUp  map[int][]EdgeID
	hiddenBranches map[Branch]bool

	// hidden is built lazily by HiddenCommits
	hidden *hides.Calculator

	logger *slog.Logger
}

func newGraph(model commit.CommitsModel, logger *slog.Logger) *Graph {
	return &Graph{
		model:          model,
		nodes:          make([]node, 0, model.Len()),
		byCommit:       make(map[commit.Hash]NodeID, model.Len()),
		fragments:      make(map[EdgeID]*Fragment),
		nodeHiddenBy:   make(map[NodeID]EdgeID),
		edgeHiddenBy:   make(map[EdgeID]EdgeID),
		fragmentsByUp:  make(map[int][]EdgeID),
		hiddenBranches: make(map[Branch]bool),
		logger:         logger,
	}
}

func (g *Graph) addNode(n node) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	if n.lane > g.maxLane {
		g.maxLane = n.lane
	}
	return id
}

func (g *Graph) addEdge(typ EdgeType, from, to NodeID, branch Branch) EdgeID {
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, edge{
		typ:    typ,
		from:   from,
		to:     to,
		branch: branch,
	})
	g.nodes[from].down = append(g.nodes[from].down, id)
	g.nodes[to].up = append(g.nodes[to].up, id)
	return id
}

// Commits returns the commit sequence the graph was built from
func (g *Graph) Commits() commit.CommitsModel {
	return g.model
}

// NodeCount returns the size of the node arena
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the size of the edge arena, removed hide edges included
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Width returns the number of lanes used by the layout
func (g *Graph) Width() int {
	if len(g.nodes) == 0 {
		return 0
	}
	return g.maxLane + 1
}

// Height returns the number of visible rows
func (g *Graph) Height() int {
	return len(g.rows)
}

// BranchCount returns the number of branches assigned by the builder
func (g *Graph) BranchCount() int {
	return g.branches
}

// NodeRows returns a copy of the visible rows
func (g *Graph) NodeRows() []NodeRow {
	return slices.Clone(g.rows)
}

// Row returns the visible row at index
func (g *Graph) Row(index int) (NodeRow, error) {
	if index < 0 || index >= len(g.rows) {
		return NodeRow{}, fmt.Errorf("row %d out of range [0, %d)", index, len(g.rows))
	}
	return g.rows[index], nil
}

// NodeByCommit returns the node showing the given commit
func (g *Graph) NodeByCommit(hash commit.Hash) (NodeID, bool) {
	id, ok := g.byCommit[hash]
	return id, ok
}

// Node returns a view of node id
func (g *Graph) Node(id NodeID) (Node, error) {
	if !g.validNode(id) {
		return Node{}, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	n := g.nodes[id]
	return Node{
		ID:        id,
		Type:      n.typ,
		Branch:    n.branch,
		Lane:      n.lane,
		Commit:    n.commit,
		Row:       g.RowIndex(id),
		UpEdges:   g.visibleEdges(n.up),
		DownEdges: g.visibleEdges(n.down),
	}, nil
}

// Edge returns a view of edge id
func (g *Graph) Edge(id EdgeID) (Edge, error) {
	if !g.validEdge(id) {
		return Edge{}, fmt.Errorf("edge %d: %w", id, ErrUnknownEdge)
	}
	e := g.edges[id]
	return Edge{
		ID:     id,
		Type:   e.typ,
		From:   e.from,
		To:     e.to,
		Branch: e.branch,
	}, nil
}

func (g *Graph) validNode(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

func (g *Graph) validEdge(id EdgeID) bool {
	return id >= 0 && int(id) < len(g.edges)
}

// RowIndex returns the visible row of node id, or -1 if it is not shown
func (g *Graph) RowIndex(id NodeID) int {
	if !g.validNode(id) || !g.IsVisible(id) {
		return -1
	}
	layout := g.nodes[id].layout
	i := sort.Search(len(g.rows), func(i int) bool {
		return g.rows[i].layout >= layout
	})
	if i < len(g.rows) && g.rows[i].layout == layout {
		return i
	}
	return -1
}

// IsVisible reports whether node id is currently drawn
func (g *Graph) IsVisible(id NodeID) bool {
	return g.validNode(id) && !g.IsFiltered(id) && !g.IsCollapsed(id)
}

// IsCollapsed reports whether node id is hidden inside a fragment
func (g *Graph) IsCollapsed(id NodeID) bool {
	_, ok := g.nodeHiddenBy[id]
	return ok
}

// IsFiltered reports whether node id belongs to a hidden branch. Edge nodes
// are filtered as soon as either commit they connect is.
func (g *Graph) IsFiltered(id NodeID) bool {
	if !g.validNode(id) {
		return false
	}
	n := g.nodes[id]
	if n.typ == EdgeNode {
		return g.hiddenBranches[g.nodes[n.span[0]].branch] || g.hiddenBranches[g.nodes[n.span[1]].branch]
	}
	return g.hiddenBranches[n.branch]
}

// IsEdgeCollapsed reports whether edge id is hidden inside a fragment
func (g *Graph) IsEdgeCollapsed(id EdgeID) bool {
	_, ok := g.edgeHiddenBy[id]
	return ok
}

func (g *Graph) isEdgeVisible(id EdgeID) bool {
	e := g.edges[id]
	return !e.dead && !g.IsEdgeCollapsed(id) && g.IsVisible(e.from) && g.IsVisible(e.to)
}

func (g *Graph) visibleEdges(ids []EdgeID) []EdgeID {
	out := make([]EdgeID, 0, len(ids))
	for _, id := range ids {
		if g.isEdgeVisible(id) {
			out = append(out, id)
		}
	}
	return out
}

// StructuralDownEdges returns every live down edge of node id whatever the
// visibility of its endpoints, collapsed edges included.
func (g *Graph) StructuralDownEdges(id NodeID) []EdgeID {
	if !g.validNode(id) {
		return nil
	}
	return slices.Clone(g.nodes[id].down)
}

// OpenDownEdges returns the down edges of node id that are not collapsed
// into a fragment. Their targets may still be hidden: this is what the
// branch show fixer inspects.
func (g *Graph) OpenDownEdges(id NodeID) []EdgeID {
	if !g.validNode(id) {
		return nil
	}
	out := make([]EdgeID, 0, len(g.nodes[id].down))
	for _, e := range g.nodes[id].down {
		if !g.IsEdgeCollapsed(e) {
			out = append(out, e)
		}
	}
	return out
}

// OpenUpEdges returns the up edges of node id that are not collapsed into a
// fragment. A source that is collapsed while id is drawn is a dangling edge.
func (g *Graph) OpenUpEdges(id NodeID) []EdgeID {
	if !g.validNode(id) {
		return nil
	}
	out := make([]EdgeID, 0, len(g.nodes[id].up))
	for _, e := range g.nodes[id].up {
		if !g.IsEdgeCollapsed(e) {
			out = append(out, e)
		}
	}
	return out
}

// VisibleNodes returns the set of nodes currently drawn
func (g *Graph) VisibleNodes() map[NodeID]struct{} {
	out := make(map[NodeID]struct{})
	for _, r := range g.rows {
		for _, id := range r.nodes {
			out[id] = struct{}{}
		}
	}
	return out
}

// relayout recomputes the rows showing layout rows [fromLayout, toLayout]
// and splices them into the row list.
func (g *Graph) relayout(fromLayout, toLayout int) Interval {
	if fromLayout < 0 {
		fromLayout = 0
	}
	if toLayout >= len(g.layoutNodes) {
		toLayout = len(g.layoutNodes) - 1
	}

	from := sort.Search(len(g.rows), func(i int) bool {
		return g.rows[i].layout >= fromLayout
	})
	to := sort.Search(len(g.rows), func(i int) bool {
		return g.rows[i].layout > toLayout
	})

	var fresh []NodeRow
	for layout := fromLayout; layout <= toLayout; layout++ {
		var visible []NodeID
		for _, id := range g.layoutNodes[layout] {
			if g.IsVisible(id) {
				visible = append(visible, id)
			}
		}
		if len(visible) > 0 {
			fresh = append(fresh, NodeRow{layout: layout, nodes: visible})
		}
	}

	rows := make([]NodeRow, 0, len(g.rows)-(to-from)+len(fresh))
	rows = append(rows, g.rows[:from]...)
	rows = append(rows, fresh...)
	rows = append(rows, g.rows[to:]...)
	for i := from; i < len(rows); i++ {
		rows[i].index = i
	}
	g.rows = rows

	return Interval{From: from, To: to, Size: len(fresh)}
}
