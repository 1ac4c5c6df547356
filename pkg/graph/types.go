package graph

import (
	"fmt"
	"slices"

	"github.com/utkarsh5026/loggraph/pkg/commit"
)

// NodeID addresses a node in the graph arena
type NodeID int

// EdgeID addresses an edge in the graph arena
type EdgeID int

// NoNode is returned where a node lookup has no result
const NoNode NodeID = -1

// Branch identifies a logical line of development. The builder assigns one
// branch per first-parent chain, numbered from 0 in row order.
type Branch int

// NodeType distinguishes real commits from synthetic layout nodes
type NodeType int

const (
	// CommitNode is a loaded commit with all parents loaded
	CommitNode NodeType = iota

	// EdgeNode is a pass-through point of an edge crossing a row
	EdgeNode

	// EndCommitNode is a commit with at least one parent outside the log
	EndCommitNode
)

func (t NodeType) String() string {
	switch t {
	case CommitNode:
		return "commit"
	case EdgeNode:
		return "edge"
	case EndCommitNode:
		return "end-commit"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// EdgeType distinguishes structural edges from collapsed runs
type EdgeType int

const (
	// Usual is a real adjacency between neighbouring layout rows
	Usual EdgeType = iota

	// HideBranch stands in for a collapsed run of nodes
	HideBranch
)

func (t EdgeType) String() string {
	switch t {
	case Usual:
		return "usual"
	case HideBranch:
		return "hide-branch"
	default:
		return fmt.Sprintf("EdgeType(%d)", int(t))
	}
}

// Node is a read-only view of a graph vertex.
//
// Views are snapshots: they do not follow later hide/show calls.
type Node struct {
	ID     NodeID
	Type   NodeType
	Branch Branch
	Lane   int

	// Commit is the commit this node shows. Edge nodes report the commit
	// the edge starts from, the nearest real commit above them.
	Commit *commit.Commit

	// Row is the visual row index, or -1 when the node is not shown
	Row int

	// UpEdges and DownEdges list the currently visible edges
	UpEdges   []EdgeID
	DownEdges []EdgeID
}

// Visible reports whether the node was shown when the view was taken
func (n Node) Visible() bool {
	return n.Row >= 0
}

// Edge is a read-only view of a graph edge. From is the upper node.
type Edge struct {
	ID     EdgeID
	Type   EdgeType
	From   NodeID
	To     NodeID
	Branch Branch
}

// NodeRow is one visual row: the nodes drawn on it, ordered by lane.
//
// Rows are immutable. Every mutation of the graph replaces the affected rows
// and renumbers the ones after them.
type NodeRow struct {
	index  int
	layout int
	nodes  []NodeID
}

// RowIndex returns the row's position in the row list
func (r NodeRow) RowIndex() int {
	return r.index
}

// LayoutRow returns the row of the fully expanded layout this row shows
func (r NodeRow) LayoutRow() int {
	return r.layout
}

// Nodes returns the nodes of the row ordered by lane
func (r NodeRow) Nodes() []NodeID {
	return slices.Clone(r.nodes)
}

// Len returns the number of nodes on the row
func (r NodeRow) Len() int {
	return len(r.nodes)
}

// Interval describes a splice of the row list.
//
// Rows [From, To) of the old list were replaced by Size rows starting at
// From. Rows at or after To moved by Size-(To-From).
type Interval struct {
	From int
	To   int
	Size int
}

// Len returns the number of replaced rows
func (iv Interval) Len() int {
	return iv.To - iv.From
}

// Shift returns how far rows after the interval moved
func (iv Interval) Shift() int {
	return iv.Size - iv.Len()
}

// Contains reports whether old row index row was replaced
func (iv Interval) Contains(row int) bool {
	return row >= iv.From && row < iv.To
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d) -> %d rows", iv.From, iv.To, iv.Size)
}

// Fragment is a collapsed run of nodes behind a single HideBranch edge.
type Fragment struct {
	// HideEdge is the synthetic edge that replaced the run
	HideEdge EdgeID

	// Up and Down are the visible endpoints of the run
	Up   NodeID
	Down NodeID

	// Nodes lists the collapsed nodes top to bottom
	Nodes []NodeID

	// Edges lists the collapsed edges top to bottom
	Edges []EdgeID
}

// Contains reports whether n is one of the collapsed nodes
func (f Fragment) Contains(n NodeID) bool {
	return slices.Contains(f.Nodes, n)
}
