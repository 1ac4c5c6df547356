package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/loggraph/pkg/commit"
)

// sideBranchLog: x forks off the main line and joins it again at c4.
//
//	c1
//	| x
//	c2|
//	c3|
//	c4
//	c5
const sideBranchLog = `
c1 c2
x c4
c2 c3
c3 c4
c4 c5
c5
`

// nestedLog is sideBranchLog with x joining at c3 instead
const nestedLog = `
c1 c2
x c3
c2 c3
c3 c4
c4 c5
c5
`

// countingFragments records every fragment the fixer expands
type countingFragments struct {
	*Graph
	shown []EdgeID
}

func (c *countingFragments) Show(f Fragment) (Interval, error) {
	c.shown = append(c.shown, f.HideEdge)
	return c.Graph.Show(f)
}

func nodeOf(t *testing.T, g *Graph, hash string) NodeID {
	t.Helper()
	id, ok := g.NodeByCommit(commit.Hash(hash))
	require.True(t, ok, "commit %s", hash)
	return id
}

func TestBranchShowFixer_SingleFragment(t *testing.T) {
	g := buildLog(t, sideBranchLog)
	c1, c4, c5 := nodeOf(t, g, "c1"), nodeOf(t, g, "c4"), nodeOf(t, g, "c5")

	g.SetBranchVisible(1, false)
	_, err := g.HideBranch(c1, c5)
	require.NoError(t, err)
	require.True(t, g.IsCollapsed(c4))

	prev := g.VisibleNodes()
	g.SetBranchVisible(1, true)
	next := g.VisibleNodes()

	// the side branch now points into the collapsed run
	assert.ErrorIs(t, g.Validate(), ErrCorruptedGraph)

	fragments := &countingFragments{Graph: g}
	fixer := NewBranchShowFixer(g, g, fragments)

	require.NoError(t, fixer.FixCrashBranches(prev, next))
	assert.Len(t, fragments.shown, 1)
	assert.True(t, g.IsVisible(c4))
	assert.Empty(t, g.Fragments())
	assertContiguous(t, g)

	// a second pass finds nothing left to repair
	require.NoError(t, fixer.FixCrashBranches(prev, next))
	assert.Len(t, fragments.shown, 1)
}

func TestBranchShowFixer_NestedFragments(t *testing.T) {
	g := buildLog(t, nestedLog)
	c1, c2, c3 := nodeOf(t, g, "c1"), nodeOf(t, g, "c2"), nodeOf(t, g, "c3")
	c4, c5 := nodeOf(t, g, "c4"), nodeOf(t, g, "c5")

	g.SetBranchVisible(1, false)
	_, err := g.HideBranch(c2, c4)
	require.NoError(t, err)
	_, err = g.HideBranch(c1, c5)
	require.NoError(t, err)
	require.Len(t, g.Fragments(), 2)

	prev := g.VisibleNodes()
	g.SetBranchVisible(1, true)
	next := g.VisibleNodes()

	fragments := &countingFragments{Graph: g}
	fixer := NewBranchShowFixer(g, g, fragments)

	require.NoError(t, fixer.FixCrashBranches(prev, next))
	assert.Len(t, fragments.shown, 2)
	assert.True(t, g.IsVisible(c3))
	assertContiguous(t, g)
}

// mergeChainLog: the merge commit m sits inside a linear run once its side
// parent x is filtered out.
//
//	c1
//	m
//	| x
//	c2|
//	c3
const mergeChainLog = `
c1 m
m c2 x
x c3
c2 c3
c3
`

func TestBranchShowFixer_CollapsedMergeParent(t *testing.T) {
	g := buildLog(t, mergeChainLog)
	c1, m, x, c3 := nodeOf(t, g, "c1"), nodeOf(t, g, "m"), nodeOf(t, g, "x"), nodeOf(t, g, "c3")

	g.SetBranchVisible(g.nodes[x].branch, false)
	_, err := g.HideBranch(c1, c3)
	require.NoError(t, err)
	require.True(t, g.IsCollapsed(m))

	prev := g.VisibleNodes()
	g.SetBranchVisible(g.nodes[x].branch, true)
	next := g.VisibleNodes()

	// x is drawn again but its parent edge comes out of the collapsed run
	err = g.Validate()
	require.ErrorIs(t, err, ErrCorruptedGraph)
	var broken *ErrBrokenChain
	require.True(t, errors.As(err, &broken))
	assert.Equal(t, x, broken.Node)

	fragments := &countingFragments{Graph: g}
	fixer := NewBranchShowFixer(g, g, fragments)

	require.NoError(t, fixer.FixCrashBranches(prev, next))
	assert.Len(t, fragments.shown, 1)
	assert.True(t, g.IsVisible(m))
	assert.NoError(t, g.Validate())
	assert.Empty(t, g.Fragments())
	assertContiguous(t, g)

	require.NoError(t, fixer.FixCrashBranches(prev, next))
	assert.Len(t, fragments.shown, 1)
}

func TestBranchShowFixer_NothingToRepair(t *testing.T) {
	g := buildLog(t, linearLog(5))
	_, err := g.HideBranch(0, 4)
	require.NoError(t, err)

	fragments := &countingFragments{Graph: g}
	fixer := NewBranchShowFixer(g, g, fragments)

	// everything drawn is new, but the only open edge is the hide edge
	require.NoError(t, fixer.FixCrashBranches(map[NodeID]struct{}{}, g.VisibleNodes()))
	assert.Empty(t, fragments.shown)
	assert.Len(t, g.Fragments(), 1)
}

// lyingDecorator claims a drawn node is collapsed
type lyingDecorator struct {
	*Graph
	collapsed NodeID
}

func (d lyingDecorator) IsVisible(id NodeID) bool {
	return id != d.collapsed && d.Graph.IsVisible(id)
}

func (d lyingDecorator) IsCollapsed(id NodeID) bool {
	return id == d.collapsed || d.Graph.IsCollapsed(id)
}

func TestBranchShowFixer_CorruptedGraph(t *testing.T) {
	g := buildLog(t, linearLog(3))
	fixer := NewBranchShowFixer(g, lyingDecorator{Graph: g, collapsed: 1}, g)

	err := fixer.FixCrashBranches(map[NodeID]struct{}{}, g.VisibleNodes())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptedGraph)

	var broken *ErrBrokenChain
	require.True(t, errors.As(err, &broken))
	assert.Equal(t, NodeID(1), broken.Node)
}
