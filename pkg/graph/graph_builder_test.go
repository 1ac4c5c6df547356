package graph

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/loggraph/pkg/commit"
	"github.com/utkarsh5026/loggraph/pkg/common/logger"
)

// Helper functions to create test graphs

func buildLog(t *testing.T, log string) *Graph {
	t.Helper()
	seq, err := commit.ParseLog(strings.NewReader(log))
	require.NoError(t, err)
	g, err := Build(seq, WithLogger(logger.Discard()))
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	return g
}

func linearLog(count int) string {
	var b strings.Builder
	for i := 1; i <= count; i++ {
		b.WriteString("c" + strconv.Itoa(i))
		if i < count {
			b.WriteString(" c" + strconv.Itoa(i+1))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func rowHashes(t *testing.T, g *Graph) [][]string {
	t.Helper()
	var out [][]string
	for _, r := range g.NodeRows() {
		var row []string
		for _, id := range r.Nodes() {
			n, err := g.Node(id)
			require.NoError(t, err)
			if n.Type == EdgeNode {
				row = append(row, "|")
			} else {
				row = append(row, string(n.Commit.Hash))
			}
		}
		out = append(out, row)
	}
	return out
}

// mergeLog:
//
//	m
//	|\
//	c |
//	| b
//	|/
//	a
const mergeLog = `
m c b
c a
b a
a
`

func TestGraphBuilder_LinearHistory(t *testing.T) {
	g := buildLog(t, linearLog(5))

	assert.Equal(t, 5, g.Height())
	assert.Equal(t, 1, g.Width())
	assert.Equal(t, 5, g.NodeCount())
	assert.Equal(t, 4, g.EdgeCount())
	assert.Equal(t, 1, g.BranchCount())

	for i, r := range g.NodeRows() {
		assert.Equal(t, i, r.RowIndex())
		require.Equal(t, 1, r.Len())
		n, err := g.Node(r.Nodes()[0])
		require.NoError(t, err)
		assert.Equal(t, NodeID(i), n.ID)
		assert.Equal(t, CommitNode, n.Type)
		assert.Equal(t, 0, n.Lane)
		assert.Equal(t, i, n.Row)
	}

	first, err := g.Node(0)
	require.NoError(t, err)
	require.Len(t, first.DownEdges, 1)
	e, err := g.Edge(first.DownEdges[0])
	require.NoError(t, err)
	assert.Equal(t, Usual, e.Type)
	assert.Equal(t, NodeID(0), e.From)
	assert.Equal(t, NodeID(1), e.To)
}

func TestGraphBuilder_MergeCommit(t *testing.T) {
	g := buildLog(t, mergeLog)

	assert.Equal(t, [][]string{{"m"}, {"c", "|"}, {"|", "b"}, {"a"}}, rowHashes(t, g))
	assert.Equal(t, 2, g.Width())
	assert.Equal(t, 6, g.NodeCount())
	assert.Equal(t, 6, g.EdgeCount())
	assert.Equal(t, 2, g.BranchCount())

	m, err := g.Node(0)
	require.NoError(t, err)
	assert.Len(t, m.DownEdges, 2)

	a, err := g.Node(3)
	require.NoError(t, err)
	assert.Len(t, a.UpEdges, 2)
	assert.Equal(t, Branch(0), a.Branch)

	b, err := g.Node(2)
	require.NoError(t, err)
	assert.Equal(t, Branch(1), b.Branch)
	assert.Equal(t, 1, b.Lane)

	// the edge node on row 1 belongs to the merge edge and shows its child
	row1, err := g.Row(1)
	require.NoError(t, err)
	en, err := g.Node(row1.Nodes()[1])
	require.NoError(t, err)
	assert.Equal(t, EdgeNode, en.Type)
	assert.Equal(t, commit.Hash("m"), en.Commit.Hash)
	assert.Equal(t, Branch(1), en.Branch)
}

func TestGraphBuilder_EndCommit(t *testing.T) {
	g := buildLog(t, "b a\nc\n")

	b, err := g.Node(0)
	require.NoError(t, err)
	assert.Equal(t, EndCommitNode, b.Type)
	assert.Empty(t, b.DownEdges)

	c, err := g.Node(1)
	require.NoError(t, err)
	assert.Equal(t, CommitNode, c.Type)
}

func TestGraphBuilder_EmptyHistory(t *testing.T) {
	g, err := Build(commit.Sequence{}, WithLogger(logger.Discard()))
	require.NoError(t, err)

	assert.Equal(t, 0, g.Height())
	assert.Equal(t, 0, g.Width())
	assert.Empty(t, g.NodeRows())
	assert.NoError(t, g.Validate())
}

func TestGraphBuilder_Errors(t *testing.T) {
	tests := []struct {
		name string
		log  string
	}{
		{name: "parent before child", log: "a\nb a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := commit.ParseLog(strings.NewReader(tt.log))
			require.NoError(t, err)
			_, err = Build(seq, WithLogger(logger.Discard()))
			assert.Error(t, err)
		})
	}
}

func TestGraph_NodeByCommit(t *testing.T) {
	g := buildLog(t, mergeLog)

	id, ok := g.NodeByCommit("b")
	require.True(t, ok)
	assert.Equal(t, NodeID(2), id)

	_, ok = g.NodeByCommit("zzz")
	assert.False(t, ok)

	_, err := g.Node(NodeID(100))
	assert.ErrorIs(t, err, ErrUnknownNode)
	_, err = g.Edge(EdgeID(-1))
	assert.ErrorIs(t, err, ErrUnknownEdge)
	_, err = g.Row(4)
	assert.Error(t, err)
}

func TestGraph_RowsAreSnapshots(t *testing.T) {
	g := buildLog(t, linearLog(5))
	before := g.NodeRows()

	_, err := g.HideBranch(0, 4)
	require.NoError(t, err)

	assert.Len(t, before, 5)
	for i, r := range before {
		assert.Equal(t, i, r.RowIndex())
	}
}
