package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/loggraph/pkg/commit"
	"github.com/utkarsh5026/loggraph/pkg/common/logger"
)

func TestRenderer_Linear(t *testing.T) {
	g := buildLog(t, "c3 c2 -- third\nc2 c1 -- second\nc1 -- first\n")

	out := NewRenderer(g, false).Render(true)
	assert.Equal(t, "● c3 third\n● c2 second\n◆ c1 first\n", out)
}

func TestRenderer_Merge(t *testing.T) {
	g := buildLog(t, mergeLog)

	lines := strings.Split(strings.TrimRight(NewRenderer(g, false).Render(true), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "◎ m", lines[0])
	assert.Equal(t, "● │ c", lines[1])
	assert.Equal(t, "│ ● b", lines[2])
	assert.Equal(t, "◆ a", lines[3])
}

func TestRenderer_HiddenRun(t *testing.T) {
	g := buildLog(t, linearLog(5))
	_, err := g.HideBranch(0, 4)
	require.NoError(t, err)

	r := NewRenderer(g, false)
	assert.Equal(t, "● c1 [+3 hidden]", r.RenderRow(0))
	assert.Equal(t, "◆ c5", r.RenderRow(1))
	assert.Empty(t, r.RenderRow(2))
	assert.Equal(t, "● c1 [+3 hidden]\n┆\n◆ c5\n", r.Render(false))
}

func TestRenderer_EndCommit(t *testing.T) {
	g := buildLog(t, "b a\n")
	assert.Equal(t, "◇ b\n", NewRenderer(g, false).Render(true))
}

func TestRenderer_LongSubject(t *testing.T) {
	subject := strings.Repeat("ä", 70)
	g := buildLog(t, "c2 c1 -- "+subject+"\nc1\n")

	line := NewRenderer(g, false).RenderRow(0)
	assert.Equal(t, "● c2 "+strings.Repeat("ä", 57)+"...", line)
}

func TestRenderer_Detailed(t *testing.T) {
	seq, err := commit.ParseLog(strings.NewReader("c3 c2 -- third\nc2 c1 -- second\nc1 -- first\n"))
	require.NoError(t, err)
	seq.CommitAt(0).Author = "Ann"
	seq.CommitAt(2).Author = "Bob"
	g, err := Build(seq, WithLogger(logger.Discard()))
	require.NoError(t, err)

	expected := "● c3 third\n" +
		"│ Author: Ann\n" +
		"│     third\n" +
		"│\n" +
		"● c2 second\n" +
		"│     second\n" +
		"│\n" +
		"◆ c1 first\n" +
		"  Author: Bob\n" +
		"      first\n"
	assert.Equal(t, expected, NewRenderer(g, false).Render(false))
}

func TestRenderer_DetailedMerge(t *testing.T) {
	g := buildLog(t, mergeLog)

	expected := "◎ m\n" +
		"│ │\n" +
		"● │ c\n" +
		"│ │\n" +
		"│ ● b\n" +
		"│\n" +
		"◆ a\n"
	assert.Equal(t, expected, NewRenderer(g, false).Render(false))
}
