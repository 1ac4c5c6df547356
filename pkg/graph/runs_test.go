package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearRuns(t *testing.T) {
	tests := []struct {
		name string
		log  string
		want []Run
	}{
		{name: "linear", log: linearLog(5), want: []Run{{Up: 0, Down: 4, Len: 3}}},
		{name: "too short", log: linearLog(2), want: nil},
		{name: "both sides of a merge", log: mergeLog, want: []Run{
			{Up: 0, Down: 3, Len: 2},
			{Up: 0, Down: 3, Len: 2},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildLog(t, tt.log)
			assert.Equal(t, tt.want, g.LinearRuns())
		})
	}
}

func TestLinearRuns_SkipsCollapsed(t *testing.T) {
	g := buildLog(t, linearLog(5))
	_, err := g.HideBranch(0, 4)
	require.NoError(t, err)

	assert.Empty(t, g.LinearRuns())
}

func TestCheckRoundTrips(t *testing.T) {
	for _, log := range []string{linearLog(6), mergeLog, sideBranchLog, nestedLog} {
		g := buildLog(t, log)
		before := g.NodeRows()

		n, err := g.CheckRoundTrips()
		require.NoError(t, err)
		assert.Positive(t, n)
		assert.Equal(t, before, g.NodeRows())
		assert.Empty(t, g.Fragments())
	}
}
