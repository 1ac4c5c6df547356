package graph

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/utkarsh5026/loggraph/pkg/commit"
)

// Glyphs used to draw the graph
const (
	LineVertical = "│"
	LineHidden   = "┆"

	CommitNormal  = "●"
	CommitMerge   = "◎"
	CommitInitial = "◆"
	CommitEnd     = "◇"
)

// Colors for different branches
var branchColors = []lipgloss.Color{
	lipgloss.Color("#00D7FF"), // Cyan
	lipgloss.Color("#AF87FF"), // Purple
	lipgloss.Color("#00FF87"), // Green
	lipgloss.Color("#FFD700"), // Gold
	lipgloss.Color("#FF5F87"), // Pink
	lipgloss.Color("#5FD7FF"), // Light Blue
	lipgloss.Color("#FFD787"), // Light Orange
	lipgloss.Color("#87FFD7"), // Aqua
}

var (
	hashColor   = lipgloss.Color("#FFD700")
	authorColor = lipgloss.Color("#5FD7FF")
)

// GraphRenderer renders the visible rows of a graph as text
type GraphRenderer struct {
	graph *Graph
	color bool
}

// NewRenderer creates a new graph renderer. With color false the output is
// plain text.
func NewRenderer(graph *Graph, color bool) *GraphRenderer {
	return &GraphRenderer{
		graph: graph,
		color: color,
	}
}

// Render renders the graph as a string
//
// If compact is true, uses one line per visible row
// Otherwise, uses multi-line detailed format
func (r *GraphRenderer) Render(compact bool) string {
	if compact {
		return r.renderCompact()
	}
	return r.renderDetailed()
}

func (r *GraphRenderer) renderCompact() string {
	var output strings.Builder
	for _, row := range r.graph.rows {
		output.WriteString(r.RenderRow(row.index))
		output.WriteString("\n")
	}
	return output.String()
}

// renderDetailed writes each commit row followed by its author and full
// subject, drawn against the lanes that continue below the row
func (r *GraphRenderer) renderDetailed() string {
	var output strings.Builder
	for i, row := range r.graph.rows {
		output.WriteString(r.RenderRow(row.index))
		output.WriteString("\n")

		c := r.rowCommit(row)
		if c == nil {
			continue
		}
		continuation := r.continuationLine(row)
		if c.Author != "" {
			output.WriteString(fmt.Sprintf("%s Author: %s\n",
				continuation,
				r.colorize(c.Author, authorColor)))
		}
		if c.Subject != "" {
			output.WriteString(fmt.Sprintf("%s     %s\n", continuation, c.Subject))
		}

		if i < len(r.graph.rows)-1 {
			output.WriteString(strings.TrimRight(continuation, " ") + "\n")
		}
	}
	return output.String()
}

// RenderRow renders a single visible row: lane glyphs, then the commit of
// the row and a note for every fragment hanging below it
func (r *GraphRenderer) RenderRow(index int) string {
	if index < 0 || index >= len(r.graph.rows) {
		return ""
	}
	row := r.graph.rows[index]

	width := r.graph.Width()
	cells := make([]string, width)
	for i := range cells {
		cells[i] = " "
	}

	var label string
	for _, id := range row.nodes {
		n := r.graph.nodes[id]
		if n.lane < 0 || n.lane >= width {
			continue
		}
		cells[n.lane] = r.colorize(r.glyph(id), r.branchColor(n.branch))
		if n.typ != EdgeNode {
			label = r.label(id)
		}
	}

	for _, hide := range r.hideEdgesCrossing(row) {
		e := r.graph.edges[hide]
		lane := r.graph.nodes[e.from].lane
		if lane >= 0 && lane < width && cells[lane] == " " {
			cells[lane] = r.colorize(LineHidden, r.branchColor(e.branch))
		}
	}

	line := strings.TrimRight(strings.Join(cells, " "), " ")
	if label != "" {
		line += " " + label
	}
	return line
}

// continuationLine draws the lanes between row and the next one: a line
// under every visible down edge of the row, a dotted line under hide edges
func (r *GraphRenderer) continuationLine(row NodeRow) string {
	width := r.graph.Width()
	cells := make([]string, width)
	for i := range cells {
		cells[i] = " "
	}

	for _, id := range row.nodes {
		for _, e := range r.graph.visibleEdges(r.graph.nodes[id].down) {
			edge := r.graph.edges[e]
			lane := r.graph.nodes[edge.to].lane
			if lane < 0 || lane >= width {
				continue
			}
			glyph := LineVertical
			if edge.typ == HideBranch {
				glyph = LineHidden
			}
			cells[lane] = r.colorize(glyph, r.branchColor(edge.branch))
		}
	}

	for _, hide := range r.hideEdgesCrossing(row) {
		e := r.graph.edges[hide]
		lane := r.graph.nodes[e.from].lane
		if lane >= 0 && lane < width && cells[lane] == " " {
			cells[lane] = r.colorize(LineHidden, r.branchColor(e.branch))
		}
	}

	return strings.Join(cells, " ")
}

// rowCommit returns the commit drawn on row, if any
func (r *GraphRenderer) rowCommit(row NodeRow) *commit.Commit {
	for _, id := range row.nodes {
		if n := r.graph.nodes[id]; n.typ != EdgeNode {
			return n.commit
		}
	}
	return nil
}

func (r *GraphRenderer) glyph(id NodeID) string {
	n := r.graph.nodes[id]
	switch {
	case n.typ == EdgeNode:
		return LineVertical
	case n.typ == EndCommitNode:
		return CommitEnd
	case n.commit.IsInitial():
		return CommitInitial
	case n.commit.IsMerge():
		return CommitMerge
	default:
		return CommitNormal
	}
}

func (r *GraphRenderer) label(id NodeID) string {
	n := r.graph.nodes[id]
	parts := []string{r.colorize(n.commit.Hash.Short(), hashColor)}

	message := n.commit.ShortSubject(60)
	if message != "" {
		parts = append(parts, message)
	}

	for _, e := range r.graph.nodes[id].down {
		if frag, ok := r.graph.fragments[e]; ok && r.graph.isEdgeVisible(e) {
			parts = append(parts, fmt.Sprintf("[+%d hidden]", countCommits(r.graph, frag)))
		}
	}
	return strings.Join(parts, " ")
}

// hideEdgesCrossing returns the visible hide edges passing over a row
func (r *GraphRenderer) hideEdgesCrossing(row NodeRow) []EdgeID {
	var out []EdgeID
	for id, f := range r.graph.fragments {
		if !r.graph.isEdgeVisible(id) {
			continue
		}
		upRow := r.graph.RowIndex(f.Up)
		downRow := r.graph.RowIndex(f.Down)
		if upRow < row.index && row.index < downRow {
			out = append(out, id)
		}
	}
	return out
}

// countCommits counts the real commits behind a fragment, nested ones included
func countCommits(g *Graph, f *Fragment) int {
	count := 0
	for _, id := range f.Nodes {
		if g.nodes[id].typ != EdgeNode {
			count++
		}
	}
	for _, e := range f.Edges {
		if inner, ok := g.fragments[e]; ok {
			count += countCommits(g, inner)
		}
	}
	return count
}

// branchColor returns the color for a specific branch
func (r *GraphRenderer) branchColor(b Branch) lipgloss.Color {
	if b < 0 {
		return branchColors[0]
	}
	return branchColors[int(b)%len(branchColors)]
}

// colorize applies color to text
func (r *GraphRenderer) colorize(text string, color lipgloss.Color) string {
	if !r.color {
		return text
	}
	style := lipgloss.NewStyle().Foreground(color)
	return style.Render(text)
}
