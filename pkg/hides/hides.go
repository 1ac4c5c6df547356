// Package hides tracks, row by row, which commits of a log are collapsed
// behind hide edges.
//
// The Calculator is a pure forward scan over a commit sequence. It knows
// nothing about branches or graph structure: collapse and expand events are
// applied to the graph elsewhere and the calculator is asked to recalculate
// from the first affected row onward.
package hides

import (
	"fmt"
	"slices"

	"github.com/utkarsh5026/loggraph/pkg/commit"
)

// Collapse describes one collapsed run of commits in layout row coordinates.
//
// UpRow and DownRow are the rows of the visible endpoints; Hidden lists the
// commits strictly between them that are currently not shown.
type Collapse struct {
	UpRow   int
	DownRow int
	Hidden  []commit.Hash
}

// CollapseSource reports the collapses that open directly below a row.
type CollapseSource interface {
	CollapsesFrom(row int) []Collapse
}

// HideCommits is the snapshot of hidden commits at one row
type HideCommits struct {
	rowIndex int
	hidden   []commit.Hash
	set      map[commit.Hash]struct{}
}

// RowIndex returns the row this snapshot belongs to
func (h HideCommits) RowIndex() int {
	return h.rowIndex
}

// Hidden returns the hidden commits in row order
func (h HideCommits) Hidden() []commit.Hash {
	return slices.Clone(h.hidden)
}

// IsHidden reports whether hash is hidden at this row
func (h HideCommits) IsHidden(hash commit.Hash) bool {
	_, ok := h.set[hash]
	return ok
}

// Len returns the number of hidden commits
func (h HideCommits) Len() int {
	return len(h.hidden)
}

// Calculator produces one HideCommits snapshot per commit row.
type Calculator struct {
	model     commit.CommitsModel
	source    CollapseSource
	snapshots []HideCommits

	// open[i] holds the collapses still open after row i was processed
	open [][]Collapse

	rank map[commit.Hash]int
}

// NewCalculator creates a calculator over model, reading collapses from source
func NewCalculator(model commit.CommitsModel, source CollapseSource) *Calculator {
	return &Calculator{
		model:  model,
		source: source,
	}
}

// Calculate scans every row from the top.
func (c *Calculator) Calculate() {
	c.snapshots = c.snapshots[:0]
	c.open = c.open[:0]
	c.scan(0, nil)
}

// Recalculate refreshes the snapshots after the collapse source changed.
//
// fromRow is the first row whose snapshot may differ, which is the row just
// below the up row of the collapse that was added or removed. The scan
// restarts one row earlier, on that up row, so the changed collapse is
// opened again. Snapshots above it are kept. Rows outside the sequence are
// clamped.
func (c *Calculator) Recalculate(fromRow int) {
	if fromRow > len(c.snapshots) {
		fromRow = len(c.snapshots)
	}
	start := fromRow - 1
	if start <= 0 {
		c.Calculate()
		return
	}

	carried := c.open[start-1]
	c.snapshots = c.snapshots[:start]
	c.open = c.open[:start]
	c.scan(start, carried)
}

func (c *Calculator) scan(from int, open []Collapse) {
	for row := from; row < c.model.Len(); row++ {
		var snapshot HideCommits
		snapshot, open = c.oneStep(row, open)
		c.snapshots = append(c.snapshots, snapshot)
		c.open = append(c.open, open)
	}
}

// oneStep advances the scan by one row. Collapses ending at or above row are
// dropped before the snapshot is taken, collapses starting at row are opened
// after it, so the endpoints themselves are never reported hidden.
func (c *Calculator) oneStep(row int, prev []Collapse) (HideCommits, []Collapse) {
	open := make([]Collapse, 0, len(prev))
	for _, col := range prev {
		if col.DownRow > row {
			open = append(open, col)
		}
	}

	snapshot := HideCommits{
		rowIndex: row,
		set:      make(map[commit.Hash]struct{}),
	}
	for _, col := range open {
		for _, h := range col.Hidden {
			if _, dup := snapshot.set[h]; dup {
				continue
			}
			snapshot.set[h] = struct{}{}
			snapshot.hidden = append(snapshot.hidden, h)
		}
	}
	c.sortByRow(snapshot.hidden)

	if c.source != nil {
		for _, col := range c.source.CollapsesFrom(row) {
			if col.DownRow > row {
				open = append(open, col)
			}
		}
	}

	return snapshot, open
}

func (c *Calculator) sortByRow(hashes []commit.Hash) {
	if len(hashes) < 2 {
		return
	}
	if c.rank == nil {
		c.rank = make(map[commit.Hash]int, c.model.Len())
		for i := 0; i < c.model.Len(); i++ {
			c.rank[c.model.CommitAt(i).Hash] = i
		}
	}
	slices.SortStableFunc(hashes, func(a, b commit.Hash) int {
		return c.rank[a] - c.rank[b]
	})
}

// Len returns the number of snapshots
func (c *Calculator) Len() int {
	return len(c.snapshots)
}

// At returns the snapshot for row
func (c *Calculator) At(row int) (HideCommits, error) {
	if row < 0 || row >= len(c.snapshots) {
		return HideCommits{}, fmt.Errorf("row %d out of range [0, %d)", row, len(c.snapshots))
	}
	return c.snapshots[row], nil
}

// Snapshots returns a copy of all snapshots
func (c *Calculator) Snapshots() []HideCommits {
	return slices.Clone(c.snapshots)
}
