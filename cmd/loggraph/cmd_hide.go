package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/loggraph/cmd/ui"
	"github.com/utkarsh5026/loggraph/pkg/commit"
	"github.com/utkarsh5026/loggraph/pkg/graph"
)

func newHideCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hide <location> <up> <down>",
		Short: "Collapse the chain between two commits",
		Long: `Hide the simple chain of commits between <up> and <down> behind a
single hidden-branch edge and draw the result.

Commits are given by full hash or a unique prefix of at least four
characters. Every commit strictly between the two must have exactly one
parent and one child in the current view.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, g, err := a.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			up, err := resolveNode(g, seq, args[1])
			if err != nil {
				return err
			}
			down, err := resolveNode(g, seq, args[2])
			if err != nil {
				return err
			}

			iv, err := g.HideBranch(up, down)
			if err != nil {
				return fmt.Errorf("failed to hide branch: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Success("rows %s", ui.Cyan(iv.String())))

			hidden, err := hiddenBelow(g, up)
			if err != nil {
				return err
			}
			short := make([]string, 0, len(hidden))
			for _, h := range hidden {
				short = append(short, ui.Yellow(h.Short()))
			}
			fmt.Fprintf(out, "%s %d hidden: %s\n", ui.IconHidden, len(hidden), strings.Join(short, " "))
			fmt.Fprintln(out)

			a.printGraph(cmd, g, " Commit Graph ")
			return nil
		},
	}

	return cmd
}

// hiddenBelow lists the commits hidden on the layout row right under node up
func hiddenBelow(g *graph.Graph, up graph.NodeID) ([]commit.Hash, error) {
	row, err := g.Row(g.RowIndex(up))
	if err != nil {
		return nil, err
	}
	snap, err := g.HiddenCommits().At(row.LayoutRow() + 1)
	if err != nil {
		return nil, err
	}
	return snap.Hidden(), nil
}
