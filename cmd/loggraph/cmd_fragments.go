package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/loggraph/cmd/ui"
	"github.com/utkarsh5026/loggraph/pkg/graph"
)

func newFragmentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fragments <location> <up> <down> [<up> <down>...]",
		Short: "Hide several chains and list the resulting fragments",
		Long: `Apply one hide per <up> <down> pair, in order, then list every
fragment the graph holds: its hide edge, endpoints and collapsed commits.

Later pairs may enclose earlier ones; the inner fragment then shows up as
a collapsed edge of the outer one.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 3 || len(args)%2 == 0 {
				return fmt.Errorf("expected a location followed by <up> <down> pairs")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, g, err := a.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			for i := 1; i < len(args); i += 2 {
				up, err := resolveNode(g, seq, args[i])
				if err != nil {
					return err
				}
				down, err := resolveNode(g, seq, args[i+1])
				if err != nil {
					return err
				}
				if _, err := g.HideBranch(up, down); err != nil {
					return fmt.Errorf("failed to hide %s..%s: %w", args[i], args[i+1], err)
				}
			}

			return displayFragments(cmd.OutOrStdout(), g)
		},
	}

	return cmd
}

func displayFragments(w io.Writer, g *graph.Graph) error {
	table := tablewriter.NewWriter(w)
	table.Header("Edge", "Up", "Down", "Commits", "Nested")

	for _, f := range g.Fragments() {
		up, err := g.Node(f.Up)
		if err != nil {
			return err
		}
		down, err := g.Node(f.Down)
		if err != nil {
			return err
		}

		var commits []string
		for _, id := range f.Nodes {
			n, err := g.Node(id)
			if err != nil {
				return err
			}
			if n.Type != graph.EdgeNode {
				commits = append(commits, n.Commit.Hash.Short())
			}
		}

		var nested []string
		for _, e := range f.Edges {
			if _, ok := g.FragmentByHideEdge(e); ok {
				nested = append(nested, strconv.Itoa(int(e)))
			}
		}

		table.Append(
			strconv.Itoa(int(f.HideEdge)),
			ui.Yellow(up.Commit.Hash.Short()),
			ui.Yellow(down.Commit.Hash.Short()),
			strings.Join(commits, " "),
			strings.Join(nested, " "),
		)
	}

	table.Render()
	return nil
}
