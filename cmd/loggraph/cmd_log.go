package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/loggraph/cmd/ui"
	"github.com/utkarsh5026/loggraph/pkg/graph"
)

func newLogCmd(a *app) *cobra.Command {
	var useTable bool

	cmd := &cobra.Command{
		Use:   "log <location>",
		Short: "Show the commit graph of a history",
		Long: `Load a history and draw its commit graph, one row per line.

Use --table to list the rows with their lane, branch and author instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, g, err := a.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if seq.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Yellow(ui.IconCommit+" No commits"))
				return nil
			}

			if useTable {
				return displayRowsAsTable(cmd.OutOrStdout(), g)
			}
			a.printGraph(cmd, g, " Commit Graph ")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&useTable, "table", "t", false, "Display rows in table format")

	return cmd
}

// displayRowsAsTable lists every visible commit row
func displayRowsAsTable(w io.Writer, g *graph.Graph) error {
	table := tablewriter.NewWriter(w)
	table.Header("Row", "Commit", "Branch", "Lane", "Author", "Subject")

	for _, row := range g.NodeRows() {
		for _, id := range row.Nodes() {
			n, err := g.Node(id)
			if err != nil {
				return err
			}
			if n.Type == graph.EdgeNode {
				continue
			}

			table.Append(
				strconv.Itoa(row.RowIndex()),
				ui.Yellow(n.Commit.Hash.Short()),
				ui.Magenta(ui.IconBranch+" "+strconv.Itoa(int(n.Branch))),
				ui.Blue(strconv.Itoa(n.Lane)),
				ui.Cyan(n.Commit.Author),
				n.Commit.ShortSubject(50),
			)
		}
	}

	table.Render()
	return nil
}
