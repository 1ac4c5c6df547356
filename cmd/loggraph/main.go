package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/loggraph/cmd/ui"
	"github.com/utkarsh5026/loggraph/pkg/commit"
	"github.com/utkarsh5026/loggraph/pkg/common/logger"
	"github.com/utkarsh5026/loggraph/pkg/config"
	"github.com/utkarsh5026/loggraph/pkg/graph"
	"github.com/utkarsh5026/loggraph/pkg/source"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Red("error: "+err.Error()))
		os.Exit(1)
	}
}

// app carries the settings and services shared by every subcommand. It is
// filled in by the root command before any subcommand runs.
type app struct {
	configPath string
	logLevel   string
	limit      int

	cfg      *config.Config
	registry *source.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "loggraph",
		Short: "Draw commit graphs and collapse linear history",
		Long: `loggraph draws the commit graph of a history and lets you fold
simple chains of commits into a single hidden-branch edge.

Locations are "<scheme>:<path>" with scheme git or text. A bare path uses
source.default_scheme from the config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default "+config.DefaultFile+")")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().IntVarP(&a.limit, "limit", "n", 0, "Maximum number of commits to load")

	cmd.AddCommand(
		newLogCmd(a),
		newHideCmd(a),
		newFragmentsCmd(a),
		newVerifyCmd(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("limit") {
		if a.limit < 0 {
			return fmt.Errorf("--limit must not be negative")
		}
		cfg.Source.Limit = a.limit
	}

	if err := logger.Configure(cmd.ErrOrStderr(), logger.Format(cfg.Log.Format)); err != nil {
		return err
	}
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		return err
	}
	ui.SetColor(cfg.Render.Color)

	a.cfg = cfg
	a.registry = source.DefaultRegistry(cfg.Source.DefaultScheme)
	return nil
}

// loadGraph reads location and builds its graph
func (a *app) loadGraph(ctx context.Context, location string) (commit.Sequence, *graph.Graph, error) {
	seq, err := a.registry.Load(ctx, location, a.cfg.Source.Limit)
	if err != nil {
		return nil, nil, err
	}
	g, err := graph.Build(seq)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build commit graph: %w", err)
	}
	return seq, g, nil
}

// resolveNode finds the node of a commit given by full hash or unique prefix
func resolveNode(g *graph.Graph, seq commit.Sequence, ref string) (graph.NodeID, error) {
	if id, ok := g.NodeByCommit(commit.Hash(ref)); ok {
		return id, nil
	}

	var match commit.Hash
	for _, c := range seq {
		if len(ref) >= 4 && len(c.Hash) >= len(ref) && string(c.Hash[:len(ref)]) == ref {
			if match != "" {
				return graph.NoNode, fmt.Errorf("commit %q is ambiguous", ref)
			}
			match = c.Hash
		}
	}
	if match == "" {
		return graph.NoNode, fmt.Errorf("unknown commit %q", ref)
	}
	id, _ := g.NodeByCommit(match)
	return id, nil
}

// printGraph writes the rendered graph. The detailed format gets a title.
func (a *app) printGraph(cmd *cobra.Command, g *graph.Graph, title string) {
	out := cmd.OutOrStdout()
	if !a.cfg.Render.Compact {
		fmt.Fprintln(out, ui.Header(title))
		fmt.Fprintln(out)
	}
	fmt.Fprint(out, graph.NewRenderer(g, a.cfg.Render.Color).Render(a.cfg.Render.Compact))
}
