package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/heimdalr/pathcount"
	"github.com/heimdalr/pathcount/timing"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	logLevel string
	progress bool
	noMemo   bool
	inputFlags
}

func (f *rootFlags) logger(cmd *cobra.Command) zerolog.Logger {
	return newLogger(cmd.ErrOrStderr(), f.logLevel)
}

// countOptions translates the flags into counting options.
func (f *rootFlags) countOptions(logger zerolog.Logger) []pathcount.Option {
	opts := []pathcount.Option{pathcount.WithLogger(logger)}
	if f.progress {
		opts = append(opts, pathcount.WithProgress(func(calls uint64) {
			logger.Info().Uint64("calls", calls).Msg("searching")
		}))
	}
	if f.noMemo {
		opts = append(opts, pathcount.WithoutMemo())
	}
	return opts
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "pathcount",
		Short:         "Count device paths in a device graph",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.BoolVar(&flags.progress, "progress", false, "log search progress")
	pf.BoolVar(&flags.noMemo, "no-memo", false, "disable memoization of constrained counts")
	flags.inputFlags.register(pf)

	cmd.AddCommand(
		newCountCmd(flags),
		newRunCmd(flags),
		newDotCmd(flags),
		newBenchCmd(flags),
	)
	return cmd
}

func newCountCmd(flags *rootFlags) *cobra.Command {
	var q pathcount.Query
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count the simple paths from source to target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := flags.logger(cmd)
			g, err := flags.load(ctx, logger, "")
			if err != nil {
				return err
			}
			count, err := g.Count(ctx, q, flags.countOptions(logger)...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), count)
			return err
		},
	}
	cmd.Flags().StringVarP(&q.Source, "source", "s", "you", "source device")
	cmd.Flags().StringVarP(&q.Target, "target", "t", "out", "target device")
	cmd.Flags().StringSliceVarP(&q.Required, "require", "r", nil, "devices every path must visit")
	return cmd
}

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run <query file>",
		Short: "Run the queries of a YAML, HCL or JSON query file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := flags.logger(cmd)
			qf, err := loadQueryFile(args[0])
			if err != nil {
				return err
			}
			g, err := flags.load(ctx, logger, qf.Input)
			if err != nil {
				return err
			}
			return runQueries(ctx, cmd, g, qf.Queries, flags.countOptions(logger))
		},
	}
}

// runQueries runs every query, reporting each result. A count that differs
// from the expected one doesn't stop later queries, but fails the run.
func runQueries(ctx context.Context, cmd *cobra.Command, g *pathcount.Graph, queries []queryDef, opts []pathcount.Option) error {
	out := cmd.OutOrStdout()
	var mismatches []string
	for _, q := range queries {
		count, err := g.Count(ctx, q.query(), opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", q.Name, err)
		}
		switch {
		case q.Expect == nil:
			fmt.Fprintf(out, "%s: %d\n", q.Name, count)
		case *q.Expect == count:
			fmt.Fprintf(out, "%s: %d (ok)\n", q.Name, count)
		default:
			fmt.Fprintf(out, "%s: %d (expected %d)\n", q.Name, count, *q.Expect)
			mismatches = append(mismatches, q.Name)
		}
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("unexpected result for %s", strings.Join(mismatches, ", "))
	}
	return nil
}

func newDotCmd(flags *rootFlags) *cobra.Command {
	var h pathcount.Highlight
	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Print the graph in graphviz dot notation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			g, err := flags.load(ctx, flags.logger(cmd), "")
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), g.Dot(h))
			return err
		},
	}
	cmd.Flags().StringVarP(&h.Source, "source", "s", "", "highlight paths from this device")
	cmd.Flags().StringVarP(&h.Target, "target", "t", "", "highlight paths to this device")
	cmd.Flags().StringSliceVarP(&h.Required, "require", "r", nil, "highlight these devices")
	return cmd
}

func newBenchCmd(flags *rootFlags) *cobra.Command {
	layout := timing.Layout{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time memoized against naive constrained counting on a generated graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := flags.logger(cmd)
			if layout.Layers < 1 || layout.Width < 1 || layout.Fanout < 1 {
				return fmt.Errorf("layers, width and fanout must be positive")
			}
			g := pathcount.Parse(timing.Generate(layout))
			logger.Info().Int("order", g.Order()).Int("size", g.Size()).Msg("graph generated")

			q := pathcount.Query{Source: timing.Source, Target: timing.Target, Required: layout.Required}
			memo, err := timing.Measure(ctx, g, q, pathcount.WithLogger(logger))
			if err != nil {
				return err
			}
			naive, err := timing.Measure(ctx, g, q, pathcount.WithLogger(logger), pathcount.WithoutMemo())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "memo:  %d paths in %s\n", memo.Count, memo.Duration)
			fmt.Fprintf(out, "naive: %d paths in %s\n", naive.Count, naive.Duration)
			if memo.Count != naive.Count {
				return fmt.Errorf("memoized count %d differs from naive count %d", memo.Count, naive.Count)
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&layout.Layers, "layers", 12, "number of layers")
	fs.IntVar(&layout.Width, "width", 6, "devices per layer")
	fs.IntVar(&layout.Fanout, "fanout", 2, "outputs per device")
	fs.IntVar(&layout.BackEdges, "back-edges", 0, "edges pointing back to an earlier layer")
	fs.Int64Var(&layout.Seed, "seed", 1, "random seed")
	fs.StringSliceVarP(&layout.Required, "require", "r", []string{"dac", "fft"}, "required devices to plant")
	return cmd
}
