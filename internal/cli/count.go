package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mvp-joe/runcount/internal/config"
	"github.com/mvp-joe/runcount/internal/runs"
)

// countResult is one line of count output.
type countResult struct {
	N     int64      `json:"n" yaml:"n"`
	Count int        `json:"count" yaml:"count"`
	Runs  []runs.Run `json:"runs,omitempty" yaml:"runs,omitempty"`
}

func newCountCmd(opts *rootOptions) *cobra.Command {
	var showRuns bool

	cmd := &cobra.Command{
		Use:   "count <n>...",
		Short: "Count consecutive-integer representations of each n",
		Long: `Count prints, for each positive integer argument, the number of ways it can
be written as a sum of one or more consecutive positive integers.

With a single argument and text output only the count is printed. With
several arguments each line is "n: count". Any argument that is not a
positive integer fails the whole command with exit status 1.

Examples:
  runcount count 15
  runcount count 9 15 21 --runs
  runcount count 1_000_000 --format yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, opts, args, showRuns)
		},
	}

	cmd.Flags().BoolVarP(&showRuns, "runs", "r", false, "List each representation")

	return cmd
}

func runCount(cmd *cobra.Command, opts *rootOptions, args []string, showRuns bool) error {
	values := make([]int64, 0, len(args))
	for _, arg := range args {
		n, err := runs.Parse(arg)
		if err != nil {
			return err
		}
		values = append(values, n)
	}

	counter, err := opts.newCounter()
	if err != nil {
		return err
	}

	results := make([]countResult, 0, len(values))
	for _, n := range values {
		count, err := counter.Count(cmd.Context(), n)
		if err != nil {
			return fmt.Errorf("count %d: %w", n, err)
		}
		result := countResult{N: n, Count: count}
		if showRuns {
			if result.Runs, err = runs.Enumerate(n); err != nil {
				return fmt.Errorf("enumerate %d: %w", n, err)
			}
		}
		opts.logger.Debug("counted", zap.Int64("n", n), zap.Int("count", count))
		results = append(results, result)
	}

	out := cmd.OutOrStdout()
	if opts.cfg.Output.Format != config.FormatText {
		return writeStructured(out, opts.cfg.Output.Format, results)
	}

	single := len(results) == 1
	for _, r := range results {
		if single {
			fmt.Fprintf(out, "%d\n", r.Count)
		} else {
			fmt.Fprintf(out, "%d: %d\n", r.N, r.Count)
		}
		for _, run := range r.Runs {
			fmt.Fprintf(out, "  %s\n", run)
		}
	}
	return nil
}
