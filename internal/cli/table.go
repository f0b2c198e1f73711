package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mvp-joe/runcount/internal/config"
	"github.com/mvp-joe/runcount/internal/runs"
)

// rangeFlags are shared by table and verify.
type rangeFlags struct {
	from    int64
	to      int64
	workers int
	quiet   bool
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.from, "from", 1, "First value of the range")
	cmd.Flags().Int64Var(&f.to, "to", 100, "Last value of the range (inclusive)")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Concurrent workers (default from config)")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Suppress the progress bar")
}

// tabulate runs runs.Tabulate with config defaults and a progress bar on stderr.
func (f *rangeFlags) tabulate(cmd *cobra.Command, opts *rootOptions, description string) ([]runs.Entry, error) {
	workers := f.workers
	if workers <= 0 {
		workers = opts.cfg.Table.Workers
	}

	counter, err := opts.newCounter()
	if err != nil {
		return nil, err
	}

	total := f.to - f.from + 1
	// an invalid range is reported by Tabulate; skip the bar for it
	quiet := f.quiet || total <= 0 || total > opts.cfg.Table.MaxSpan
	progress := newRangeProgress(cmd.ErrOrStderr(), total, description, quiet)

	opts.logger.Debug("tabulating",
		zap.Int64("from", f.from),
		zap.Int64("to", f.to),
		zap.Int("workers", workers))

	entries, err := runs.Tabulate(cmd.Context(), counter, runs.TableOptions{
		From:    f.from,
		To:      f.to,
		Workers: workers,
		MaxSpan: opts.cfg.Table.MaxSpan,
		OnEntry: progress.OnEntry,
	})
	if err != nil {
		progress.Abort()
		return nil, err
	}
	progress.Finish()

	stats := counter.Stats()
	opts.logger.Debug("tabulation complete",
		zap.Int("entries", len(entries)),
		zap.Uint64("cache_hits", stats.Hits),
		zap.Uint64("cache_misses", stats.Misses))

	return entries, nil
}

func newTableCmd(opts *rootOptions) *cobra.Command {
	flags := &rangeFlags{}

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Tabulate counts and odd divisor counts over a range",
		Long: `Table computes, for every n in [--from, --to], the number of consecutive-run
representations and the number of odd divisors of n.

The range may not exceed table.max_span values (config, default 1,000,000).

Examples:
  runcount table --from 1 --to 50
  runcount table --from 1000 --to 2000 --workers 8 --format json --quiet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := flags.tabulate(cmd, opts, "Tabulating")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.cfg.Output.Format != config.FormatText {
				return writeStructured(out, opts.cfg.Output.Format, entries)
			}

			width := len(fmt.Sprintf("%d", flags.to))
			if width < 1 {
				width = 1
			}
			fmt.Fprintf(out, "%*s  %5s  %12s\n", width, "n", "count", "odd_divisors")
			for _, e := range entries {
				fmt.Fprintf(out, "%*d  %5d  %12d\n", width, e.N, e.Count, e.OddDivisors)
			}
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
