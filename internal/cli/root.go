// Package cli implements the runcount command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mvp-joe/runcount/internal/config"
	"github.com/mvp-joe/runcount/internal/logging"
	"github.com/mvp-joe/runcount/internal/runs"
)

// rootOptions carries global flags and the state PersistentPreRunE builds
// from them to every subcommand.
type rootOptions struct {
	cfgFile string
	verbose bool
	format  string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "runcount [n...]",
		Short: "Count the ways to write n as a sum of consecutive positive integers",
		Long: `runcount counts the representations of a positive integer as a sum of one
or more consecutive positive integers.

  15 = 15 = 7 + 8 = 4 + 5 + 6 = 1 + 2 + 3 + 4 + 5   ->  4

The count always equals the number of odd divisors of n.

Examples:
  # Count for a single value
  runcount 15

  # List the representations as JSON
  runcount count 15 21 --runs --format json

  # Tabulate a range
  runcount table --from 1 --to 100`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runCount(cmd, opts, args, false)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is .runcount/config.yml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "", "output format: text, json or yaml (overrides config)")

	cmd.AddCommand(newCountCmd(opts))
	cmd.AddCommand(newTableCmd(opts))
	cmd.AddCommand(newVerifyCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setup loads configuration, applies flag overrides and builds the logger.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if o.cfgFile != "" {
		cfg, err = config.NewFileLoader(o.cfgFile).Load()
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if o.format != "" {
		cfg.Output.Format = o.format
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)

	logger, err := logging.New(cfg.Log, o.verbose)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("format", cfg.Output.Format),
		zap.Int("workers", cfg.Table.Workers),
		zap.Int("cache_size", cfg.Cache.Size))

	o.cfg = cfg
	o.logger = logger
	return nil
}

func (o *rootOptions) newCounter() (*runs.Counter, error) {
	counter, err := runs.NewCounter(o.cfg.Cache.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	return counter, nil
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(1)
	}
}
