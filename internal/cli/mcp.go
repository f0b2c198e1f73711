package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/runcount/internal/mcp"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server exposing the counter as tools",
		Long: `Start a Model Context Protocol (MCP) server on stdio.

Tools:
  count_consecutive_runs     {n, include_runs?}
  tabulate_consecutive_runs  {from, to}

Logs go to stderr; stdout carries the protocol.

Example:
  runcount mcp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counter, err := opts.newCounter()
			if err != nil {
				return err
			}

			server, err := mcp.NewServer(counter, mcp.ServerOptions{
				Version: Version,
				Workers: opts.cfg.Table.Workers,
				MaxSpan: opts.cfg.Table.MaxSpan,
			}, opts.logger)
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}
			defer server.Close()

			if err := server.Serve(cmd.Context()); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		},
	}
}
