package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mvp-joe/runcount/internal/runs"
)

// AddTableTool registers the tabulate_consecutive_runs tool with an MCP server.
func AddTableTool(s *server.MCPServer, counter *runs.Counter, opts ServerOptions, logger *zap.Logger) {
	tool := mcp.NewTool(
		"tabulate_consecutive_runs",
		mcp.WithDescription(fmt.Sprintf("Tabulate consecutive-run counts and odd divisor counts for every integer in [from, to] (at most %d values).", opts.MaxSpan)),
		mcp.WithNumber("from",
			mcp.Required(),
			mcp.Description("First value of the range (>= 1)")),
		mcp.WithNumber("to",
			mcp.Required(),
			mcp.Description("Last value of the range, inclusive")),
	)

	s.AddTool(tool, createTableHandler(counter, opts, logger))
}

func createTableHandler(counter *runs.Counter, opts ServerOptions, logger *zap.Logger) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args TableRequest
		if err := bindArguments(request.GetArguments(), &args, "from", "to"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		entries, err := runs.Tabulate(ctx, counter, runs.TableOptions{
			From:    args.From,
			To:      args.To,
			Workers: opts.Workers,
			MaxSpan: opts.MaxSpan,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		response := &TableResponse{
			Entries:    entries,
			Total:      len(entries),
			Mismatches: len(runs.Mismatches(entries)),
		}

		logger.Debug("tabulate_consecutive_runs",
			zap.Int64("from", args.From),
			zap.Int64("to", args.To),
			zap.Int("total", response.Total))

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
