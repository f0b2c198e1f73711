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

// AddCountTool registers the count_consecutive_runs tool with an MCP server.
func AddCountTool(s *server.MCPServer, counter *runs.Counter, logger *zap.Logger) {
	tool := mcp.NewTool(
		"count_consecutive_runs",
		mcp.WithDescription("Count the ways a positive integer can be written as a sum of one or more consecutive positive integers (15 -> 4: 15, 7+8, 4+5+6, 1+2+3+4+5). Optionally lists each representation."),
		mcp.WithNumber("n",
			mcp.Required(),
			mcp.Description("Positive integer to decompose")),
		mcp.WithBoolean("include_runs",
			mcp.Description("Also return every representation (default: false)")),
	)

	s.AddTool(tool, createCountHandler(counter, logger))
}

func createCountHandler(counter *runs.Counter, logger *zap.Logger) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args CountRequest
		if err := bindArguments(request.GetArguments(), &args, "n"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		count, err := counter.Count(ctx, args.N)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		response := &CountResponse{N: args.N, Count: count}
		if args.IncludeRuns {
			list, err := runs.Enumerate(args.N)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			response.Runs = make([]RunView, 0, len(list))
			for _, r := range list {
				response.Runs = append(response.Runs, newRunView(r))
			}
		}

		logger.Debug("count_consecutive_runs",
			zap.Int64("n", args.N),
			zap.Int("count", count),
			zap.Bool("include_runs", args.IncludeRuns))

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		// Return as text result (mcp-go convention)
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
