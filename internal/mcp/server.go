// Package mcp exposes the consecutive-run counter as Model Context Protocol
// tools served over stdio.
package mcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mvp-joe/runcount/internal/runs"
)

// Server manages the MCP server lifecycle.
type Server struct {
	counter *runs.Counter
	logger  *zap.Logger
	mcp     *server.MCPServer
}

// NewServer creates an MCP server with the counting tools registered.
func NewServer(counter *runs.Counter, opts ServerOptions, logger *zap.Logger) (*Server, error) {
	if counter == nil {
		return nil, fmt.Errorf("counter is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	mcpServer := server.NewMCPServer(
		"runcount-mcp",
		opts.Version,
		server.WithToolCapabilities(true),
	)

	AddCountTool(mcpServer, counter, logger)
	AddTableTool(mcpServer, counter, opts, logger)

	return &Server{
		counter: counter,
		logger:  logger,
		mcp:     mcpServer,
	}, nil
}

// Serve runs the MCP server on stdin/stdout until the client disconnects,
// ctx is cancelled, or the process receives SIGINT/SIGTERM. Cancellation and
// signals are a clean shutdown.
func (s *Server) Serve(ctx context.Context) error {
	return s.serve(ctx, os.Stdin, os.Stdout)
}

func (s *Server) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger.Named("stdio")))

	s.logger.Info("starting MCP server on stdio")
	err := stdio.Listen(ctx, in, out)
	if ctx.Err() != nil {
		s.logger.Info("shutdown requested, MCP server stopped", zap.Error(context.Cause(ctx)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	s.logger.Info("client closed stdin, MCP server stopped")
	return nil
}

// Close logs final cache statistics.
func (s *Server) Close() error {
	stats := s.counter.Stats()
	s.logger.Info("MCP server closed",
		zap.Uint64("cache_hits", stats.Hits),
		zap.Uint64("cache_misses", stats.Misses),
		zap.Int("cache_entries", stats.Entries))
	return nil
}
