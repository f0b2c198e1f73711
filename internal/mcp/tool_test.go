package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mvp-joe/runcount/internal/runs"
)

func newTestCounter(t *testing.T) *runs.Counter {
	t.Helper()
	counter, err := runs.NewCounter(32)
	require.NoError(t, err)
	return counter
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) (*mcp.CallToolResult, string) {
	t.Helper()
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	}
	result, err := handler(context.Background(), request)
	require.NoError(t, err, "should not return system error")
	require.NotNil(t, result, "should return result")

	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "should be text content")
	return result, textContent.Text
}

// TestNewServer verifies tools register without error
func TestNewServer(t *testing.T) {
	t.Parallel()

	s, err := NewServer(newTestCounter(t), ServerOptions{Workers: 2, MaxSpan: 100}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.NoError(t, s.Close())

	_, err = NewServer(nil, ServerOptions{}, nil)
	assert.Error(t, err)
}

func TestAddCountTool(t *testing.T) {
	t.Parallel()

	mcpServer := server.NewMCPServer("test", "1.0.0", server.WithToolCapabilities(true))
	AddCountTool(mcpServer, newTestCounter(t), zap.NewNop())
	assert.NotNil(t, mcpServer)
}

func TestCountHandler_ValidRequest(t *testing.T) {
	t.Parallel()

	handler := createCountHandler(newTestCounter(t), zap.NewNop())
	result, text := callTool(t, handler, map[string]interface{}{"n": float64(15)})
	assert.False(t, result.IsError)

	var response CountResponse
	require.NoError(t, json.Unmarshal([]byte(text), &response))
	assert.Equal(t, int64(15), response.N)
	assert.Equal(t, 4, response.Count)
	assert.Empty(t, response.Runs)
}

func TestCountHandler_IncludeRuns(t *testing.T) {
	t.Parallel()

	handler := createCountHandler(newTestCounter(t), zap.NewNop())
	result, text := callTool(t, handler, map[string]interface{}{
		"n":            "9",
		"include_runs": "true",
	})
	assert.False(t, result.IsError)

	var response CountResponse
	require.NoError(t, json.Unmarshal([]byte(text), &response))
	assert.Equal(t, 3, response.Count)
	require.Len(t, response.Runs, 3)
	assert.Equal(t, RunView{Start: 9, Length: 1, End: 9, Text: "9"}, response.Runs[0])
	assert.Equal(t, "4 + 5", response.Runs[1].Text)
	assert.Equal(t, "2 + 3 + 4", response.Runs[2].Text)
}

// decodeArgs decodes raw JSON the way the MCP transport does, so numbers
// arrive as float64.
func decodeArgs(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var args map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &args))
	return args
}

func TestCountHandler_InvalidInput(t *testing.T) {
	t.Parallel()

	handler := createCountHandler(newTestCounter(t), zap.NewNop())

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing", map[string]interface{}{}, "n parameter is required"},
		{"zero", map[string]interface{}{"n": float64(0)}, "positive"},
		{"negative string", map[string]interface{}{"n": "-4"}, "positive"},
		{"fraction", map[string]interface{}{"n": 2.5}, "not an integer"},
		{"text", map[string]interface{}{"n": "many"}, "not an integer"},
		{"above exact float range", decodeArgs(t, `{"n": 9007199254740993}`), "out of range"},
		{"exactly 2^53", decodeArgs(t, `{"n": 9007199254740992}`), "out of range"},
		{"huge float", map[string]interface{}{"n": float64(1e19)}, "out of range"},
		{"string overflow", map[string]interface{}{"n": "99999999999999999999"}, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, text := callTool(t, handler, tt.args)
			assert.True(t, result.IsError, "should be error result")
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestTableHandler_ValidRequest(t *testing.T) {
	t.Parallel()

	handler := createTableHandler(newTestCounter(t), ServerOptions{Workers: 2, MaxSpan: 100}, zap.NewNop())
	result, text := callTool(t, handler, map[string]interface{}{
		"from": float64(1),
		"to":   float64(21),
	})
	assert.False(t, result.IsError)

	var response TableResponse
	require.NoError(t, json.Unmarshal([]byte(text), &response))
	assert.Equal(t, 21, response.Total)
	assert.Equal(t, 0, response.Mismatches)
	assert.Equal(t, runs.Entry{N: 15, Count: 4, OddDivisors: 4}, response.Entries[14])
}

func TestTableHandler_RangeLimits(t *testing.T) {
	t.Parallel()

	handler := createTableHandler(newTestCounter(t), ServerOptions{Workers: 2, MaxSpan: 10}, zap.NewNop())

	result, text := callTool(t, handler, map[string]interface{}{"from": float64(1), "to": float64(50)})
	assert.True(t, result.IsError)
	assert.Contains(t, text, "range too large")

	result, text = callTool(t, handler, map[string]interface{}{"from": float64(9), "to": float64(3)})
	assert.True(t, result.IsError)
	assert.Contains(t, text, "invalid range")

	result, text = callTool(t, handler, map[string]interface{}{"from": float64(1)})
	assert.True(t, result.IsError)
	assert.Contains(t, text, "to parameter is required")
}
