package mcp

import "github.com/mvp-joe/runcount/internal/runs"

// CountRequest is the argument set of the count_consecutive_runs tool.
type CountRequest struct {
	N           int64 `mapstructure:"n"`
	IncludeRuns bool  `mapstructure:"include_runs"`
}

// CountResponse is the JSON body returned by count_consecutive_runs.
type CountResponse struct {
	N     int64     `json:"n"`
	Count int       `json:"count"`
	Runs  []RunView `json:"runs,omitempty"`
}

// RunView is a run as shown to MCP clients.
type RunView struct {
	Start  int64  `json:"start"`
	Length int64  `json:"length"`
	End    int64  `json:"end"`
	Text   string `json:"text"`
}

// TableRequest is the argument set of the tabulate_consecutive_runs tool.
type TableRequest struct {
	From int64 `mapstructure:"from"`
	To   int64 `mapstructure:"to"`
}

// TableResponse is the JSON body returned by tabulate_consecutive_runs.
type TableResponse struct {
	Entries    []runs.Entry `json:"entries"`
	Total      int          `json:"total"`
	Mismatches int          `json:"mismatches"`
}

// ServerOptions bounds the work a single tool call may request.
type ServerOptions struct {
	Version string
	Workers int
	MaxSpan int64
}

func newRunView(r runs.Run) RunView {
	return RunView{
		Start:  r.Start,
		Length: r.Length,
		End:    r.End(),
		Text:   r.String(),
	}
}
