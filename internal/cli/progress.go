package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/runcount/internal/runs"
)

// rangeProgress reports tabulation progress on a terminal bar.
type rangeProgress struct {
	bar *progressbar.ProgressBar
	out *lineWriter
}

// lineWriter remembers whether the last byte written ended a line.
type lineWriter struct {
	w       io.Writer
	midLine bool
}

func (l *lineWriter) Write(p []byte) (int, error) {
	n, err := l.w.Write(p)
	if n > 0 {
		l.midLine = p[n-1] != '\n'
	}
	return n, err
}

// newRangeProgress creates a bar for total values. A quiet reporter does nothing.
func newRangeProgress(w io.Writer, total int64, description string, quiet bool) *rangeProgress {
	if quiet {
		return &rangeProgress{}
	}
	out := &lineWriter{w: w}
	return &rangeProgress{
		out: out,
		bar: progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("n/s"),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(out)
			}),
		),
	}
}

// OnEntry advances the bar by one row. Tabulate serialises calls.
func (p *rangeProgress) OnEntry(runs.Entry) {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// Finish completes the bar.
func (p *rangeProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// Abort leaves the bar incomplete and ends its line.
func (p *rangeProgress) Abort() {
	if p.bar == nil {
		return
	}
	if p.out.midLine {
		fmt.Fprintln(p.out)
	}
}
