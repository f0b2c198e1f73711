package runs

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidRange indicates From > To
	ErrInvalidRange = errors.New("invalid range")

	// ErrRangeTooLarge indicates a range wider than TableOptions.MaxSpan
	ErrRangeTooLarge = errors.New("range too large")
)

// Entry is one row of a tabulation.
type Entry struct {
	N           int64 `json:"n" yaml:"n"`
	Count       int   `json:"count" yaml:"count"`
	OddDivisors int   `json:"odd_divisors" yaml:"odd_divisors"`
}

// Matches reports whether the row satisfies the odd-divisor identity.
func (e Entry) Matches() bool {
	return e.Count == e.OddDivisors
}

// TableOptions configures Tabulate.
type TableOptions struct {
	From    int64
	To      int64
	Workers int
	MaxSpan int64 // 0 means unbounded

	// OnEntry is called once per completed row, serialised, in completion order.
	OnEntry func(Entry)
}

// Tabulate computes an Entry for every n in [From, To] and returns them
// ordered by N. Work is spread over at most Workers goroutines; the first
// error or a cancelled ctx stops the remaining work.
func Tabulate(ctx context.Context, counter *Counter, opts TableOptions) ([]Entry, error) {
	if err := checkPositive(opts.From); err != nil {
		return nil, err
	}
	if opts.From > opts.To {
		return nil, fmt.Errorf("%w: from %d is greater than to %d", ErrInvalidRange, opts.From, opts.To)
	}
	span := opts.To - opts.From + 1
	if span <= 0 || (opts.MaxSpan > 0 && span > opts.MaxSpan) {
		return nil, fmt.Errorf("%w: [%d, %d] exceeds %d values", ErrRangeTooLarge, opts.From, opts.To, opts.MaxSpan)
	}
	if counter == nil {
		var err error
		if counter, err = NewCounter(0); err != nil {
			return nil, err
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	entries := make([]Entry, span)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := int64(0); i < span; i++ {
		if gctx.Err() != nil {
			break
		}
		n := opts.From + i
		idx := i
		g.Go(func() error {
			count, err := counter.Count(gctx, n)
			if err != nil {
				return fmt.Errorf("count %d: %w", n, err)
			}
			odd, err := OddDivisorsContext(gctx, n)
			if err != nil {
				return fmt.Errorf("odd divisors %d: %w", n, err)
			}
			entries[idx] = Entry{N: n, Count: count, OddDivisors: odd}

			if opts.OnEntry != nil {
				mu.Lock()
				opts.OnEntry(entries[idx])
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Mismatches returns the rows that break the odd-divisor identity.
func Mismatches(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if !e.Matches() {
			out = append(out, e)
		}
	}
	return out
}
