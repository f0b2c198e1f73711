// Package runs counts the ways a positive integer can be written as a sum of
// one or more consecutive positive integers.
//
// A run of length L starting at S sums to L*S + L*(L-1)/2. For a fixed n each
// length L admits at most one start, S = (n - L*(L-1)/2) / L, and that start is
// valid exactly when the numerator is positive and divisible by L. Counting
// the lengths that pass both checks gives the number of representations,
// which also equals the number of odd divisors of n.
package runs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNonPositive indicates a query value below 1
	ErrNonPositive = errors.New("n must be a positive integer")

	// ErrNotInteger indicates input text that does not parse as an integer
	ErrNotInteger = errors.New("n is not an integer")

	// ErrOverflow indicates input text outside the int64 range
	ErrOverflow = errors.New("n is out of range")

	// ErrIdentityMismatch indicates Count and OddDivisors disagree
	ErrIdentityMismatch = errors.New("run count does not match odd divisor count")
)

// pollInterval is how many lengths CountContext checks between ctx polls.
const pollInterval = 1 << 20

// Run is one representation of n: Length consecutive integers starting at Start.
type Run struct {
	Start  int64 `json:"start" yaml:"start"`
	Length int64 `json:"length" yaml:"length"`
}

// End returns the last integer of the run.
func (r Run) End() int64 {
	return r.Start + r.Length - 1
}

// Sum returns the total of the run.
func (r Run) Sum() int64 {
	return r.Length*r.Start + r.Length*(r.Length-1)/2
}

// Terms returns the integers of the run in order.
func (r Run) Terms() []int64 {
	terms := make([]int64, 0, r.Length)
	for v := r.Start; v <= r.End(); v++ {
		terms = append(terms, v)
	}
	return terms
}

// String renders the run as "4 + 5 + 6". Runs longer than six terms are
// abbreviated as "1 + 2 + ... + 6".
func (r Run) String() string {
	if r.Length <= 6 {
		parts := make([]string, 0, r.Length)
		for _, v := range r.Terms() {
			parts = append(parts, strconv.FormatInt(v, 10))
		}
		return strings.Join(parts, " + ")
	}
	return fmt.Sprintf("%d + %d + ... + %d", r.Start, r.Start+1, r.End())
}

// Count returns the number of ways to write n as a sum of one or more
// consecutive positive integers. n must be at least 1.
func Count(n int64) (int, error) {
	return CountContext(context.Background(), n)
}

// CountContext is Count with cancellation. The loop runs about sqrt(2n) times,
// which is billions of iterations near math.MaxInt64, so ctx is polled
// periodically.
func CountContext(ctx context.Context, n int64) (int, error) {
	if err := checkPositive(n); err != nil {
		return 0, err
	}

	count := 0
	err := walk(ctx, n, func(length, numerator int64) {
		if numerator%length == 0 {
			count++
		}
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Enumerate returns every representation of n, ordered by increasing length.
// The singleton run {n} is always first.
func Enumerate(n int64) ([]Run, error) {
	if err := checkPositive(n); err != nil {
		return nil, err
	}

	var out []Run
	err := walk(context.Background(), n, func(length, numerator int64) {
		if numerator%length == 0 {
			out = append(out, Run{Start: numerator / length, Length: length})
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// walk calls visit for every length L whose minimal run 1..L fits in n,
// passing the numerator n - L*(L-1)/2.
//
// offset tracks L*(L-1)/2 and never exceeds n, and the loop condition is
// written as length <= n-offset, so no intermediate value can overflow int64.
func walk(ctx context.Context, n int64, visit func(length, numerator int64)) error {
	var offset int64
	for length := int64(1); length <= n-offset; length++ {
		if length%pollInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		visit(length, n-offset)
		offset += length
	}
	return nil
}

// Verify checks the odd-divisor identity for n.
func Verify(n int64) error {
	count, err := Count(n)
	if err != nil {
		return err
	}
	odd, err := OddDivisors(n)
	if err != nil {
		return err
	}
	if count != odd {
		return fmt.Errorf("%w: n=%d count=%d odd_divisors=%d", ErrIdentityMismatch, n, count, odd)
	}
	return nil
}

// Parse converts user input into a query value. Surrounding whitespace and
// "_" digit separators are accepted.
func Parse(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	n, err := strconv.ParseInt(strings.ReplaceAll(trimmed, "_", ""), 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		return 0, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	if err := checkPositive(n); err != nil {
		return 0, err
	}
	return n, nil
}

func checkPositive(n int64) error {
	if n < 1 {
		return fmt.Errorf("%w, got %d", ErrNonPositive, n)
	}
	return nil
}
