package runs

import "context"

// OddDivisors returns the number of positive odd divisors of n.
//
// Factors of two are stripped first; the remaining odd part m = p1^e1 * ... * pk^ek
// has (e1+1)*...*(ek+1) divisors, all of them odd.
func OddDivisors(n int64) (int, error) {
	return OddDivisorsContext(context.Background(), n)
}

// OddDivisorsContext is OddDivisors with cancellation for large prime cofactors.
func OddDivisorsContext(ctx context.Context, n int64) (int, error) {
	if err := checkPositive(n); err != nil {
		return 0, err
	}

	m := n
	for m%2 == 0 {
		m /= 2
	}

	total := 1
	var steps int64
	// d <= m/d instead of d*d <= m keeps the bound exact near MaxInt64
	for d := int64(3); d <= m/d; d += 2 {
		steps++
		if steps%pollInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		exp := 0
		for m%d == 0 {
			m /= d
			exp++
		}
		total *= exp + 1
	}
	if m > 1 {
		total *= 2
	}
	return total, nil
}
