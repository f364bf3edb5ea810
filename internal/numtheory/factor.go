package numtheory

import (
	"slices"

	"github.com/agbru/modcalc/internal/bignum"
	apperrors "github.com/agbru/modcalc/internal/errors"
	"github.com/agbru/modcalc/internal/modular"
)

// Factor is one prime power p^e of a factorization.
type Factor struct {
	Prime    bignum.Int `json:"prime"`
	Exponent int        `json:"exponent"`
}

// smallPrimes are removed by trial division before Pollard rho starts.
var smallPrimes = []uint32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97}

// FactorizeTrial returns the prime factorization of n by trial division,
// as (prime, exponent) pairs in increasing order of prime. Whatever remains
// after dividing out every d with d² ≤ n is itself prime and is appended
// last. 1 has no factors.
//
// Each odd candidate divisor counts as one iteration against
// WithIterationBound, and WithContext stops the search early.
//
// Returns:
//   - []Factor: The factorization, ordered by prime.
//   - error: ErrInvalidInput for n == 0, ErrIterationLimit past the bound,
//     or the context error.
func FactorizeTrial(n bignum.Int, opts ...Option) ([]Factor, error) {
	if n.IsZero() {
		return nil, zeroFactorization()
	}
	var factors []Factor
	if n.IsOne() {
		return factors, nil
	}
	b := applyOptions(opts).meter("factorize")
	n, factors = stripFactor(n, two, factors)
	for d := bignum.FromUint64(3); d.Square().Le(n); d = d.Add(two) {
		if err := b.next(); err != nil {
			return nil, err
		}
		n, factors = stripFactor(n, d, factors)
	}
	if !n.IsOne() {
		factors = append(factors, Factor{Prime: n, Exponent: 1})
	}
	return factors, nil
}

func zeroFactorization() error {
	return apperrors.NewArithmeticError("factorize", apperrors.ErrInvalidInput, "zero has no factorization")
}

// stripFactor divides every power of d out of n and records it.
func stripFactor(n, d bignum.Int, factors []Factor) (bignum.Int, []Factor) {
	e := 0
	for {
		q, r, _ := n.DivMod(d)
		if !r.IsZero() {
			break
		}
		n = q
		e++
	}
	if e > 0 {
		factors = append(factors, Factor{Prime: d, Exponent: e})
	}
	return n, factors
}

// FactorizePollard returns the prime factorization of n using Pollard's rho
// method with Floyd cycle detection.
//
// Small primes are removed by trial division first. Composites are split on
// an explicit work list rather than by recursion, and every factor is
// confirmed with IsProbablePrime before it is reported.
//
// Returns:
//   - []Factor: The factorization, ordered by prime.
//   - error: ErrInvalidInput for n == 0, ErrIterationLimit when a composite
//     resists every attempt within the configured bounds, or the context
//     error once WithContext's context is done.
func FactorizePollard(n bignum.Int, opts ...Option) ([]Factor, error) {
	if n.IsZero() {
		return nil, zeroFactorization()
	}
	o := applyOptions(opts)

	var primes []bignum.Int
	for _, p := range smallPrimes {
		for {
			q, r, _ := n.DivModUint32(p)
			if r != 0 {
				break
			}
			n = q
			primes = append(primes, bignum.FromUint64(uint64(p)))
		}
	}

	work := []bignum.Int{n}
	for len(work) > 0 {
		x := work[len(work)-1]
		work = work[:len(work)-1]
		if x.IsOne() {
			continue
		}
		if IsProbablePrime(x) {
			primes = append(primes, x)
			continue
		}
		d, err := findDivisor(x, o)
		if err != nil {
			return nil, err
		}
		q, _ := x.Div(d)
		work = append(work, d, q)
	}
	return groupFactors(primes), nil
}

// findDivisor returns a non-trivial divisor of the composite x, trying
// f(v) = v² + c for c = 1, 2, … up to the configured number of attempts.
func findDivisor(x bignum.Int, o options) (bignum.Int, error) {
	if r := ISqrt(x); r.Square().Eq(x) {
		return r, nil
	}
	c := bignum.One()
	for attempt := 0; attempt < o.attempts; attempt++ {
		d, ok, err := rho(x, c, o.meter("factorize"))
		if err != nil {
			return bignum.Int{}, err
		}
		if ok {
			return d, nil
		}
		c = c.Add(bignum.One())
	}
	return bignum.Int{}, apperrors.NewArithmeticError("factorize", apperrors.ErrIterationLimit,
		"pollard rho found no divisor of %s after %d attempts", x, o.attempts)
}

// rho runs one Floyd cycle search starting from 2. It reports false when the
// cycle closes without exposing a divisor or the budget runs out, and fails
// only when the context is done.
func rho(x, c bignum.Int, b *budget) (bignum.Int, bool, error) {
	f := func(v bignum.Int) bignum.Int {
		s, _ := modular.Mul(v, v, x)
		s, _ = modular.Add(s, c, x)
		return s
	}
	slow, fast := two, two
	for {
		if err := b.next(); err != nil {
			if apperrors.IsContextError(err) {
				return bignum.Int{}, false, err
			}
			return bignum.Int{}, false, nil
		}
		slow = f(slow)
		fast = f(f(fast))
		var diff bignum.Int
		if slow.Ge(fast) {
			diff = slow.MustSub(fast)
		} else {
			diff = fast.MustSub(slow)
		}
		d := modular.GCD(diff, x)
		switch {
		case d.Eq(x):
			return bignum.Int{}, false, nil
		case !d.IsOne():
			return d, true, nil
		}
	}
}

// groupFactors sorts primes and merges repeats into exponents.
func groupFactors(primes []bignum.Int) []Factor {
	slices.SortFunc(primes, func(a, b bignum.Int) int { return a.Cmp(b) })
	var factors []Factor
	for _, p := range primes {
		if k := len(factors); k > 0 && factors[k-1].Prime.Eq(p) {
			factors[k-1].Exponent++
			continue
		}
		factors = append(factors, Factor{Prime: p, Exponent: 1})
	}
	return factors
}

// Product multiplies a factorization back out. An empty factorization is 1.
func Product(factors []Factor) bignum.Int {
	acc := bignum.One()
	for _, f := range factors {
		for i := 0; i < f.Exponent; i++ {
			acc = acc.Mul(f.Prime)
		}
	}
	return acc
}
