package numtheory

import (
	"fortio.org/safecast"

	"github.com/agbru/modcalc/internal/bignum"
	apperrors "github.com/agbru/modcalc/internal/errors"
	"github.com/agbru/modcalc/internal/modular"
)

// DiscreteLog returns the smallest x ≥ 0 with base^x ≡ n (mod mod), using
// baby-step/giant-step.
//
// With s = ⌊√mod⌋ + 1, the baby steps tabulate base^j for 0 ≤ j < s, and the
// giant steps walk n·base^(−s·i) for 0 ≤ i < s until it meets the table.
// The table keeps the smallest j for each value and the giant steps run in
// increasing i, so the first match is the smallest solution.
//
// Returns:
//   - bignum.Int: The logarithm x.
//   - error: ErrDivisionByZero for mod == 0, ErrNotCoprime when base is not
//     invertible, ErrIterationLimit when the table would exceed the bound,
//     ErrNoDiscreteLog when no solution exists, or the context error.
func DiscreteLog(n, base, mod bignum.Int, opts ...Option) (bignum.Int, error) {
	if mod.IsZero() {
		return bignum.Int{}, apperrors.NewArithmeticError("discrete_log", apperrors.ErrDivisionByZero, "zero modulus")
	}
	if mod.IsOne() {
		return bignum.Zero(), nil
	}
	o := applyOptions(opts)

	steps := ISqrt(mod).Add(bignum.One())
	limit := o.iterations
	if limit.IsUnbounded() {
		limit = bignum.BoundOf(bignum.FromUint64(DefaultMaxBabySteps))
	}
	if !limit.Admits(steps) {
		return bignum.Int{}, apperrors.NewArithmeticError("discrete_log", apperrors.ErrIterationLimit,
			"%s baby steps exceed the bound %s", steps, limit)
	}
	s64, _ := steps.Uint64()
	s, err := safecast.Conv[int](s64)
	if err != nil {
		return bignum.Int{}, apperrors.NewArithmeticError("discrete_log", apperrors.ErrIterationLimit, "%s baby steps do not fit in memory", steps)
	}

	// base^(−s) mod m; fails unless gcd(base, mod) = 1.
	giant, err := modular.Pow(base, steps, mod)
	if err != nil {
		return bignum.Int{}, err
	}
	giant, err = modular.Inverse(giant, mod, modular.PolicyEuclid)
	if err != nil {
		return bignum.Int{}, apperrors.NewArithmeticError("discrete_log", apperrors.ErrNotCoprime, "base is not invertible modulo %s", mod)
	}

	// The table size is already checked against the bound; the meter only
	// polls the context.
	b := options{ctx: o.ctx}.meter("discrete_log")
	table := make(map[string]int, s)
	cur := bignum.One()
	for j := 0; j < s; j++ {
		if err := b.next(); err != nil {
			return bignum.Int{}, err
		}
		key := cur.String()
		if _, seen := table[key]; !seen {
			table[key] = j
		}
		cur, _ = modular.Mul(cur, base, mod)
	}

	gamma, _ := modular.Reduce(n, mod)
	for i := 0; i < s; i++ {
		if err := b.next(); err != nil {
			return bignum.Int{}, err
		}
		if j, ok := table[gamma.String()]; ok {
			x := bignum.FromUint64(uint64(i)).Mul(steps).Add(bignum.FromUint64(uint64(j)))
			return x, nil
		}
		gamma, _ = modular.Mul(gamma, giant, mod)
	}
	return bignum.Int{}, apperrors.NewArithmeticError("discrete_log", apperrors.ErrNoDiscreteLog,
		"%s is not a power of %s modulo %s", n, base, mod)
}
