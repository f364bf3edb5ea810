package modular

import (
	"github.com/agbru/modcalc/internal/bignum"
	apperrors "github.com/agbru/modcalc/internal/errors"
)

// GCD returns the greatest common divisor of a and b. GCD(0, 0) is 0.
func GCD(a, b bignum.Int) bignum.Int {
	for !b.IsZero() {
		r, _ := a.Mod(b)
		a, b = b, r
	}
	return a
}

// euclidInverse returns a⁻¹ mod m by the extended Euclidean algorithm.
//
// Only the coefficient of a is tracked, and it is kept reduced mod m so that
// the recurrence t' = t₀ − q·t₁ never leaves the non-negative integers.
func euclidInverse(a, m bignum.Int) (bignum.Int, error) {
	oldR, r := m, reduce(a, m)
	oldT, t := bignum.Zero(), bignum.One()
	for !r.IsZero() {
		q, rem, _ := oldR.DivMod(r)
		oldR, r = r, rem

		qt, _ := Mul(q, t, m)
		next, _ := Sub(oldT, qt, m)
		oldT, t = t, next
	}
	if !oldR.IsOne() {
		return bignum.Int{}, apperrors.NewArithmeticError("inverse", apperrors.ErrNotCoprime,
			"gcd(a, m) = %s", oldR)
	}
	return reduce(oldT, m), nil
}
