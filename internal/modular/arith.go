// Package modular implements arithmetic in ℤ/mℤ on top of bignum: reduced
// addition, subtraction and multiplication, Euclid's gcd, modular inverses,
// and Montgomery-form exponentiation.
//
// The inverse and the exponentiation ladder depend on each other (the Fermat
// inverse is a power, the Montgomery setup needs a Euclid inverse), so both
// layers live in this package. Every function is pure; the only shared state
// is the Montgomery context cache.
package modular

import (
	"github.com/agbru/modcalc/internal/bignum"
	apperrors "github.com/agbru/modcalc/internal/errors"
)

// checkModulus rejects a zero modulus on behalf of op.
func checkModulus(op string, m bignum.Int) error {
	if m.IsZero() {
		return apperrors.NewArithmeticError(op, apperrors.ErrDivisionByZero, "zero modulus")
	}
	return nil
}

// reduce returns x mod m for a modulus already known to be non-zero.
func reduce(x, m bignum.Int) bignum.Int {
	if x.Lt(m) {
		return x
	}
	r, _ := x.Mod(m)
	return r
}

// Add returns (a + b) mod m.
func Add(a, b, m bignum.Int) (bignum.Int, error) {
	if err := checkModulus("mod_add", m); err != nil {
		return bignum.Int{}, err
	}
	s := reduce(a, m).Add(reduce(b, m))
	if s.Ge(m) {
		s = s.MustSub(m)
	}
	return s, nil
}

// Sub returns (a - b) mod m, wrapping around by adding m when the reduced
// minuend is the smaller operand.
func Sub(a, b, m bignum.Int) (bignum.Int, error) {
	if err := checkModulus("mod_sub", m); err != nil {
		return bignum.Int{}, err
	}
	ra, rb := reduce(a, m), reduce(b, m)
	if ra.Lt(rb) {
		ra = ra.Add(m)
	}
	return ra.MustSub(rb), nil
}

// Mul returns (a · b) mod m.
func Mul(a, b, m bignum.Int) (bignum.Int, error) {
	if err := checkModulus("mod_mul", m); err != nil {
		return bignum.Int{}, err
	}
	return reduce(reduce(a, m).Mul(reduce(b, m)), m), nil
}

// Reduce returns a mod m.
func Reduce(a, m bignum.Int) (bignum.Int, error) {
	if err := checkModulus("mod", m); err != nil {
		return bignum.Int{}, err
	}
	return reduce(a, m), nil
}
