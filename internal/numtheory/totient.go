package numtheory

import (
	"github.com/agbru/modcalc/internal/bignum"
	apperrors "github.com/agbru/modcalc/internal/errors"
	"github.com/agbru/modcalc/internal/modular"
)

// EulerTotient returns φ(m), the count of integers in [1, m] coprime to m,
// computed as Π p^(e−1)·(p − 1) over the factorization of m.
func EulerTotient(m bignum.Int, opts ...Option) (bignum.Int, error) {
	if m.IsZero() {
		return bignum.Int{}, apperrors.NewArithmeticError("totient", apperrors.ErrInvalidInput, "φ(0) is undefined")
	}
	factors, err := FactorizePollard(m, opts...)
	if err != nil {
		return bignum.Int{}, err
	}
	phi := bignum.One()
	for _, f := range factors {
		phi = phi.Mul(f.Prime.MustSub(bignum.One()))
		for i := 1; i < f.Exponent; i++ {
			phi = phi.Mul(f.Prime)
		}
	}
	return phi, nil
}

// MultiplicativeOrder returns the smallest k ≥ 1 with a^k ≡ 1 (mod m).
//
// The order divides φ(m); starting from φ(m), each prime factor is divided
// out for as long as the power still reduces to 1.
//
// Returns:
//   - bignum.Int: The order of a.
//   - error: ErrDivisionByZero for m == 0, ErrNotCoprime when gcd(a, m) ≠ 1.
func MultiplicativeOrder(a, m bignum.Int, opts ...Option) (bignum.Int, error) {
	if m.IsZero() {
		return bignum.Int{}, apperrors.NewArithmeticError("order", apperrors.ErrDivisionByZero, "zero modulus")
	}
	if m.IsOne() {
		return bignum.One(), nil
	}
	if g := modular.GCD(a, m); !g.IsOne() {
		return bignum.Int{}, apperrors.NewArithmeticError("order", apperrors.ErrNotCoprime, "gcd(a, m) = %s", g)
	}

	order, err := EulerTotient(m, opts...)
	if err != nil {
		return bignum.Int{}, err
	}
	factors, err := FactorizePollard(order, opts...)
	if err != nil {
		return bignum.Int{}, err
	}
	for _, f := range factors {
		for i := 0; i < f.Exponent; i++ {
			q, r, _ := order.DivMod(f.Prime)
			if !r.IsZero() {
				break
			}
			if x, _ := modular.Pow(a, q, m); !x.IsOne() {
				break
			}
			order = q
		}
	}
	return order, nil
}
