package numtheory

import (
	"github.com/agbru/modcalc/internal/bignum"
	apperrors "github.com/agbru/modcalc/internal/errors"
	"github.com/agbru/modcalc/internal/modular"
)

// ISqrt returns ⌊√n⌋.
//
// The bisection keeps lo² ≤ n < hi² and halves hi − lo with an exact floor
// midpoint, so it terminates after about log₂(hi) steps and has no failure
// path.
func ISqrt(n bignum.Int) bignum.Int {
	if n.Lt(bignum.FromUint64(2)) {
		return n
	}
	// n < 10^d, so √n < 10^⌈d/2⌉.
	hi, _ := bignum.Pow10((n.Digits() + 1) / 2)
	lo := bignum.Zero()
	one := bignum.One()
	for hi.MustSub(lo).Gt(one) {
		mid := lo.Add(hi).Halve()
		if mid.Square().Le(n) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// Roots holds the two square roots r and p − r of a quadratic residue.
type Roots struct {
	First  bignum.Int
	Second bignum.Int
}

// ModSqrt solves x² ≡ n (mod p) for an odd prime p with Tonelli–Shanks, or
// directly for p = 2.
//
// Residuosity is decided by Euler's criterion n^((p−1)/2) ≡ 1, so n ≡ 0 is
// reported as a non-residue.
//
// Returns:
//   - Roots: The roots r and p − r, valid only when the bool is true.
//   - bool: Whether n is a quadratic residue modulo p.
//   - error: ErrDivisionByZero for p == 0, ErrInvalidInput when p < 2 or the
//     search proves p composite, ErrIterationLimit or the context error when
//     the non-residue search is cut short.
func ModSqrt(n, p bignum.Int, opts ...Option) (Roots, bool, error) {
	if p.IsZero() {
		return Roots{}, false, apperrors.NewArithmeticError("mod_sqrt", apperrors.ErrDivisionByZero, "zero modulus")
	}
	if p.IsOne() {
		return Roots{}, false, apperrors.NewArithmeticError("mod_sqrt", apperrors.ErrInvalidInput, "modulus must be prime")
	}
	n, _ = modular.Reduce(n, p)
	if n.IsZero() {
		return Roots{}, false, nil
	}
	if p.Eq(two) {
		return Roots{First: n, Second: n}, true, nil
	}
	if p.IsEven() {
		return Roots{}, false, apperrors.NewArithmeticError("mod_sqrt", apperrors.ErrInvalidInput, "modulus must be an odd prime")
	}

	one := bignum.One()
	pMinus1 := p.MustSub(one)
	half := pMinus1.Halve()
	if euler, _ := modular.Pow(n, half, p); !euler.IsOne() {
		return Roots{}, false, nil
	}

	q, s := pMinus1, 0
	for q.IsEven() {
		q = q.Halve()
		s++
	}

	if s == 1 {
		// p ≡ 3 (mod 4)
		r, _ := modular.Pow(n, p.Add(one).Halve().Halve(), p)
		return rootsOf(r, n, p)
	}

	search := applyOptions(opts).meter("mod_sqrt")
	z := two
	for {
		if err := search.next(); err != nil {
			return Roots{}, false, err
		}
		if !z.Lt(p) {
			return Roots{}, false, compositeModulus()
		}
		if e, _ := modular.Pow(z, half, p); e.Eq(pMinus1) {
			break
		}
		z = z.Add(one)
	}

	c, _ := modular.Pow(z, q, p)
	r, _ := modular.Pow(n, q.Add(one).Halve(), p)
	t, _ := modular.Pow(n, q, p)
	m := s
	for !t.IsOne() {
		i, t2 := 0, t
		for !t2.IsOne() {
			t2, _ = modular.Mul(t2, t2, p)
			i++
			if i == m {
				return Roots{}, false, compositeModulus()
			}
		}
		b := c
		for k := 0; k < m-i-1; k++ {
			b, _ = modular.Mul(b, b, p)
		}
		r, _ = modular.Mul(r, b, p)
		c, _ = modular.Mul(b, b, p)
		t, _ = modular.Mul(t, c, p)
		m = i
	}
	return rootsOf(r, n, p)
}

// rootsOf checks r² ≡ n and returns the root pair.
func rootsOf(r, n, p bignum.Int) (Roots, bool, error) {
	if sq, _ := modular.Mul(r, r, p); !sq.Eq(n) {
		return Roots{}, false, compositeModulus()
	}
	return Roots{First: r, Second: p.MustSub(r)}, true, nil
}

func compositeModulus() error {
	return apperrors.NewArithmeticError("mod_sqrt", apperrors.ErrInvalidInput, "modulus is not prime")
}
