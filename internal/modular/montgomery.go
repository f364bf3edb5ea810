package modular

import (
	"errors"

	"github.com/agbru/modcalc/internal/bignum"
	apperrors "github.com/agbru/modcalc/internal/errors"
)

// MontgomeryRadix returns R = 10^(d+1) where d is the number of decimal
// digits of m. R always exceeds m, and being a power of ten, reducing mod R
// and dividing by R are decimal truncations.
func MontgomeryRadix(m bignum.Int) bignum.Int {
	r, _ := bignum.Pow10(m.Digits() + 1)
	return r
}

// Montgomery holds the precomputed constants for arithmetic in Montgomery
// form modulo a fixed m. It is immutable and safe for concurrent use.
type Montgomery struct {
	m        bignum.Int
	digits   int        // R = 10^digits
	rInv     bignum.Int // R⁻¹ mod m
	coeff    bignum.Int // −m⁻¹ mod R
	oneMont  bignum.Int // R mod m, the Montgomery form of 1
	modIsOne bool
}

// NewMontgomery precomputes a Montgomery context for m.
//
// Returns:
//   - *Montgomery: The context.
//   - error: ErrDivisionByZero for m == 0, ErrNotCoprime when m shares a
//     factor with R (that is, when 2 or 5 divides m).
func NewMontgomery(m bignum.Int) (*Montgomery, error) {
	if err := checkModulus("montgomery", m); err != nil {
		return nil, err
	}
	digits := m.Digits() + 1
	r := MontgomeryRadix(m)

	rInv, err := euclidInverse(r, m)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotCoprime) {
			return nil, apperrors.NewArithmeticError("montgomery", apperrors.ErrNotCoprime,
				"modulus shares a factor with the radix 10^%d", digits)
		}
		return nil, err
	}

	mt := &Montgomery{
		m:        m,
		digits:   digits,
		rInv:     rInv,
		oneMont:  reduce(r, m),
		modIsOne: m.IsOne(),
	}
	if mt.modIsOne {
		mt.coeff = bignum.Zero()
		return mt, nil
	}
	// R·R⁻¹ − 1 is a multiple of m; the quotient k satisfies m·k ≡ −1 (mod R).
	k, _ := r.Mul(rInv).MustSub(bignum.One()).Div(m)
	mt.coeff = k
	return mt, nil
}

// Modulus returns m.
func (mt *Montgomery) Modulus() bignum.Int { return mt.m }

// Radix returns R.
func (mt *Montgomery) Radix() bignum.Int {
	r, _ := bignum.Pow10(mt.digits)
	return r
}

// RadixInverse returns R⁻¹ mod m.
func (mt *Montgomery) RadixInverse() bignum.Int { return mt.rInv }

// Coefficient returns −m⁻¹ mod R.
func (mt *Montgomery) Coefficient() bignum.Int { return mt.coeff }

// ToMontgomery returns x·R mod m.
func (mt *Montgomery) ToMontgomery(x bignum.Int) bignum.Int {
	return reduce(reduce(x, mt.m).ShiftLeftDigits(mt.digits), mt.m)
}

// FromMontgomery returns y·R⁻¹ mod m.
func (mt *Montgomery) FromMontgomery(y bignum.Int) bignum.Int {
	return mt.redc(reduce(y, mt.m))
}

// Multiply returns a·b·R⁻¹ mod m for operands already in Montgomery form.
// Both operands must be below m; otherwise it fails with
// ErrPreconditionViolated.
func (mt *Montgomery) Multiply(a, b bignum.Int) (bignum.Int, error) {
	if a.Ge(mt.m) || b.Ge(mt.m) {
		return bignum.Int{}, apperrors.NewArithmeticError("montgomery_multiply", apperrors.ErrPreconditionViolated,
			"operands must be reduced below the modulus")
	}
	return mt.redc(a.Mul(b)), nil
}

// redc is Montgomery reduction of t < m·R:
//
//	u = (t mod R)·coeff mod R
//	t' = (t + u·m) / R
//
// t + u·m is an exact multiple of R and t' < 2m, so at most one final
// subtraction brings it into [0, m).
func (mt *Montgomery) redc(t bignum.Int) bignum.Int {
	u := t.LowDigits(mt.digits).Mul(mt.coeff).LowDigits(mt.digits)
	res := t.Add(u.Mul(mt.m)).ShiftRightDigits(mt.digits)
	if res.Ge(mt.m) {
		res = res.MustSub(mt.m)
	}
	return res
}

// Pow returns base^exp mod m with an LSB-first square-and-multiply ladder
// that runs entirely in Montgomery form. Every step goes through Multiply;
// its operands are redc outputs and therefore already below m.
func (mt *Montgomery) Pow(base, exp bignum.Int) bignum.Int {
	if mt.modIsOne {
		return bignum.Zero()
	}
	result := mt.oneMont
	b := mt.ToMontgomery(base)
	for e := exp; !e.IsZero(); e = e.Halve() {
		if !e.IsEven() {
			result, _ = mt.Multiply(result, b)
		}
		b, _ = mt.Multiply(b, b)
	}
	return mt.FromMontgomery(result)
}
