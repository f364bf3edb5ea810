package bignum

import (
	apperrors "github.com/agbru/modcalc/internal/errors"
)

// DivMod returns the quotient and remainder of x / y, so that
// x = q·y + r with 0 <= r < y.
//
// A dividend smaller than the divisor short-circuits to (0, x), and a
// single-cell divisor uses short division. Otherwise the dividend is
// processed one decimal digit at a time: the running remainder is shifted by
// one digit, and the largest multiple 0–9 of the divisor that does not
// exceed it is subtracted and recorded as the next quotient digit.
//
// Returns:
//   - Int: The quotient ⌊x / y⌋.
//   - Int: The remainder x mod y.
//   - error: An ArithmeticError of kind ErrDivisionByZero if y == 0.
func (x Int) DivMod(y Int) (Int, Int, error) {
	if y.IsZero() {
		return Int{}, Int{}, apperrors.NewArithmeticError("divmod", apperrors.ErrDivisionByZero, "")
	}
	if x.Lt(y) {
		return Zero(), x, nil
	}
	if yc := y.c(); len(yc) == 1 {
		q, r := x.divModSmall(yc[0])
		return q, FromUint64(uint64(r)), nil
	}
	q, r := longDivide(x, y)
	return q, r, nil
}

// Div returns ⌊x / y⌋.
func (x Int) Div(y Int) (Int, error) {
	q, _, err := x.DivMod(y)
	return q, err
}

// Mod returns x mod y.
func (x Int) Mod(y Int) (Int, error) {
	_, r, err := x.DivMod(y)
	return r, err
}

// Reduce replaces x with x mod m in place. On error x is left unchanged.
func (x *Int) Reduce(m Int) error {
	r, err := x.Mod(m)
	if err != nil {
		return err
	}
	x.cells = r.cells
	return nil
}

// DivModUint32 returns ⌊x / d⌋ and x mod d for a machine-sized divisor.
func (x Int) DivModUint32(d uint32) (Int, uint32, error) {
	if d == 0 {
		return Int{}, 0, apperrors.NewArithmeticError("divmod", apperrors.ErrDivisionByZero, "")
	}
	q, r := x.divModSmall(d)
	return q, r, nil
}

// Halve returns ⌊x / 2⌋.
func (x Int) Halve() Int {
	q, _ := x.divModSmall(2)
	return q
}

// divModSmall is short division by a non-zero d. The partial remainder is
// below d, so r·Radix + cell fits in a uint64.
func (x Int) divModSmall(d uint32) (Int, uint32) {
	xc := x.c()
	q := make([]uint32, len(xc))
	var r uint64
	dd := uint64(d)
	for i := len(xc) - 1; i >= 0; i-- {
		cur := r*Radix + uint64(xc[i])
		q[i] = uint32(cur / dd)
		r = cur % dd
	}
	return newInt(q), uint32(r)
}

// ─────────────────────────────────────────────────────────────────────────────
// Decimal Long Division
// ─────────────────────────────────────────────────────────────────────────────

// longDivide divides x by a multi-cell y with x >= y.
func longDivide(x, y Int) (Int, Int) {
	var multiples [10][]uint32
	for k := 1; k < 10; k++ {
		multiples[k] = y.MulUint32(uint32(k)).c()
	}

	digits := x.String()
	quotient := make([]byte, len(digits))
	rem := make([]uint32, 0, len(y.c())+1)
	for i := 0; i < len(digits); i++ {
		rem = shiftInDigit(rem, uint32(digits[i]-'0'))
		k := 9
		for k > 0 && cmpCells(multiples[k], rem) > 0 {
			k--
		}
		if k > 0 {
			rem = subFrom(rem, multiples[k])
		}
		quotient[i] = byte('0' + k)
	}
	return MustParse(string(quotient)), newInt(rem)
}

// shiftInDigit returns r·10 + d, reusing r's storage. r is lean and the
// result stays lean.
func shiftInDigit(r []uint32, d uint32) []uint32 {
	carry := uint64(d)
	for i := range r {
		t := uint64(r[i])*10 + carry
		r[i] = uint32(t % Radix)
		carry = t / Radix
	}
	if carry != 0 {
		r = append(r, uint32(carry))
	}
	return r
}

// subFrom computes a -= b in place for a >= b and returns the lean result.
func subFrom(a, b []uint32) []uint32 {
	var borrow uint32
	for i := range a {
		d := borrow
		if i < len(b) {
			d += b[i]
		} else if borrow == 0 {
			break
		}
		if a[i] >= d {
			a[i] -= d
			borrow = 0
		} else {
			a[i] = a[i] + Radix - d
			borrow = 1
		}
	}
	return lean(a)
}
