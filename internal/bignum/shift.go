package bignum

import (
	apperrors "github.com/agbru/modcalc/internal/errors"
)

// pow10Small holds 10^0 … 10^(CellDigits-1).
var pow10Small = [CellDigits]uint32{
	1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000,
}

// ShiftLeftDigits returns x·10^k. Whole cells are shifted by prepending zero
// cells; the remaining digits are applied with a scalar multiplication.
// Negative k is treated as 0.
func (x Int) ShiftLeftDigits(k int) Int {
	if k <= 0 || x.IsZero() {
		return x
	}
	whole, part := k/CellDigits, k%CellDigits
	y := x
	if part != 0 {
		y = x.MulUint32(pow10Small[part])
	}
	if whole == 0 {
		return y
	}
	yc := y.c()
	z := make([]uint32, whole+len(yc))
	copy(z[whole:], yc)
	return Int{cells: z}
}

// ShiftRightDigits returns ⌊x / 10^k⌋. Negative k is treated as 0.
func (x Int) ShiftRightDigits(k int) Int {
	if k <= 0 {
		return x
	}
	xc := x.c()
	whole, part := k/CellDigits, k%CellDigits
	if whole >= len(xc) {
		return Zero()
	}
	y := Int{cells: xc[whole:]}
	if part != 0 {
		y, _ = y.divModSmall(pow10Small[part])
	}
	return y
}

// LowDigits returns x mod 10^k, the k least significant decimal digits of x.
// Negative k yields 0.
func (x Int) LowDigits(k int) Int {
	if k <= 0 {
		return Zero()
	}
	xc := x.c()
	whole, part := k/CellDigits, k%CellDigits
	if whole >= len(xc) {
		return x
	}
	n := whole
	if part != 0 {
		n++
	}
	z := make([]uint32, n)
	copy(z, xc[:whole])
	if part != 0 {
		z[whole] = xc[whole] % pow10Small[part]
	}
	return newInt(z)
}

// Pow10 returns 10^k. It rejects negative k with ErrInvalidInput.
func Pow10(k int) (Int, error) {
	if k < 0 {
		return Int{}, apperrors.NewArithmeticError("pow10", apperrors.ErrInvalidInput, "negative exponent %d", k)
	}
	return One().ShiftLeftDigits(k), nil
}
