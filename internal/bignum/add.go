package bignum

import (
	apperrors "github.com/agbru/modcalc/internal/errors"
)

// Add returns x + y.
func (x Int) Add(y Int) Int {
	return newInt(addCells(x.c(), y.c()))
}

// Sub returns x - y, or an ArithmeticError of kind ErrUnderflow when x < y.
func (x Int) Sub(y Int) (Int, error) {
	if x.Lt(y) {
		return Int{}, apperrors.NewArithmeticError("sub", apperrors.ErrUnderflow, "minuend is smaller than subtrahend")
	}
	return newInt(subCells(x.c(), y.c())), nil
}

// MustSub returns x - y for callers that have already established x >= y.
// It panics on underflow.
func (x Int) MustSub(y Int) Int {
	z, err := x.Sub(y)
	if err != nil {
		panic(err)
	}
	return z
}

// addCells returns a + b as a fresh slice one cell longer than the longer
// operand. The result may carry a zero high cell.
func addCells(a, b []uint32) []uint32 {
	if len(a) < len(b) {
		a, b = b, a
	}
	z := make([]uint32, len(a)+1)
	var carry uint32
	for i := range a {
		s := a[i] + carry
		if i < len(b) {
			s += b[i]
		}
		if s >= Radix {
			s -= Radix
			carry = 1
		} else {
			carry = 0
		}
		z[i] = s
	}
	z[len(a)] = carry
	return z
}

// subCells returns a - b as a fresh slice. It requires a >= b; b may be
// shorter than a but must not carry non-zero cells beyond len(a).
func subCells(a, b []uint32) []uint32 {
	b = lean(b)
	z := make([]uint32, len(a))
	var borrow uint32
	for i := range a {
		d := borrow
		if i < len(b) {
			d += b[i]
		}
		if a[i] >= d {
			z[i] = a[i] - d
			borrow = 0
		} else {
			z[i] = a[i] + Radix - d
			borrow = 1
		}
	}
	return z
}

// addAt adds a into z starting at cell offset, propagating the carry through
// the remaining cells of z. z must be long enough to absorb the carry.
func addAt(z, a []uint32, offset int) {
	var carry uint32
	i := 0
	for ; i < len(a); i++ {
		s := z[offset+i] + a[i] + carry
		if s >= Radix {
			s -= Radix
			carry = 1
		} else {
			carry = 0
		}
		z[offset+i] = s
	}
	for j := offset + i; carry != 0; j++ {
		s := z[j] + carry
		if s >= Radix {
			s -= Radix
			carry = 1
		} else {
			carry = 0
		}
		z[j] = s
	}
}
