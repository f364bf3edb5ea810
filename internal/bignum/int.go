// Package bignum implements arbitrary-precision non-negative integers stored
// as little-endian vectors of base-10⁹ cells.
//
// The package covers the three lowest layers of the engine: the digit-vector
// kernel (parsing, formatting, ordering, addition, subtraction), the
// multiplication engine (scalar and Karatsuba/schoolbook hybrid), and the
// division engine (decimal long division). Every operation returns a fresh
// value; the only mutating method is (*Int).Reduce.
package bignum

import (
	"strconv"
	"strings"

	"fortio.org/safecast"

	apperrors "github.com/agbru/modcalc/internal/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Representation Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// Radix is the value each cell wraps around on carry. It is a power of
	// ten so that decimal conversion never needs a division, and small enough
	// that the product of two cells plus two carries fits in a uint64.
	Radix = 1_000_000_000

	// CellDigits is the number of decimal digits held by one cell.
	CellDigits = 9
)

// Int is an immutable non-negative integer of unbounded size.
//
// The cells are stored least-significant first. A canonical value is never
// empty and has no zero cell above its most significant non-zero cell; zero
// is the single cell 0. The zero value of Int is a valid representation of 0.
type Int struct {
	cells []uint32
}

var (
	zeroCells = []uint32{0}
	oneCells  = []uint32{1}
)

// Zero returns the value 0.
func Zero() Int { return Int{cells: zeroCells} }

// One returns the value 1.
func One() Int { return Int{cells: oneCells} }

// FromUint64 converts an unsigned machine integer.
func FromUint64(v uint64) Int {
	if v == 0 {
		return Zero()
	}
	cells := make([]uint32, 0, 3)
	for v > 0 {
		cells = append(cells, uint32(v%Radix))
		v /= Radix
	}
	return Int{cells: cells}
}

// FromInt converts a machine int, rejecting negative values with
// ErrInvalidInput.
func FromInt(v int) (Int, error) {
	u, err := safecast.Conv[uint64](v)
	if err != nil {
		return Int{}, apperrors.NewArithmeticError("from_int", apperrors.ErrInvalidInput, "%d is negative", v)
	}
	return FromUint64(u), nil
}

// c returns the canonical cells of x, mapping the zero value to [0].
func (x Int) c() []uint32 {
	if len(x.cells) == 0 {
		return zeroCells
	}
	return x.cells
}

// newInt wraps cells after trimming redundant zero cells. The slice is
// adopted, so callers must not retain it.
func newInt(cells []uint32) Int {
	cells = lean(cells)
	if len(cells) == 0 {
		return Zero()
	}
	return Int{cells: cells}
}

// lean trims zero cells above the most significant non-zero cell. Zero
// becomes the empty slice, which is the form the cell-level helpers use.
func lean(cells []uint32) []uint32 {
	n := len(cells)
	for n > 0 && cells[n-1] == 0 {
		n--
	}
	return cells[:n]
}

// Len returns the number of cells of the canonical representation.
func (x Int) Len() int { return len(x.c()) }

// Digits returns the number of decimal digits of x; zero has one digit.
func (x Int) Digits() int {
	xc := x.c()
	top := xc[len(xc)-1]
	return (len(xc)-1)*CellDigits + len(strconv.FormatUint(uint64(top), 10))
}

// Uint64 returns x as a uint64 and reports whether it fits.
func (x Int) Uint64() (uint64, bool) {
	xc := x.c()
	var v uint64
	const maxUint64 = ^uint64(0)
	for i := len(xc) - 1; i >= 0; i-- {
		c := uint64(xc[i])
		if v > (maxUint64-c)/Radix {
			return 0, false
		}
		v = v*Radix + c
	}
	return v, true
}

// String returns the canonical decimal representation of x. Every cell but
// the most significant is zero-padded to CellDigits so that inner zero
// groups are preserved.
func (x Int) String() string {
	xc := x.c()
	var sb strings.Builder
	sb.Grow(len(xc) * CellDigits)
	sb.WriteString(strconv.FormatUint(uint64(xc[len(xc)-1]), 10))
	for i := len(xc) - 2; i >= 0; i-- {
		s := strconv.FormatUint(uint64(xc[i]), 10)
		for pad := CellDigits - len(s); pad > 0; pad-- {
			sb.WriteByte('0')
		}
		sb.WriteString(s)
	}
	return sb.String()
}
