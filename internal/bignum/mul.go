package bignum

// ─────────────────────────────────────────────────────────────────────────────
// Public API
// ─────────────────────────────────────────────────────────────────────────────

// MulUint32 returns x·k. The running carry is kept in a uint64, and the
// final carry, which may exceed one cell, is folded into up to two extra
// cells.
func (x Int) MulUint32(k uint32) Int {
	if k == 0 || x.IsZero() {
		return Zero()
	}
	if k == 1 {
		return x
	}
	xc := x.c()
	z := make([]uint32, len(xc)+2)
	var carry uint64
	for i, c := range xc {
		t := uint64(c)*uint64(k) + carry
		z[i] = uint32(t % Radix)
		carry = t / Radix
	}
	z[len(xc)] = uint32(carry % Radix)
	z[len(xc)+1] = uint32(carry / Radix)
	return newInt(z)
}

// Mul returns x·y.
//
// Operands go to the Karatsuba recursion unpadded. Each level splits the
// longer operand at ⌈len/2⌉ cells, so halves may differ by one cell and the
// shorter operand may have an empty high half. Blocks of at most
// KaratsubaThreshold cells fall back to schoolbook multiplication, and a
// single-cell operand takes the scalar path directly.
func (x Int) Mul(y Int) Int {
	if x.IsZero() || y.IsZero() {
		return Zero()
	}
	xc, yc := x.c(), y.c()
	if len(xc) == 1 {
		return y.MulUint32(xc[0])
	}
	if len(yc) == 1 {
		return x.MulUint32(yc[0])
	}
	return newInt(karatsuba(xc, yc, KaratsubaThreshold()))
}

// Square returns x·x.
func (x Int) Square() Int { return x.Mul(x) }

// ─────────────────────────────────────────────────────────────────────────────
// Schoolbook Base Case
// ─────────────────────────────────────────────────────────────────────────────

// schoolbook returns a·b as a fresh slice of len(a)+len(b) cells.
//
// Each row accumulates into a uint64: a product of two cells plus the
// current cell and the row carry is at most Radix²-1, so the carry stays
// below Radix and no accumulator can overflow.
func schoolbook(a, b []uint32) []uint32 {
	z := make([]uint32, len(a)+len(b))
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		var carry uint64
		for j, bj := range b {
			t := uint64(z[i+j]) + uint64(ai)*uint64(bj) + carry
			z[i+j] = uint32(t % Radix)
			carry = t / Radix
		}
		z[i+len(b)] = uint32(carry)
	}
	return z
}
