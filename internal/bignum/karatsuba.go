package bignum

import "sync/atomic"

// ─────────────────────────────────────────────────────────────────────────────
// Configuration Constants
// ─────────────────────────────────────────────────────────────────────────────

// DefaultKaratsubaThreshold is the block size in cells at or below which the
// O(n²) schoolbook multiplication is faster than another Karatsuba split.
const DefaultKaratsubaThreshold = 32

// MinKaratsubaThreshold keeps the recursion from splitting blocks that are
// too small to halve.
const MinKaratsubaThreshold = 4

// karatsubaThreshold is the current threshold (can be modified for tuning).
var karatsubaThreshold atomic.Int64

func init() {
	karatsubaThreshold.Store(DefaultKaratsubaThreshold)
}

// SetKaratsubaThreshold sets the block size below which Mul uses schoolbook
// multiplication and returns the previous value. Values below 4 are clamped.
// This is intended for calibration and tests.
func SetKaratsubaThreshold(n int) int {
	n = max(n, MinKaratsubaThreshold)
	return int(karatsubaThreshold.Swap(int64(n)))
}

// KaratsubaThreshold returns the current Karatsuba threshold in cells.
func KaratsubaThreshold() int {
	return int(karatsubaThreshold.Load())
}

// ─────────────────────────────────────────────────────────────────────────────
// Recursion
// ─────────────────────────────────────────────────────────────────────────────

// karatsuba returns x·y for normalized cell slices of any length. The result
// is normalized and may carry zero high cells.
//
// With x = x1·B^k + x0 and y = y1·B^k + y0:
//
//	x·y = z2·B^(2k) + (s - z2 - z0)·B^k + z0
//
// where z0 = x0·y0, z2 = x1·y1 and s = (x0+x1)(y0+y1). Sums of halves are
// carried into an extra cell rather than left unnormalized, so every cell
// stays below Radix at every depth.
func karatsuba(x, y []uint32, threshold int) []uint32 {
	x, y = lean(x), lean(y)
	if len(x) < len(y) {
		x, y = y, x
	}
	if len(y) == 0 {
		return nil
	}
	if len(y) <= threshold {
		return schoolbook(x, y)
	}

	k := (len(x) + 1) / 2
	x0, x1 := x[:k], x[k:]
	y0, y1 := y[:min(k, len(y))], y[min(k, len(y)):]

	z0 := karatsuba(x0, y0, threshold)
	z2 := karatsuba(x1, y1, threshold)
	s := karatsuba(addCells(x0, x1), addCells(y0, y1), threshold)

	mid := subCells(lean(s), z0)
	mid = subCells(lean(mid), z2)

	z := make([]uint32, len(x)+len(y)+1)
	addAt(z, lean(z0), 0)
	addAt(z, lean(mid), k)
	addAt(z, lean(z2), 2*k)
	return z
}
