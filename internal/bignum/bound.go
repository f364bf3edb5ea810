package bignum

import (
	"strings"
	"sync"
)

// sentinelDigits is the length of the maximum-sentinel constant.
const sentinelDigits = 86

// Sentinel returns the 86-digit all-nines constant historically used as a
// stand-in for "no limit".
//
// The sentinel is an ordinary value: an operand that reaches this magnitude
// compares as equal or larger, so it must never be used where such operands
// can occur. New code should express limits with Bound instead.
var Sentinel = sync.OnceValue(func() Int {
	return MustParse(strings.Repeat("9", sentinelDigits))
})

// Bound is an optional upper limit. The zero value is unbounded.
type Bound struct {
	limit Int
	set   bool
}

// Unbounded returns a Bound that admits every value.
func Unbounded() Bound { return Bound{} }

// BoundOf returns a Bound with limit x.
func BoundOf(x Int) Bound { return Bound{limit: x, set: true} }

// Limit returns the limit and whether one is set.
func (b Bound) Limit() (Int, bool) { return b.limit, b.set }

// IsUnbounded reports whether b admits every value.
func (b Bound) IsUnbounded() bool { return !b.set }

// Admits reports whether x <= limit; an unbounded Bound admits everything.
func (b Bound) Admits(x Int) bool { return !b.set || x.Le(b.limit) }

// String returns the limit in decimal, or "unbounded".
func (b Bound) String() string {
	if !b.set {
		return "unbounded"
	}
	return b.limit.String()
}
