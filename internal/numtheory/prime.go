package numtheory

import (
	"github.com/agbru/modcalc/internal/bignum"
	"github.com/agbru/modcalc/internal/modular"
)

// millerRabinBases are the first thirteen primes. Strong probable primes to
// all of them are prime below ψ₁₃ = 3317044064679887385961981.
var millerRabinBases = []uint32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}

var two = bignum.FromUint64(2)

// IsPrime reports whether n is prime by trial division over 2, 3 and the
// candidates 6k ± 1 up to √n.
//
// Each candidate pair counts as one iteration against WithIterationBound,
// and WithContext stops the search early.
//
// Returns:
//   - bool: Whether n is prime; meaningful only when the error is nil.
//   - error: ErrIterationLimit past the bound, or the context error.
func IsPrime(n bignum.Int, opts ...Option) (bool, error) {
	b := applyOptions(opts).meter("is_prime")
	if v, ok := n.Uint64(); ok {
		return trialPrime64(v, b)
	}
	if n.IsEven() {
		return false, nil
	}
	if _, r, _ := n.DivModUint32(3); r == 0 {
		return false, nil
	}
	six := bignum.FromUint64(6)
	for i := bignum.FromUint64(5); i.Square().Le(n); i = i.Add(six) {
		if err := b.next(); err != nil {
			return false, err
		}
		if divides(i, n) || divides(i.Add(two), n) {
			return false, nil
		}
	}
	return true, nil
}

func trialPrime64(v uint64, b *budget) (bool, error) {
	switch {
	case v < 2:
		return false, nil
	case v < 4:
		return true, nil
	case v%2 == 0 || v%3 == 0:
		return false, nil
	}
	for i := uint64(5); i <= v/i; i += 6 {
		if err := b.next(); err != nil {
			return false, err
		}
		if v%i == 0 || v%(i+2) == 0 {
			return false, nil
		}
	}
	return true, nil
}

// isSmallPrime answers for v < 64 without a budget.
func isSmallPrime(v uint64) bool {
	ok, _ := trialPrime64(v, defaultOptions().meter("is_prime"))
	return ok
}

// divides reports whether d | n for non-zero d.
func divides(d, n bignum.Int) bool {
	r, _ := n.Mod(d)
	return r.IsZero()
}

// IsProbablePrime runs the Baillie–PSW test: Miller–Rabin with the first
// thirteen prime bases followed by a strong Lucas test with Selfridge's
// parameters.
//
// It never rejects a prime. The Miller–Rabin rounds alone are exact below
// 3.3·10²⁴; above that the answer is probabilistic, although no composite
// passing both halves is known.
func IsProbablePrime(n bignum.Int) bool {
	if v, ok := n.Uint64(); ok && v < 64 {
		return isSmallPrime(v)
	}
	if n.IsEven() {
		return false
	}
	for _, p := range millerRabinBases {
		if _, r, _ := n.DivModUint32(p); r == 0 {
			return false
		}
	}
	return millerRabin(n) && strongLucas(n)
}

func millerRabin(n bignum.Int) bool {
	nMinus1 := n.MustSub(bignum.One())
	d, s := nMinus1, 0
	for d.IsEven() {
		d = d.Halve()
		s++
	}

	for _, p := range millerRabinBases {
		x, err := modular.Pow(bignum.FromUint64(uint64(p)), d, n)
		if err != nil {
			return false
		}
		if x.IsOne() || x.Eq(nMinus1) {
			continue
		}
		witness := true
		for r := 1; r < s; r++ {
			x, _ = modular.Mul(x, x, n)
			if x.Eq(nMinus1) {
				witness = false
				break
			}
		}
		if witness {
			return false
		}
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Strong Lucas Test
// ─────────────────────────────────────────────────────────────────────────────

// strongLucas reports whether the odd n > 41 is a strong Lucas probable
// prime for P = 1, Q = (1 − D)/4, where D is the first of 5, −7, 9, −11, …
// with Jacobi symbol (D/n) = −1.
//
// With n + 1 = k·2^s and k odd, n passes when U_k ≡ 0 or V_(k·2^r) ≡ 0 for
// some 0 ≤ r < s. The sequences are climbed over the bits of k with
//
//	U_2j = U_j·V_j            V_2j = V_j² − 2Q^j
//	U_j+1 = (U_j + V_j)/2     V_j+1 = (D·U_j + V_j)/2
//
// where halving mod n adds n to odd values first.
func strongLucas(n bignum.Int) bool {
	if r := ISqrt(n); r.Square().Eq(n) {
		return false
	}

	d := int64(5)
	var dm bignum.Int
	for {
		dm = signedResidue(d, n)
		j := jacobi(dm, n)
		if j == -1 {
			break
		}
		if j == 0 && !dm.IsZero() {
			return false
		}
		if d > 0 {
			d = -(d + 2)
		} else {
			d = -d + 2
		}
	}
	q := signedResidue((1-d)/4, n)

	k, s := n.Add(bignum.One()), 0
	for k.IsEven() {
		k = k.Halve()
		s++
	}
	var bits []bool
	for e := k; !e.IsZero(); e = e.Halve() {
		bits = append(bits, !e.IsEven())
	}

	u, v, qk := bignum.One(), bignum.One(), q
	for i := len(bits) - 2; i >= 0; i-- {
		u, _ = modular.Mul(u, v, n)
		v = doubleV(v, qk, n)
		qk, _ = modular.Mul(qk, qk, n)
		if bits[i] {
			du, _ := modular.Mul(dm, u, n)
			uv, _ := modular.Add(u, v, n)
			dv, _ := modular.Add(du, v, n)
			u, v = halveMod(uv, n), halveMod(dv, n)
			qk, _ = modular.Mul(qk, q, n)
		}
	}
	if u.IsZero() || v.IsZero() {
		return true
	}
	for r := 1; r < s; r++ {
		v = doubleV(v, qk, n)
		if v.IsZero() {
			return true
		}
		qk, _ = modular.Mul(qk, qk, n)
	}
	return false
}

// doubleV returns V² − 2·Q^j mod n.
func doubleV(v, qk, n bignum.Int) bignum.Int {
	sq, _ := modular.Mul(v, v, n)
	twice, _ := modular.Add(qk, qk, n)
	out, _ := modular.Sub(sq, twice, n)
	return out
}

// halveMod returns x/2 mod n for odd n and x < n.
func halveMod(x, n bignum.Int) bignum.Int {
	if !x.IsEven() {
		x = x.Add(n)
	}
	return x.Halve()
}

// signedResidue returns v mod n as a value in [0, n).
func signedResidue(v int64, n bignum.Int) bignum.Int {
	if v >= 0 {
		r, _ := modular.Reduce(bignum.FromUint64(uint64(v)), n)
		return r
	}
	r, _ := modular.Reduce(bignum.FromUint64(uint64(-v)), n)
	if r.IsZero() {
		return r
	}
	return n.MustSub(r)
}

// jacobi returns the Jacobi symbol (a/n) for odd n > 0.
func jacobi(a, n bignum.Int) int {
	a, _ = modular.Reduce(a, n)
	result := 1
	for !a.IsZero() {
		for a.IsEven() {
			a = a.Halve()
			if _, r, _ := n.DivModUint32(8); r == 3 || r == 5 {
				result = -result
			}
		}
		a, n = n, a
		_, ra, _ := a.DivModUint32(4)
		_, rn, _ := n.DivModUint32(4)
		if ra == 3 && rn == 3 {
			result = -result
		}
		a, _ = modular.Reduce(a, n)
	}
	if n.IsOne() {
		return result
	}
	return 0
}
