package modular

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/modcalc/internal/bignum"
)

// u256 converts a 256-bit word into a bignum.Int through its decimal form.
func u256(u *uint256.Int) bignum.Int {
	return bignum.MustParse(u.ToBig().String())
}

func words() gopter.Gen {
	return gen.SliceOfN(4, gen.UInt64())
}

func fromWords(w []uint64) *uint256.Int {
	return &uint256.Int{w[0], w[1], w[2], w[3]}
}

// mulModLadder is an independent base^exp mod m built on uint256.MulMod.
func mulModLadder(base, exp, m *uint256.Int) *uint256.Int {
	result := uint256.NewInt(1)
	result.Mod(result, m)
	b := new(uint256.Int).Mod(base, m)
	e := new(uint256.Int).Set(exp)
	for !e.IsZero() {
		if e.Uint64()&1 == 1 {
			result.MulMod(result, b, m)
		}
		b.MulMod(b, b, m)
		e.Rsh(e, 1)
	}
	return result
}

func TestModularArithmetic_PropertyBased(t *testing.T) {
	t.Parallel()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Add and Mul match uint256", prop.ForAll(
		func(aw, bw, mw []uint64) bool {
			a, b, m := fromWords(aw), fromWords(bw), fromWords(mw)
			if m.IsZero() {
				return true
			}
			sum, err1 := Add(u256(a), u256(b), u256(m))
			prod, err2 := Mul(u256(a), u256(b), u256(m))
			return err1 == nil && err2 == nil &&
				sum.Eq(u256(new(uint256.Int).AddMod(a, b, m))) &&
				prod.Eq(u256(new(uint256.Int).MulMod(a, b, m)))
		},
		words(), words(), words(),
	))

	properties.Property("Sub(Add(a, b), b) == a mod m", prop.ForAll(
		func(aw, bw, mw []uint64) bool {
			a, b, m := u256(fromWords(aw)), u256(fromWords(bw)), u256(fromWords(mw))
			if m.IsZero() {
				return true
			}
			s, _ := Add(a, b, m)
			back, _ := Sub(s, b, m)
			ra, _ := Reduce(a, m)
			return back.Eq(ra)
		},
		words(), words(), words(),
	))

	properties.Property("Pow == PowPlain == uint256 ladder", prop.ForAll(
		func(bw []uint64, e uint64, mw []uint64) bool {
			base, m := fromWords(bw), fromWords(mw)
			if m.IsZero() {
				return true
			}
			exp := uint256.NewInt(e)
			want := u256(mulModLadder(base, exp, m))
			fast, err1 := Pow(u256(base), u256(exp), u256(m))
			plain, err2 := PowPlain(u256(base), u256(exp), u256(m))
			return err1 == nil && err2 == nil && fast.Eq(want) && plain.Eq(want)
		},
		words(), gen.UInt64(), words(),
	))

	properties.Property("Euclid inverse satisfies a·a⁻¹ ≡ 1", prop.ForAll(
		func(aw, mw []uint64) bool {
			a, m := u256(fromWords(aw)), u256(fromWords(mw))
			if m.IsZero() {
				return true
			}
			inv, err := Inverse(a, m, PolicyEuclid)
			if !GCD(a, m).IsOne() {
				return err != nil
			}
			if err != nil || !inv.Lt(m) {
				return false
			}
			check, _ := Mul(a, inv, m)
			one, _ := Reduce(bignum.One(), m)
			return check.Eq(one)
		},
		words(), words(),
	))

	properties.TestingRun(t)
}

func TestFermatMatchesEuclidOnPrimes_PropertyBased(t *testing.T) {
	t.Parallel()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	primes := []bignum.Int{
		n("1000000007"),
		n("2305843009213693951"),
		n("170141183460469231731687303715884105727"),
	}
	properties.Property("PolicyFermat == PolicyEuclid for prime moduli", prop.ForAll(
		func(a uint64, idx int) bool {
			p := primes[idx]
			x := bignum.FromUint64(a)
			if r, _ := Reduce(x, p); r.IsZero() {
				return true
			}
			e, err1 := Inverse(x, p, PolicyEuclid)
			f, err2 := Inverse(x, p, PolicyFermat)
			return err1 == nil && err2 == nil && e.Eq(f)
		},
		gen.UInt64(), gen.IntRange(0, len(primes)-1),
	))

	properties.TestingRun(t)
}
