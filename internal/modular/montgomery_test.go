package modular

import (
	"errors"
	"strings"
	"testing"

	"github.com/agbru/modcalc/internal/bignum"
	apperrors "github.com/agbru/modcalc/internal/errors"
	"github.com/agbru/modcalc/internal/reference"
)

func TestScenarioMontgomeryPow(t *testing.T) {
	t.Parallel()
	got, err := Pow(n("4"), n("13"), n("497"))
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "445" {
		t.Errorf("4^13 mod 497 = %s, want 445", got)
	}
}

func TestMontgomeryRadix(t *testing.T) {
	t.Parallel()
	tests := []struct{ m, want string }{
		{"7", "100"},
		{"497", "10000"},
		{"999999999", "10000000000"},
	}
	for _, tt := range tests {
		if got := MontgomeryRadix(n(tt.m)); got.String() != tt.want {
			t.Errorf("MontgomeryRadix(%s) = %s, want %s", tt.m, got, tt.want)
		}
	}
}

func TestMontgomeryConstants(t *testing.T) {
	t.Parallel()
	for _, m := range []string{"3", "7", "497", "1000000007", strings.Repeat("9", 40) + "7"} {
		mt, err := NewMontgomery(n(m))
		if err != nil {
			t.Fatalf("NewMontgomery(%s) error: %v", m, err)
		}
		r := mt.Radix()
		if !r.Eq(MontgomeryRadix(n(m))) || !mt.Modulus().Eq(n(m)) {
			t.Fatalf("context for %s has wrong radix or modulus", m)
		}
		if prod, _ := Mul(r, mt.RadixInverse(), n(m)); !prod.IsOne() {
			t.Errorf("m=%s: R·R⁻¹ mod m = %s, want 1", m, prod)
		}
		if check, _ := n(m).Mul(mt.Coefficient()).Add(bignum.One()).Mod(r); !check.IsZero() {
			t.Errorf("m=%s: m·coeff + 1 mod R = %s, want 0", m, check)
		}
	}
}

func TestMontgomeryRejectsNonCoprimeModulus(t *testing.T) {
	t.Parallel()
	for _, m := range []string{"2", "10", "25", "1000000000", "497000"} {
		if _, err := NewMontgomery(n(m)); !errors.Is(err, apperrors.ErrNotCoprime) {
			t.Errorf("NewMontgomery(%s) error = %v, want ErrNotCoprime", m, err)
		}
	}
}

func TestMontgomeryRoundTripAndMultiply(t *testing.T) {
	t.Parallel()
	m := n("1000000007")
	mt, err := NewMontgomery(m)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"0", "1", "2", "123456789", "1000000006"} {
		x := n(s)
		if got := mt.FromMontgomery(mt.ToMontgomery(x)); !got.Eq(x) {
			t.Errorf("round trip of %s = %s", s, got)
		}
	}

	a, b := n("123456789"), n("987654321")
	prod, err := mt.Multiply(mt.ToMontgomery(a), mt.ToMontgomery(b))
	if err != nil {
		t.Fatal(err)
	}
	want, _ := Mul(a, b, m)
	if got := mt.FromMontgomery(prod); !got.Eq(want) {
		t.Errorf("Montgomery product = %s, want %s", got, want)
	}
}

func TestMontgomeryMultiplyPrecondition(t *testing.T) {
	t.Parallel()
	mt, err := NewMontgomery(n("497"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := mt.Multiply(n("497"), n("1")); !errors.Is(err, apperrors.ErrPreconditionViolated) {
		t.Errorf("Multiply(497, 1) error = %v, want ErrPreconditionViolated", err)
	}
	if _, err := mt.Multiply(n("1"), n("1000")); !errors.Is(err, apperrors.ErrPreconditionViolated) {
		t.Errorf("Multiply(1, 1000) error = %v, want ErrPreconditionViolated", err)
	}
}

func TestPowEdgeCases(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		base, exp, mod string
		want           string
	}{
		{"ZeroExponent", "12345", "0", "497", "1"},
		{"ModulusOne", "12345", "678", "1", "0"},
		{"ZeroExponentModulusOne", "5", "0", "1", "0"},
		{"ZeroBase", "0", "5", "497", "0"},
		{"EvenModulusFallsBack", "2", "10", "1000", "24"},
		{"MultipleOfFive", "3", "200", "1000000", "44001"},
		{"Prime", "123456789", "987654321", "1000000007", "652541198"},
		{"UnreducedBase", "4971", "13", "497", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Pow(n(tt.base), n(tt.exp), n(tt.mod))
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != tt.want {
				t.Errorf("Pow = %s, want %s", got, tt.want)
			}
			plain, err := PowPlain(n(tt.base), n(tt.exp), n(tt.mod))
			if err != nil {
				t.Fatal(err)
			}
			if !plain.Eq(got) {
				t.Errorf("PowPlain = %s, Pow = %s", plain, got)
			}
		})
	}
}

func TestPowMatchesReferenceOnLargeOperands(t *testing.T) {
	t.Parallel()
	oracle := reference.Default()
	cases := []struct{ base, exp, mod string }{
		{strings.Repeat("7", 120), strings.Repeat("3", 60), strings.Repeat("9", 99) + "7"},
		{strings.Repeat("1234567", 30), "65537", strings.Repeat("31", 50) + "3"},
		{"2", strings.Repeat("9", 30), strings.Repeat("12", 80)},
	}
	for _, c := range cases {
		want, err := oracle.ModPow(c.base, c.exp, c.mod)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Pow(n(c.base), n(c.exp), n(c.mod))
		if err != nil {
			t.Fatal(err)
		}
		if got.String() != want {
			t.Errorf("Pow mismatch for %d-digit modulus.\nExpected: %s\nGot:      %s", len(c.mod), want, got)
		}
	}
}

// TestMontgomeryPowMatchesMultiplyChain rebuilds a^13 from Multiply calls
// on Montgomery-form operands and compares it with the ladder.
func TestMontgomeryPowMatchesMultiplyChain(t *testing.T) {
	t.Parallel()
	for _, m := range []string{"497", "1000000007", strings.Repeat("9", 30) + "1"} {
		mt, err := NewMontgomery(n(m))
		if err != nil {
			t.Fatal(err)
		}
		base := n(m).MustSub(n("2"))
		a := mt.ToMontgomery(base)
		acc := mt.ToMontgomery(bignum.One())
		for i := 0; i < 13; i++ {
			if acc, err = mt.Multiply(acc, a); err != nil {
				t.Fatalf("m=%s: Multiply error: %v", m, err)
			}
		}
		if got, want := mt.Pow(base, n("13")), mt.FromMontgomery(acc); !got.Eq(want) {
			t.Errorf("m=%s: Pow = %s, Multiply chain = %s", m, got, want)
		}
	}
}
