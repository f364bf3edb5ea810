package modular

import (
	"errors"
	"testing"

	"github.com/agbru/modcalc/internal/bignum"
	apperrors "github.com/agbru/modcalc/internal/errors"
)

// trialPrime is a small primality check for the Fermat policy tests.
func trialPrime(x bignum.Int) bool {
	v, ok := x.Uint64()
	if !ok || v < 2 {
		return false
	}
	for d := uint64(2); d*d <= v; d++ {
		if v%d == 0 {
			return false
		}
	}
	return true
}

func TestInverse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, m, want string
		policy     Policy
	}{
		{"3", "11", "4", PolicyEuclid},
		{"3", "11", "4", PolicyFermat},
		{"17", "3120", "2753", PolicyEuclid},
		{"14", "11", "4", PolicyEuclid},
		{"1", "2", "1", PolicyFermat},
		{"5", "1", "0", PolicyEuclid},
		{"5", "1", "0", PolicyFermat},
		{"2", "1000000007", "500000004", PolicyFermat},
		{"2", "1000000007", "500000004", PolicyEuclid},
	}
	for _, tt := range tests {
		got, err := Inverse(n(tt.a), n(tt.m), tt.policy)
		if err != nil {
			t.Fatalf("Inverse(%s, %s, %v) error: %v", tt.a, tt.m, tt.policy, err)
		}
		if got.String() != tt.want {
			t.Errorf("Inverse(%s, %s, %v) = %s, want %s", tt.a, tt.m, tt.policy, got, tt.want)
		}
	}
}

func TestInverseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		a, m   string
		policy Policy
		opts   []InverseOption
		want   error
	}{
		{"EuclidNotCoprime", "6", "9", PolicyEuclid, nil, apperrors.ErrNotCoprime},
		{"FermatNotCoprime", "6", "9", PolicyFermat, nil, apperrors.ErrNotCoprime},
		{"ZeroValue", "0", "7", PolicyEuclid, nil, apperrors.ErrNotCoprime},
		{"FermatComposite", "2", "15", PolicyFermat, []InverseOption{WithPrimalityCheck(trialPrime)}, apperrors.ErrNotPrime},
		{"UnknownPolicy", "2", "15", Policy(9), nil, apperrors.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Inverse(n(tt.a), n(tt.m), tt.policy, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEuclidIgnoresPrimalityCheck(t *testing.T) {
	t.Parallel()
	got, err := Inverse(n("2"), n("15"), PolicyEuclid, WithPrimalityCheck(trialPrime))
	if err != nil || got.String() != "8" {
		t.Errorf("Inverse(2, 15) = %s, %v; want 8", got, err)
	}
}

// TestFermatWithoutCheckOnComposite documents that without a primality
// check the Fermat policy silently computes a^(m-2), which is not an inverse
// for composite m.
func TestFermatWithoutCheckOnComposite(t *testing.T) {
	t.Parallel()
	got, err := Inverse(n("2"), n("15"), PolicyFermat)
	if err != nil {
		t.Fatal(err)
	}
	prod, _ := Mul(got, n("2"), n("15"))
	if prod.IsOne() {
		t.Errorf("2^13 mod 15 = %s unexpectedly inverts 2", got)
	}
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]Policy{"euclid": PolicyEuclid, "FERMAT": PolicyFermat, " fermat ": PolicyFermat, "": PolicyEuclid} {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePolicy("newton"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("ParsePolicy(newton) error = %v", err)
	}
	if PolicyEuclid.String() != "euclid" || PolicyFermat.String() != "fermat" || Policy(7).String() != "unknown" {
		t.Error("Policy.String mismatch")
	}
}
