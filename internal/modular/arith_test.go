package modular

import (
	"errors"
	"testing"

	"github.com/agbru/modcalc/internal/bignum"
	apperrors "github.com/agbru/modcalc/internal/errors"
)

func n(s string) bignum.Int { return bignum.MustParse(s) }

func TestModularArithmetic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		fn      func(a, b, m bignum.Int) (bignum.Int, error)
		a, b, m string
		want    string
	}{
		{"AddNoWrap", Add, "2", "3", "7", "5"},
		{"AddWrap", Add, "5", "6", "7", "4"},
		{"AddUnreduced", Add, "100", "100", "7", "4"},
		{"SubNoWrap", Sub, "6", "2", "7", "4"},
		{"SubWrap", Sub, "3", "5", "7", "5"},
		{"SubUnreduced", Sub, "7", "15", "7", "6"},
		{"Mul", Mul, "7", "8", "5", "1"},
		{"MulLarge", Mul, "123456789123456789", "987654321987654321", "1000000007", "327846861"},
		{"ModOne", Mul, "12", "13", "1", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.fn(n(tt.a), n(tt.b), n(tt.m))
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestZeroModulus(t *testing.T) {
	t.Parallel()
	zero := bignum.Zero()
	one := bignum.One()
	checks := map[string]error{}
	_, checks["add"] = Add(one, one, zero)
	_, checks["sub"] = Sub(one, one, zero)
	_, checks["mul"] = Mul(one, one, zero)
	_, checks["reduce"] = Reduce(one, zero)
	_, checks["pow"] = Pow(one, one, zero)
	_, checks["pow_plain"] = PowPlain(one, one, zero)
	_, checks["inverse"] = Inverse(one, zero, PolicyEuclid)
	_, checks["montgomery"] = NewMontgomery(zero)
	for name, err := range checks {
		if !errors.Is(err, apperrors.ErrDivisionByZero) {
			t.Errorf("%s: error = %v, want ErrDivisionByZero", name, err)
		}
	}
}

func TestGCD(t *testing.T) {
	t.Parallel()
	tests := []struct{ a, b, want string }{
		{"0", "0", "0"},
		{"0", "9", "9"},
		{"9", "0", "9"},
		{"12", "18", "6"},
		{"17", "3120", "1"},
		{"1000000000000000000", "2500000000000", "2500000000000"},
		{"1071", "462", "21"},
	}
	for _, tt := range tests {
		if got := GCD(n(tt.a), n(tt.b)); got.String() != tt.want {
			t.Errorf("GCD(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}
