//go:build gmp

// This file registers a GMP-backed oracle, conditionally compiled with the
// "gmp" build tag. It requires libgmp on the build host:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp

package reference

import (
	"errors"
	"fmt"

	"github.com/ncw/gmp"
)

func init() {
	Register("gmp", func() Oracle { return GMPOracle{} })
}

// GMPOracle is the libgmp backend.
type GMPOracle struct{}

// Name returns "gmp".
func (GMPOracle) Name() string { return "gmp" }

func parseGMP(s string) (*gmp.Int, error) {
	z, ok := new(gmp.Int).SetString(s, 10)
	if !ok || z.Sign() < 0 {
		return nil, fmt.Errorf("invalid non-negative decimal %q", s)
	}
	return z, nil
}

func parseGMPPair(a, b string) (*gmp.Int, *gmp.Int, error) {
	x, err := parseGMP(a)
	if err != nil {
		return nil, nil, err
	}
	y, err := parseGMP(b)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// Add returns a + b.
func (GMPOracle) Add(a, b string) (string, error) {
	x, y, err := parseGMPPair(a, b)
	if err != nil {
		return "", err
	}
	return x.Add(x, y).String(), nil
}

// Sub returns a - b.
func (GMPOracle) Sub(a, b string) (string, error) {
	x, y, err := parseGMPPair(a, b)
	if err != nil {
		return "", err
	}
	if x.Cmp(y) < 0 {
		return "", errors.New("negative difference")
	}
	return x.Sub(x, y).String(), nil
}

// Mul returns a·b.
func (GMPOracle) Mul(a, b string) (string, error) {
	x, y, err := parseGMPPair(a, b)
	if err != nil {
		return "", err
	}
	return x.Mul(x, y).String(), nil
}

// DivMod returns ⌊a/b⌋ and a mod b.
func (GMPOracle) DivMod(a, b string) (string, string, error) {
	x, y, err := parseGMPPair(a, b)
	if err != nil {
		return "", "", err
	}
	if y.Sign() == 0 {
		return "", "", errors.New("division by zero")
	}
	q, r := new(gmp.Int).QuoRem(x, y, new(gmp.Int))
	return q.String(), r.String(), nil
}

// ModPow returns base^exp mod m.
func (GMPOracle) ModPow(base, exp, m string) (string, error) {
	b, e, err := parseGMPPair(base, exp)
	if err != nil {
		return "", err
	}
	mod, err := parseGMP(m)
	if err != nil {
		return "", err
	}
	if mod.Sign() == 0 {
		return "", errors.New("division by zero")
	}
	return new(gmp.Int).Exp(b, e, mod).String(), nil
}

// ModInverse returns a⁻¹ mod m.
func (GMPOracle) ModInverse(a, m string) (string, error) {
	x, mod, err := parseGMPPair(a, m)
	if err != nil {
		return "", err
	}
	if mod.Sign() == 0 {
		return "", errors.New("division by zero")
	}
	if mod.Cmp(gmp.NewInt(1)) == 0 {
		return "0", nil
	}
	g := new(gmp.Int).GCD(nil, nil, x, mod)
	if g.Cmp(gmp.NewInt(1)) != 0 {
		return "", errors.New("not invertible")
	}
	return new(gmp.Int).ModInverse(x, mod).String(), nil
}

// ProbablyPrime reports whether n is prime.
func (GMPOracle) ProbablyPrime(n string) (bool, error) {
	x, err := parseGMP(n)
	if err != nil {
		return false, err
	}
	return x.ProbablyPrime(20), nil
}
