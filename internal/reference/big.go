package reference

import (
	"errors"
	"fmt"
	"math/big"
)

func init() {
	Register("big", func() Oracle { return BigOracle{} })
}

// BigOracle is the math/big backend.
type BigOracle struct{}

// Name returns "big".
func (BigOracle) Name() string { return "big" }

func parseBig(s string) (*big.Int, error) {
	z, ok := new(big.Int).SetString(s, 10)
	if !ok || z.Sign() < 0 {
		return nil, fmt.Errorf("invalid non-negative decimal %q", s)
	}
	return z, nil
}

func parseBigPair(a, b string) (*big.Int, *big.Int, error) {
	x, err := parseBig(a)
	if err != nil {
		return nil, nil, err
	}
	y, err := parseBig(b)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// Add returns a + b.
func (BigOracle) Add(a, b string) (string, error) {
	x, y, err := parseBigPair(a, b)
	if err != nil {
		return "", err
	}
	return x.Add(x, y).String(), nil
}

// Sub returns a - b.
func (BigOracle) Sub(a, b string) (string, error) {
	x, y, err := parseBigPair(a, b)
	if err != nil {
		return "", err
	}
	if x.Cmp(y) < 0 {
		return "", errors.New("negative difference")
	}
	return x.Sub(x, y).String(), nil
}

// Mul returns a·b.
func (BigOracle) Mul(a, b string) (string, error) {
	x, y, err := parseBigPair(a, b)
	if err != nil {
		return "", err
	}
	return x.Mul(x, y).String(), nil
}

// DivMod returns ⌊a/b⌋ and a mod b.
func (BigOracle) DivMod(a, b string) (string, string, error) {
	x, y, err := parseBigPair(a, b)
	if err != nil {
		return "", "", err
	}
	if y.Sign() == 0 {
		return "", "", errors.New("division by zero")
	}
	q, r := new(big.Int).QuoRem(x, y, new(big.Int))
	return q.String(), r.String(), nil
}

// ModPow returns base^exp mod m.
func (BigOracle) ModPow(base, exp, m string) (string, error) {
	b, e, err := parseBigPair(base, exp)
	if err != nil {
		return "", err
	}
	mod, err := parseBig(m)
	if err != nil {
		return "", err
	}
	if mod.Sign() == 0 {
		return "", errors.New("division by zero")
	}
	return new(big.Int).Exp(b, e, mod).String(), nil
}

// ModInverse returns a⁻¹ mod m.
func (BigOracle) ModInverse(a, m string) (string, error) {
	x, mod, err := parseBigPair(a, m)
	if err != nil {
		return "", err
	}
	if mod.Sign() == 0 {
		return "", errors.New("division by zero")
	}
	if mod.Cmp(big.NewInt(1)) == 0 {
		return "0", nil
	}
	inv := new(big.Int).ModInverse(x, mod)
	if inv == nil {
		return "", errors.New("not invertible")
	}
	return inv.String(), nil
}

// ProbablyPrime reports whether n is prime.
func (BigOracle) ProbablyPrime(n string) (bool, error) {
	x, err := parseBig(n)
	if err != nil {
		return false, err
	}
	return x.ProbablyPrime(20), nil
}
