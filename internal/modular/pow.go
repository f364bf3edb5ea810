package modular

import (
	"errors"

	"github.com/agbru/modcalc/internal/bignum"
	apperrors "github.com/agbru/modcalc/internal/errors"
)

// Pow returns base^exp mod m.
//
// The computation uses a Montgomery context from the default ContextCache.
// Moduli divisible by 2 or 5 have no Montgomery form in base 10, so they are
// served by PowPlain. exp == 0 yields 1 mod m.
func Pow(base, exp, m bignum.Int) (bignum.Int, error) {
	return DefaultCache().Pow(base, exp, m)
}

// PowPlain returns base^exp mod m by square-and-multiply with a full
// division after every product.
func PowPlain(base, exp, m bignum.Int) (bignum.Int, error) {
	if err := checkModulus("mod_pow", m); err != nil {
		return bignum.Int{}, err
	}
	result := reduce(bignum.One(), m)
	b := reduce(base, m)
	for e := exp; !e.IsZero(); e = e.Halve() {
		if !e.IsEven() {
			result = reduce(result.Mul(b), m)
		}
		b = reduce(b.Mul(b), m)
	}
	return result, nil
}

// Pow returns base^exp mod m using the contexts held by c.
func (c *ContextCache) Pow(base, exp, m bignum.Int) (bignum.Int, error) {
	if err := checkModulus("mod_pow", m); err != nil {
		return bignum.Int{}, err
	}
	mt, err := c.Get(m)
	if errors.Is(err, apperrors.ErrNotCoprime) {
		return PowPlain(base, exp, m)
	}
	if err != nil {
		return bignum.Int{}, err
	}
	return mt.Pow(base, exp), nil
}
