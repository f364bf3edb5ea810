package modular

import (
	"strings"

	"github.com/agbru/modcalc/internal/bignum"
	apperrors "github.com/agbru/modcalc/internal/errors"
)

// Policy selects the algorithm used by Inverse.
type Policy int

const (
	// PolicyEuclid computes the inverse with the extended Euclidean
	// algorithm. It works for every modulus coprime to a.
	PolicyEuclid Policy = iota
	// PolicyFermat computes a^(m−2) mod m, which is the inverse only when m
	// is prime.
	PolicyFermat
)

// String returns the policy name as accepted by ParsePolicy.
func (p Policy) String() string {
	switch p {
	case PolicyEuclid:
		return "euclid"
	case PolicyFermat:
		return "fermat"
	default:
		return "unknown"
	}
}

// ParsePolicy converts "euclid" or "fermat" (case-insensitive) to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "euclid", "":
		return PolicyEuclid, nil
	case "fermat":
		return PolicyFermat, nil
	default:
		return 0, apperrors.NewArithmeticError("inverse", apperrors.ErrInvalidInput, "unknown policy %q", s)
	}
}

// PrimalityCheck reports whether its argument is prime.
type PrimalityCheck func(bignum.Int) bool

// InverseOption configures Inverse.
type InverseOption func(*inverseOptions)

type inverseOptions struct {
	isPrime PrimalityCheck
}

// WithPrimalityCheck makes the Fermat policy verify that the modulus is
// prime and fail with ErrNotPrime otherwise. The Euclid policy ignores it.
func WithPrimalityCheck(fn PrimalityCheck) InverseOption {
	return func(o *inverseOptions) { o.isPrime = fn }
}

// Inverse returns the x in [0, m) with a·x ≡ 1 (mod m).
//
// Parameters:
//   - a: The value to invert.
//   - m: The modulus.
//   - policy: PolicyEuclid or PolicyFermat.
//   - opts: Optional settings such as WithPrimalityCheck.
//
// Returns:
//   - bignum.Int: The inverse.
//   - error: ErrDivisionByZero for m == 0, ErrNotCoprime when gcd(a, m) ≠ 1,
//     ErrNotPrime when a primality check rejects m under PolicyFermat.
func Inverse(a, m bignum.Int, policy Policy, opts ...InverseOption) (bignum.Int, error) {
	if err := checkModulus("inverse", m); err != nil {
		return bignum.Int{}, err
	}
	var o inverseOptions
	for _, opt := range opts {
		opt(&o)
	}

	switch policy {
	case PolicyEuclid:
		return euclidInverse(a, m)
	case PolicyFermat:
		return fermatInverse(a, m, o)
	default:
		return bignum.Int{}, apperrors.NewArithmeticError("inverse", apperrors.ErrInvalidInput, "unknown policy %d", int(policy))
	}
}

func fermatInverse(a, m bignum.Int, o inverseOptions) (bignum.Int, error) {
	if g := GCD(reduce(a, m), m); !g.IsOne() {
		return bignum.Int{}, apperrors.NewArithmeticError("inverse", apperrors.ErrNotCoprime, "gcd(a, m) = %s", g)
	}
	if o.isPrime != nil && !o.isPrime(m) {
		return bignum.Int{}, apperrors.NewArithmeticError("inverse", apperrors.ErrNotPrime, "fermat policy needs a prime modulus")
	}
	if m.IsOne() {
		return bignum.Zero(), nil
	}
	return Pow(a, m.MustSub(bignum.FromUint64(2)), m)
}
