// Package numtheory implements number-theoretic algorithms over bignum
// values: primality testing, integer and modular square roots, trial and
// Pollard rho factorization, Euler's totient, multiplicative order and the
// baby-step/giant-step discrete logarithm.
//
// All functions are synchronous and pure. Searches whose running time grows
// with the magnitude of their input accept a bignum.Bound and a context
// through options, so callers can cap them or stop them.
package numtheory
