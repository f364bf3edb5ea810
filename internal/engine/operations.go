package engine

import (
	"github.com/agbru/modcalc/internal/bignum"
	"github.com/agbru/modcalc/internal/modular"
	"github.com/agbru/modcalc/internal/numtheory"
)

// ─────────────────────────────────────────────────────────────────────────────
// Built-in Operations
// ─────────────────────────────────────────────────────────────────────────────

// Builtins returns the operations registered by NewDefaultRegistry.
func Builtins() []Operation {
	return []Operation{
		{
			Name: "add", Summary: "a + b",
			Params:  []string{ParamA, ParamB},
			Methods: []Method{{"kernel", evalAdd}},
		},
		{
			Name: "sub", Summary: "a − b, requires a ≥ b",
			Params:  []string{ParamA, ParamB},
			Methods: []Method{{"kernel", evalSub}},
		},
		{
			Name: "mul", Summary: "a · b",
			Params:  []string{ParamA, ParamB},
			Methods: []Method{{"karatsuba", evalMul}},
		},
		{
			Name: "divmod", Summary: "⌊a / b⌋ and a mod b",
			Params:  []string{ParamA, ParamB},
			Methods: []Method{{"long", evalDivMod}},
		},
		{
			Name: "gcd", Summary: "greatest common divisor of a and b",
			Params:  []string{ParamA, ParamB},
			Methods: []Method{{"euclid", evalGCD}},
		},
		{
			Name: "modadd", Summary: "(a + b) mod m",
			Params:  []string{ParamA, ParamB, ParamM},
			Methods: []Method{{"reduce", evalModAdd}},
		},
		{
			Name: "modsub", Summary: "(a − b) mod m",
			Params:  []string{ParamA, ParamB, ParamM},
			Methods: []Method{{"reduce", evalModSub}},
		},
		{
			Name: "modmul", Summary: "(a · b) mod m",
			Params:  []string{ParamA, ParamB, ParamM},
			Methods: []Method{{"reduce", evalModMul}},
		},
		{
			Name: "inverse", Summary: "a⁻¹ mod m",
			Params: []string{ParamA, ParamM},
			Methods: []Method{
				{"euclid", inverseWith(modular.PolicyEuclid)},
				{"fermat", inverseWith(modular.PolicyFermat)},
			},
		},
		{
			Name: "pow", Summary: "a^b mod m",
			Params: []string{ParamA, ParamB, ParamM},
			Methods: []Method{
				{"montgomery", evalPowMontgomery},
				{"plain", evalPowPlain},
			},
		},
		{
			Name: "isprime", Summary: "primality of a",
			Params: []string{ParamA},
			Methods: []Method{
				{"trial", evalIsPrimeTrial},
				{"millerrabin", evalIsPrimeMillerRabin},
			},
		},
		{
			Name: "isqrt", Summary: "⌊√a⌋",
			Params:  []string{ParamA},
			Methods: []Method{{"bisection", evalISqrt}},
		},
		{
			Name: "modsqrt", Summary: "x with x² ≡ a (mod m) for an odd prime m",
			Params:  []string{ParamA, ParamM},
			Methods: []Method{{"tonelli", evalModSqrt}},
		},
		{
			Name: "factor", Summary: "prime factorization of a",
			Params: []string{ParamA},
			Methods: []Method{
				{"pollard", evalFactorPollard},
				{"trial", evalFactorTrial},
			},
		},
		{
			Name: "totient", Summary: "Euler's φ(a)",
			Params:  []string{ParamA},
			Methods: []Method{{"factor", evalTotient}},
		},
		{
			Name: "order", Summary: "multiplicative order of a modulo m",
			Params:  []string{ParamA, ParamM},
			Methods: []Method{{"totient", evalOrder}},
		},
		{
			Name: "dlog", Summary: "smallest x with b^x ≡ a (mod m)",
			Params:  []string{ParamA, ParamB, ParamM},
			Methods: []Method{{"bsgs", evalDiscreteLog}},
		},
	}
}

func evalAdd(in Operands, _ Options) (Result, error) {
	return single("sum", in.A.Add(in.B)), nil
}

func evalSub(in Operands, _ Options) (Result, error) {
	d, err := in.A.Sub(in.B)
	if err != nil {
		return Result{}, err
	}
	return single("difference", d), nil
}

func evalMul(in Operands, _ Options) (Result, error) {
	return single("product", in.A.Mul(in.B)), nil
}

func evalDivMod(in Operands, _ Options) (Result, error) {
	q, r, err := in.A.DivMod(in.B)
	if err != nil {
		return Result{}, err
	}
	return Result{Values: []Value{{"quotient", q}, {"remainder", r}}}, nil
}

func evalGCD(in Operands, _ Options) (Result, error) {
	return single("gcd", modular.GCD(in.A, in.B)), nil
}

// modBinary adapts a (a, b, m) modular function.
func modBinary(fn func(a, b, m bignum.Int) (bignum.Int, error), in Operands) (Result, error) {
	v, err := fn(in.A, in.B, in.M)
	if err != nil {
		return Result{}, err
	}
	return single("result", v), nil
}

func evalModAdd(in Operands, _ Options) (Result, error) { return modBinary(modular.Add, in) }
func evalModSub(in Operands, _ Options) (Result, error) { return modBinary(modular.Sub, in) }
func evalModMul(in Operands, _ Options) (Result, error) { return modBinary(modular.Mul, in) }

func inverseWith(policy modular.Policy) EvalFunc {
	return func(in Operands, opts Options) (Result, error) {
		var extra []modular.InverseOption
		if opts.CheckPrime {
			extra = append(extra, modular.WithPrimalityCheck(numtheory.IsProbablePrime))
		}
		v, err := modular.Inverse(in.A, in.M, policy, extra...)
		if err != nil {
			return Result{}, err
		}
		return single("inverse", v), nil
	}
}

func evalPowMontgomery(in Operands, _ Options) (Result, error) {
	return modBinary(modular.Pow, in)
}

func evalPowPlain(in Operands, _ Options) (Result, error) {
	return modBinary(modular.PowPlain, in)
}

func evalIsPrimeTrial(in Operands, opts Options) (Result, error) {
	ok, err := numtheory.IsPrime(in.A, opts.searchOptions()...)
	if err != nil {
		return Result{}, err
	}
	return Result{Verdict: verdict(ok)}, nil
}

func evalIsPrimeMillerRabin(in Operands, _ Options) (Result, error) {
	return Result{Verdict: verdict(numtheory.IsProbablePrime(in.A))}, nil
}

func evalISqrt(in Operands, _ Options) (Result, error) {
	return single("root", numtheory.ISqrt(in.A)), nil
}

func evalModSqrt(in Operands, opts Options) (Result, error) {
	roots, ok, err := numtheory.ModSqrt(in.A, in.M, opts.searchOptions()...)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Verdict: verdict(false)}, nil
	}
	return Result{
		Verdict: verdict(true),
		Values:  []Value{{"root", roots.First}, {"conjugate", roots.Second}},
	}, nil
}

func evalFactorPollard(in Operands, opts Options) (Result, error) {
	factors, err := numtheory.FactorizePollard(in.A, opts.searchOptions()...)
	if err != nil {
		return Result{}, err
	}
	return Result{Factors: factors}, nil
}

func evalFactorTrial(in Operands, opts Options) (Result, error) {
	factors, err := numtheory.FactorizeTrial(in.A, opts.searchOptions()...)
	if err != nil {
		return Result{}, err
	}
	return Result{Factors: factors}, nil
}

func evalTotient(in Operands, opts Options) (Result, error) {
	v, err := numtheory.EulerTotient(in.A, opts.searchOptions()...)
	if err != nil {
		return Result{}, err
	}
	return single("totient", v), nil
}

func evalOrder(in Operands, opts Options) (Result, error) {
	v, err := numtheory.MultiplicativeOrder(in.A, in.M, opts.searchOptions()...)
	if err != nil {
		return Result{}, err
	}
	return single("order", v), nil
}

func evalDiscreteLog(in Operands, opts Options) (Result, error) {
	v, err := numtheory.DiscreteLog(in.A, in.B, in.M, opts.searchOptions()...)
	if err != nil {
		return Result{}, err
	}
	return single("exponent", v), nil
}
