package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agbru/modcalc/internal/bignum"
	"github.com/agbru/modcalc/internal/numtheory"
)

// Value is one named output of an evaluation.
type Value struct {
	Name  string     `json:"name"`
	Value bignum.Int `json:"value"`
}

// Result is the outcome of an evaluation. Depending on the operation it
// carries named values, a factorization, a verdict, or a combination.
type Result struct {
	// Operation is the qualified name "op/method".
	Operation string `json:"operation"`
	// Values are the numeric outputs in a fixed order.
	Values []Value `json:"values,omitempty"`
	// Factors holds the prime factorization for "factor".
	Factors []numtheory.Factor `json:"factors,omitempty"`
	// Verdict answers predicate operations such as "isprime".
	Verdict *bool `json:"verdict,omitempty"`
}

func single(name string, v bignum.Int) Result {
	return Result{Values: []Value{{Name: name, Value: v}}}
}

func verdict(b bool) *bool { return &b }

// Value returns the output called name.
func (r Result) Value(name string) (bignum.Int, bool) {
	i := slices.IndexFunc(r.Values, func(v Value) bool { return v.Name == name })
	if i < 0 {
		return bignum.Int{}, false
	}
	return r.Values[i].Value, true
}

// Equal reports whether two results carry the same outputs, ignoring the
// operation name. Methods of the same operation are compared this way.
func (r Result) Equal(o Result) bool {
	if (r.Verdict == nil) != (o.Verdict == nil) || (r.Verdict != nil && *r.Verdict != *o.Verdict) {
		return false
	}
	if !slices.EqualFunc(r.Values, o.Values, func(a, b Value) bool {
		return a.Name == b.Name && a.Value.Eq(b.Value)
	}) {
		return false
	}
	return slices.EqualFunc(r.Factors, o.Factors, func(a, b numtheory.Factor) bool {
		return a.Exponent == b.Exponent && a.Prime.Eq(b.Prime)
	})
}

// String renders the result on one line, e.g. "quotient=3 remainder=1".
func (r Result) String() string {
	var parts []string
	if r.Verdict != nil {
		parts = append(parts, fmt.Sprintf("verdict=%t", *r.Verdict))
	}
	for _, v := range r.Values {
		parts = append(parts, v.Name+"="+v.Value.String())
	}
	if len(r.Factors) > 0 {
		parts = append(parts, "factors="+FormatFactors(r.Factors))
	}
	return strings.Join(parts, " ")
}

// FormatFactors renders a factorization as "2^3 * 5 * 7^2". The empty
// factorization renders as "1".
func FormatFactors(factors []numtheory.Factor) string {
	if len(factors) == 0 {
		return "1"
	}
	terms := make([]string, len(factors))
	for i, f := range factors {
		if f.Exponent == 1 {
			terms[i] = f.Prime.String()
		} else {
			terms[i] = fmt.Sprintf("%s^%d", f.Prime, f.Exponent)
		}
	}
	return strings.Join(terms, " * ")
}
