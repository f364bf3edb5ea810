// Package engine exposes every arithmetic and number-theoretic operation of
// modcalc behind a single registry. An Operation names its operands and
// offers one or more interchangeable methods; evaluating it through the
// registry adds cancellation, tracing, metrics and logging on top of the
// pure numeric packages.
package engine

//go:generate mockgen -source=operation.go -destination=mocks/mock_operation.go -package=mocks

import (
	"context"
	"slices"
	"strings"

	"github.com/agbru/modcalc/internal/bignum"
	"github.com/agbru/modcalc/internal/numtheory"
)

// Operand names accepted in Operation.Params.
const (
	ParamA = "a"
	ParamB = "b"
	ParamM = "m"
)

// Operands carries the up to three inputs of an operation. Which of them an
// operation reads is declared by its Params.
type Operands struct {
	A bignum.Int
	B bignum.Int
	M bignum.Int
}

// Options tunes the methods that accept settings.
type Options struct {
	// CheckPrime makes the Fermat inverse reject composite moduli.
	CheckPrime bool
	// RhoAttempts is the number of polynomials Pollard rho tries; zero keeps
	// the default.
	RhoAttempts int
	// IterationBound caps the searching algorithms (trial divisors, rho
	// steps, non-residue candidates, baby steps).
	IterationBound bignum.Bound

	// ctx is the context of the evaluation, set by Registry.Evaluate.
	ctx context.Context
}

func (o Options) searchOptions() []numtheory.Option {
	return []numtheory.Option{
		numtheory.WithContext(o.ctx),
		numtheory.WithIterationBound(o.IterationBound),
		numtheory.WithRhoAttempts(o.RhoAttempts),
	}
}

// EvalFunc is the implementation of one method of an operation.
type EvalFunc func(in Operands, opts Options) (Result, error)

// Method is one named implementation of an operation.
type Method struct {
	Name string
	Eval EvalFunc
}

// Operation describes an evaluable operation.
type Operation struct {
	// Name is the registry key (e.g., "pow").
	Name string
	// Summary is a one-line description shown by listings.
	Summary string
	// Params lists the operands read by the operation, in display order.
	Params []string
	// Methods are the alternative implementations; the first is the default.
	Methods []Method
}

// DefaultMethod returns the name of the first method.
func (op Operation) DefaultMethod() string {
	if len(op.Methods) == 0 {
		return ""
	}
	return op.Methods[0].Name
}

// MethodNames returns the method names in declaration order.
func (op Operation) MethodNames() []string {
	names := make([]string, len(op.Methods))
	for i, m := range op.Methods {
		names[i] = m.Name
	}
	return names
}

// Method looks up a method by name; the empty name selects the default.
func (op Operation) Method(name string) (Method, bool) {
	if name == "" {
		name = op.DefaultMethod()
	}
	name = strings.ToLower(name)
	i := slices.IndexFunc(op.Methods, func(m Method) bool { return m.Name == name })
	if i < 0 {
		return Method{}, false
	}
	return op.Methods[i], true
}

// Requires reports whether the operation reads the operand named param.
func (op Operation) Requires(param string) bool {
	return slices.Contains(op.Params, param)
}

// Evaluator evaluates operations by name. It is implemented by *Registry
// and lets callers substitute a test double.
type Evaluator interface {
	Evaluate(ctx context.Context, name, method string, in Operands, opts Options) (Result, error)
	Lookup(name string) (Operation, error)
	List() []string
}
