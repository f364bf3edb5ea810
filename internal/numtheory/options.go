package numtheory

import (
	"context"
	"math"

	"github.com/agbru/modcalc/internal/bignum"
	apperrors "github.com/agbru/modcalc/internal/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Configuration Constants
// ─────────────────────────────────────────────────────────────────────────────

// DefaultRhoAttempts is the number of polynomial constants c in
// f(x) = x² + c that Pollard rho tries before giving up on a composite.
const DefaultRhoAttempts = 20

// DefaultMaxBabySteps caps the baby-step table of DiscreteLog when no
// iteration bound is given, which keeps its memory use predictable.
const DefaultMaxBabySteps = 1 << 22

// pollInterval is the number of search steps between two context checks.
const pollInterval = 1024

// Option configures the searching algorithms of this package.
type Option func(*options)

type options struct {
	ctx        context.Context
	iterations bignum.Bound
	attempts   int
}

func defaultOptions() options {
	return options{
		ctx:        context.Background(),
		iterations: bignum.Unbounded(),
		attempts:   DefaultRhoAttempts,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithContext stops a search with the context's error once ctx is done.
// A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithIterationBound limits the iterations of a search: the candidate
// divisors of trial division, the steps of each Pollard rho attempt, the
// non-residue search of ModSqrt, or the baby steps of DiscreteLog.
func WithIterationBound(b bignum.Bound) Option {
	return func(o *options) { o.iterations = b }
}

// WithRhoAttempts sets how many polynomial constants Pollard rho tries.
// Values below 1 are ignored.
func WithRhoAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.attempts = n
		}
	}
}

// budget meters one search against the iteration bound and the context.
type budget struct {
	op    string
	ctx   context.Context
	limit uint64
	steps uint64
}

// meter starts a fresh budget for a search run on behalf of op. A bound
// beyond uint64 is as good as none.
func (o options) meter(op string) *budget {
	limit := uint64(math.MaxUint64)
	if l, ok := o.iterations.Limit(); ok {
		if v, fits := l.Uint64(); fits {
			limit = v
		}
	}
	return &budget{op: op, ctx: o.ctx, limit: limit}
}

// next counts one step. It returns the context error once the context is
// done, checked on the first step and every pollInterval steps after, and
// ErrIterationLimit once the steps pass the bound.
func (b *budget) next() error {
	b.steps++
	if b.steps%pollInterval == 1 {
		if err := b.ctx.Err(); err != nil {
			return err
		}
	}
	if b.steps > b.limit {
		return apperrors.NewArithmeticError(b.op, apperrors.ErrIterationLimit,
			"search exceeded %d iterations", b.limit)
	}
	return nil
}
