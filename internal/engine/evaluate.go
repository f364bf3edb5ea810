package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/agbru/modcalc/internal/errors"
	"github.com/agbru/modcalc/internal/logging"
)

func isCanceled(err error) bool { return apperrors.IsContextError(err) }

// Evaluate runs the method of the named operation on in.
//
// The numeric work runs on its own goroutine so that a canceled or expired
// ctx returns immediately. The searching methods receive ctx as well and
// stop at their next poll; the rest are bounded by their operand sizes.
// Running reports the computations still in progress. Every call is traced,
// counted and timed.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - name: The operation name (e.g., "pow").
//   - method: The method name; empty selects the default.
//   - in: The operands.
//   - opts: Method settings.
//
// Returns:
//   - Result: The outcome, with Operation set to "name/method".
//   - error: ErrUnknownOperation for an unknown name or method, the
//     context error on cancellation, or the failure of the operation.
func (r *Registry) Evaluate(ctx context.Context, name, method string, in Operands, opts Options) (res Result, err error) {
	op, err := r.Lookup(name)
	if err != nil {
		return Result{}, err
	}
	m, ok := op.Method(method)
	if !ok {
		return Result{}, apperrors.NewArithmeticError("lookup", apperrors.ErrUnknownOperation,
			"operation %q has no method %q (available: %v)", name, method, op.MethodNames())
	}
	qualified := op.Name + "/" + m.Name

	ctx, span := otel.Tracer("modcalc/engine").Start(ctx, "Evaluate")
	span.SetAttributes(
		attribute.String("modcalc.operation", op.Name),
		attribute.String("modcalc.method", m.Name),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		status := statusOf(err)
		evaluationsTotal.WithLabelValues(op.Name, m.Name, status).Inc()
		evaluationDuration.WithLabelValues(op.Name, m.Name).Observe(elapsed.Seconds())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			r.logger.Error("evaluation failed", err, logging.String("operation", qualified), logging.Duration("duration", elapsed))
			return
		}
		r.logger.Debug("evaluation completed",
			logging.String("operation", qualified),
			logging.Duration("duration", elapsed),
			logging.String("status", status))
	}()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	type outcome struct {
		res Result
		err error
	}
	opts.ctx = ctx
	done := make(chan outcome, 1)
	r.running.Add(1)
	evaluationsRunning.Inc()
	go func() {
		res, err := m.Eval(in, opts)
		evaluationsRunning.Dec()
		r.running.Add(-1)
		done <- outcome{res, err}
	}()

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case o := <-done:
		if o.err != nil {
			return Result{}, apperrors.CalculationError{Operation: qualified, Cause: o.err}
		}
		o.res.Operation = qualified
		return o.res, nil
	}
}
