// Package orchestration runs the methods of an operation concurrently and
// reconciles their outcomes.
package orchestration

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/markkurossi/tabulate"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/modcalc/internal/cli"
	"github.com/agbru/modcalc/internal/engine"
	apperrors "github.com/agbru/modcalc/internal/errors"
)

// MethodResult encapsulates the outcome of evaluating an operation with one
// method.
type MethodResult struct {
	// Method is the name of the method (e.g., "montgomery").
	Method string
	// Result is the evaluation outcome. It is meaningless when Err is set.
	Result engine.Result
	// Duration is the time taken to complete the evaluation.
	Duration time.Duration
	// Err contains any error that occurred during the evaluation.
	Err error
}

// ExecuteMethods evaluates op once per method, concurrently, while a spinner
// reports progress on out.
//
// A failing method does not cancel the others: every method runs to
// completion (or until ctx is done) so that the comparison sees all of them.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - evaluator: The registry that runs the operation.
//   - op: The operation name.
//   - methods: The method names to execute.
//   - in: The parsed operands.
//   - opts: The evaluation settings.
//   - out: The io.Writer for the spinner.
//
// Returns:
//   - []MethodResult: The results, in the order of methods.
func ExecuteMethods(ctx context.Context, evaluator engine.Evaluator, op string, methods []string,
	in engine.Operands, opts engine.Options, out io.Writer) []MethodResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]MethodResult, len(methods))

	done := make(chan struct{})
	spinnerDone := make(chan struct{})
	go func() {
		cli.DisplaySpinner(done, fmt.Sprintf("Evaluating %s [%s]", op, strings.Join(methods, ", ")), out)
		close(spinnerDone)
	}()

	for i, m := range methods {
		g.Go(func() error {
			start := time.Now()
			res, err := evaluator.Evaluate(ctx, op, m, in, opts)
			results[i] = MethodResult{Method: m, Result: res, Duration: time.Since(start), Err: err}
			return nil
		})
	}

	_ = g.Wait()
	close(done)
	<-spinnerDone

	return results
}

// AnalyzeComparisonResults processes the results from multiple methods and
// generates a summary report.
//
// It sorts the results by execution time, validates consistency across
// successful evaluations, and displays a comparative table. It handles the
// logic for determining global success or failure based on the individual
// outcomes.
//
// Parameters:
//   - results: The slice of method results to analyze.
//   - output: The display settings for the final result.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []MethodResult, output cli.OutputConfig, out io.Writer) int {
	slices.SortStableFunc(results, func(a, b MethodResult) int {
		if (a.Err == nil) != (b.Err == nil) {
			if a.Err == nil {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Duration, b.Duration)
	})

	var first *MethodResult
	var firstError error

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Method").SetAlign(tabulate.ML)
	tab.Header("Duration").SetAlign(tabulate.MR)
	tab.Header("Status").SetAlign(tabulate.ML)

	for i := range results {
		res := &results[i]
		status := "Success"
		if res.Err != nil {
			status = fmt.Sprintf("Failure (%v)", res.Err)
			if firstError == nil {
				firstError = res.Err
			}
		} else if first == nil {
			first = res
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		row := tab.Row()
		row.Column(res.Method)
		row.Column(duration)
		row.Column(status)
	}
	tab.Print(out)

	if first == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No method could complete the evaluation.\n")
		return apperrors.HandleCalculationError(firstError, 0, out, cli.CLIColorProvider{})
	}

	for _, res := range results {
		if res.Err == nil && !res.Result.Equal(first.Result) {
			fmt.Fprintf(out, "\nGlobal Status: %sCRITICAL ERROR!%s An inconsistency was detected between %s and %s.\n",
				cli.ColorBad(), cli.ColorReset(), first.Method, res.Method)
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	if err := cli.DisplayResultWithConfig(out, first.Result, first.Duration, output); err != nil {
		fmt.Fprintf(out, "Warning: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
