package calibration

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/markkurossi/tabulate"

	"github.com/agbru/modcalc/internal/bignum"
	"github.com/agbru/modcalc/internal/cli"
	apperrors "github.com/agbru/modcalc/internal/errors"
)

// Default benchmark parameters.
const (
	// DefaultOperandCells is the size of the random operands, about 18,000
	// decimal digits.
	DefaultOperandCells = 2048
	// DefaultIterations is the number of products timed per threshold.
	DefaultIterations = 3
)

// CalibrationOptions configures the calibration process.
type CalibrationOptions struct {
	// OperandCells is the size of each random operand in cells.
	OperandCells int
	// Iterations is the number of products timed per threshold; the fastest
	// is kept.
	Iterations int
	// Thresholds overrides the generated candidates.
	Thresholds []int
	// Seed makes the random operands reproducible.
	Seed uint64
	// ProfilePath is the path to save the calibration profile.
	// If empty, uses the default path.
	ProfilePath string
	// SaveProfile indicates whether to save the calibration results.
	SaveProfile bool
}

// withDefaults fills the unset fields of o.
func (o CalibrationOptions) withDefaults() CalibrationOptions {
	if o.OperandCells <= 0 {
		o.OperandCells = DefaultOperandCells
	}
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if len(o.Thresholds) == 0 {
		o.Thresholds = GenerateKaratsubaThresholds(o.OperandCells)
	}
	return o
}

// Result holds the measurement of a single threshold.
type Result struct {
	Threshold int           `json:"threshold"`
	Duration  time.Duration `json:"duration_ns"`
}

// RandomOperand returns a random value of exactly cells cells.
func RandomOperand(rng *rand.Rand, cells int) bignum.Int {
	var sb strings.Builder
	sb.Grow(cells * bignum.CellDigits)
	sb.WriteByte(byte('1' + rng.IntN(9)))
	for i := 1; i < cells*bignum.CellDigits; i++ {
		sb.WriteByte(byte('0' + rng.IntN(10)))
	}
	return bignum.MustParse(sb.String())
}

// measure times the product x·y with the given threshold and returns the
// fastest of iterations runs. The previous threshold is restored.
func measure(ctx context.Context, x, y bignum.Int, threshold, iterations int) (time.Duration, error) {
	old := bignum.SetKaratsubaThreshold(threshold)
	defer bignum.SetKaratsubaThreshold(old)

	best := time.Duration(1<<63 - 1)
	for range iterations {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		start := time.Now()
		_ = x.Mul(y)
		best = min(best, time.Since(start))
	}
	return best, nil
}

// Calibrate benchmarks every candidate threshold and returns the fastest
// together with the individual measurements.
//
// Parameters:
//   - ctx: The context for managing cancellation.
//   - opts: The benchmark parameters.
//
// Returns:
//   - int: The fastest threshold.
//   - []Result: One measurement per candidate, in candidate order.
//   - error: The context error if the run was interrupted.
func Calibrate(ctx context.Context, opts CalibrationOptions) (int, []Result, error) {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	x := RandomOperand(rng, opts.OperandCells)
	y := RandomOperand(rng, opts.OperandCells)

	results := make([]Result, 0, len(opts.Thresholds))
	best := bignum.KaratsubaThreshold()
	bestDuration := time.Duration(1<<63 - 1)
	for _, threshold := range opts.Thresholds {
		d, err := measure(ctx, x, y, threshold, opts.Iterations)
		if err != nil {
			return best, results, err
		}
		results = append(results, Result{Threshold: threshold, Duration: d})
		if d < bestDuration {
			best, bestDuration = threshold, d
		}
	}
	return best, results, nil
}

// RunCalibration executes the benchmark, prints a summary table and a
// recommendation, and optionally saves a profile.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - out: The io.Writer to which progress and results will be written.
//   - opts: The calibration options.
//
// Returns:
//   - int: The exit code (0 for success, non-zero for errors).
func RunCalibration(ctx context.Context, out io.Writer, opts CalibrationOptions) int {
	opts = opts.withDefaults()
	fmt.Fprintf(out, "--- Calibration Mode: Finding the Optimal Karatsuba Threshold ---\n")
	fmt.Fprintf(out, "%sHardware: %s%s\n", cli.ColorMuted(), HardwareSummary(), cli.ColorReset())
	fmt.Fprintf(out, "Operands: %s cells (%s digits), %d candidates.\n",
		cli.FormatCount(opts.OperandCells), cli.FormatCount(opts.OperandCells*bignum.CellDigits), len(opts.Thresholds))

	done := make(chan struct{})
	spinnerDone := make(chan struct{})
	go func() {
		cli.DisplaySpinner(done, "Benchmarking multiplication", out)
		close(spinnerDone)
	}()
	start := time.Now()
	best, results, err := Calibrate(ctx, opts)
	close(done)
	<-spinnerDone

	if err != nil {
		fmt.Fprintf(out, "\n%sCalibration interrupted.%s\n", cli.ColorWarn(), cli.ColorReset())
		return apperrors.HandleCalculationError(err, time.Since(start), out, cli.CLIColorProvider{})
	}
	if len(results) == 0 {
		fmt.Fprintf(out, "\n%sCalibration failed: no candidate threshold applies to %d-cell operands.%s\n",
			cli.ColorBad(), opts.OperandCells, cli.ColorReset())
		return apperrors.ExitErrorGeneric
	}

	printCalibrationResults(out, results, best)
	fmt.Fprintf(out, "\n%sRecommendation for this machine: %s-karatsuba-threshold %d%s\n",
		cli.ColorGood(), cli.ColorWarn(), best, cli.ColorReset())

	if opts.SaveProfile {
		profile := NewProfile(best, opts.OperandCells, results)
		profile.Elapsed = time.Since(start).String()
		if err := profile.Save(opts.ProfilePath); err != nil {
			fmt.Fprintf(out, "%sWarning: failed to save profile: %v%s\n", cli.ColorWarn(), err, cli.ColorReset())
		} else {
			fmt.Fprintf(out, "%sCalibration profile saved.%s\n", cli.ColorGood(), cli.ColorReset())
		}
	}
	return apperrors.ExitSuccess
}

// printCalibrationResults formats and prints the calibration results table.
func printCalibrationResults(out io.Writer, results []Result, bestThreshold int) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Threshold").SetAlign(tabulate.MR)
	tab.Header("Best time").SetAlign(tabulate.MR)
	tab.Header("").SetAlign(tabulate.ML)
	for _, res := range results {
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		mark := ""
		if res.Threshold == bestThreshold {
			mark = "optimal"
		}
		row := tab.Row()
		row.Column(fmt.Sprintf("%d cells", res.Threshold))
		row.Column(duration)
		row.Column(mark)
	}
	tab.Print(out)
}
