package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/modcalc/internal/config"
	"github.com/agbru/modcalc/internal/engine"
)

// MethodsToRun determines which methods of op should be executed based on
// the configuration. In comparison mode every method runs, in declaration
// order; otherwise only the selected one (or the default).
//
// Parameters:
//   - cfg: The application configuration containing the method selection.
//   - op: The operation being evaluated.
//
// Returns:
//   - []string: The method names to execute.
//   - error: An error if the selected method does not exist.
func MethodsToRun(cfg config.AppConfig, op engine.Operation) ([]string, error) {
	if cfg.Compare {
		return op.MethodNames(), nil
	}
	m, ok := op.Method(cfg.Method)
	if !ok {
		return nil, fmt.Errorf("operation %q has no method %q (available: %s)",
			op.Name, cfg.Method, strings.Join(op.MethodNames(), ", "))
	}
	return []string{m.Name}, nil
}

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the operation and its operands, the timeout, environment details and
// the tuning parameters.
//
// Parameters:
//   - cfg: The application configuration.
//   - op: The operation being evaluated.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, op engine.Operation, out io.Writer) {
	writeOut(out, "--- Execution Configuration ---\n")
	writeOut(out, "Evaluating %s%s%s with a timeout of %s%s%s.\n",
		ColorValue(), op.Name, ColorReset(), ColorWarn(), cfg.Timeout, ColorReset())
	for _, p := range op.Params {
		writeOut(out, "  %s = %s%s%s\n", p, ColorMuted(), operandPreview(cfg, p), ColorReset())
	}
	writeOut(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ColorMuted(), runtime.NumCPU(), ColorReset(), ColorMuted(), runtime.Version(), ColorReset())
	writeOut(out, "Tuning: Karatsuba=%s%d%s cells, Montgomery cache=%s%d%s contexts.\n",
		ColorMuted(), cfg.KaratsubaThreshold, ColorReset(), ColorMuted(), cfg.CacheSize, ColorReset())
}

// operandPreview returns the operand p from cfg, truncated for display.
func operandPreview(cfg config.AppConfig, p string) string {
	var v string
	switch p {
	case engine.ParamA:
		v = cfg.A
	case engine.ParamB:
		v = cfg.B
	case engine.ParamM:
		v = cfg.M
	}
	if v == "" {
		return "(missing)"
	}
	short, _ := truncate(v)
	return short
}

// PrintExecutionMode displays the execution mode (single method vs comparison).
//
// Parameters:
//   - methods: The method names that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(methods []string, out io.Writer) {
	var modeDesc string
	if len(methods) > 1 {
		modeDesc = fmt.Sprintf("Parallel comparison of %d methods", len(methods))
	} else {
		modeDesc = fmt.Sprintf("Single evaluation with the %s%s%s method",
			ColorGood(), methods[0], ColorReset())
	}
	writeOut(out, "Execution mode: %s.\n", modeDesc)
	writeOut(out, "\n--- Starting Execution ---\n")
}

// writeOut writes a formatted string to the output writer.
func writeOut(out io.Writer, format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
