package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/agbru/modcalc/internal/bignum"
	"github.com/agbru/modcalc/internal/calibration"
	"github.com/agbru/modcalc/internal/cli"
	"github.com/agbru/modcalc/internal/config"
	"github.com/agbru/modcalc/internal/engine"
	apperrors "github.com/agbru/modcalc/internal/errors"
	"github.com/agbru/modcalc/internal/logging"
	"github.com/agbru/modcalc/internal/modular"
	"github.com/agbru/modcalc/internal/orchestration"
	"github.com/agbru/modcalc/internal/server"
	"github.com/agbru/modcalc/internal/service"
	"github.com/agbru/modcalc/internal/ui"
)

// Application represents the modcalc application instance.
// It encapsulates the configuration and provides methods to run
// the application in its various modes (calculate, compare, server,
// calibrate, version).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Registry provides the evaluable operations.
	Registry *engine.Registry
	// Logger receives diagnostic output; it writes to ErrWriter.
	Logger logging.Logger
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration, applies the tuning parameters to the
// numeric packages and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	// args[0] is program name, args[1:] are the actual arguments
	programName := "modcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, engine.GlobalRegistry().List())
	if err != nil {
		return nil, err
	}

	logger := logging.NewConsoleLogger(errWriter, "modcalc", cfg.LogLevel, cfg.NoColor)
	cfg = applyCachedCalibration(cfg, calibration.DefaultProfilePath(), cmdArgs)
	if err := applyTuning(cfg); err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded",
		logging.String("op", cfg.Op),
		logging.String("method", cfg.Method),
		logging.Int("karatsuba_threshold", cfg.KaratsubaThreshold),
		logging.Int("cache_size", cfg.CacheSize),
	)

	return &Application{
		Config:    cfg,
		Registry:  engine.NewDefaultRegistry(engine.WithLogger(logger)),
		Logger:    logger,
		ErrWriter: errWriter,
	}, nil
}

// applyCachedCalibration replaces the default Karatsuba threshold with the
// one of a valid calibration profile. An explicit -karatsuba-threshold flag
// always wins.
func applyCachedCalibration(cfg config.AppConfig, profilePath string, args []string) config.AppConfig {
	if cfg.KaratsubaThreshold != config.DefaultKaratsubaThreshold || hasFlag(args, "karatsuba-threshold") {
		return cfg
	}
	if threshold, ok := calibration.LoadCachedThreshold(profilePath); ok {
		cfg.KaratsubaThreshold = threshold
	}
	return cfg
}

// hasFlag reports whether args set the named flag in any of the forms the
// flag package accepts.
func hasFlag(args []string, name string) bool {
	for _, arg := range args {
		for _, prefix := range []string{"-", "--"} {
			if arg == prefix+name || strings.HasPrefix(arg, prefix+name+"=") {
				return true
			}
		}
	}
	return false
}

// applyTuning installs the process-wide arithmetic settings.
func applyTuning(cfg config.AppConfig) error {
	bignum.SetKaratsubaThreshold(cfg.KaratsubaThreshold)
	if err := modular.SetDefaultCacheSize(cfg.CacheSize); err != nil {
		return apperrors.NewConfigError("invalid cache size: %v", err)
	}
	return nil
}

// Run executes the application based on the configured mode.
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	// Initialize CLI theme (respects --no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.ServerMode:
		return a.runServer(ctx)
	case a.Config.Calibrate:
		return a.runCalibration(ctx, out)
	default:
		return a.runCalculate(ctx, out)
	}
}

// runCompletion prints a shell completion script listing the registered
// operations and every method name they accept.
func (a *Application) runCompletion(out io.Writer) int {
	ops := a.Registry.List()
	var methods []string
	for _, name := range ops {
		op, err := a.Registry.Lookup(name)
		if err != nil {
			continue
		}
		methods = append(methods, op.MethodNames()...)
	}
	slices.Sort(methods)
	methods = slices.Compact(methods)

	if err := cli.GenerateCompletion(out, a.Config.Completion, ops, methods); err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer starts the HTTP server mode.
func (a *Application) runServer(ctx context.Context) int {
	ctx, lifecycle := SetupLifecycle(ctx, 0)
	defer lifecycle.Cleanup()

	srv := server.NewServer(a.Registry, a.Config)
	if err := srv.Serve(ctx); err != nil {
		a.Logger.Error("server stopped", err)
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runCalibration runs the Karatsuba threshold calibration and saves a
// profile that later runs pick up.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()
	return calibration.RunCalibration(ctx, out, calibration.CalibrationOptions{SaveProfile: true})
}

// runCalculate orchestrates the evaluation of the configured operation with
// one method, or with all of them in comparison mode.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	op, err := a.Registry.Lookup(a.Config.Op)
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	methods, err := cli.MethodsToRun(a.Config, op)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	svc := service.NewCalculatorService(a.Registry, a.Config, a.Config.MaxDigits)
	in, err := svc.Parse(service.Request{Op: op.Name, A: a.Config.A, B: a.Config.B, M: a.Config.M})
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Input error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	// Skip verbose output in quiet mode
	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, op, out)
		cli.PrintExecutionMode(methods, out)
	}
	spinnerOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		spinnerOut = io.Discard
	}

	results := orchestration.ExecuteMethods(ctx, a.Registry, op.Name, methods, in, a.Config.ToEngineOptions(), spinnerOut)
	outputCfg := cli.OutputConfig{
		JSON:    a.Config.JSONOutput,
		Quiet:   a.Config.Quiet,
		Verbose: a.Config.Verbose,
	}

	if len(results) > 1 {
		if outputCfg.JSON {
			return printJSONResults(results, out)
		}
		return orchestration.AnalyzeComparisonResults(results, outputCfg, out)
	}

	res := results[0]
	if res.Err != nil {
		return apperrors.HandleCalculationError(res.Err, res.Duration, out, cli.CLIColorProvider{})
	}
	if err := cli.DisplayResultWithConfig(out, res.Result, res.Duration, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Output error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// jsonResult represents the outcome of one method in JSON format.
type jsonResult struct {
	Method   string         `json:"method"`
	Duration string         `json:"duration"`
	Result   *engine.Result `json:"result,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// printJSONResults writes the outcome of every compared method as a JSON
// array. The exit code reports total failure or a mismatch between methods.
func printJSONResults(results []orchestration.MethodResult, out io.Writer) int {
	output := make([]jsonResult, len(results))
	var first *engine.Result
	var firstErr error
	code := apperrors.ExitSuccess
	for i, res := range results {
		jr := jsonResult{Method: res.Method, Duration: res.Duration.String()}
		if res.Err != nil {
			jr.Error = res.Err.Error()
			if firstErr == nil {
				firstErr = res.Err
			}
		} else {
			jr.Result = &results[i].Result
			if first == nil {
				first = jr.Result
			} else if !first.Equal(res.Result) {
				code = apperrors.ExitErrorMismatch
			}
		}
		output[i] = jr
	}
	if first == nil {
		code = apperrors.HandleCalculationError(firstErr, 0, io.Discard, nil)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return code
}
