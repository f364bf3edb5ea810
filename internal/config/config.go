// Package config provides the configuration management for the modcalc
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments, environment variables and TOML
// configuration files, and performs validation on the configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/modcalc/internal/bignum"
	"github.com/agbru/modcalc/internal/engine"
	apperrors "github.com/agbru/modcalc/internal/errors"
)

const (
	// EnvPrefix prefixes every environment variable read by modcalc.
	EnvPrefix = "MODCALC_"
)

// Default configuration values.
// These can be overridden via command-line flags, environment variables or a
// configuration file.
const (
	// DefaultOp is the default operation.
	DefaultOp = "pow"
	// DefaultTimeout is the default evaluation timeout.
	DefaultTimeout = 1 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultMaxDigits is the default cap on the decimal length of an operand.
	DefaultMaxDigits = 20_000
	// DefaultKaratsubaThreshold is the default Karatsuba cutoff in cells.
	DefaultKaratsubaThreshold = bignum.DefaultKaratsubaThreshold
	// DefaultCacheSize is the default number of cached Montgomery contexts.
	DefaultCacheSize = 128
	// DefaultLogLevel is the default zerolog level.
	DefaultLogLevel = "info"
	// DefaultMaxIterations is the default bound on searching algorithms;
	// zero leaves them unbounded.
	DefaultMaxIterations = 0
)

// AppConfig aggregates the application's configuration parameters. It
// encapsulates all settings that control the execution, from the operation
// and its operands to performance-tuning parameters.
type AppConfig struct {
	// Op is the operation to evaluate (e.g., "pow", "inverse", "factor").
	Op string
	// A, B and M are the decimal operands. Unary operations read only A;
	// modular operations read M as the modulus.
	A, B, M string
	// Method selects the implementation for operations that have several
	// ("euclid"/"fermat", "montgomery"/"plain", "trial"/"pollard"). Empty
	// selects the operation's default.
	Method string
	// CheckPrime, if true, makes the Fermat inverse verify that the modulus
	// is prime.
	CheckPrime bool
	// Compare, if true, evaluates every method of the operation concurrently
	// and compares the results.
	Compare bool
	// Timeout sets the maximum duration for the evaluation.
	Timeout time.Duration
	// JSONOutput, if true, outputs the result in JSON format.
	JSONOutput bool
	// Quiet mode - minimal output for scripting purposes.
	Quiet bool
	// Verbose, if true, displays the full result even when it is very long.
	Verbose bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// MaxDigits caps the decimal length of every operand.
	MaxDigits int
	// KaratsubaThreshold is the block size in cells below which
	// multiplication is schoolbook.
	KaratsubaThreshold int
	// CacheSize is the number of Montgomery contexts kept in memory.
	CacheSize int
	// MaxIterations caps trial division, Pollard rho, the non-residue search
	// and the baby steps of the discrete logarithm. Zero means unbounded.
	MaxIterations uint64
	// RhoAttempts is the number of polynomials Pollard rho tries; zero keeps
	// the default.
	RhoAttempts int
	// Calibrate, if true, runs the Karatsuba threshold calibration.
	Calibrate bool
	// LogLevel is the zerolog level name ("debug", "info", ...).
	LogLevel string
	// ConfigFile is the path of an optional TOML configuration file.
	ConfigFile string
	// ShowVersion, if true, prints version information and exits.
	ShowVersion bool
	// Completion names a shell whose completion script is printed instead
	// of evaluating anything.
	Completion string
}

// ToEngineOptions converts the configuration into the settings passed to
// every evaluation.
func (c AppConfig) ToEngineOptions() engine.Options {
	opts := engine.Options{
		CheckPrime:  c.CheckPrime,
		RhoAttempts: c.RhoAttempts,
	}
	if c.MaxIterations > 0 {
		opts.IterationBound = bignum.BoundOf(bignum.FromUint64(c.MaxIterations))
	}
	return opts
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Parameters:
//   - availableOps: The names of the registered operations.
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableOps []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.MaxDigits <= 0 {
		return apperrors.NewConfigError("max digits must be strictly positive: %d", c.MaxDigits)
	}
	if c.KaratsubaThreshold < bignum.MinKaratsubaThreshold {
		return apperrors.NewConfigError("karatsuba threshold must be at least %d cells: %d", bignum.MinKaratsubaThreshold, c.KaratsubaThreshold)
	}
	if c.CacheSize <= 0 {
		return apperrors.NewConfigError("cache size must be strictly positive: %d", c.CacheSize)
	}
	if c.RhoAttempts < 0 {
		return apperrors.NewConfigError("rho attempts must not be negative: %d", c.RhoAttempts)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("unrecognized log level: '%s'", c.LogLevel)
	}
	if c.ServerMode || c.Calibrate || c.ShowVersion || c.Completion != "" {
		return nil
	}
	if !slices.Contains(availableOps, c.Op) {
		return apperrors.NewConfigError("unrecognized operation: '%s'. Valid operations are: [%s]", c.Op, strings.Join(availableOps, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. Values are resolved with the priority
// CLI flag > environment variable > configuration file > default.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//   - availableOps: A slice of valid operation names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing, file loading or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableOps []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.StringVar(&config.Op, "op", DefaultOp, fmt.Sprintf("Operation to evaluate, one of [%s].", strings.Join(availableOps, ", ")))
	fs.StringVar(&config.A, "a", "", "First operand (decimal).")
	fs.StringVar(&config.B, "b", "", "Second operand (decimal), e.g. the exponent of pow.")
	fs.StringVar(&config.M, "m", "", "Modulus (decimal).")
	fs.StringVar(&config.Method, "method", "", "Method for operations with alternatives (euclid, fermat, montgomery, plain, trial, pollard).")
	fs.StringVar(&config.Method, "policy", "", "Alias for -method.")
	fs.BoolVar(&config.CheckPrime, "check-prime", false, "Reject composite moduli for the Fermat inverse.")
	fs.BoolVar(&config.Compare, "compare", false, "Run every method of the operation and compare the results.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the evaluation.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full value of long results.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.IntVar(&config.MaxDigits, "max-digits", DefaultMaxDigits, "Maximum decimal length accepted for an operand.")
	fs.IntVar(&config.KaratsubaThreshold, "karatsuba-threshold", DefaultKaratsubaThreshold, "Block size (in cells) below which multiplication is schoolbook.")
	fs.IntVar(&config.CacheSize, "cache-size", DefaultCacheSize, "Number of Montgomery contexts kept in memory.")
	fs.Uint64Var(&config.MaxIterations, "max-iterations", DefaultMaxIterations, "Bound on the steps of searching methods (0 = unbounded).")
	fs.IntVar(&config.RhoAttempts, "rho-attempts", 0, "Polynomials Pollard rho tries before giving up (0 = default).")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "Benchmark Karatsuba thresholds and report the fastest.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level (debug, info, warn, error).")
	fs.StringVar(&config.ConfigFile, "config", "", "Path to a TOML configuration file.")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version information and exit.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh or fish.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	if !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", config.ConfigFile)
	}
	if config.ConfigFile != "" {
		if err := applyFileOverrides(&config, fs, config.ConfigFile); err != nil {
			fmt.Fprintln(errorWriter, "Configuration error:", err)
			return AppConfig{}, err
		}
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(fs)

	config.Op = strings.ToLower(config.Op)
	config.Method = strings.ToLower(config.Method)
	if err := config.Validate(availableOps); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}

// setCustomUsage installs a usage message listing the flags with examples.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: %s [options]\n\n", fs.Name())
		fmt.Fprintln(out, "Evaluates arbitrary-precision modular arithmetic and number-theory operations.")
		fmt.Fprintln(out, "\nExamples:")
		fmt.Fprintf(out, "  %s -op pow -a 4 -b 13 -m 497\n", fs.Name())
		fmt.Fprintf(out, "  %s -op inverse -a 17 -m 3120 -method fermat -check-prime\n", fs.Name())
		fmt.Fprintf(out, "  %s -op factor -a 600851475143 -compare\n", fs.Name())
		fmt.Fprintln(out, "\nOptions:")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nEvery option can also be set with a %s<NAME> environment variable.\n", EnvPrefix)
	}
}
