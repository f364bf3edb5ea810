package config

import (
	"flag"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/agbru/modcalc/internal/errors"
)

// fileConfig mirrors AppConfig for TOML decoding. Pointer fields distinguish
// keys that are absent from keys set to their zero value.
type fileConfig struct {
	Op                 *string `toml:"op"`
	A                  *string `toml:"a"`
	B                  *string `toml:"b"`
	M                  *string `toml:"m"`
	Method             *string `toml:"method"`
	CheckPrime         *bool   `toml:"check_prime"`
	Compare            *bool   `toml:"compare"`
	Timeout            *string `toml:"timeout"`
	JSON               *bool   `toml:"json"`
	Quiet              *bool   `toml:"quiet"`
	Verbose            *bool   `toml:"verbose"`
	NoColor            *bool   `toml:"no_color"`
	Server             *bool   `toml:"server"`
	Port               *string `toml:"port"`
	MaxDigits          *int    `toml:"max_digits"`
	KaratsubaThreshold *int    `toml:"karatsuba_threshold"`
	CacheSize          *int    `toml:"cache_size"`
	MaxIterations      *uint64 `toml:"max_iterations"`
	RhoAttempts        *int    `toml:"rho_attempts"`
	LogLevel           *string `toml:"log_level"`
}

// loadFile decodes a TOML configuration file. Unknown keys are rejected so
// that typos surface as configuration errors.
func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fileConfig{}, apperrors.NewConfigError("cannot read config file %s: %v", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fileConfig{}, apperrors.NewConfigError("unknown key %q in config file %s", undecoded[0].String(), path)
	}
	return fc, nil
}

// override copies *src into *dst when the key was present in the file and
// none of the given flags was set on the command line.
func override[T any](fs *flag.FlagSet, dst, src *T, flags ...string) {
	if src != nil && !isFlagSet(fs, flags...) {
		*dst = *src
	}
}

// applyFileOverrides loads path and applies every key whose flag was not set
// on the command line.
func applyFileOverrides(config *AppConfig, fs *flag.FlagSet, path string) error {
	fc, err := loadFile(path)
	if err != nil {
		return err
	}

	override(fs, &config.Op, fc.Op, "op")
	override(fs, &config.A, fc.A, "a")
	override(fs, &config.B, fc.B, "b")
	override(fs, &config.M, fc.M, "m")
	override(fs, &config.Method, fc.Method, "method", "policy")
	override(fs, &config.Port, fc.Port, "port")
	override(fs, &config.LogLevel, fc.LogLevel, "log-level")
	override(fs, &config.CheckPrime, fc.CheckPrime, "check-prime")
	override(fs, &config.Compare, fc.Compare, "compare")
	override(fs, &config.JSONOutput, fc.JSON, "json")
	override(fs, &config.Quiet, fc.Quiet, "quiet", "q")
	override(fs, &config.Verbose, fc.Verbose, "v")
	override(fs, &config.NoColor, fc.NoColor, "no-color")
	override(fs, &config.ServerMode, fc.Server, "server")
	override(fs, &config.MaxDigits, fc.MaxDigits, "max-digits")
	override(fs, &config.KaratsubaThreshold, fc.KaratsubaThreshold, "karatsuba-threshold")
	override(fs, &config.CacheSize, fc.CacheSize, "cache-size")
	override(fs, &config.MaxIterations, fc.MaxIterations, "max-iterations")
	override(fs, &config.RhoAttempts, fc.RhoAttempts, "rho-attempts")

	if fc.Timeout != nil && !isFlagSet(fs, "timeout") {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return apperrors.NewConfigError("invalid timeout %q in config file %s", *fc.Timeout, path)
		}
		config.Timeout = d
	}
	return nil
}
