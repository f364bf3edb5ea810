package app

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/modcalc/internal/calibration"
	"github.com/agbru/modcalc/internal/config"
	"github.com/agbru/modcalc/internal/engine"
	apperrors "github.com/agbru/modcalc/internal/errors"
	"github.com/agbru/modcalc/internal/logging"
	"github.com/agbru/modcalc/internal/testutil"
)

// newTestApp builds an Application around cfg without parsing flags.
func newTestApp(cfg config.AppConfig) (*Application, *bytes.Buffer) {
	var errBuf bytes.Buffer
	cfg.NoColor = true
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxDigits == 0 {
		cfg.MaxDigits = config.DefaultMaxDigits
	}
	return &Application{
		Config:    cfg,
		Registry:  engine.NewDefaultRegistry(),
		Logger:    logging.Discard(),
		ErrWriter: &errBuf,
	}, &errBuf
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("Valid args create application", func(t *testing.T) {
		t.Parallel()
		var errBuf bytes.Buffer
		app, err := New([]string{"modcalc", "-op", "gcd", "-a", "12", "-b", "18"}, &errBuf)
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}
		if app.Config.Op != "gcd" || app.Config.A != "12" || app.Config.B != "18" {
			t.Errorf("unexpected config %+v", app.Config)
		}
		if app.Registry == nil || !app.Registry.Has("gcd") {
			t.Error("registry should hold the built-in operations")
		}
	})

	t.Run("Invalid args return error", func(t *testing.T) {
		t.Parallel()
		var errBuf bytes.Buffer
		app, err := New([]string{"modcalc", "-invalid-flag"}, &errBuf)
		if err == nil || app != nil {
			t.Errorf("New() = %v, %v; want nil application and an error", app, err)
		}
	})

	t.Run("Unknown operation is rejected", func(t *testing.T) {
		t.Parallel()
		var errBuf bytes.Buffer
		if _, err := New([]string{"modcalc", "-op", "cube"}, &errBuf); err == nil {
			t.Fatal("New() should reject an unknown operation")
		}
		if !strings.Contains(errBuf.String(), "unrecognized operation: 'cube'") {
			t.Errorf("usage output missing the reason:\n%s", errBuf.String())
		}
	})

	t.Run("Help flag returns error", func(t *testing.T) {
		t.Parallel()
		var errBuf bytes.Buffer
		_, err := New([]string{"modcalc", "-h"}, &errBuf)
		if !IsHelpError(err) {
			t.Errorf("expected help error, got %v", err)
		}
	})

	t.Run("Empty args use defaults", func(t *testing.T) {
		t.Parallel()
		var errBuf bytes.Buffer
		app, err := New([]string{}, &errBuf)
		if err != nil {
			t.Fatalf("New() should handle empty args, got: %v", err)
		}
		if app.Config.Op != config.DefaultOp {
			t.Errorf("Op = %q, want %q", app.Config.Op, config.DefaultOp)
		}
	})
}

func TestApplicationRun(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		cfg        config.AppConfig
		wantCode   int
		wantOut    string
		wantErrOut string
	}{
		{
			name:     "Quiet modular power",
			cfg:      config.AppConfig{Op: "pow", A: "4", B: "13", M: "497", Quiet: true},
			wantCode: apperrors.ExitSuccess,
			wantOut:  "445\n",
		},
		{
			name:     "Standard output",
			cfg:      config.AppConfig{Op: "divmod", A: "1000000000000", B: "7"},
			wantCode: apperrors.ExitSuccess,
			wantOut:  "142857142857",
		},
		{
			name:     "Comparison of inverse methods",
			cfg:      config.AppConfig{Op: "inverse", A: "3", M: "11", Compare: true},
			wantCode: apperrors.ExitSuccess,
			wantOut:  "All valid results are consistent",
		},
		{
			name:       "Missing operand",
			cfg:        config.AppConfig{Op: "pow", A: "4"},
			wantCode:   apperrors.ExitErrorConfig,
			wantErrOut: "requires operand",
		},
		{
			name:       "Operand too long",
			cfg:        config.AppConfig{Op: "isqrt", A: "123456", MaxDigits: 3},
			wantCode:   apperrors.ExitErrorConfig,
			wantErrOut: "limit 3",
		},
		{
			name:       "Unknown method",
			cfg:        config.AppConfig{Op: "gcd", A: "1", B: "2", Method: "binary"},
			wantCode:   apperrors.ExitErrorConfig,
			wantErrOut: "has no method",
		},
		{
			name:       "Unknown operation",
			cfg:        config.AppConfig{Op: "cube", A: "1"},
			wantCode:   apperrors.ExitErrorConfig,
			wantErrOut: "unknown operation",
		},
		{
			name:     "Arithmetic rejection",
			cfg:      config.AppConfig{Op: "inverse", A: "2", M: "4"},
			wantCode: apperrors.ExitErrorGeneric,
			wantOut:  "Status: Rejected.",
		},
		{
			name:     "Timeout",
			cfg:      config.AppConfig{Op: "gcd", A: "12", B: "18", Timeout: time.Nanosecond},
			wantCode: apperrors.ExitErrorTimeout,
			wantOut:  "Timeout",
		},
		{
			name:     "Version",
			cfg:      config.AppConfig{ShowVersion: true},
			wantCode: apperrors.ExitSuccess,
			wantOut:  "modcalc " + Version,
		},
		{
			name:     "Completion",
			cfg:      config.AppConfig{Completion: "bash"},
			wantCode: apperrors.ExitSuccess,
			wantOut:  "millerrabin montgomery plain pollard",
		},
		{
			name:       "Completion for an unknown shell",
			cfg:        config.AppConfig{Completion: "tcsh"},
			wantCode:   apperrors.ExitErrorConfig,
			wantErrOut: "unsupported shell",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			app, errBuf := newTestApp(tc.cfg)
			var out bytes.Buffer
			code := app.Run(context.Background(), &out)
			if code != tc.wantCode {
				t.Errorf("exit code = %d, want %d\nstdout:\n%s\nstderr:\n%s", code, tc.wantCode, out.String(), errBuf.String())
			}
			stdout := testutil.StripAnsiCodes(out.String())
			if tc.wantOut != "" && !strings.Contains(stdout, tc.wantOut) {
				t.Errorf("stdout missing %q:\n%s", tc.wantOut, stdout)
			}
			if tc.wantErrOut != "" && !strings.Contains(errBuf.String(), tc.wantErrOut) {
				t.Errorf("stderr missing %q:\n%s", tc.wantErrOut, errBuf.String())
			}
		})
	}
}

func TestApplicationRunJSON(t *testing.T) {
	t.Parallel()

	t.Run("Single method", func(t *testing.T) {
		t.Parallel()
		app, _ := newTestApp(config.AppConfig{Op: "gcd", A: "12", B: "18", JSONOutput: true})
		var out bytes.Buffer
		if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d, output:\n%s", code, out.String())
		}
		var doc struct {
			Operation string `json:"operation"`
			Values    []struct {
				Name  string `json:"name"`
				Value string `json:"value"`
			} `json:"values"`
		}
		if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out.String())
		}
		if doc.Operation != "gcd/euclid" || len(doc.Values) != 1 || doc.Values[0].Value != "6" {
			t.Errorf("unexpected document %+v", doc)
		}
	})

	t.Run("Comparison", func(t *testing.T) {
		t.Parallel()
		app, _ := newTestApp(config.AppConfig{Op: "pow", A: "4", B: "13", M: "497", JSONOutput: true, Compare: true})
		var out bytes.Buffer
		if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d, output:\n%s", code, out.String())
		}
		var docs []jsonResult
		if err := json.Unmarshal(out.Bytes(), &docs); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out.String())
		}
		if len(docs) != 2 || docs[0].Method != "montgomery" || docs[1].Method != "plain" {
			t.Fatalf("unexpected documents %+v", docs)
		}
		for _, d := range docs {
			if d.Result == nil || d.Result.String() != "result=445" {
				t.Errorf("%s: unexpected result %+v", d.Method, d.Result)
			}
		}
	})

	t.Run("Comparison failure", func(t *testing.T) {
		t.Parallel()
		app, _ := newTestApp(config.AppConfig{Op: "inverse", A: "2", M: "4", JSONOutput: true, Compare: true})
		var out bytes.Buffer
		if code := app.Run(context.Background(), &out); code != apperrors.ExitErrorGeneric {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
		}
		if !strings.Contains(out.String(), `"error"`) {
			t.Errorf("errors missing from JSON:\n%s", out.String())
		}
	})
}

func TestApplyCachedCalibration(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")
	if err := calibration.NewProfile(48, 2048, nil).Save(path); err != nil {
		t.Fatal(err)
	}

	base := config.AppConfig{KaratsubaThreshold: config.DefaultKaratsubaThreshold}

	if got := applyCachedCalibration(base, path, nil); got.KaratsubaThreshold != 48 {
		t.Errorf("cached threshold not applied: %d", got.KaratsubaThreshold)
	}
	if got := applyCachedCalibration(base, path, []string{"-karatsuba-threshold=32"}); got.KaratsubaThreshold != 32 {
		t.Errorf("explicit flag should win: %d", got.KaratsubaThreshold)
	}
	custom := config.AppConfig{KaratsubaThreshold: 16}
	if got := applyCachedCalibration(custom, path, nil); got.KaratsubaThreshold != 16 {
		t.Errorf("non-default threshold should be kept: %d", got.KaratsubaThreshold)
	}
	if got := applyCachedCalibration(base, filepath.Join(t.TempDir(), "none.json"), nil); got.KaratsubaThreshold != config.DefaultKaratsubaThreshold {
		t.Errorf("missing profile should keep the default: %d", got.KaratsubaThreshold)
	}
}

func TestHasFlag(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		args []string
		want bool
	}{
		{[]string{"-karatsuba-threshold", "32"}, true},
		{[]string{"--karatsuba-threshold=16"}, true},
		{[]string{"-karatsuba-thresholds"}, false},
		{[]string{"-op", "pow"}, false},
	}
	for _, tc := range testCases {
		if got := hasFlag(tc.args, "karatsuba-threshold"); got != tc.want {
			t.Errorf("hasFlag(%v) = %t, want %t", tc.args, got, tc.want)
		}
	}
}
