package calibration

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/agbru/modcalc/internal/bignum"
	apperrors "github.com/agbru/modcalc/internal/errors"
	"github.com/agbru/modcalc/internal/testutil"
)

// The tests in this file change the process-wide Karatsuba threshold and
// therefore do not run in parallel.

func TestGenerateKaratsubaThresholds(t *testing.T) {
	got := GenerateKaratsubaThresholds(40)
	for _, th := range got {
		if th >= 40 {
			t.Errorf("threshold %d does not split 40-cell operands", th)
		}
	}
	if !slices.Contains(got, 32) || !slices.IsSorted(got) {
		t.Errorf("unexpected candidates %v", got)
	}
	if quick := GenerateQuickKaratsubaThresholds(20); !slices.Equal(quick, []int{16}) {
		t.Errorf("GenerateQuickKaratsubaThresholds(20) = %v, want [16]", quick)
	}
}

func TestHardwareSummary(t *testing.T) {
	s := HardwareSummary()
	if !strings.Contains(s, "cores") || !strings.Contains(s, "features:") {
		t.Errorf("HardwareSummary() = %q", s)
	}
}

func TestRandomOperand(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, cells := range []int{1, 3, 17} {
		x := RandomOperand(rng, cells)
		if x.Len() != cells || x.Digits() != cells*bignum.CellDigits {
			t.Errorf("RandomOperand(%d): %d cells, %d digits", cells, x.Len(), x.Digits())
		}
	}
}

func TestCalibrate(t *testing.T) {
	before := bignum.KaratsubaThreshold()
	opts := CalibrationOptions{OperandCells: 64, Iterations: 1, Thresholds: []int{8, 16, 32}, Seed: 7}

	best, results, err := Calibrate(context.Background(), opts)
	if err != nil {
		t.Fatalf("Calibrate() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 measurements, got %d", len(results))
	}
	if !slices.Contains(opts.Thresholds, best) {
		t.Errorf("best threshold %d is not a candidate", best)
	}
	if got := bignum.KaratsubaThreshold(); got != before {
		t.Errorf("threshold not restored: %d, want %d", got, before)
	}
}

func TestCalibrateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Calibrate(ctx, CalibrationOptions{OperandCells: 16, Thresholds: []int{8}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunCalibration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	var buf bytes.Buffer
	code := RunCalibration(context.Background(), &buf, CalibrationOptions{
		OperandCells: 64, Iterations: 1, Thresholds: []int{8, 16}, ProfilePath: path, SaveProfile: true,
	})
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, buf.String())
	}
	out := testutil.StripAnsiCodes(buf.String())
	testutil.AssertContains(t, out, "Calibration Summary", "8 cells", "16 cells", "optimal", "-karatsuba-threshold", "profile saved")
	if th, ok := LoadCachedThreshold(path); !ok || (th != 8 && th != 16) {
		t.Errorf("LoadCachedThreshold() = %d, %t", th, ok)
	}
}

func TestRunCalibrationNoCandidates(t *testing.T) {
	var buf bytes.Buffer
	code := RunCalibration(context.Background(), &buf, CalibrationOptions{OperandCells: 4})
	if code != apperrors.ExitErrorGeneric {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
}
