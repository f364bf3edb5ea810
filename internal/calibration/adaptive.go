// Package calibration measures the Karatsuba threshold that makes
// multiplication fastest on the current machine, and persists the result as
// a profile so that later runs can reuse it.
package calibration

import (
	"fmt"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sys/cpu"
)

// ─────────────────────────────────────────────────────────────────────────────
// Candidate Thresholds
// ─────────────────────────────────────────────────────────────────────────────

// baseThresholds are the block sizes, in cells, tried on every machine.
var baseThresholds = []int{8, 16, 24, 32, 48, 64}

// GenerateKaratsubaThresholds returns the candidate thresholds to benchmark
// for operands of operandCells cells. Candidates that would never trigger a
// split for such operands are dropped. Machines with wide multipliers get
// larger candidates since their schoolbook loop stays competitive longer.
func GenerateKaratsubaThresholds(operandCells int) []int {
	thresholds := slices.Clone(baseThresholds)
	if cpu.X86.HasBMI2 || cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD {
		thresholds = append(thresholds, 96, 128)
	}
	return slices.DeleteFunc(thresholds, func(t int) bool { return t >= operandCells })
}

// GenerateQuickKaratsubaThresholds returns a reduced candidate set for a fast
// calibration.
func GenerateQuickKaratsubaThresholds(operandCells int) []int {
	return slices.DeleteFunc([]int{16, 32, 64}, func(t int) bool { return t >= operandCells })
}

// ─────────────────────────────────────────────────────────────────────────────
// Hardware Report
// ─────────────────────────────────────────────────────────────────────────────

// CPUFeatures lists the detected instruction set extensions that affect
// multi-precision arithmetic.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasAVX2, "AVX2")
		add(cpu.X86.HasAVX512F, "AVX-512F")
		add(cpu.X86.HasBMI2, "BMI2")
		add(cpu.X86.HasADX, "ADX")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "ASIMD")
		add(cpu.ARM64.HasSVE, "SVE")
	}
	return features
}

// HardwareSummary describes the machine in one line, e.g.
// "amd64, 8 cores, features: AVX2 BMI2 ADX".
func HardwareSummary() string {
	features := CPUFeatures()
	desc := "none"
	if len(features) > 0 {
		desc = strings.Join(features, " ")
	}
	return fmt.Sprintf("%s, %d cores, features: %s", runtime.GOARCH, runtime.NumCPU(), desc)
}
