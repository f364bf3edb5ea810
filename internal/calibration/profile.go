package calibration

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/agbru/modcalc/internal/bignum"
)

const (
	// ProfileVersion is bumped whenever the file layout changes; older files
	// are ignored.
	ProfileVersion = 2

	// ProfileFileName is the base name of the profile in the home directory.
	ProfileFileName = ".modcalc_calibration.json"
)

// ErrIncompatibleProfile reports a profile recorded on different hardware or
// with an older layout.
var ErrIncompatibleProfile = errors.New("calibration profile does not match this machine")

// Machine fingerprints the hardware a measurement was taken on.
type Machine struct {
	NumCPU      int      `json:"num_cpu"`
	GOARCH      string   `json:"goarch"`
	GOOS        string   `json:"goos"`
	GoVersion   string   `json:"go_version"`
	WordSize    int      `json:"word_size"`
	CPUFeatures []string `json:"cpu_features,omitempty"`
}

// CurrentMachine describes the running process.
func CurrentMachine() Machine {
	return Machine{
		NumCPU:      runtime.NumCPU(),
		GOARCH:      runtime.GOARCH,
		GOOS:        runtime.GOOS,
		GoVersion:   runtime.Version(),
		WordSize:    32 << (^uint(0) >> 63),
		CPUFeatures: CPUFeatures(),
	}
}

// SameHardware ignores the OS and toolchain, which do not move the
// Karatsuba crossover.
func (m Machine) SameHardware(o Machine) bool {
	return m.NumCPU == o.NumCPU &&
		m.GOARCH == o.GOARCH &&
		m.WordSize == o.WordSize &&
		slices.Equal(m.CPUFeatures, o.CPUFeatures)
}

// Profile is the persisted outcome of a calibration run.
type Profile struct {
	Version            int       `json:"version"`
	Machine            Machine   `json:"machine"`
	KaratsubaThreshold int       `json:"karatsuba_threshold"`
	OperandCells       int       `json:"operand_cells"`
	Measurements       []Result  `json:"measurements,omitempty"`
	CalibratedAt       time.Time `json:"calibrated_at"`
	Elapsed            string    `json:"elapsed,omitempty"`
}

// NewProfile records threshold for the current machine.
func NewProfile(threshold, operandCells int, measurements []Result) *Profile {
	return &Profile{
		Version:            ProfileVersion,
		Machine:            CurrentMachine(),
		KaratsubaThreshold: threshold,
		OperandCells:       operandCells,
		Measurements:       measurements,
		CalibratedAt:       time.Now(),
	}
}

// DefaultProfilePath is ~/.modcalc_calibration.json, or the bare file name
// when the home directory cannot be determined.
func DefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ProfileFileName
	}
	return filepath.Join(home, ProfileFileName)
}

// LoadProfile reads the profile at path (DefaultProfilePath when empty).
func LoadProfile(path string) (*Profile, error) {
	if path == "" {
		path = DefaultProfilePath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return &p, nil
}

// Save writes p to path (DefaultProfilePath when empty). The file is
// written next to its destination and renamed into place, so a concurrent
// reader never observes a partial profile.
func (p *Profile) Save(path string) error {
	if path == "" {
		path = DefaultProfilePath()
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".modcalc-profile-*")
	if err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// Check returns nil when p can tune this process, ErrIncompatibleProfile
// when it was recorded elsewhere, and a range error for a threshold that
// bignum would reject.
func (p *Profile) Check() error {
	switch {
	case p == nil:
		return ErrIncompatibleProfile
	case p.Version != ProfileVersion:
		return fmt.Errorf("%w: version %d, want %d", ErrIncompatibleProfile, p.Version, ProfileVersion)
	case !p.Machine.SameHardware(CurrentMachine()):
		return fmt.Errorf("%w: recorded on %s/%d cores", ErrIncompatibleProfile, p.Machine.GOARCH, p.Machine.NumCPU)
	case p.KaratsubaThreshold < bignum.MinKaratsubaThreshold:
		return fmt.Errorf("calibration profile threshold %d is below %d", p.KaratsubaThreshold, bignum.MinKaratsubaThreshold)
	}
	return nil
}

// Stale reports whether p is older than maxAge. A nil profile is stale.
func (p *Profile) Stale(maxAge time.Duration) bool {
	return p == nil || time.Since(p.CalibratedAt) > maxAge
}

func (p *Profile) String() string {
	if p == nil {
		return "<nil profile>"
	}
	return fmt.Sprintf("calibration v%d %s/%d cores: Karatsuba %d cells on %d-cell operands (%s)",
		p.Version, p.Machine.GOARCH, p.Machine.NumCPU, p.KaratsubaThreshold, p.OperandCells,
		p.CalibratedAt.Format(time.RFC3339))
}

// LoadCachedThreshold returns the threshold of the profile at path when it
// passes Check.
func LoadCachedThreshold(path string) (int, bool) {
	p, err := LoadProfile(path)
	if err != nil || p.Check() != nil {
		return 0, false
	}
	return p.KaratsubaThreshold, true
}
