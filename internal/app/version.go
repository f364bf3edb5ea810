// Package app provides the core application structure for the modcalc CLI.
// It handles application lifecycle, mode dispatching, and version management.
package app

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"

	"github.com/agbru/modcalc/internal/bignum"
	"github.com/agbru/modcalc/internal/engine"
	"github.com/agbru/modcalc/internal/reference"
)

// Build-time variables set via -ldflags:
//
//	go build -ldflags="-X github.com/agbru/modcalc/internal/app.Version=v1.2.3 -X github.com/agbru/modcalc/internal/app.Commit=abc123 -X github.com/agbru/modcalc/internal/app.BuildDate=2025-01-01T00:00:00Z"
var (
	// Version is the semantic version of the application (e.g., "v1.0.0").
	Version = "dev"
	// Commit is the short Git commit hash (e.g., "abc123").
	Commit = "unknown"
	// BuildDate is the ISO 8601 timestamp of the build.
	BuildDate = "unknown"
)

// versionFlags are the spellings accepted by HasVersionFlag.
var versionFlags = []string{"--version", "-version", "-V"}

// HasVersionFlag reports whether any argument asks for the version, so that
// it works in any position (e.g., "modcalc -server -version") and before
// the rest of the command line is validated.
func HasVersionFlag(args []string) bool {
	return slices.ContainsFunc(args, func(arg string) bool {
		return slices.Contains(versionFlags, arg)
	})
}

// VersionData describes the build and the arithmetic capabilities of the
// binary.
type VersionData struct {
	Version    string   `json:"version"`
	Commit     string   `json:"commit"`
	BuildDate  string   `json:"build_date"`
	GoVersion  string   `json:"go_version"`
	OS         string   `json:"os"`
	Arch       string   `json:"arch"`
	Radix      int      `json:"radix"`
	Operations []string `json:"operations"`
	Oracles    []string `json:"reference_oracles"`
}

// GetVersionInfo returns the current version information as a struct.
func GetVersionInfo() VersionData {
	return VersionData{
		Version:    Version,
		Commit:     Commit,
		BuildDate:  BuildDate,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		Radix:      bignum.Radix,
		Operations: engine.GlobalRegistry().List(),
		Oracles:    reference.List(),
	}
}

// PrintVersion outputs version information to the given writer.
func PrintVersion(out io.Writer) {
	info := GetVersionInfo()
	fmt.Fprintf(out, "modcalc %s\n", info.Version)
	fmt.Fprintf(out, "  Commit:     %s\n", info.Commit)
	fmt.Fprintf(out, "  Built:      %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go version: %s\n", info.GoVersion)
	fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", info.OS, info.Arch)
	fmt.Fprintf(out, "  Radix:      %d\n", info.Radix)
	fmt.Fprintf(out, "  Operations: %s\n", strings.Join(info.Operations, ", "))
	fmt.Fprintf(out, "  Oracles:    %s\n", strings.Join(info.Oracles, ", "))
}
