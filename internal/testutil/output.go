// Package testutil holds helpers shared by the tests of the presentation
// packages.
package testutil

import (
	"regexp"
	"strings"
	"testing"
)

// csi matches SGR and other CSI escape sequences emitted by the ui palette.
var csi = regexp.MustCompile("\x1b\\[[0-9;?]*[A-Za-z]")

// StripAnsiCodes returns s without terminal escape sequences.
func StripAnsiCodes(s string) string {
	return csi.ReplaceAllString(s, "")
}

// AssertContains fails t for every fragment of want missing from the
// escape-free form of got.
func AssertContains(t testing.TB, got string, want ...string) {
	t.Helper()
	plain := StripAnsiCodes(got)
	for _, w := range want {
		if !strings.Contains(plain, w) {
			t.Errorf("output does not contain %q:\n%s", w, plain)
		}
	}
}
