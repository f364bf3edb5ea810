// Package ui holds the terminal palette shared by the presentation layers.
//
// A palette maps semantic roles (accent, verdicts, muted text) to ANSI
// escape sequences. The active palette is process-wide and selected once at
// startup by InitTheme.
package ui

import (
	"os"
	"strings"
	"sync"
)

// Theme is a named palette. Empty fields emit nothing.
type Theme struct {
	Name string
	// Accent highlights operation names and headers.
	Accent string
	// Muted is used for secondary text such as elapsed times.
	Muted string
	// Good marks accepted results and successful runs.
	Good string
	// Warn marks truncated output and tips.
	Warn string
	// Bad marks rejections and failures.
	Bad string
	// Value colors numeric results.
	Value string
	Bold  string
	Reset string
}

const esc = "\033["

var (
	// DarkTheme targets dark terminal backgrounds.
	DarkTheme = Theme{
		Name:   "dark",
		Accent: esc + "38;5;39m",
		Muted:  esc + "38;5;245m",
		Good:   esc + "38;5;82m",
		Warn:   esc + "38;5;220m",
		Bad:    esc + "38;5;196m",
		Value:  esc + "38;5;141m",
		Bold:   esc + "1m",
		Reset:  esc + "0m",
	}

	// LightTheme targets light terminal backgrounds.
	LightTheme = Theme{
		Name:   "light",
		Accent: esc + "38;5;27m",
		Muted:  esc + "38;5;240m",
		Good:   esc + "38;5;28m",
		Warn:   esc + "38;5;130m",
		Bad:    esc + "38;5;124m",
		Value:  esc + "38;5;54m",
		Bold:   esc + "1m",
		Reset:  esc + "0m",
	}

	// PlainTheme emits no escape sequences.
	PlainTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:  DarkTheme,
		LightTheme.Name: LightTheme,
		PlainTheme.Name: PlainTheme,
	}

	mu      sync.RWMutex
	current = DarkTheme
)

// Current returns the active palette.
func Current() Theme {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Use installs t as the active palette and returns the previous one, which
// lets tests restore global state with a deferred call.
func Use(t Theme) Theme {
	mu.Lock()
	defer mu.Unlock()
	prev := current
	current = t
	return prev
}

// Lookup returns the palette registered under name (case-insensitive).
func Lookup(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// InitTheme selects the startup palette. Colors are disabled when noColor is
// set or NO_COLOR is present in the environment (https://no-color.org/).
// Otherwise MODCALC_THEME may name "dark" or "light"; anything else falls
// back to dark.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		Use(PlainTheme)
		return
	}
	if t, ok := Lookup(os.Getenv("MODCALC_THEME")); ok {
		Use(t)
		return
	}
	Use(DarkTheme)
}

// Paint wraps s in the given role color and a reset. With the plain palette
// it returns s unchanged.
func Paint(role, s string) string {
	if role == "" {
		return s
	}
	return role + s + Current().Reset
}
