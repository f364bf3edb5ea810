// Package cli provides the command-line presentation of modcalc: the
// execution banner, a spinner while an evaluation runs, and the formatting
// of results as text, tables, JSON or a single quiet line.
package cli

//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/markkurossi/tabulate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/agbru/modcalc/internal/engine"
	"github.com/agbru/modcalc/internal/ui"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// TruncationLimit is the digit threshold from which a value is truncated
	// in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges specifies the number of digits to display at the beginning
	// and end of a truncated number.
	DisplayEdges = 25
	// SpinnerRefreshRate defines the refresh frequency of the spinner.
	SpinnerRefreshRate = 200 * time.Millisecond
)

// Palette accessors used by the presentation code of this package and its
// callers. Each returns the escape sequence of the active ui theme.

func ColorReset() string  { return ui.Current().Reset }
func ColorBold() string   { return ui.Current().Bold }
func ColorAccent() string { return ui.Current().Accent }
func ColorMuted() string  { return ui.Current().Muted }
func ColorGood() string   { return ui.Current().Good }
func ColorWarn() string   { return ui.Current().Warn }
func ColorBad() string    { return ui.Current().Bad }
func ColorValue() string  { return ui.Current().Value }

// Spinner abstracts a terminal spinner so that the display code can be
// tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// DisplaySpinner animates a spinner labelled with label and the elapsed
// time until done is closed. It returns once the spinner is stopped.
//
// Parameters:
//   - done: Closed when the evaluation finishes.
//   - label: The text shown next to the spinner.
//   - out: The io.Writer to which the spinner is rendered.
func DisplaySpinner(done <-chan struct{}, label string, out io.Writer) {
	s := newSpinner(spinner.WithWriter(out))
	start := time.Now()
	s.UpdateSuffix(" " + label)
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(SpinnerRefreshRate)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.UpdateSuffix(fmt.Sprintf(" %s (%s)", label, FormatExecutionDuration(time.Since(start).Truncate(time.Millisecond))))
		}
	}
}

// printer groups digits with the English thousands separator.
var printer = message.NewPrinter(language.English)

// FormatCount formats a count with thousands separators (e.g., "12,345").
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// truncate shortens a decimal string longer than TruncationLimit to its
// edges.
func truncate(s string) (string, bool) {
	if len(s) <= TruncationLimit {
		return s, false
	}
	return s[:DisplayEdges] + "..." + s[len(s)-DisplayEdges:], true
}

// DisplayResult formats and prints the outcome of an evaluation: the
// verdict of predicates, every named value with its digit count, and the
// factorization as a table.
//
// Parameters:
//   - res: The evaluation result.
//   - duration: The time taken by the evaluation.
//   - verbose: If true, prints values in full regardless of size.
//   - out: The io.Writer for the output.
func DisplayResult(res engine.Result, duration time.Duration, verbose bool, out io.Writer) {
	durationStr := FormatExecutionDuration(duration)
	if duration == 0 {
		durationStr = "< 1µs"
	}
	fmt.Fprintf(out, "\n%s--- Result (%s) ---%s\n", ColorBold(), res.Operation, ColorReset())
	fmt.Fprintf(out, "Evaluation time : %s%s%s\n", ColorGood(), durationStr, ColorReset())

	if res.Verdict != nil {
		color := ColorBad()
		if *res.Verdict {
			color = ColorGood()
		}
		fmt.Fprintf(out, "Verdict         : %s%t%s\n", color, *res.Verdict, ColorReset())
	}

	truncated := false
	for _, v := range res.Values {
		s := v.Value.String()
		shown := s
		if !verbose {
			var cut bool
			shown, cut = truncate(s)
			truncated = truncated || cut
		}
		fmt.Fprintf(out, "%-16s: %s%s%s %s(%s digits)%s\n",
			v.Name, ColorGood(), shown, ColorReset(), ColorMuted(), FormatCount(len(s)), ColorReset())
	}
	if truncated {
		fmt.Fprintf(out, "(Tip: use the %s-v%s option to display the full value)\n", ColorWarn(), ColorReset())
	}

	if len(res.Factors) > 0 || strings.HasPrefix(res.Operation, "factor/") {
		fmt.Fprintf(out, "Factorization   : %s\n", engine.FormatFactors(res.Factors))
		if len(res.Factors) > 0 {
			FactorTable(res, verbose).Print(out)
		}
	}
}

// FactorTable renders a factorization as a table of primes, exponents and
// digit counts.
func FactorTable(res engine.Result, verbose bool) *tabulate.Tabulate {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Prime").SetAlign(tabulate.ML)
	tab.Header("Exponent").SetAlign(tabulate.MR)
	tab.Header("Digits").SetAlign(tabulate.MR)
	for _, f := range res.Factors {
		p := f.Prime.String()
		shown := p
		if !verbose {
			shown, _ = truncate(p)
		}
		row := tab.Row()
		row.Column(shown)
		row.Column(fmt.Sprintf("%d", f.Exponent))
		row.Column(FormatCount(len(p)))
	}
	return tab
}
