package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/modcalc/internal/bignum"
	"github.com/agbru/modcalc/internal/cli/mocks"
	"github.com/agbru/modcalc/internal/engine"
	"github.com/agbru/modcalc/internal/numtheory"
	"github.com/agbru/modcalc/internal/testutil"
)

func mustInt(t *testing.T, s string) bignum.Int {
	t.Helper()
	v, err := bignum.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return v
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{"Microseconds", 500 * time.Microsecond, "500µs"},
		{"Milliseconds", 250 * time.Millisecond, "250ms"},
		{"Seconds", 2*time.Second + 500*time.Millisecond, "2.5s"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatExecutionDuration(tc.input); got != tc.expected {
				t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestFormatCount(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		n    int
		want string
	}{
		{7, "7"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}
	for _, tc := range testCases {
		if got := FormatCount(tc.n); got != tc.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestDisplayResult(t *testing.T) {
	t.Parallel()

	t.Run("Named values", func(t *testing.T) {
		t.Parallel()
		res := engine.Result{
			Operation: "divmod/long",
			Values: []engine.Value{
				{Name: "quotient", Value: mustInt(t, "142857142857")},
				{Name: "remainder", Value: mustInt(t, "1")},
			},
		}
		var buf bytes.Buffer
		DisplayResult(res, 3*time.Millisecond, false, &buf)
		out := testutil.StripAnsiCodes(buf.String())
		testutil.AssertContains(t, out, "divmod/long", "3ms", "quotient", "142857142857", "(12 digits)", "remainder")
		if strings.Contains(out, "Verdict") {
			t.Errorf("unexpected verdict line:\n%s", out)
		}
	})

	t.Run("Verdict", func(t *testing.T) {
		t.Parallel()
		yes := true
		res := engine.Result{Operation: "isprime/trial", Verdict: &yes}
		var buf bytes.Buffer
		DisplayResult(res, 0, false, &buf)
		out := testutil.StripAnsiCodes(buf.String())
		if !strings.Contains(out, "Verdict         : true") {
			t.Errorf("verdict missing:\n%s", out)
		}
		if !strings.Contains(out, "< 1µs") {
			t.Errorf("zero duration not rendered:\n%s", out)
		}
	})

	t.Run("Truncation", func(t *testing.T) {
		t.Parallel()
		long := "1" + strings.Repeat("0", 149)
		res := engine.Result{
			Operation: "mul/karatsuba",
			Values:    []engine.Value{{Name: "product", Value: mustInt(t, long)}},
		}

		var buf bytes.Buffer
		DisplayResult(res, time.Second, false, &buf)
		out := testutil.StripAnsiCodes(buf.String())
		if strings.Contains(out, long) {
			t.Error("long value should be truncated")
		}
		if !strings.Contains(out, "...") || !strings.Contains(out, "-v") {
			t.Errorf("truncation markers missing:\n%s", out)
		}
		if !strings.Contains(out, "(150 digits)") {
			t.Errorf("digit count missing:\n%s", out)
		}

		buf.Reset()
		DisplayResult(res, time.Second, true, &buf)
		if !strings.Contains(buf.String(), long) {
			t.Error("verbose output should print the full value")
		}
	})

	t.Run("Factorization", func(t *testing.T) {
		t.Parallel()
		res := engine.Result{
			Operation: "factor/pollard",
			Factors: []numtheory.Factor{
				{Prime: bignum.FromUint64(2), Exponent: 3},
				{Prime: bignum.FromUint64(1000003), Exponent: 1},
			},
		}
		var buf bytes.Buffer
		DisplayResult(res, time.Millisecond, false, &buf)
		out := testutil.StripAnsiCodes(buf.String())
		testutil.AssertContains(t, out, "2^3 * 1000003", "Prime", "Exponent", "Digits", "1000003")
	})

	t.Run("Factorization of one", func(t *testing.T) {
		t.Parallel()
		res := engine.Result{Operation: "factor/trial"}
		var buf bytes.Buffer
		DisplayResult(res, time.Millisecond, false, &buf)
		out := testutil.StripAnsiCodes(buf.String())
		if !strings.Contains(out, "Factorization   : 1") {
			t.Errorf("empty factorization not rendered as 1:\n%s", out)
		}
		if strings.Contains(out, "Prime") {
			t.Errorf("no table expected for an empty factorization:\n%s", out)
		}
	})
}

func TestDisplaySpinner(t *testing.T) {
	// Not parallel: replaces the package-level spinner constructor.
	mock := mocks.NewMockSpinner(gomock.NewController(t))
	gomock.InOrder(
		mock.EXPECT().UpdateSuffix(" Evaluating pow"),
		mock.EXPECT().Start(),
	)
	mock.EXPECT().UpdateSuffix(gomock.Any()).AnyTimes()
	mock.EXPECT().Stop()

	original := newSpinner
	newSpinner = func(options ...spinner.Option) Spinner { return mock }
	defer func() { newSpinner = original }()

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		DisplaySpinner(done, "Evaluating pow", &bytes.Buffer{})
		close(finished)
	}()
	time.Sleep(2 * SpinnerRefreshRate)
	close(done)

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("DisplaySpinner did not return after done was closed")
	}
}

func TestCLIColorProvider(t *testing.T) {
	t.Parallel()
	p := CLIColorProvider{}
	if p.Yellow() != ColorWarn() || p.Reset() != ColorReset() {
		t.Error("CLIColorProvider should mirror the current theme")
	}
}
