package bignum

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/agbru/modcalc/internal/errors"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
		cells int
	}{
		{"Zero", "0", "0", 1},
		{"ManyZeros", "0000000000000", "0", 1},
		{"LeadingZeros", "000123", "123", 1},
		{"OneCell", "999999999", "999999999", 1},
		{"CellBoundary", "1000000000", "1000000000", 2},
		{"InnerZeroCell", "1000000000000000001", "1000000000000000001", 3},
		{"Long", strings.Repeat("1234567890", 10), strings.Repeat("1234567890", 10), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			x, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got := x.String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
			if x.Len() != tt.cells {
				t.Errorf("Parse(%q).Len() = %d, want %d", tt.input, x.Len(), tt.cells)
			}
		})
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"", "-1", "+1", "12a3", " 12", "12 ", "1_000", "0x10", "１"} {
		_, err := Parse(input)
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidInput", input, err)
		}
		if !apperrors.IsArithmeticError(err) {
			t.Errorf("Parse(%q) error %T is not an ArithmeticError", input, err)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic on malformed input")
		}
	}()
	MustParse("abc")
}

func TestZeroValueIsZero(t *testing.T) {
	t.Parallel()
	var x Int
	if !x.IsZero() || x.String() != "0" || x.Digits() != 1 {
		t.Errorf("zero value = %q (digits %d), want 0", x.String(), x.Digits())
	}
	if got := x.Add(One()); !got.IsOne() {
		t.Errorf("0 + 1 = %s", got)
	}
}

func TestFromUint64(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{999_999_999, "999999999"},
		{1_000_000_000, "1000000000"},
		{18446744073709551615, "18446744073709551615"},
	}
	for _, tt := range tests {
		if got := FromUint64(tt.in).String(); got != tt.want {
			t.Errorf("FromUint64(%d) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFromInt(t *testing.T) {
	t.Parallel()
	x, err := FromInt(42)
	if err != nil || x.String() != "42" {
		t.Errorf("FromInt(42) = %s, %v", x, err)
	}
	if _, err := FromInt(-1); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("FromInt(-1) error = %v, want ErrInvalidInput", err)
	}
}

func TestUint64(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"0", 0, true},
		{"123456789012", 123456789012, true},
		{"18446744073709551615", 18446744073709551615, true},
		{"18446744073709551616", 0, false},
		{"100000000000000000000000000000", 0, false},
	}
	for _, tt := range tests {
		got, ok := MustParse(tt.in).Uint64()
		if got != tt.want || ok != tt.ok {
			t.Errorf("Uint64(%s) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDigits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want int
	}{
		{"0", 1},
		{"9", 1},
		{"10", 2},
		{"999999999", 9},
		{"1000000000", 10},
		{"1000000000000000000", 19},
	}
	for _, tt := range tests {
		if got := MustParse(tt.in).Digits(); got != tt.want {
			t.Errorf("Digits(%s) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b string
		want int
	}{
		{"0", "0", 0},
		{"1", "0", 1},
		{"0", "1", -1},
		{"999999999", "1000000000", -1},
		{"1000000000000000001", "1000000000000000000", 1},
		{"2000000000", "1999999999", 1},
		{"123456789123456789", "123456789123456789", 0},
	}
	for _, tt := range tests {
		a, b := MustParse(tt.a), MustParse(tt.b)
		if got := a.Cmp(b); got != tt.want {
			t.Errorf("Cmp(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if a.Eq(b) != (tt.want == 0) || a.Lt(b) != (tt.want < 0) || a.Gt(b) != (tt.want > 0) ||
			a.Le(b) != (tt.want <= 0) || a.Ge(b) != (tt.want >= 0) {
			t.Errorf("ordering predicates disagree with Cmp for (%s, %s)", tt.a, tt.b)
		}
	}
}

func TestPredicates(t *testing.T) {
	t.Parallel()
	if !Zero().IsZero() || One().IsZero() {
		t.Error("IsZero mismatch")
	}
	if !One().IsOne() || MustParse("1000000001").IsOne() {
		t.Error("IsOne mismatch")
	}
	if !MustParse("1000000000").IsEven() || MustParse("1000000001").IsEven() {
		t.Error("IsEven mismatch")
	}
}

func TestTextMarshalling(t *testing.T) {
	t.Parallel()
	type payload struct {
		Value Int `json:"value"`
	}
	data, err := json.Marshal(payload{Value: MustParse("1000000000000000001")})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `{"value":"1000000000000000001"}` {
		t.Errorf("Marshal = %s", data)
	}

	var back payload
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if back.Value.String() != "1000000000000000001" {
		t.Errorf("Unmarshal = %s", back.Value)
	}
	if err := json.Unmarshal([]byte(`{"value":"12x"}`), &back); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("Unmarshal of malformed value error = %v, want ErrInvalidInput", err)
	}
}
