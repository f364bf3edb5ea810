package bignum

import (
	apperrors "github.com/agbru/modcalc/internal/errors"
)

// Parse converts a decimal string into an Int.
//
// The string must be non-empty and consist only of the ASCII digits 0–9; no
// sign, whitespace or separator is accepted. Leading zeros are allowed and
// stripped. Digits are consumed in groups of CellDigits from the right.
//
// Parameters:
//   - s: The decimal representation to parse.
//
// Returns:
//   - Int: The parsed value.
//   - error: An ArithmeticError of kind ErrInvalidInput if s is malformed.
func Parse(s string) (Int, error) {
	if s == "" {
		return Int{}, apperrors.NewArithmeticError("parse", apperrors.ErrInvalidInput, "empty string")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Int{}, apperrors.NewArithmeticError("parse", apperrors.ErrInvalidInput,
				"invalid character %q at position %d", s[i], i)
		}
	}

	cells := make([]uint32, 0, (len(s)+CellDigits-1)/CellDigits)
	for end := len(s); end > 0; end -= CellDigits {
		start := max(end-CellDigits, 0)
		var v uint32
		for i := start; i < end; i++ {
			v = v*10 + uint32(s[i]-'0')
		}
		cells = append(cells, v)
	}
	return newInt(cells), nil
}

// MustParse is like Parse but panics on malformed input. It is intended for
// constants and tests.
func MustParse(s string) Int {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

// MarshalText implements encoding.TextMarshaler, so JSON encodes an Int as
// its decimal string.
func (x Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (x *Int) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}
