// Package apperrors defines the error taxonomy of modcalc: the typed
// arithmetic failures raised by the numeric core, and the structured
// application errors (configuration, calculation, server, validation) used by
// the outer layers.
//
// Error Wrapping Guidelines:
// Arithmetic failures are reported as *ArithmeticError values whose Kind is
// one of the sentinel errors below, so callers match them with errors.Is.
// Everything else follows Go's wrapping conventions using fmt.Errorf with %w.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates alternative methods disagreed on a result.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ─────────────────────────────────────────────────────────────────────────────
// Arithmetic Error Kinds
// ─────────────────────────────────────────────────────────────────────────────

var (
	// ErrInvalidInput reports a malformed decimal string or an argument
	// outside the domain of an operation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDivisionByZero reports a zero divisor or modulus.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUnderflow reports a subtraction whose minuend is smaller than its
	// subtrahend.
	ErrUnderflow = errors.New("subtraction underflow")
	// ErrNotCoprime reports a modular inverse requested for a pair whose
	// gcd is not 1.
	ErrNotCoprime = errors.New("operands are not coprime")
	// ErrNotPrime reports a Fermat inverse requested against a composite
	// modulus while primality checking is enabled.
	ErrNotPrime = errors.New("modulus is not prime")
	// ErrPreconditionViolated reports a Montgomery multiplication operand
	// that is not reduced below the modulus.
	ErrPreconditionViolated = errors.New("precondition violated")
	// ErrNoDiscreteLog reports an exhausted baby-step/giant-step search.
	ErrNoDiscreteLog = errors.New("no discrete logarithm")
	// ErrIterationLimit reports a search that exhausted its configured
	// iteration bound before finding an answer.
	ErrIterationLimit = errors.New("iteration limit exceeded")
	// ErrUnknownOperation reports a request for an operation or method that
	// is not registered.
	ErrUnknownOperation = errors.New("unknown operation")
)

// ArithmeticError is returned by every numeric operation that rejects its
// input. Kind is one of the sentinel errors of this package.
type ArithmeticError struct {
	// Op is the name of the operation that failed (e.g., "divmod").
	Op string
	// Kind classifies the failure.
	Kind error
	// Detail is an optional human-readable explanation.
	Detail string
}

// Error returns "op: kind" or "op: kind: detail".
func (e *ArithmeticError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Detail)
}

// Unwrap returns the error kind so that errors.Is matches the sentinels.
func (e *ArithmeticError) Unwrap() error { return e.Kind }

// NewArithmeticError creates an ArithmeticError for op with the given kind
// and an optional formatted detail.
//
// Parameters:
//   - op: The failing operation.
//   - kind: One of the sentinel errors (ErrInvalidInput, ...).
//   - format: A format string for the detail (may be empty).
//   - a: Arguments to be formatted into the detail.
//
// Returns:
//   - error: A new *ArithmeticError.
func NewArithmeticError(op string, kind error, format string, a ...any) error {
	detail := format
	if len(a) > 0 {
		detail = fmt.Sprintf(format, a...)
	}
	return &ArithmeticError{Op: op, Kind: kind, Detail: detail}
}

// IsArithmeticError reports whether err carries an arithmetic failure.
func IsArithmeticError(err error) bool {
	var ae *ArithmeticError
	return errors.As(err, &ae)
}

// ─────────────────────────────────────────────────────────────────────────────
// Application Errors
// ─────────────────────────────────────────────────────────────────────────────

// ConfigError represents a user configuration error, such as invalid flags or
// values.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError attaches the name of the evaluated operation to the
// underlying failure.
type CalculationError struct {
	// Operation is the qualified name of the operation (e.g., "pow/montgomery").
	Operation string
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the operation name followed by the cause.
func (e CalculationError) Error() string {
	if e.Operation == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e CalculationError) Unwrap() error { return e.Cause }

// ServerError represents errors that occur in the HTTP server component.
type ServerError struct {
	// Message is a descriptive message about the server error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns the error message for a ServerError.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ValidationError represents an error due to invalid request or argument
// validation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message describes why validation failed.
	Message string
	// Value is the invalid value (optional, may be nil).
	Value any
}

// Error returns the error message for a ValidationError.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}
