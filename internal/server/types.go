package server

import "github.com/agbru/modcalc/internal/engine"

// Response represents the standardized JSON response for an evaluation request.
type Response struct {
	// Op is the requested operation.
	Op string `json:"op"`
	// Method is the requested method; empty means the operation's default.
	Method string `json:"method,omitempty"`
	// Result is the outcome. It is omitted if an error occurred.
	Result *engine.Result `json:"result,omitempty"`
	// Duration is the formatted execution time string.
	Duration string `json:"duration"`
	// Error contains the error message if the evaluation failed.
	Error string `json:"error,omitempty"`
}

// OperationInfo describes one operation of the catalogue.
type OperationInfo struct {
	Name    string   `json:"name"`
	Summary string   `json:"summary"`
	Params  []string `json:"params"`
	Methods []string `json:"methods"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// EvaluateParseError represents a parameter parsing error with HTTP status.
type EvaluateParseError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e EvaluateParseError) Error() string {
	return e.Message
}
