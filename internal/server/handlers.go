package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	apperrors "github.com/agbru/modcalc/internal/errors"
	"github.com/agbru/modcalc/internal/logging"
	"github.com/agbru/modcalc/internal/service"
)

// handleHealth responds to health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleOperations returns the catalogue of registered operations with
// their operands and methods.
func (s *Server) handleOperations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	names := s.evaluator.List()
	ops := make([]OperationInfo, 0, len(names))
	for _, name := range names {
		op, err := s.evaluator.Lookup(name)
		if err != nil {
			continue
		}
		ops = append(ops, OperationInfo{
			Name:    op.Name,
			Summary: op.Summary,
			Params:  op.Params,
			Methods: op.MethodNames(),
		})
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]any{"operations": ops})
}

// handleEvaluate parses the query parameters 'op', 'method' (or its alias
// 'policy'), 'a', 'b' and 'm', evaluates the operation and returns the
// result in JSON format.
//
// Request errors (unknown operation, missing or malformed operands, digit
// limit) are answered with 400. Failures of the evaluation itself are
// answered with 200 and the error field set.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := parseEvaluateParams(r)
	if err != nil {
		var parseErr EvaluateParseError
		if errors.As(err, &parseErr) {
			s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.Request)
	defer cancel()

	start := time.Now()
	result, err := s.service.Evaluate(ctx, req)
	duration := time.Since(start)

	if err != nil && !isEvaluationFailure(err) {
		if errors.Is(err, service.ErrMaxDigitsExceeded) {
			s.logger.Debug("operand rejected", logging.String("op", req.Op), logging.Int("max_digits", s.securityConfig.MaxDigits))
		}
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := Response{Op: req.Op, Method: req.Method, Duration: duration.String()}
	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Result = &result
	}
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// isEvaluationFailure reports whether err was raised while evaluating, as
// opposed to while validating the request.
func isEvaluationFailure(err error) bool {
	var calcErr apperrors.CalculationError
	return errors.As(err, &calcErr) || apperrors.IsContextError(err)
}

// parseEvaluateParams extracts the evaluation request from the query string.
//
// Returns:
//   - service.Request: The request; operands are validated by the service.
//   - error: An EvaluateParseError if 'op' is missing.
func parseEvaluateParams(r *http.Request) (service.Request, error) {
	q := r.URL.Query()
	op := q.Get("op")
	if op == "" {
		return service.Request{}, EvaluateParseError{
			Message:    "Missing 'op' parameter",
			StatusCode: http.StatusBadRequest,
		}
	}
	method := q.Get("method")
	if method == "" {
		method = q.Get("policy")
	}
	return service.Request{
		Op:     op,
		Method: method,
		A:      q.Get("a"),
		B:      q.Get("b"),
		M:      q.Get("m"),
	}, nil
}

// writeJSONResponse writes data as JSON with the correct content type.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("error encoding JSON response", err)
	}
}

// writeErrorResponse writes a standardized error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
