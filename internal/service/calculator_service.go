// Package service validates evaluation requests and runs them through the
// engine. It is shared by the CLI and the HTTP server so that both apply the
// same operand limits and options.
package service

//go:generate mockgen -source=calculator_service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/agbru/modcalc/internal/bignum"
	"github.com/agbru/modcalc/internal/config"
	"github.com/agbru/modcalc/internal/engine"
	apperrors "github.com/agbru/modcalc/internal/errors"
)

var (
	// ErrMaxDigitsExceeded is returned when an operand is longer than the
	// configured limit.
	ErrMaxDigitsExceeded = errors.New("maximum operand digits exceeded")
)

// Request is an evaluation request with decimal operands.
type Request struct {
	Op     string
	Method string
	A      string
	B      string
	M      string
}

// operand returns the raw value of the operand named param.
func (r Request) operand(param string) string {
	switch param {
	case engine.ParamA:
		return r.A
	case engine.ParamB:
		return r.B
	case engine.ParamM:
		return r.M
	default:
		return ""
	}
}

// Service defines the interface for evaluation services.
type Service interface {
	// Evaluate validates req and evaluates it.
	//
	// Parameters:
	//   - ctx: The context for cancellation.
	//   - req: The operation, method and operands.
	//
	// Returns:
	//   - engine.Result: The result.
	//   - error: An error if validation or evaluation fails.
	Evaluate(ctx context.Context, req Request) (engine.Result, error)
}

// CalculatorService handles the core logic shared by the CLI and the
// server. It implements the Service interface.
type CalculatorService struct {
	evaluator engine.Evaluator
	config    config.AppConfig
	maxDigits int
}

// Ensure CalculatorService implements Service interface.
var _ Service = (*CalculatorService)(nil)

// NewCalculatorService creates a new instance of CalculatorService.
//
// Parameters:
//   - evaluator: The registry to evaluate operations with.
//   - cfg: The application configuration.
//   - maxDigits: The maximum decimal length of an operand (0 for no limit).
func NewCalculatorService(evaluator engine.Evaluator, cfg config.AppConfig, maxDigits int) *CalculatorService {
	return &CalculatorService{
		evaluator: evaluator,
		config:    cfg,
		maxDigits: maxDigits,
	}
}

// Parse validates the operands required by req.Op and converts them.
//
// Returns:
//   - engine.Operands: The parsed operands.
//   - error: ErrUnknownOperation, a ValidationError for a missing operand,
//     ErrMaxDigitsExceeded, or ErrInvalidInput for a malformed operand.
func (s *CalculatorService) Parse(req Request) (engine.Operands, error) {
	op, err := s.evaluator.Lookup(req.Op)
	if err != nil {
		return engine.Operands{}, err
	}

	var in engine.Operands
	for _, param := range op.Params {
		raw := req.operand(param)
		if raw == "" {
			return engine.Operands{}, apperrors.NewValidationError(param,
				fmt.Sprintf("operation %q requires operand %q", op.Name, param), nil)
		}
		if s.maxDigits > 0 && len(raw) > s.maxDigits {
			return engine.Operands{}, fmt.Errorf("%w: operand %q has %d digits (limit %d)",
				ErrMaxDigitsExceeded, param, len(raw), s.maxDigits)
		}
		v, err := bignum.Parse(raw)
		if err != nil {
			return engine.Operands{}, apperrors.WrapError(err, "operand %q", param)
		}
		switch param {
		case engine.ParamA:
			in.A = v
		case engine.ParamB:
			in.B = v
		case engine.ParamM:
			in.M = v
		}
	}
	return in, nil
}

// Evaluate parses the operands of req and evaluates the operation with the
// configured options.
func (s *CalculatorService) Evaluate(ctx context.Context, req Request) (engine.Result, error) {
	in, err := s.Parse(req)
	if err != nil {
		return engine.Result{}, err
	}
	return s.evaluator.Evaluate(ctx, req.Op, req.Method, in, s.config.ToEngineOptions())
}
