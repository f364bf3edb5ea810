package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/modcalc/internal/bignum"
	"github.com/agbru/modcalc/internal/config"
	"github.com/agbru/modcalc/internal/engine"
	"github.com/agbru/modcalc/internal/engine/mocks"
	apperrors "github.com/agbru/modcalc/internal/errors"
)

func TestNewCalculatorService(t *testing.T) {
	t.Parallel()
	svc := NewCalculatorService(engine.NewDefaultRegistry(), config.AppConfig{}, 100)
	require.NotNil(t, svc)
	assert.NotNil(t, svc.evaluator)
	assert.Equal(t, 100, svc.maxDigits)
}

func TestEvaluate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		req       Request
		maxDigits int
		want      string
		wantErr   error
	}{
		{
			name: "Pow",
			req:  Request{Op: "pow", A: "4", B: "13", M: "497"},
			want: "result=445",
		},
		{
			name: "ExplicitMethod",
			req:  Request{Op: "inverse", Method: "fermat", A: "2", M: "1000000007"},
			want: "inverse=500000004",
		},
		{
			name: "UnaryIgnoresExtraOperands",
			req:  Request{Op: "isqrt", A: "99", B: "garbage"},
			want: "root=9",
		},
		{
			name:      "NoLimit",
			req:       Request{Op: "add", A: strings.Repeat("9", 50), B: "1"},
			maxDigits: 0,
			want:      "sum=1" + strings.Repeat("0", 50),
		},
		{
			name:    "UnknownOperation",
			req:     Request{Op: "cube", A: "2"},
			wantErr: apperrors.ErrUnknownOperation,
		},
		{
			name:      "TooManyDigits",
			req:       Request{Op: "add", A: "123456", B: "1"},
			maxDigits: 5,
			wantErr:   ErrMaxDigitsExceeded,
		},
		{
			name:    "MalformedOperand",
			req:     Request{Op: "add", A: "12x", B: "1"},
			wantErr: apperrors.ErrInvalidInput,
		},
		{
			name:    "ArithmeticFailure",
			req:     Request{Op: "divmod", A: "1", B: "0"},
			wantErr: apperrors.ErrDivisionByZero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewCalculatorService(engine.NewDefaultRegistry(), config.AppConfig{}, tt.maxDigits)
			res, err := svc.Evaluate(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.String())
		})
	}
}

func TestEvaluateMissingOperand(t *testing.T) {
	t.Parallel()
	svc := NewCalculatorService(engine.NewDefaultRegistry(), config.AppConfig{}, 0)
	_, err := svc.Evaluate(context.Background(), Request{Op: "pow", A: "2", B: "3"})

	var verr apperrors.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	assert.Equal(t, "m", verr.Field)
}

func TestEvaluatePassesConfiguredOptions(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	eval := mocks.NewMockEvaluator(ctrl)
	inverse, err := engine.GlobalRegistry().Lookup("inverse")
	require.NoError(t, err)

	eval.EXPECT().Lookup("inverse").Return(inverse, nil)
	eval.EXPECT().
		Evaluate(gomock.Any(), "inverse", "fermat", gomock.Any(), engine.Options{
			CheckPrime:     true,
			IterationBound: bignum.BoundOf(bignum.FromUint64(5000)),
		}).
		Return(engine.Result{}, apperrors.NewArithmeticError("inverse", apperrors.ErrNotPrime, ""))

	svc := NewCalculatorService(eval, config.AppConfig{CheckPrime: true, MaxIterations: 5000}, 0)
	_, err = svc.Evaluate(context.Background(), Request{Op: "inverse", Method: "fermat", A: "2", M: "15"})
	assert.ErrorIs(t, err, apperrors.ErrNotPrime)
}

func TestEvaluateRejectsBeforeEvaluating(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	eval := mocks.NewMockEvaluator(ctrl)
	gcd, err := engine.GlobalRegistry().Lookup("gcd")
	require.NoError(t, err)

	// Evaluate has no expectation: a malformed operand must stop at parsing.
	eval.EXPECT().Lookup("gcd").Return(gcd, nil)

	svc := NewCalculatorService(eval, config.AppConfig{}, 0)
	_, err = svc.Evaluate(context.Background(), Request{Op: "gcd", A: "12", B: "1x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), `operand "b"`)
}

func TestEvaluateCanceled(t *testing.T) {
	t.Parallel()
	svc := NewCalculatorService(engine.NewDefaultRegistry(), config.AppConfig{}, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Evaluate(ctx, Request{Op: "add", A: "1", B: "2"})
	assert.ErrorIs(t, err, context.Canceled)
}
