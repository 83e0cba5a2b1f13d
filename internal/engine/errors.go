package engine

import (
	"errors"
	"fmt"
)

// PlanError represents an expression that cannot be planned.
//
// Plan errors include:
//   - Unknown column, function or operator
//   - Unsupported cast between two types
//   - Comparison between a union value and a non-union value
//   - Boolean operators over non-boolean operands
//
// Argument-shape errors of the JSON functions are reported as the
// function.PlanError they come from, wrapped with the call site.
type PlanError struct {
	// Code identifies the error category.
	Code PlanErrorCode

	// Message is a human-readable description.
	Message string

	// Expr is the rendered expression that failed.
	Expr string
}

// PlanErrorCode categorizes plan errors.
type PlanErrorCode string

const (
	ErrCodeUnknownColumn     PlanErrorCode = "UNKNOWN_COLUMN"
	ErrCodeUnknownFunction   PlanErrorCode = "UNKNOWN_FUNCTION"
	ErrCodeUnknownOperator   PlanErrorCode = "UNKNOWN_OPERATOR"
	ErrCodeUnsupportedCast   PlanErrorCode = "UNSUPPORTED_CAST"
	ErrCodeInvalidComparison PlanErrorCode = "INVALID_COMPARISON"
	ErrCodeInvalidOperand    PlanErrorCode = "INVALID_OPERAND"
)

// Error implements the error interface.
func (e *PlanError) Error() string {
	if e.Expr != "" {
		return fmt.Sprintf("%s: %s (expr=%s)", e.Code, e.Message, e.Expr)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsPlanError reports whether err is a PlanError with the given code.
// Uses errors.As to handle wrapped errors.
func IsPlanError(err error, code PlanErrorCode) bool {
	var pe *PlanError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}
