package function

import (
	"errors"
	"fmt"
)

// ErrArgumentShape matches every PlanError through errors.Is.
var ErrArgumentShape = errors.New("invalid argument shape")

// PlanErrorCode categorizes bind-time errors.
type PlanErrorCode string

const (
	// ErrCodeArity indicates the wrong number of arguments.
	ErrCodeArity PlanErrorCode = "ARITY"

	// ErrCodeArgumentType indicates an argument of an unsupported type.
	ErrCodeArgumentType PlanErrorCode = "ARGUMENT_TYPE"

	// ErrCodeInvalidPath indicates a JSONPath literal that cannot be used.
	ErrCodeInvalidPath PlanErrorCode = "INVALID_PATH"
)

// PlanError reports a call whose arguments cannot be bound.
type PlanError struct {
	Code     PlanErrorCode
	Function string
	// Position is the 1-based argument position, or 0 for the whole call.
	Position int
	Message  string
}

// Error implements the error interface.
func (e *PlanError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("%s: %s: argument %d: %s", e.Code, e.Function, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Function, e.Message)
}

// Is makes errors.Is(err, ErrArgumentShape) hold for any PlanError.
func (e *PlanError) Is(target error) bool {
	return target == ErrArgumentShape
}

func planErrorf(code PlanErrorCode, fn string, pos int, format string, args ...any) *PlanError {
	return &PlanError{Code: code, Function: fn, Position: pos, Message: fmt.Sprintf(format, args...)}
}
