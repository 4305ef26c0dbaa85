package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeInvalidStageWindow indicates a stage whose relative end does not
	// come after its relative start.
	ErrCodeInvalidStageWindow ErrorCode = "INVALID_STAGE_WINDOW"
	// ErrCodeUnknownResourceType indicates a stage requirement referencing a
	// resource type absent from the inventory.
	ErrCodeUnknownResourceType ErrorCode = "UNKNOWN_RESOURCE_TYPE"
	// ErrCodeStructuralInfeasibility indicates a single instance whose own
	// requirement exceeds inventory capacity even in isolation. No schedule
	// can resolve it.
	ErrCodeStructuralInfeasibility ErrorCode = "STRUCTURAL_INFEASIBILITY"
	// ErrCodeEmptyRequest indicates a production request with zero instances.
	ErrCodeEmptyRequest ErrorCode = "EMPTY_REQUEST"
	// ErrCodeBudgetExhausted indicates the optimization budget or deadline
	// expired. This is a partial-result signal, not a failure: the best
	// feasible schedule found so far is still returned.
	ErrCodeBudgetExhausted ErrorCode = "BUDGET_EXHAUSTED"
	// ErrCodeInvalidRequest indicates malformed or invalid input.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// CodeOf returns the ErrorCode carried by err, or ErrCodeInternal when err is
// not a StructuredError.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err is a StructuredError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var se *StructuredError
	return stderrors.As(err, &se) && se.Code == code
}
