package errors

import (
	stderrors "errors"
	"fmt"
)

// InternalError reports a violated invariant of the AST, CFG or solver, such
// as a statement ID without a statement. It aborts the current analysis run
// and is never turned into a warning.
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Message
}

func (e *InternalError) Unwrap() error { return e.Err }

// ExecutionError reports a user-facing failure: a missing file, an invalid
// configuration or an unparsable source.
type ExecutionError struct {
	Code    string
	Message string
	Err     error
}

func (e *ExecutionError) Error() string {
	return e.Message
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Internalf creates an InternalError. An error argument matched by %w is
// kept as the cause; its text is already part of the message.
func Internalf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	return &InternalError{Message: err.Error(), Err: stderrors.Unwrap(err)}
}

// Executionf creates an ExecutionError with the given diagnostic code.
func Executionf(code string, format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	return &ExecutionError{Code: code, Message: err.Error(), Err: stderrors.Unwrap(err)}
}

// IsInternal reports whether err wraps an InternalError.
func IsInternal(err error) bool {
	var ie *InternalError
	return stderrors.As(err, &ie)
}

// IsExecution reports whether err wraps an ExecutionError.
func IsExecution(err error) bool {
	var ee *ExecutionError
	return stderrors.As(err, &ee)
}
