// Package errors provides structured error types for flowviz.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - Stage tags telling which render pass failed
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Missing input files
//   - PRECONDITION_*: Operations invoked out of order
//   - INTERNAL_*: Unexpected internal errors
//
// # Stages
//
// Rendering a flow diagram runs ingest, layout, paint and serialize in that
// order. Errors raised by one of them carry the [Stage] so callers can report
// where a render stopped:
//
//	err := errors.AtStage(errors.StagePaint, errors.ErrCodePrecondition, "graph has no layout")
//	if errors.StageOf(err) == errors.StagePaint {
//	    // ...
//	}
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRecord, "line %d: bad depth %q", n, s)
//	if errors.Is(err, errors.ErrCodeInvalidRecord) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "encode png")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidRecord    Code = "INVALID_RECORD"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidAlignment Code = "INVALID_ALIGNMENT"
	ErrCodeInvalidColor     Code = "INVALID_COLOR"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Ordering errors
	ErrCodePrecondition Code = "PRECONDITION_FAILED"

	// Missing inputs
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Stage identifies the render pass an error was raised in.
type Stage string

// Render stages, in execution order.
const (
	StageIngest    Stage = "ingest"
	StageLayout    Stage = "layout"
	StagePaint     Stage = "paint"
	StageSerialize Stage = "serialize"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Stage   Stage  // Render stage (optional)
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	prefix := string(e.Code)
	if e.Stage != "" {
		prefix = fmt.Sprintf("%s [%s]", e.Code, e.Stage)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// AtStage creates a new Error tagged with the stage that raised it.
func AtStage(stage Stage, code Code, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Stage = stage
	return e
}

// WithStage returns a copy of err tagged with stage. Errors that are not an
// *Error are wrapped with ErrCodeInternal. A stage already present on err is
// kept. WithStage(nil) is nil.
func WithStage(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Stage != "" {
			return err
		}
		tagged := *e
		tagged.Stage = stage
		return &tagged
	}
	return &Error{Code: ErrCodeInternal, Stage: stage, Message: err.Error(), Cause: err}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// StageOf extracts the stage tag from an error, if available.
func StageOf(err error) Stage {
	var e *Error
	if errors.As(err, &e) {
		return e.Stage
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
