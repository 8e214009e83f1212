package errors

import (
	"errors"
	"fmt"
)

// Code identifies a category of failure for logging and tests.
type Code string

const (
	// CodeLoadFailed marks a per-file load failure. These are recoverable:
	// the batch skips the file and continues.
	CodeLoadFailed Code = "LOAD_FAILED"

	// CodeWriteFailed marks a writer-level failure, surfaced to the caller
	// unmodified.
	CodeWriteFailed Code = "WRITE_FAILED"

	// CodeNamingExhausted marks the pathological case where no free output
	// name could be found.
	CodeNamingExhausted Code = "NAMING_EXHAUSTED"

	// CodeInvalidConfig marks a configuration validation failure.
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// Error is a structured error carrying a code, the operation that failed and
// the file path involved (when applicable).
type Error struct {
	Code Code
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Path)
	default:
		return e.Op
	}
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// NewLoadError creates a recoverable per-file load error
func NewLoadError(op, path string, err error) *Error {
	return &Error{Code: CodeLoadFailed, Op: op, Path: path, Err: err}
}

// NewWriteError creates a writer-level error
func NewWriteError(op, path string, err error) *Error {
	return &Error{Code: CodeWriteFailed, Op: op, Path: path, Err: err}
}

// NewNamingError creates an output-name exhaustion error
func NewNamingError(path string) *Error {
	return &Error{Code: CodeNamingExhausted, Op: "resolve output name", Path: path}
}

// NewConfigError creates a configuration validation error
func NewConfigError(err error) *Error {
	return &Error{Code: CodeInvalidConfig, Op: "validate config", Err: err}
}

// CodeOf extracts the Code from an error chain, or "" when the chain contains
// no *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsRecoverable reports whether the batch should skip and continue after err.
// Only per-file load failures are recoverable; structural failures abort.
func IsRecoverable(err error) bool {
	return CodeOf(err) == CodeLoadFailed
}
