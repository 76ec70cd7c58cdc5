package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NotFoundError reports a missing sprite sheet or cache artifact.
type NotFoundError struct {
	Resource string
	Path     string
	Err      error
}

// NewNotFoundError constructs a NotFoundError for the given resource kind ("sheet", "artifact").
func NewNotFoundError(resource, path string, err error) error {
	return &NotFoundError{Resource: resource, Path: path, Err: err}
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	if e.Resource != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.Path)
	}
	return fmt.Sprintf("not found: %s", e.Path)
}

// Unwrap exposes the underlying error.
func (e *NotFoundError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// OutOfBoundsError reports an icon index that falls outside a sheet's grid.
type OutOfBoundsError struct {
	Sheet   string
	Index   int
	Columns int
	Rows    int
}

// NewOutOfBoundsError constructs an OutOfBoundsError.
func NewOutOfBoundsError(sheet string, index, columns, rows int) error {
	return &OutOfBoundsError{Sheet: sheet, Index: index, Columns: columns, Rows: rows}
}

func (e *OutOfBoundsError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("icon %d out of bounds for sprite sheet %s (%dx%d grid)", e.Index, e.Sheet, e.Columns, e.Rows)
}

// DecodeError reports image bytes that could not be decoded.
type DecodeError struct {
	Path string
	Err  error
}

// NewDecodeError constructs a DecodeError.
func NewDecodeError(path string, err error) error {
	return &DecodeError{Path: path, Err: err}
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("decode error: %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying error.
func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CompileError reports an expression that failed to compile.
type CompileError struct {
	Expr string
	Err  error
}

// NewCompileError constructs a CompileError.
func NewCompileError(expr string, err error) error {
	return &CompileError{Expr: expr, Err: err}
}

func (e *CompileError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("compile error in %q: %v", e.Expr, e.Err)
}

// Unwrap exposes the underlying error.
func (e *CompileError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// EvalError reports an expression that failed while evaluating.
type EvalError struct {
	Expr string
	Err  error
}

// NewEvalError constructs an EvalError.
func NewEvalError(expr string, err error) error {
	return &EvalError{Expr: expr, Err: err}
}

func (e *EvalError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("eval error in %q: %v", e.Expr, e.Err)
}

// Unwrap exposes the underlying error.
func (e *EvalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
