// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrSymbolNotFound  = errors.New("symbol not found")
	ErrLLMUnavailable  = errors.New("llm backend not configured")
	ErrEmptyCompletion = errors.New("empty completion from llm")
	ErrConfigInvalid   = errors.New("invalid configuration")
	ErrStoreClosed     = errors.New("store is closed")
)

// LLMError represents a failure of an outbound language-model call.
type LLMError struct {
	Task      string
	Operation string
	Err       error
}

func (e *LLMError) Error() string {
	return fmt.Sprintf("llm error [%s] %s: %v", e.Task, e.Operation, e.Err)
}

func (e *LLMError) Unwrap() error {
	return e.Err
}

// NewLLMError creates a new LLMError.
func NewLLMError(task, operation string, err error) *LLMError {
	return &LLMError{
		Task:      task,
		Operation: operation,
		Err:       err,
	}
}

// ParseError represents a failure to interpret model output for a task.
type ParseError struct {
	Task    string
	Raw     string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s]: %s", e.Task, e.Message)
}

// NewParseError creates a new ParseError. Raw carries the offending
// model output for logging.
func NewParseError(task, raw, message string) *ParseError {
	return &ParseError{
		Task:    task,
		Raw:     raw,
		Message: message,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
