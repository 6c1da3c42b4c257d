// Package errors provides structured error types and exit codes for the
// tinytest command line.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Failed tests, errored tests, or a failed command
	ExitConfigError      = 2 // Invalid configuration, arguments or input document
	ExitEnvironmentError = 3 // Unreadable file, unavailable database, etc.
)

// ErrorKind categorizes errors.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindValidation
	KindEnvironment
)

func (k ErrorKind) String() string {
	switch k {
	case KindRuntime:
		return "runtime"
	case KindConfig:
		return "config"
	case KindValidation:
		return "validation"
	case KindEnvironment:
		return "environment"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// TinytestError is the base error type of the CLI.
type TinytestError struct {
	Kind    ErrorKind
	Message string
	Cause   error // Underlying error
}

func (e *TinytestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TinytestError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *TinytestError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *TinytestError {
	return &TinytestError{Kind: KindRuntime, Message: message}
}

// Configf creates a configuration or usage error with formatting.
func Configf(format string, args ...interface{}) *TinytestError {
	return &TinytestError{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

// Validation creates an error for a document that fails validation.
func Validation(message string, cause error) *TinytestError {
	return &TinytestError{Kind: KindValidation, Message: message, Cause: cause}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *TinytestError {
	return &TinytestError{Kind: KindRuntime, Message: message, Cause: err}
}

// WrapKind wraps an error and assigns it a kind.
func WrapKind(kind ErrorKind, err error, message string) *TinytestError {
	return &TinytestError{Kind: kind, Message: message, Cause: err}
}

// GetExitCode returns the exit code for an error. Wrapped TinytestErrors are
// found through errors.As.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var te *TinytestError
	if errors.As(err, &te) {
		return te.ExitCode()
	}
	return ExitRuntimeError
}

// IsKind reports whether err wraps a TinytestError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var te *TinytestError
	return errors.As(err, &te) && te.Kind == kind
}
