package errx

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. Each kind maps to one failure mode of
// the agent run: routing, retrieval, generation, tool invocation, or input
// validation.
type Kind string

const (
	KindClassification Kind = "classification_failure"
	KindRetrieval      Kind = "retrieval_unavailable"
	KindGeneration     Kind = "generation_failure"
	KindTool           Kind = "tool_invocation_failure"
	KindMalformedInput Kind = "malformed_input"
	KindInternal       Kind = "internal"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
)

// AppError wraps an underlying error with a failure kind and a safe message.
// Fatal errors short-circuit the run to the error-terminal path; non-fatal
// errors are recorded as warnings and the run continues.
type AppError struct {
	Err     error
	Kind    Kind
	Fatal   bool
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}

// New creates a new AppError with the provided information.
func New(err error, kind Kind, fatal bool, message string) *AppError {
	return &AppError{
		Err:     err,
		Kind:    kind,
		Fatal:   fatal,
		Message: message,
	}
}

// Classification wraps a router failure. Non-fatal: the run falls back to the
// generic route and continues.
func Classification(err error) *AppError {
	return New(err, KindClassification, false, "message classification failed")
}

// Retrieval wraps a vector index or embedding failure. Non-fatal: the
// knowledge agent proceeds with empty context.
func Retrieval(err error) *AppError {
	return New(err, KindRetrieval, false, "knowledge retrieval unavailable")
}

// Generation wraps a generation-call failure. Fatal for the current run.
func Generation(err error) *AppError {
	return New(err, KindGeneration, true, "response generation failed")
}

// Tool wraps a tool-invocation failure. Non-fatal: the support agent surfaces
// it as an explanatory response.
func Tool(name string, err error) *AppError {
	return New(err, KindTool, false, fmt.Sprintf("tool %q invocation failed", name))
}

// Malformed rejects invalid input before the router runs.
func Malformed(reason string) *AppError {
	return New(nil, KindMalformedInput, true, reason)
}
