// Package wikierr defines the stable error taxonomy used across the build
// engine, so that callers can distinguish recoverable per-page failures from
// fatal, build-aborting ones without string-matching messages.
package wikierr

import "fmt"

// Code is a stable identifier for a failure mode.
type Code string

const (
	// ParseError: per-file, recoverable. The file contributes no symbols or
	// references but is still eligible for a minimal file page.
	ParseError Code = "PARSE_ERROR"
	// ResolutionAmbiguity is informational, not an error value; kept here so
	// the taxonomy and line up one-to-one in code review.
	ResolutionAmbiguity Code = "RESOLUTION_AMBIGUITY"
	// GeneratorTransportError: per-page, recoverable. The previous build's
	// page is retained if available, otherwise the page is omitted.
	GeneratorTransportError Code = "GENERATOR_TRANSPORT_ERROR"
	// YamlParseFailure: per-page, recoverable after one retry.
	YamlParseFailure Code = "YAML_PARSE_FAILURE"
	// DiagramInvalid: per-diagram, recoverable. The diagram section is
	// dropped silently from its page.
	DiagramInvalid Code = "DIAGRAM_INVALID"
	// InvalidLayerValue: per-page, recoverable. The layer is coerced to
	// "utility" and a warning is logged.
	InvalidLayerValue Code = "INVALID_LAYER_VALUE"
	// CommitFailure is fatal: the staging directory is cleaned up and the
	// live wiki is left untouched.
	CommitFailure Code = "COMMIT_FAILURE"
	// ConfigError is fatal at startup and never surfaces mid-build.
	ConfigError Code = "CONFIG_ERROR"
)

// fatal holds the codes that must abort a build before commit
var fatal = map[Code]bool{
	CommitFailure: true,
	ConfigError:   true,
}

// Error is the concrete error type carried through the engine. It wraps an
// underlying cause (if any) and attaches the stable Code plus optional
// structured Details for the per-build failure report.
type Error struct {
	Code    Code
	Message string
	Details map[string]interface{}
	cause   error
}

// New constructs an Error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap constructs an Error around an underlying cause, preserving it for
// errors.Unwrap/errors.Is/errors.As.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// WithDetails attaches structured details and returns the same error for
// chaining at the call site.
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	e.Details = details
	return e
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Fatal reports whether this error must abort the current build.
func (e *Error) Fatal() bool {
	return fatal[e.Code]
}

// Recoverable is the negation of Fatal, kept as a named predicate since call
// sites read more naturally asking "can we keep going."
func (e *Error) Recoverable() bool {
	return !e.Fatal()
}
