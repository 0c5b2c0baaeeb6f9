package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates the input tree could not be turned into a document model.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a reference resolution failure of any kind.
	ErrReference = errors.New("reference error")

	// ErrMalformedPointer indicates a $ref whose URI or JSON Pointer is syntactically invalid.
	ErrMalformedPointer = errors.New("malformed pointer")

	// ErrUnresolvedReference indicates a $ref whose target does not exist.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrCyclicReference indicates a $ref chain that loops back on itself
	// without passing through any structural content.
	ErrCyclicReference = errors.New("cyclic reference")

	// ErrUnknownDiscriminatorValue indicates a discriminator value that selects no schema.
	ErrUnknownDiscriminatorValue = errors.New("unknown discriminator value")

	// ErrValidation indicates a run that ended in the Failed state.
	ErrValidation = errors.New("validation error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents an input tree that cannot be modeled as an OpenAPI
// document (for example a root that is not an object).
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ReferenceKind classifies a ReferenceError.
type ReferenceKind int

const (
	// RefUnresolved means the pointer is well formed but its target is absent.
	RefUnresolved ReferenceKind = iota
	// RefMalformed means the pointer itself is syntactically invalid.
	RefMalformed
	// RefCyclic means a chain of references loops without reaching content.
	RefCyclic
)

// ReferenceError represents a failure to resolve a $ref.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// Kind classifies the failure
	Kind ReferenceKind
	// Document is the absolute URI of the document the pointer was resolved
	// against (empty for the root document)
	Document string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	var msg string
	switch e.Kind {
	case RefMalformed:
		msg = "malformed pointer"
	case RefCyclic:
		msg = "cyclic reference"
	default:
		msg = "unresolved reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and the sentinel corresponding to Kind.
func (e *ReferenceError) Is(target error) bool {
	switch target {
	case ErrReference:
		return true
	case ErrMalformedPointer:
		return e.Kind == RefMalformed
	case ErrUnresolvedReference:
		return e.Kind == RefUnresolved
	case ErrCyclicReference:
		return e.Kind == RefCyclic
	}
	return false
}

// DiscriminatorError reports a discriminator value that matches neither a
// mapping entry nor a member schema name.
type DiscriminatorError struct {
	// PropertyName is the discriminator property
	PropertyName string
	// Value is the discriminator value that failed to select a schema
	Value string
}

// Error returns a human-readable error message.
func (e *DiscriminatorError) Error() string {
	if e.PropertyName == "" {
		return fmt.Sprintf("unknown discriminator value %q", e.Value)
	}
	return fmt.Sprintf("unknown discriminator value %q for property %q", e.Value, e.PropertyName)
}

// Is reports whether target matches this error type.
func (e *DiscriminatorError) Is(target error) bool {
	return target == ErrUnknownDiscriminatorValue
}

// ValidationError represents a validation run that ended in the Failed state.
type ValidationError struct {
	// Message describes why the run failed
	Message string
	// ErrorCount is the number of error diagnostics collected before failing
	ErrorCount int
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.ErrorCount > 0 {
		msg += fmt.Sprintf(" (%d errors)", e.ErrorCount)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "external_documents", "fetch_depth"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
