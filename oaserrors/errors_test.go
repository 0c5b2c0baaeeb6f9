package oaserrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ParseError{
			Path:    "api.yaml",
			Message: "root is not an object",
			Cause:   errors.New("underlying error"),
		}
		assert.Equal(t, "parse error in api.yaml: root is not an object: underlying error", err.Error())
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		assert.Equal(t, "parse error", (&ParseError{}).Error())
	})

	t.Run("Is and Unwrap", func(t *testing.T) {
		cause := errors.New("underlying")
		err := fmt.Errorf("wrapped: %w", &ParseError{Cause: cause})
		assert.ErrorIs(t, err, ErrParse)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, ErrReference)
	})
}

func TestReferenceError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ReferenceError
		message  string
		matches  []error
		excludes []error
	}{
		{
			name:     "unresolved",
			err:      &ReferenceError{Ref: "#/components/schemas/Missing", Kind: RefUnresolved},
			message:  "unresolved reference: #/components/schemas/Missing",
			matches:  []error{ErrReference, ErrUnresolvedReference},
			excludes: []error{ErrMalformedPointer, ErrCyclicReference},
		},
		{
			name:     "malformed",
			err:      &ReferenceError{Ref: "#/a~2b", Kind: RefMalformed, Message: "invalid escape"},
			message:  "malformed pointer: #/a~2b: invalid escape",
			matches:  []error{ErrReference, ErrMalformedPointer},
			excludes: []error{ErrUnresolvedReference, ErrCyclicReference},
		},
		{
			name:     "cyclic",
			err:      &ReferenceError{Ref: "#/components/schemas/A", Kind: RefCyclic},
			message:  "cyclic reference: #/components/schemas/A",
			matches:  []error{ErrReference, ErrCyclicReference},
			excludes: []error{ErrUnresolvedReference, ErrMalformedPointer},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			for _, target := range tt.matches {
				assert.ErrorIs(t, tt.err, target)
			}
			for _, target := range tt.excludes {
				assert.NotErrorIs(t, tt.err, target)
			}
		})
	}
}

func TestReferenceErrorAs(t *testing.T) {
	err := fmt.Errorf("resolve: %w", &ReferenceError{Ref: "other.yaml#/Pet", Document: "file:///api/other.yaml"})

	var refErr *ReferenceError
	if assert.ErrorAs(t, err, &refErr) {
		assert.Equal(t, "other.yaml#/Pet", refErr.Ref)
		assert.Equal(t, "file:///api/other.yaml", refErr.Document)
	}
}

func TestDiscriminatorError(t *testing.T) {
	err := &DiscriminatorError{PropertyName: "petType", Value: "cat"}
	assert.Equal(t, `unknown discriminator value "cat" for property "petType"`, err.Error())
	assert.ErrorIs(t, err, ErrUnknownDiscriminatorValue)

	assert.Equal(t, `unknown discriminator value "cat"`, (&DiscriminatorError{Value: "cat"}).Error())
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Message: "unresolved references in strict mode", ErrorCount: 2}
	assert.Equal(t, "validation error: unresolved references in strict mode (2 errors)", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResourceLimitError(t *testing.T) {
	err := &ResourceLimitError{ResourceType: "external_documents", Limit: 10, Actual: 11}
	assert.Equal(t, "resource limit exceeded: external_documents (limit: 10, actual: 11)", err.Error())
	assert.ErrorIs(t, err, ErrResourceLimit)
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "WithMaxErrors", Value: -1, Message: "must not be negative"}
	assert.Equal(t, "configuration error for WithMaxErrors (value: -1): must not be negative", err.Error())
	assert.ErrorIs(t, err, ErrConfig)
}
