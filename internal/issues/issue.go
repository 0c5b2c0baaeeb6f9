// Package issues provides the diagnostic type shared by the resolver,
// discriminator, and validator packages.
package issues

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/erraggy/oasvet/internal/severity"
)

// Kind classifies a diagnostic.
type Kind string

// Diagnostic kinds.
const (
	KindMalformedPointer               Kind = "MalformedPointer"
	KindUnresolvedReference            Kind = "UnresolvedReference"
	KindCyclicReferenceRejected        Kind = "CyclicReferenceRejected"
	KindMutualExclusivityViolation     Kind = "MutualExclusivityViolation"
	KindMissingRequiredField           Kind = "MissingRequiredField"
	KindUndeclaredPathParameter        Kind = "UndeclaredPathParameter"
	KindDuplicateParameter             Kind = "DuplicateParameter"
	KindUnknownDiscriminatorValue      Kind = "UnknownDiscriminatorValue"
	KindInlineSchemaUnderDiscriminator Kind = "InlineSchemaUnderDiscriminator"
	KindInvalidResponseCodeKey         Kind = "InvalidResponseCodeKey"
	KindDanglingSecurityScheme         Kind = "DanglingSecurityScheme"
)

// Issue represents a single problem found in a document.
type Issue struct {
	// Location is the ordered sequence of path segments from the document root
	// (e.g., ["paths", "/pets/{id}", "get"]).
	Location []string `json:"location" yaml:"location"`
	// Kind classifies the issue.
	Kind Kind `json:"kind" yaml:"kind"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity" yaml:"severity"`
	// Message is a human-readable description of the issue
	Message string `json:"message" yaml:"message"`
	// Field is the specific field name that has the issue (optional)
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	// Value is the problematic value (optional)
	Value any `json:"value,omitempty" yaml:"value,omitempty"`
	// SpecRef is the URL to the relevant section of the OAS specification (optional)
	SpecRef string `json:"specRef,omitempty" yaml:"specRef,omitempty"`
}

// Path returns the location rendered as a dotted path
// (e.g., "paths./pets/{id}.get").
func (i Issue) Path() string {
	return FormatPath(i.Location...)
}

// String returns a formatted string representation of the issue.
// Uses "✗" for errors and "⚠" for warnings.
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	default:
		symbol = "?"
	}

	path := i.Path()
	if path == "" {
		path = "(root)"
	}
	result := fmt.Sprintf("%s %s [%s]: %s", symbol, path, i.Kind, i.Message)
	if i.SpecRef != "" {
		result += fmt.Sprintf("\n    Spec: %s", i.SpecRef)
	}
	return result
}

// Compare orders issues by location path (segment by segment), then
// severity, then kind. Message is the final tie-break so the order is total.
func Compare(a, b Issue) int {
	if c := slices.Compare(a.Location, b.Location); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Severity, b.Severity); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	return cmp.Compare(a.Message, b.Message)
}

// Sort sorts issues in place into their reporting order.
func Sort(list []Issue) {
	slices.SortStableFunc(list, Compare)
}
