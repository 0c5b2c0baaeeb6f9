// Package oaserrors provides structured error types for oasvet.
//
// Import path: github.com/erraggy/oasvet/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors.
//
// # Error Types
//
//   - [ParseError]: the input tree cannot be modeled as an OpenAPI document
//   - [ReferenceError]: $ref resolution failures (malformed, unresolved, cyclic)
//   - [DiscriminatorError]: a discriminator value that selects no schema
//   - [ValidationError]: a validation run that ended in the Failed state
//   - [ResourceLimitError]: resource exhaustion (external document count)
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
//   - [ErrParse]: matches any [ParseError]
//   - [ErrReference]: matches any [ReferenceError]
//   - [ErrMalformedPointer], [ErrUnresolvedReference], [ErrCyclicReference]:
//     match a [ReferenceError] of the corresponding Kind
//   - [ErrUnknownDiscriminatorValue]: matches any [DiscriminatorError]
//   - [ErrValidation]: matches any [ValidationError]
//   - [ErrResourceLimit]: matches any [ResourceLimitError]
//   - [ErrConfig]: matches any [ConfigError]
//
// # Usage
//
//	target, err := r.Resolve("#/components/schemas/Pet", from, model.KindSchema)
//	if errors.Is(err, oaserrors.ErrCyclicReference) {
//	    // the pointer aliases itself through other references
//	}
//
//	var refErr *oaserrors.ReferenceError
//	if errors.As(err, &refErr) {
//	    fmt.Printf("failed to resolve %s\n", refErr.Ref)
//	}
package oaserrors
