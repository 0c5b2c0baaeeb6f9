// Package compose computes the effective form of OpenAPI schemas.
//
// [Engine.Compose] follows references through a [resolver.Resolver] and
// flattens allOf: the declared properties of every contributor are merged
// into one ordered property set, required names are unioned, and types are
// intersected. A property constrained by more than one contributor keeps
// every constraining schema in [ResolvedSchema.PropertySets]; nothing is
// overwritten.
//
// oneOf and anyOf are never merged. They are kept as [Union] values,
// together with their discriminator, for the discriminator package and the
// validator to inspect. Operands of not are retained unevaluated.
//
// Composition never fails. A contributor whose reference cannot be resolved,
// or a schema that reaches itself again through allOf, marks the result
// Incomplete so that callers can skip checks that need the full property
// set.
package compose
