// Package validator checks OpenAPI 3.1 documents for the semantic rules a
// structural schema cannot express.
//
// A validation run is a state machine:
//
//	Loaded -> ReferencesResolved -> Validated -> Done
//	   \              \                 \
//	    +--------------+-----------------+-> Failed
//
// In the Loaded state the document model has been built. Resolving
// references fetches the external documents the document needs, one depth
// of the reference graph at a time and concurrently within a depth, then
// resolves every reference reachable from the document and reports the
// ones that fail. The Validated state follows a single pass of semantic
// checks:
//
//   - mutually exclusive fields (value/externalValue, identifier/url,
//     operationRef/operationId, example/examples, schema/content)
//   - required fields, including required schema properties inherited
//     through allOf
//   - path template parameters, parameter uniqueness per list, and
//     response code keys
//   - security requirements naming declared schemes, and link targets
//   - discriminators: members declare the property, mapping targets
//     resolve, inline members are flagged, and example values select a
//     member
//
// A run ends in Failed only when the input cannot be modeled, when strict
// mode is on and a reference failed, or when the context is canceled.
// Otherwise it ends in Done, and Result.Valid reports whether any error
// diagnostic was found.
//
// # Quick Start
//
//	result, err := validator.ValidateWithOptions(ctx,
//	    validator.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range result.Diagnostics {
//	    fmt.Println(d)
//	}
//
// Diagnostics are sorted by location, then severity, then kind, so the
// same document always yields the same report.
//
// Use [MatchResponse] to pick the response documented for a status code:
// an exact code wins over its range wildcard, which wins over default.
package validator
