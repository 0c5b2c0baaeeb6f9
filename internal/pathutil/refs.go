// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import "github.com/go-openapi/jsonpointer"

// Component reference prefixes.
const (
	RefPrefixSchemas         = "#/components/schemas/"
	RefPrefixParameters      = "#/components/parameters/"
	RefPrefixResponses       = "#/components/responses/"
	RefPrefixExamples        = "#/components/examples/"
	RefPrefixRequestBodies   = "#/components/requestBodies/"
	RefPrefixHeaders         = "#/components/headers/"
	RefPrefixSecuritySchemes = "#/components/securitySchemes/"
	RefPrefixLinks           = "#/components/links/"
	RefPrefixCallbacks       = "#/components/callbacks/"
	RefPrefixPathItems       = "#/components/pathItems/"
)

// SchemaRef builds "#/components/schemas/{name}", escaping name as a JSON
// Pointer token.
func SchemaRef(name string) string {
	return RefPrefixSchemas + jsonpointer.Escape(name)
}

// SecuritySchemeRef builds "#/components/securitySchemes/{name}".
func SecuritySchemeRef(name string) string {
	return RefPrefixSecuritySchemes + jsonpointer.Escape(name)
}

// PointerTokens escapes tokens and joins them into a JSON Pointer fragment
// ("#/a/b~1c").
func PointerTokens(tokens ...string) string {
	n := 1
	for _, t := range tokens {
		n += len(t) + 1
	}
	b := make([]byte, 0, n)
	b = append(b, '#')
	for _, t := range tokens {
		b = append(b, '/')
		b = append(b, jsonpointer.Escape(t)...)
	}
	return string(b)
}
