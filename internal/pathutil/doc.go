// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides helpers for OpenAPI paths and references.
//
// # Path Templates
//
// [TemplateParams] extracts the {name} segments of a path template:
//
//	pathutil.TemplateParams("/pets/{petId}/owners/{ownerId}") // ["petId", "ownerId"]
//
// # Reference Builders
//
// Reference builders produce JSON Pointer references to components, escaping
// the name as a pointer token:
//
//	ref := pathutil.SchemaRef("Pet")   // "#/components/schemas/Pet"
//	ref := pathutil.SchemaRef("a/b")   // "#/components/schemas/a~1b"
//	ref := pathutil.PointerTokens("paths", "/pets", "get") // "#/paths/~1pets/get"
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] validates the file a report is written to. It
// rejects symlinks, directories, and files in missing directories:
//
//	safe, err := pathutil.SanitizeOutputPath(userProvidedPath)
//	if err != nil {
//	    return err
//	}
package pathutil
