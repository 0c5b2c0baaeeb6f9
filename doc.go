// Package oasvet validates OpenAPI 3.1 documents whose schemas are spread
// across files and stitched together with $ref, allOf, oneOf, anyOf, and
// discriminators.
//
// # Overview
//
// The library is organized as a pipeline of packages:
//
//   - loader: Parse YAML or JSON source into a generic tree and fetch
//     externally referenced documents from disk or over HTTP
//   - model: Build an arena of typed nodes from the tree, with stable node
//     handles and document locations
//   - resolver: Resolve JSON Pointer references within and across
//     documents, detecting cycles and bounding chain depth
//   - compose: Flatten a schema's allOf inheritance into its effective
//     properties and required names
//   - discriminator: Bind discriminators to their candidate members and
//     select the member a discriminator value names
//   - validator: Drive a validation run through its states and report
//     sorted diagnostics
//
// Only OpenAPI 3.1.x documents are supported.
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/oasvet
//
// Install the CLI:
//
//	go install github.com/erraggy/oasvet/cmd/oasvet@latest
//
// # Quick Start
//
// Validate a document and the files it references:
//
//	result, err := validator.ValidateWithOptions(ctx,
//	    validator.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Valid {
//	    for _, d := range result.Errors() {
//	        fmt.Println(d)
//	    }
//	}
//
// Validate a tree parsed elsewhere, fetching remote references:
//
//	tree, err := loader.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := validator.ValidateWithOptions(ctx,
//	    validator.WithTree(tree, "https://example.com/api/openapi.yaml"),
//	    validator.WithFetcher(loader.Mux(nil, loader.HTTPFetcher(nil, ""))),
//	    validator.WithStrictMode(true),
//	)
//
// Inspect composition directly:
//
//	doc, err := model.Build(tree, model.WithURI(uri))
//	refs, err := resolver.New()
//	refs.Register(doc.URI(), doc)
//	engine := compose.New(refs)
//	rs := engine.Compose(handle)
//	fmt.Println(rs.Required, engine.DeclaresProperty(rs, "id"))
//
// # Diagnostics
//
// Every finding is a [validator.Diagnostic] with a kind, a severity, and a
// location: the sequence of path segments from the document root. Findings
// in fetched documents are prefixed with the document's URI. The report is
// sorted by location, then severity, then kind.
//
// # Errors
//
// The oaserrors package defines the error types returned across packages.
// Use errors.Is with its sentinels (oaserrors.ErrParse,
// oaserrors.ErrUnresolvedReference, oaserrors.ErrCyclicReference, and so
// on) and errors.As with its typed errors.
//
// # Command Line
//
// The oasvet command validates a file, URL, or stdin:
//
//	oasvet validate openapi.yaml
//	oasvet validate --format json --strict openapi.yaml
//	oasvet mcp
//
// The mcp subcommand serves the validate tool to MCP clients over stdio.
package oasvet
