// Package model builds the in-memory Document Model of an OpenAPI 3.1
// document.
//
// A [Document] is an arena: every map and list of the input tree becomes a
// node addressed by a [NodeID], so recursive schemas and cross-references
// are plain handle lookups rather than pointer graphs. Nodes keep their
// child tokens, which lets a JSON Pointer be walked one token at a time, and
// typed positions (operations, parameters, schemas, ...) carry a typed
// payload alongside an extension side-map for x-* fields.
//
// Schemas are normalized into exactly one [SchemaVariant]:
//
//   - [*Unconstrained]: {} or true
//   - [*Typed]: type facets and properties, no composition keyword
//   - [*Composition]: exactly one of allOf, oneOf, anyOf, not
//   - [*Reference]: a $ref
//
// A schema that mixes several of these becomes an allOf whose members are
// synthesized nodes, one per concern. The literal false becomes not {}.
//
// # Usage
//
//	tree, err := loader.ParseFile("openapi.yaml")
//	if err != nil {
//	    return err
//	}
//	doc, err := model.Build(tree, model.WithURI("file:///specs/openapi.yaml"))
//	if err != nil {
//	    return err // *oaserrors.ParseError
//	}
//	for _, id := range doc.NodesOf(model.KindOperation) {
//	    fmt.Println(doc.Pointer(id), doc.Operation(id).OperationID)
//	}
//
// Documents are immutable once built and safe to share between goroutines.
package model
