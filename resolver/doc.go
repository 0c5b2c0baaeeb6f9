// Package resolver resolves $ref pointers between nodes of the document
// model.
//
// A pointer is split into a document part, resolved against the URI of the
// referencing document, and a JSON Pointer fragment whose tokens are walked
// through the target document's skeleton. The landing node must be of the
// expected kind; a Raw node (an extension region or a non-OpenAPI external
// file) is typed on demand with [model.Interpret].
//
// References to references are followed to their final target. A chain
// that returns to a pointer it is still resolving is a pure alias loop and
// fails with [oaserrors.ErrCyclicReference]. A reference to one of its own
// ancestors, as in a tree schema, is legal: [Resolver.ResolveNode] reports
// it as [StateRecursive].
//
// Results are memoized per (document, pointer, kind), so resolving the same
// pointer twice yields the identical [model.Handle].
//
// # Usage
//
//	r, err := resolver.New(resolver.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	r.Register(doc.URI(), doc)
//	for _, uri := range r.ExternalURIs(doc) {
//	    // fetch, model.BuildExternal, r.Register
//	}
//	for _, id := range doc.References() {
//	    res := r.ResolveNode(model.Handle{Doc: doc, ID: id})
//	    if res.State == resolver.StateFailed {
//	        fmt.Println(res.Err)
//	    }
//	}
package resolver
