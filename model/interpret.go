package model

// Interpret types the subtree at id as kind and returns it as a new fragment
// document together with the fragment's root. The source document is not
// modified. Locations and pointers of the fragment are expressed relative to
// the origin node, and references inside it resolve against the origin
// document's URI.
//
// Interpret returns NoNode as root when the subtree cannot hold kind (for
// instance a scalar where an object is required).
func Interpret(doc *Document, id NodeID, kind Kind) (*Document, NodeID) {
	frag := newDocument(doc.URI())
	frag.origin = Handle{Doc: doc, ID: id}
	b := &builder{doc: frag, log: NopLogger{}}
	frag.root = b.add(NoNode, "", doc.Value(id), slot{kind: kind, ref: isRefableKind(kind)})
	return frag, frag.root
}
