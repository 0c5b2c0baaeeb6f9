package model

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// NodeID addresses a node inside one Document's arena.
type NodeID int32

// NoNode is the zero NodeID. It never addresses a node.
const NoNode NodeID = 0

// Handle addresses a node in a specific document. Handles are comparable:
// two handles are equal exactly when they address the same node.
type Handle struct {
	Doc *Document
	ID  NodeID
}

// Valid reports whether h addresses a node.
func (h Handle) Valid() bool {
	return h.Doc != nil && h.ID != NoNode && int(h.ID) < len(h.Doc.nodes)
}

// Kind returns the kind of the addressed node, KindRaw for an invalid handle.
func (h Handle) Kind() Kind {
	if !h.Valid() {
		return KindRaw
	}
	return h.Doc.Kind(h.ID)
}

// Location returns the ordered segment path of the node from its document root.
func (h Handle) Location() []string {
	if !h.Valid() {
		return nil
	}
	return h.Doc.Location(h.ID)
}

// Ref returns the absolute reference (document URI plus JSON Pointer fragment)
// addressing the node.
func (h Handle) Ref() string {
	if !h.Valid() {
		return ""
	}
	return h.Doc.URI() + "#" + h.Doc.Pointer(h.ID)
}

// Schema returns the variant of a schema node, nil for other kinds.
func (h Handle) Schema() SchemaVariant {
	if !h.Valid() {
		return nil
	}
	return h.Doc.Schema(h.ID)
}

// At returns a handle to another node of the same document.
func (h Handle) At(id NodeID) Handle {
	return Handle{Doc: h.Doc, ID: id}
}

type node struct {
	kind      Kind
	parent    NodeID
	token     string
	value     any
	synthetic bool
	list      bool
	keys      []string
	children  []NodeID
	payload   any
}

// Document is an immutable arena of nodes built from one input tree.
//
// A Document built by [Interpret] is a fragment: it types a subtree of
// another document, and its locations and pointers are expressed relative to
// that origin so diagnostics point at the original input.
type Document struct {
	uri    string
	nodes  []node
	root   NodeID
	origin Handle
}

func newDocument(uri string) *Document {
	// Slot 0 is reserved so that NoNode never addresses a node.
	return &Document{uri: uri, nodes: make([]node, 1, 64)}
}

// URI returns the absolute URI the document was registered under.
func (d *Document) URI() string { return d.uri }

// Root returns the root node of the document.
func (d *Document) Root() NodeID { return d.root }

// RootHandle returns a handle to the root node.
func (d *Document) RootHandle() Handle { return Handle{Doc: d, ID: d.root} }

// Origin returns the node a fragment document was interpreted from, or an
// invalid handle for documents built from a whole tree.
func (d *Document) Origin() Handle { return d.origin }

// IsFragment reports whether the document was built by [Interpret].
func (d *Document) IsFragment() bool { return d.origin.Doc != nil }

// Base returns the whole document a fragment was interpreted from, following
// nested fragments. A document that is not a fragment is its own base.
func (d *Document) Base() *Document {
	for d != nil && d.IsFragment() {
		d = d.origin.Doc
	}
	return d
}

// Len returns the number of nodes in the arena.
func (d *Document) Len() int { return len(d.nodes) - 1 }

func (d *Document) get(id NodeID) *node {
	if id <= NoNode || int(id) >= len(d.nodes) {
		return nil
	}
	return &d.nodes[id]
}

// Kind returns the kind of node id.
func (d *Document) Kind(id NodeID) Kind {
	if n := d.get(id); n != nil {
		return n.kind
	}
	return KindRaw
}

// Parent returns the parent of node id, NoNode for the root.
func (d *Document) Parent(id NodeID) NodeID {
	if n := d.get(id); n != nil {
		return n.parent
	}
	return NoNode
}

// Token returns the unescaped segment under which node id is stored in its
// parent. Synthesized nodes have an empty token.
func (d *Document) Token(id NodeID) string {
	if n := d.get(id); n != nil {
		return n.token
	}
	return ""
}

// Value returns the raw input subtree the node was built from.
func (d *Document) Value(id NodeID) any {
	if n := d.get(id); n != nil {
		return n.value
	}
	return nil
}

// IsSynthetic reports whether the node was synthesized during schema
// normalization. Synthesized nodes are not reachable by pointer walk.
func (d *Document) IsSynthetic(id NodeID) bool {
	if n := d.get(id); n != nil {
		return n.synthetic
	}
	return false
}

// IsList reports whether the node was built from a list.
func (d *Document) IsList(id NodeID) bool {
	if n := d.get(id); n != nil {
		return n.list
	}
	return false
}

// Keys returns the child tokens of a map node in sorted order. List nodes
// return their indexes rendered as tokens.
func (d *Document) Keys(id NodeID) []string {
	n := d.get(id)
	if n == nil {
		return nil
	}
	if n.list {
		keys := make([]string, len(n.children))
		for i := range n.children {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	}
	return slices.Clone(n.keys)
}

// Children returns the addressable children of a node, in key order for maps
// and index order for lists. Scalar list items have no node and are skipped.
func (d *Document) Children(id NodeID) []NodeID {
	n := d.get(id)
	if n == nil {
		return nil
	}
	out := make([]NodeID, 0, len(n.children))
	for _, c := range n.children {
		if c != NoNode {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the child of id stored under the unescaped token, or NoNode.
// Scalar members of the input tree have no node of their own.
func (d *Document) Child(id NodeID, token string) NodeID {
	n := d.get(id)
	if n == nil {
		return NoNode
	}
	if n.list {
		idx, ok := parseIndex(token)
		if !ok || idx >= len(n.children) {
			return NoNode
		}
		return n.children[idx]
	}
	i := sort.SearchStrings(n.keys, token)
	if i < len(n.keys) && n.keys[i] == token {
		return n.children[i]
	}
	return NoNode
}

// parseIndex parses an array index token: decimal digits without leading zeros.
func parseIndex(token string) (int, bool) {
	if token == "" || (len(token) > 1 && token[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(token)
	return idx, err == nil
}

// Location returns the ordered segment path of node id from the document root.
// Synthesized nodes report the location of the schema they were derived from.
// Fragment documents prefix the location of their origin node.
func (d *Document) Location(id NodeID) []string {
	var segs []string
	for cur := id; cur != NoNode; {
		n := d.get(cur)
		if n == nil {
			break
		}
		if !n.synthetic && n.parent != NoNode {
			segs = append(segs, n.token)
		}
		cur = n.parent
	}
	slices.Reverse(segs)
	if d.IsFragment() {
		return append(d.origin.Location(), segs...)
	}
	if segs == nil {
		return []string{}
	}
	return segs
}

// Pointer returns the escaped JSON Pointer of node id ("" for the root).
func (d *Document) Pointer(id NodeID) string {
	loc := d.Location(id)
	if len(loc) == 0 {
		return ""
	}
	var b strings.Builder
	for _, seg := range loc {
		b.WriteByte('/')
		b.WriteString(jsonpointer.Escape(seg))
	}
	return b.String()
}

// IsAncestor reports whether anc is id itself or one of its ancestors.
func (d *Document) IsAncestor(anc, id NodeID) bool {
	for cur := id; cur != NoNode; cur = d.Parent(cur) {
		if cur == anc {
			return true
		}
	}
	return false
}

// NodesOf returns every node whose kind is one of kinds, in build order.
func (d *Document) NodesOf(kinds ...Kind) []NodeID {
	var out []NodeID
	for i := 1; i < len(d.nodes); i++ {
		if slices.Contains(kinds, d.nodes[i].kind) {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// References returns every node carrying a [*Reference] payload: Reference
// Objects, schema references (including synthesized ones), and path item
// references, in build order.
func (d *Document) References() []NodeID {
	var out []NodeID
	for i := 1; i < len(d.nodes); i++ {
		if _, ok := d.nodes[i].payload.(*Reference); ok {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// Payload returns the typed payload of node id, nil for Raw and container nodes.
func (d *Document) Payload(id NodeID) any {
	if n := d.get(id); n != nil {
		return n.payload
	}
	return nil
}

func payloadAs[T any](d *Document, id NodeID) T {
	v, _ := d.Payload(id).(T)
	return v
}

// Schema returns the variant of a schema node, nil for other kinds.
func (d *Document) Schema(id NodeID) SchemaVariant {
	return payloadAs[SchemaVariant](d, id)
}

// Reference returns the reference payload of node id, nil if the node is not
// a reference.
func (d *Document) Reference(id NodeID) *Reference {
	return payloadAs[*Reference](d, id)
}

// OpenAPI returns the root payload, nil for raw or fragment documents.
func (d *Document) OpenAPI() *OpenAPI {
	return payloadAs[*OpenAPI](d, d.root)
}

// Info returns the payload of an info node.
func (d *Document) Info(id NodeID) *Info { return payloadAs[*Info](d, id) }

// License returns the payload of a license node.
func (d *Document) License(id NodeID) *License { return payloadAs[*License](d, id) }

// Server returns the payload of a server node.
func (d *Document) Server(id NodeID) *Server { return payloadAs[*Server](d, id) }

// Paths returns the payload of a paths node.
func (d *Document) Paths(id NodeID) *Paths { return payloadAs[*Paths](d, id) }

// PathItem returns the payload of a path item node.
func (d *Document) PathItem(id NodeID) *PathItem { return payloadAs[*PathItem](d, id) }

// Operation returns the payload of an operation node.
func (d *Document) Operation(id NodeID) *Operation { return payloadAs[*Operation](d, id) }

// Parameter returns the payload of a parameter node.
func (d *Document) Parameter(id NodeID) *Parameter { return payloadAs[*Parameter](d, id) }

// RequestBody returns the payload of a request body node.
func (d *Document) RequestBody(id NodeID) *RequestBody {
	return payloadAs[*RequestBody](d, id)
}

// MediaType returns the payload of a media type node.
func (d *Document) MediaType(id NodeID) *MediaType { return payloadAs[*MediaType](d, id) }

// Encoding returns the payload of an encoding node.
func (d *Document) Encoding(id NodeID) *Encoding { return payloadAs[*Encoding](d, id) }

// Responses returns the payload of a responses node.
func (d *Document) Responses(id NodeID) *Responses { return payloadAs[*Responses](d, id) }

// Response returns the payload of a response node.
func (d *Document) Response(id NodeID) *Response { return payloadAs[*Response](d, id) }

// Header returns the payload of a header node.
func (d *Document) Header(id NodeID) *Header { return payloadAs[*Header](d, id) }

// Example returns the payload of an example node.
func (d *Document) Example(id NodeID) *Example { return payloadAs[*Example](d, id) }

// Link returns the payload of a link node.
func (d *Document) Link(id NodeID) *Link { return payloadAs[*Link](d, id) }

// Callback returns the payload of a callback node.
func (d *Document) Callback(id NodeID) *Callback { return payloadAs[*Callback](d, id) }

// Discriminator returns the payload of a discriminator node.
func (d *Document) Discriminator(id NodeID) *Discriminator {
	return payloadAs[*Discriminator](d, id)
}

// SecurityScheme returns the payload of a security scheme node.
func (d *Document) SecurityScheme(id NodeID) *SecurityScheme {
	return payloadAs[*SecurityScheme](d, id)
}

// SecurityRequirement returns the payload of a security requirement node.
func (d *Document) SecurityRequirement(id NodeID) *SecurityRequirement {
	return payloadAs[*SecurityRequirement](d, id)
}

// Components returns the payload of a components node.
func (d *Document) Components(id NodeID) *Components { return payloadAs[*Components](d, id) }

// Tag returns the payload of a tag node.
func (d *Document) Tag(id NodeID) *Tag { return payloadAs[*Tag](d, id) }

// ExternalDocs returns the payload of an external docs node.
func (d *Document) ExternalDocs(id NodeID) *ExternalDocs {
	return payloadAs[*ExternalDocs](d, id)
}

// OAuthFlows returns the payload of an OAuth flows node.
func (d *Document) OAuthFlows(id NodeID) *OAuthFlows { return payloadAs[*OAuthFlows](d, id) }

// Extensions returns the x-* side-map of any typed node.
func (d *Document) Extensions(id NodeID) map[string]any {
	if e, ok := d.Payload(id).(interface{ extensions() map[string]any }); ok {
		return e.extensions()
	}
	return nil
}
