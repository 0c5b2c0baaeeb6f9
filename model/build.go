package model

import (
	"slices"
	"strconv"

	"github.com/erraggy/oasvet/oaserrors"
)

// slot describes what may be stored at one position of the input tree.
type slot struct {
	kind    Kind
	ref     bool // the position accepts a Reference Object
	elem    Kind // element kind of a Map or List container
	elemRef bool // elements accept a Reference Object
}

func one(k Kind) slot     { return slot{kind: k} }
func refable(k Kind) slot { return slot{kind: k, ref: true} }

func mapOf(k Kind, ref bool) slot  { return slot{kind: KindMap, elem: k, elemRef: ref} }
func listOf(k Kind, ref bool) slot { return slot{kind: KindList, elem: k, elemRef: ref} }

var rawSlot = one(KindRaw)

// fields types the fixed fields of each object kind. Fields not listed here
// (including x-* extensions) become Raw nodes.
var fields = map[Kind]map[string]slot{
	KindDocument: {
		"info":         one(KindInfo),
		"servers":      listOf(KindServer, false),
		"paths":        one(KindPaths),
		"webhooks":     mapOf(KindPathItem, false),
		"components":   one(KindComponents),
		"security":     listOf(KindSecurityRequirement, false),
		"tags":         listOf(KindTag, false),
		"externalDocs": one(KindExternalDocs),
	},
	KindInfo: {
		"license": one(KindLicense),
	},
	KindPathItem: {
		"servers":    listOf(KindServer, false),
		"parameters": listOf(KindParameter, true),
	},
	KindOperation: {
		"externalDocs": one(KindExternalDocs),
		"parameters":   listOf(KindParameter, true),
		"requestBody":  refable(KindRequestBody),
		"responses":    one(KindResponses),
		"callbacks":    mapOf(KindCallback, true),
		"security":     listOf(KindSecurityRequirement, false),
		"servers":      listOf(KindServer, false),
	},
	KindParameter: {
		"schema":   one(KindSchema),
		"content":  mapOf(KindMediaType, false),
		"examples": mapOf(KindExample, true),
	},
	KindHeader: {
		"schema":   one(KindSchema),
		"content":  mapOf(KindMediaType, false),
		"examples": mapOf(KindExample, true),
	},
	KindRequestBody: {
		"content": mapOf(KindMediaType, false),
	},
	KindMediaType: {
		"schema":   one(KindSchema),
		"examples": mapOf(KindExample, true),
		"encoding": mapOf(KindEncoding, false),
	},
	KindEncoding: {
		"headers": mapOf(KindHeader, true),
	},
	KindResponse: {
		"headers": mapOf(KindHeader, true),
		"content": mapOf(KindMediaType, false),
		"links":   mapOf(KindLink, true),
	},
	KindLink: {
		"server": one(KindServer),
	},
	KindComponents: {
		"schemas":         mapOf(KindSchema, false),
		"responses":       mapOf(KindResponse, true),
		"parameters":      mapOf(KindParameter, true),
		"examples":        mapOf(KindExample, true),
		"requestBodies":   mapOf(KindRequestBody, true),
		"headers":         mapOf(KindHeader, true),
		"securitySchemes": mapOf(KindSecurityScheme, true),
		"links":           mapOf(KindLink, true),
		"callbacks":       mapOf(KindCallback, true),
		"pathItems":       mapOf(KindPathItem, false),
	},
	KindSecurityScheme: {
		"flows": one(KindOAuthFlows),
	},
	KindTag: {
		"externalDocs": one(KindExternalDocs),
	},
	KindSchema: {
		"properties":            mapOf(KindSchema, false),
		"patternProperties":     mapOf(KindSchema, false),
		"dependentSchemas":      mapOf(KindSchema, false),
		"$defs":                 mapOf(KindSchema, false),
		"items":                 one(KindSchema),
		"prefixItems":           listOf(KindSchema, false),
		"contains":              one(KindSchema),
		"additionalProperties":  one(KindSchema),
		"propertyNames":         one(KindSchema),
		"unevaluatedProperties": one(KindSchema),
		"unevaluatedItems":      one(KindSchema),
		"allOf":                 listOf(KindSchema, false),
		"oneOf":                 listOf(KindSchema, false),
		"anyOf":                 listOf(KindSchema, false),
		"not":                   one(KindSchema),
		"if":                    one(KindSchema),
		"then":                  one(KindSchema),
		"else":                  one(KindSchema),
		"discriminator":         one(KindDiscriminator),
		"externalDocs":          one(KindExternalDocs),
	},
}

// refableKinds lists the kinds whose positions accept a Reference Object.
// Schemas and path items carry $ref in their own payloads instead.
var refableKinds = []Kind{
	KindParameter, KindRequestBody, KindResponse, KindHeader, KindExample,
	KindLink, KindCallback, KindSecurityScheme,
}

func (b *builder) childSlot(s slot, key string) slot {
	switch s.kind {
	case KindMap, KindList:
		return slot{kind: s.elem, ref: s.elemRef}
	case KindRaw, KindReference, KindExample, KindSecurityRequirement, KindDiscriminator, KindOAuthFlows:
		return rawSlot
	case KindPaths:
		if len(key) > 0 && key[0] == '/' {
			return one(KindPathItem)
		}
		return rawSlot
	case KindResponses:
		if isExtensionKey(key) {
			return rawSlot
		}
		return refable(KindResponse)
	case KindCallback:
		if isExtensionKey(key) {
			return rawSlot
		}
		return one(KindPathItem)
	case KindPathItem:
		if slices.Contains(Methods, key) {
			return one(KindOperation)
		}
	}
	if f, ok := fields[s.kind][key]; ok {
		return f
	}
	return rawSlot
}

type builder struct {
	doc *Document
	log Logger
}

// Build turns a generic tree (map[string]any, []any, scalars) into a
// Document. The only fatal error is a tree that cannot be modeled at all: a
// root that is not an object, or a missing or non-string openapi field. Every
// other irregularity is kept in the model for the validator to report.
func Build(tree any, opts ...Option) (*Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	m, ok := asMap(tree)
	if !ok {
		return nil, &oaserrors.ParseError{Path: cfg.uri, Message: "document root is not an object"}
	}
	v, present := m["openapi"]
	if !present {
		return nil, &oaserrors.ParseError{Path: cfg.uri, Message: "missing required field 'openapi'"}
	}
	if _, isString := v.(string); !isString {
		return nil, &oaserrors.ParseError{Path: cfg.uri, Message: "field 'openapi' must be a string"}
	}

	b := &builder{doc: newDocument(cfg.uri), log: cfg.logger}
	b.doc.root = b.add(NoNode, "", tree, one(KindDocument))
	b.log.Debug("built document", "uri", cfg.uri, "nodes", b.doc.Len())
	return b.doc, nil
}

// BuildExternal builds a document fetched from uri to satisfy a reference.
// A tree with a string openapi field is built as a full OpenAPI document.
// Anything else becomes a Raw skeleton whose nodes can be typed on demand
// with [Interpret].
func BuildExternal(uri string, tree any, opts ...Option) (*Document, error) {
	if m, ok := asMap(tree); ok {
		if _, isString := m["openapi"].(string); isString {
			return Build(tree, append(opts, WithURI(uri))...)
		}
	}
	cfg, err := applyOptions(append(opts, WithURI(uri))...)
	if err != nil {
		return nil, err
	}
	b := &builder{doc: newDocument(cfg.uri), log: cfg.logger}
	b.doc.root = b.add(NoNode, "", tree, rawSlot)
	b.log.Debug("built raw document", "uri", cfg.uri, "nodes", b.doc.Len())
	return b.doc, nil
}

func (b *builder) newNode(parent NodeID, token string, value any, kind Kind) NodeID {
	b.doc.nodes = append(b.doc.nodes, node{kind: kind, parent: parent, token: token, value: value})
	return NodeID(len(b.doc.nodes) - 1)
}

// synthesize adds a node derived from parent that no pointer walk reaches.
func (b *builder) synthesize(parent NodeID, kind Kind, payload any) NodeID {
	id := b.newNode(parent, "", b.doc.Value(parent), kind)
	b.doc.nodes[id].synthetic = true
	b.doc.nodes[id].payload = payload
	return id
}

// add builds the node for value stored under token and returns its ID.
// Scalars get no node unless they sit in a schema position.
func (b *builder) add(parent NodeID, token string, value any, s slot) NodeID {
	if s.kind == KindSchema {
		return b.addSchema(parent, token, value)
	}

	m, isMap := asMap(value)
	list, isList := value.([]any)
	if !isMap && !isList {
		return NoNode
	}

	kind := s.kind
	switch {
	case isMap && s.ref && isRefMap(m):
		kind = KindReference
	case kind == KindRaw:
	case kind == KindList && !isList, kind != KindList && isList:
		kind = KindRaw
	}

	id := b.newNode(parent, token, value, kind)
	if isList {
		b.doc.nodes[id].list = true
		children := make([]NodeID, 0, len(list))
		cs := b.childSlot(slot{kind: kind, elem: s.elem, elemRef: s.elemRef}, "")
		for i, item := range list {
			// Scalar items hold NoNode so index tokens stay positional.
			children = append(children, b.add(id, strconv.Itoa(i), item, cs))
		}
		b.doc.nodes[id].children = children
		return id
	}

	keys := sortedKeys(m)
	var kept []string
	var children []NodeID
	for _, k := range keys {
		cs := b.childSlot(slot{kind: kind, elem: s.elem, elemRef: s.elemRef}, k)
		if cid := b.add(id, k, m[k], cs); cid != NoNode {
			kept = append(kept, k)
			children = append(children, cid)
		}
	}
	b.doc.nodes[id].keys = kept
	b.doc.nodes[id].children = children

	if kind == KindReference {
		b.doc.nodes[id].payload = newReference(m, s.kind)
		return id
	}
	b.doc.nodes[id].payload = b.decode(id, kind, m)
	return id
}

func isRefMap(m map[string]any) bool {
	_, ok := m["$ref"].(string)
	return ok
}

func newReference(m map[string]any, expect Kind) *Reference {
	r := &Reference{Expect: expect}
	r.Pointer, _ = mapGetString(m, "$ref")
	r.Summary, _ = mapGetString(m, "summary")
	r.Description, _ = mapGetString(m, "description")
	r.Extensions = extractExtensions(m)
	return r
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
