package model

import "slices"

// typedKeywords are the schema keywords that constrain instances without
// composing other schemas. A schema using any of them has a Typed concern.
var typedKeywords = []string{
	"type", "format", "enum", "const",
	"multipleOf", "maximum", "exclusiveMaximum", "minimum", "exclusiveMinimum",
	"maxLength", "minLength", "pattern",
	"items", "prefixItems", "contains", "maxItems", "minItems", "uniqueItems",
	"maxContains", "minContains",
	"properties", "required", "additionalProperties", "patternProperties",
	"propertyNames", "maxProperties", "minProperties",
	"dependentRequired", "dependentSchemas",
	"unevaluatedProperties", "unevaluatedItems",
}

var compositionKeywords = []CompositionKind{AllOf, OneOf, AnyOf, Not}

const noComposition CompositionKind = 255

// addSchema builds a schema node and normalizes it into exactly one variant.
func (b *builder) addSchema(parent NodeID, token string, value any) NodeID {
	id := b.newNode(parent, token, value, KindSchema)

	m, isMap := asMap(value)
	if !isMap {
		if v, ok := value.(bool); ok && !v {
			// false accepts nothing: not {}.
			empty := b.synthesize(id, KindSchema, &Unconstrained{})
			b.doc.nodes[id].payload = &Composition{Kind: Not, Members: []NodeID{empty}}
			return id
		}
		if _, ok := value.(bool); !ok {
			b.log.Debug("schema is neither an object nor a boolean", "token", token)
		}
		b.doc.nodes[id].payload = &Unconstrained{}
		return id
	}

	keys := sortedKeys(m)
	var kept []string
	var children []NodeID
	for _, k := range keys {
		cs := b.childSlot(one(KindSchema), k)
		if cid := b.add(id, k, m[k], cs); cid != NoNode {
			kept = append(kept, k)
			children = append(children, cid)
		}
	}
	b.doc.nodes[id].keys = kept
	b.doc.nodes[id].children = children
	b.doc.nodes[id].payload = b.schemaVariant(id, m)
	return id
}

// schemaVariant normalizes a schema object. Each concern ($ref, typed facets,
// and every composition keyword) is counted; a schema with a single concern
// becomes that variant directly, and a schema with several becomes an allOf
// of synthesized nodes ordered reference, typed, then compositions. Members
// of an allOf keyword are spliced into that outer allOf.
func (b *builder) schemaVariant(id NodeID, m map[string]any) SchemaVariant {
	title, description := str(m, "title"), str(m, "description")
	ext := extractExtensions(m)

	ref, hasRef := m["$ref"].(string)
	var comps []CompositionKind
	for _, kind := range compositionKeywords {
		if b.compositionPresent(id, kind) {
			comps = append(comps, kind)
		}
	}

	disc := b.doc.Child(id, "discriminator")
	if b.doc.Kind(disc) != KindDiscriminator {
		disc = NoNode
	}

	typed := false
	for _, k := range typedKeywords {
		if hasKey(m, k) {
			typed = true
			break
		}
	}

	// The discriminator belongs to oneOf, else anyOf, else allOf, else to a
	// typed base schema.
	discOwner := noComposition
	for _, kind := range []CompositionKind{OneOf, AnyOf, AllOf} {
		if slices.Contains(comps, kind) {
			discOwner = kind
			break
		}
	}
	if disc != NoNode && discOwner == noComposition {
		typed = true
	}

	concerns := len(comps)
	if hasRef {
		concerns++
	}
	if typed {
		concerns++
	}

	newRef := func() *Reference {
		r := &Reference{
			Pointer:     ref,
			Expect:      KindSchema,
			Summary:     str(m, "summary"),
			Description: description,
		}
		r.Extensions = ext
		return r
	}
	newTyped := func() *Typed {
		t := b.typed(id, m)
		if discOwner == noComposition {
			t.Discriminator = disc
		}
		t.Title, t.Description = title, description
		t.Extensions = ext
		return t
	}
	newComp := func(kind CompositionKind) *Composition {
		c := &Composition{Kind: kind, Members: b.compositionMembers(id, kind)}
		if kind == discOwner {
			c.Discriminator = disc
		}
		return c
	}

	switch {
	case concerns == 0:
		u := &Unconstrained{Title: title, Description: description}
		u.Extensions = ext
		return u
	case concerns == 1 && hasRef:
		return newRef()
	case concerns == 1 && typed:
		return newTyped()
	case concerns == 1:
		c := newComp(comps[0])
		c.Title, c.Description = title, description
		c.Extensions = ext
		return c
	}

	outer := &Composition{Kind: AllOf, Title: title, Description: description}
	outer.Extensions = ext
	if hasRef {
		outer.Members = append(outer.Members, b.synthesize(id, KindSchema, newRef()))
	}
	if typed {
		outer.Members = append(outer.Members, b.synthesize(id, KindSchema, newTyped()))
	}
	for _, kind := range comps {
		if kind == AllOf {
			outer.Members = append(outer.Members, b.compositionMembers(id, AllOf)...)
			if discOwner == AllOf {
				outer.Discriminator = disc
			}
			continue
		}
		outer.Members = append(outer.Members, b.synthesize(id, KindSchema, newComp(kind)))
	}
	return outer
}

// compositionPresent reports whether the composition keyword is present
// with a usable shape: a list for allOf/oneOf/anyOf, a schema for not.
func (b *builder) compositionPresent(id NodeID, kind CompositionKind) bool {
	child := b.doc.Child(id, kind.String())
	if child == NoNode {
		return false
	}
	if kind == Not {
		return b.doc.Kind(child) == KindSchema
	}
	return b.doc.IsList(child) && b.doc.Kind(child) == KindList
}

func (b *builder) compositionMembers(id NodeID, kind CompositionKind) []NodeID {
	child := b.doc.Child(id, kind.String())
	if kind == Not {
		return []NodeID{child}
	}
	return b.doc.Children(child)
}

func (b *builder) typed(id NodeID, m map[string]any) *Typed {
	t := &Typed{
		Types:      schemaTypes(m),
		Format:     str(m, "format"),
		Deprecated: mapGetBool(m, "deprecated"),
		ReadOnly:   mapGetBool(m, "readOnly"),
		WriteOnly:  mapGetBool(m, "writeOnly"),

		MultipleOf:       mapGetFloat64Ptr(m, "multipleOf"),
		Maximum:          mapGetFloat64Ptr(m, "maximum"),
		ExclusiveMaximum: mapGetFloat64Ptr(m, "exclusiveMaximum"),
		Minimum:          mapGetFloat64Ptr(m, "minimum"),
		ExclusiveMinimum: mapGetFloat64Ptr(m, "exclusiveMinimum"),

		MaxLength: mapGetIntPtr(m, "maxLength"),
		MinLength: mapGetIntPtr(m, "minLength"),
		Pattern:   str(m, "pattern"),

		Items:       b.doc.Child(id, "items"),
		PrefixItems: b.items(id, "prefixItems"),
		Contains:    b.doc.Child(id, "contains"),
		MaxItems:    mapGetIntPtr(m, "maxItems"),
		MinItems:    mapGetIntPtr(m, "minItems"),
		UniqueItems: mapGetBool(m, "uniqueItems"),

		Properties:           b.named(id, "properties"),
		Required:             mapGetStringSlice(m, "required"),
		AdditionalProperties: b.doc.Child(id, "additionalProperties"),
		PatternProperties:    b.named(id, "patternProperties"),
		PropertyNames:        b.doc.Child(id, "propertyNames"),
		MaxProperties:        mapGetIntPtr(m, "maxProperties"),
		MinProperties:        mapGetIntPtr(m, "minProperties"),
	}
	if enum, ok := m["enum"].([]any); ok {
		t.Enum = enum
	}
	t.Const, t.HasConst = m["const"]
	return t
}

// IsFalseSchema reports whether the schema node was written as the literal
// false, which accepts no instance.
func IsFalseSchema(d *Document, id NodeID) bool {
	v, ok := d.Value(id).(bool)
	return ok && !v && d.Kind(id) == KindSchema
}
