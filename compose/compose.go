package compose

import (
	"slices"

	"github.com/erraggy/oasvet/model"
	"github.com/erraggy/oasvet/resolver"
)

// Union is a oneOf or anyOf composition found while composing a schema.
// Its members are kept as written and are never merged into the
// surrounding property set.
type Union struct {
	// Kind is model.OneOf or model.AnyOf.
	Kind model.CompositionKind
	// Members are the member schema nodes, references included.
	Members []model.Handle
	// Discriminator is the discriminator node bound to the union, if any.
	Discriminator model.Handle
	// Owner is the composition node.
	Owner model.Handle
}

// ResolvedSchema is the effective view of a schema after references are
// followed and allOf members are flattened.
type ResolvedSchema struct {
	// Handle is the composed node, after following references.
	Handle model.Handle
	// Tag is the effective variant. An allOf whose members are all
	// unconstrained stays TagUnconstrained.
	Tag model.SchemaTag
	// Types is the intersection of the declared types of all allOf
	// contributors. Empty means any type unless NoType is set.
	Types []string
	// NoType reports that contributors declare types with an empty
	// intersection, so no instance can satisfy the schema.
	NoType bool
	// Properties lists declared property names in first-seen order.
	Properties []string
	// PropertySets holds every schema constraining a property. More than
	// one entry means the property is doubly constrained and consumers must
	// apply all of them.
	PropertySets map[string][]model.Handle
	// Required lists required property names in first-seen order.
	Required []string
	// Unions are the oneOf/anyOf compositions reached through allOf.
	Unions []Union
	// Negations are the operands of not, retained unevaluated.
	Negations []model.Handle
	// Discriminators are the discriminator nodes found on contributors.
	Discriminators []model.Handle
	// Open reports whether properties that are not declared are allowed.
	Open bool
	// Incomplete reports that a contributor could not be composed (an
	// unresolved reference or a recursive allOf) so the property set may be
	// partial.
	Incomplete bool
	// Recursive marks the placeholder returned when a schema is reached
	// again while it is being composed.
	Recursive bool
	// Members are the flattened allOf contributors.
	Members []model.Handle
}

// HasProperty reports whether name is declared directly or through allOf.
func (rs *ResolvedSchema) HasProperty(name string) bool {
	return len(rs.PropertySets[name]) > 0
}

// IsDoublyConstrained reports whether more than one contributor constrains
// the property.
func (rs *ResolvedSchema) IsDoublyConstrained(name string) bool {
	return len(rs.PropertySets[name]) > 1
}

// Engine composes schemas. An Engine memoizes per run and is not safe for
// concurrent use.
type Engine struct {
	refs       *resolver.Resolver
	memo       map[model.Handle]*ResolvedSchema
	inProgress map[model.Handle]bool
}

// New creates an Engine that follows references through refs.
func New(refs *resolver.Resolver) *Engine {
	return &Engine{
		refs:       refs,
		memo:       make(map[model.Handle]*ResolvedSchema),
		inProgress: make(map[model.Handle]bool),
	}
}

// Compose returns the effective schema for the schema node h. It never
// fails: problems surface as Incomplete.
func (e *Engine) Compose(h model.Handle) *ResolvedSchema {
	target, res := e.refs.Target(h)
	if !res.Ok() {
		return &ResolvedSchema{Handle: h, Tag: model.TagReference, Open: true, Incomplete: true}
	}
	if rs, ok := e.memo[target]; ok {
		return rs
	}
	if e.inProgress[target] {
		rs := &ResolvedSchema{Handle: target, Open: true, Incomplete: true, Recursive: true}
		if v := target.Schema(); v != nil {
			rs.Tag = v.Tag()
		}
		return rs
	}

	e.inProgress[target] = true
	rs := e.compose(target)
	delete(e.inProgress, target)

	e.memo[target] = rs
	return rs
}

func (e *Engine) compose(h model.Handle) *ResolvedSchema {
	rs := &ResolvedSchema{
		Handle:       h,
		Open:         true,
		PropertySets: make(map[string][]model.Handle),
	}

	switch v := h.Schema().(type) {
	case *model.Unconstrained:
		rs.Tag = model.TagUnconstrained
		rs.Members = []model.Handle{h}

	case *model.Typed:
		rs.Tag = model.TagTyped
		rs.addTyped(h, v)

	case *model.Composition:
		rs.Tag = model.TagComposition
		e.addComposition(rs, h, v)

	default:
		// Not a schema, or a reference that Target did not follow.
		rs.Incomplete = true
	}
	return rs
}

func (rs *ResolvedSchema) addTyped(h model.Handle, t *model.Typed) {
	rs.Types = slices.Clone(t.Types)
	for _, p := range t.Properties {
		rs.addProperty(p.Name, h.At(p.ID))
	}
	for _, name := range t.Required {
		rs.addRequired(name)
	}
	if t.AdditionalProperties != model.NoNode && model.IsFalseSchema(h.Doc, t.AdditionalProperties) {
		rs.Open = false
	}
	if t.Discriminator != model.NoNode {
		rs.Discriminators = append(rs.Discriminators, h.At(t.Discriminator))
	}
	rs.Members = []model.Handle{h}
}

func (e *Engine) addComposition(rs *ResolvedSchema, h model.Handle, c *model.Composition) {
	if c.Discriminator != model.NoNode {
		rs.Discriminators = append(rs.Discriminators, h.At(c.Discriminator))
	}

	switch c.Kind {
	case model.OneOf, model.AnyOf:
		u := Union{Kind: c.Kind, Owner: h}
		if c.Discriminator != model.NoNode {
			u.Discriminator = h.At(c.Discriminator)
		}
		for _, m := range c.Members {
			u.Members = append(u.Members, h.At(m))
		}
		rs.Unions = append(rs.Unions, u)
		rs.Members = []model.Handle{h}

	case model.Not:
		for _, m := range c.Members {
			rs.Negations = append(rs.Negations, h.At(m))
		}
		rs.Members = []model.Handle{h}

	case model.AllOf:
		unconstrained := true
		for i, m := range c.Members {
			sub := e.Compose(h.At(m))
			if sub.Tag != model.TagUnconstrained || sub.Recursive {
				unconstrained = false
			}
			rs.merge(sub, i == 0)
		}
		if unconstrained && c.Discriminator == model.NoNode {
			rs.Tag = model.TagUnconstrained
		}
	}
}

// merge folds an allOf member into rs.
func (rs *ResolvedSchema) merge(sub *ResolvedSchema, first bool) {
	switch {
	case rs.NoType || sub.NoType:
		rs.NoType = true
		rs.Types = nil
	case first:
		rs.Types = slices.Clone(sub.Types)
	default:
		rs.Types = intersectTypes(rs.Types, sub.Types)
		rs.NoType = len(rs.Types) == 0 && len(sub.Types) > 0
	}
	for _, name := range sub.Properties {
		for _, set := range sub.PropertySets[name] {
			rs.addProperty(name, set)
		}
	}
	for _, name := range sub.Required {
		rs.addRequired(name)
	}
	rs.Unions = append(rs.Unions, sub.Unions...)
	rs.Negations = append(rs.Negations, sub.Negations...)
	rs.Discriminators = append(rs.Discriminators, sub.Discriminators...)
	rs.Open = rs.Open && sub.Open
	rs.Incomplete = rs.Incomplete || sub.Incomplete || sub.Recursive
	rs.Members = append(rs.Members, sub.Members...)
}

func (rs *ResolvedSchema) addProperty(name string, h model.Handle) {
	if rs.PropertySets == nil {
		rs.PropertySets = make(map[string][]model.Handle)
	}
	sets, seen := rs.PropertySets[name]
	if !seen {
		rs.Properties = append(rs.Properties, name)
	}
	if !slices.Contains(sets, h) {
		rs.PropertySets[name] = append(sets, h)
	}
}

func (rs *ResolvedSchema) addRequired(name string) {
	if !slices.Contains(rs.Required, name) {
		rs.Required = append(rs.Required, name)
	}
}

// intersectTypes keeps the types allowed by both lists. An empty list
// allows every type.
func intersectTypes(a, b []string) []string {
	if len(a) == 0 {
		return slices.Clone(b)
	}
	if len(b) == 0 {
		return a
	}
	out := make([]string, 0, len(a))
	for _, t := range a {
		if slices.Contains(b, t) {
			out = append(out, t)
		}
	}
	return out
}

// DeclaresProperty reports whether the schema declares name directly,
// through allOf, or in every member of one of its unions.
func (e *Engine) DeclaresProperty(rs *ResolvedSchema, name string) bool {
	return e.declares(rs, name, make(map[model.Handle]bool))
}

func (e *Engine) declares(rs *ResolvedSchema, name string, seen map[model.Handle]bool) bool {
	if rs.HasProperty(name) {
		return true
	}
	if seen[rs.Handle] {
		return false
	}
	seen[rs.Handle] = true
	defer delete(seen, rs.Handle)

	for _, u := range rs.Unions {
		if len(u.Members) == 0 {
			continue
		}
		all := true
		for _, m := range u.Members {
			if !e.declares(e.Compose(m), name, seen) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
