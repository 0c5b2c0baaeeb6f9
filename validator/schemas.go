package validator

import (
	"errors"
	"fmt"

	"github.com/erraggy/oasvet/discriminator"
	"github.com/erraggy/oasvet/internal/issues"
	"github.com/erraggy/oasvet/model"
	"github.com/erraggy/oasvet/oaserrors"
)

// checkSchemas reports required property names that a schema does not
// declare, counting properties inherited through allOf and properties every
// member of a oneOf/anyOf declares.
func (r *run) checkSchemas() {
	schemas := r.doc.NodesOf(model.KindSchema)

	// allOf members are checked as part of the schema that composes them.
	members := make(map[model.NodeID]bool)
	for _, id := range schemas {
		if c, ok := r.doc.Schema(id).(*model.Composition); ok && c.Kind == model.AllOf {
			for _, m := range c.Members {
				members[m] = true
			}
		}
	}

	for _, id := range schemas {
		if r.stopped() {
			return
		}
		if members[id] || r.doc.Schema(id).Tag() == model.TagReference {
			continue
		}
		h := model.Handle{Doc: r.doc, ID: id}
		rs := r.comp.Compose(h)
		if rs.Incomplete || len(rs.Required) == 0 {
			continue
		}
		// A bare required list on an open schema with nothing declared
		// constrains instances without naming properties.
		if len(rs.Properties) == 0 && rs.Open && len(rs.Unions) == 0 {
			continue
		}
		for _, name := range rs.Required {
			if r.comp.DeclaresProperty(rs, name) {
				continue
			}
			r.addError(r.location(h), issues.KindMissingRequiredField,
				fmt.Sprintf("required property %q is not declared by the schema or its allOf members", name),
				withField("required"),
				withValue(name),
				r.specRef("schema-object"),
			)
		}
	}
}

// hasDiscriminator reports whether the schema variant carries a
// discriminator.
func hasDiscriminator(v model.SchemaVariant) bool {
	switch s := v.(type) {
	case *model.Composition:
		return s.Discriminator != model.NoNode
	case *model.Typed:
		return s.Discriminator != model.NoNode
	}
	return false
}

// checkDiscriminators validates every discriminated schema: the members can
// carry the discriminator property, every mapping target resolves, and
// inline members are flagged.
func (r *run) checkDiscriminators() {
	for _, id := range r.doc.NodesOf(model.KindSchema) {
		if r.stopped() {
			return
		}
		if !hasDiscriminator(r.doc.Schema(id)) {
			continue
		}
		h := model.Handle{Doc: r.doc, ID: id}
		b, ok := r.disc.Bind(h)
		if !ok || b.PropertyName == "" {
			continue
		}

		for _, is := range r.disc.Inspect(h) {
			r.addWarning(is.Location, is.Kind, is.Message,
				withField(is.Field),
				r.specRef("discriminator-object"),
			)
		}

		if b.Kind == model.AllOf {
			r.checkDeclares(b.Owner, b.PropertyName)
		} else {
			for _, c := range b.Candidates {
				r.checkDeclares(c.Node, b.PropertyName)
			}
		}

		disc := b.Node.Doc.Discriminator(b.Node.ID)
		if disc == nil {
			continue
		}
		loc := r.location(b.Node)
		for _, m := range disc.Mapping {
			if _, err := r.refs.Resolve(discriminator.MappingPointer(m.Target), b.Node, model.KindSchema); err != nil {
				r.addError(extend(loc, "mapping", m.Value), referenceKind(err),
					fmt.Sprintf("discriminator mapping %q: %s", m.Value, err),
					withValue(m.Target),
					r.specRef("discriminator-object"),
				)
			}
		}
	}
}

// checkDeclares reports a schema that cannot carry the discriminator
// property. Schemas that could not be composed fully are skipped.
func (r *run) checkDeclares(h model.Handle, property string) {
	rs := r.comp.Compose(h)
	if rs.Incomplete || r.comp.DeclaresProperty(rs, property) {
		return
	}
	r.addError(r.location(h), issues.KindMissingRequiredField,
		fmt.Sprintf("schema does not declare discriminator property %q", property),
		withField("properties"),
		withValue(property),
		r.specRef("discriminator-object"),
	)
}

// checkExamples checks the discriminator values carried by media type
// examples against the discriminated schema they illustrate.
func (r *run) checkExamples() {
	for _, id := range r.doc.NodesOf(model.KindMediaType) {
		if r.stopped() {
			return
		}
		m := r.doc.MediaType(id)
		if m == nil || m.Schema == model.NoNode {
			continue
		}
		h := model.Handle{Doc: r.doc, ID: id}
		schema := h.At(m.Schema)
		b, ok := r.disc.Bind(schema)
		if !ok || b.PropertyName == "" {
			continue
		}
		loc := r.location(h)

		if m.HasExample {
			r.checkExampleValue(extend(loc, "example"), schema, b.PropertyName, m.Example)
		}
		for _, e := range m.Examples {
			target, res := r.refs.Target(h.At(e.ID))
			if !res.Ok() {
				continue
			}
			ex := target.Doc.Example(target.ID)
			if ex == nil || !ex.HasValue {
				continue
			}
			r.checkExampleValue(extend(loc, "examples", e.Name, "value"), schema, b.PropertyName, ex.Value)
		}
	}
}

func (r *run) checkExampleValue(loc []string, schema model.Handle, property string, value any) {
	obj, ok := value.(map[string]any)
	if !ok {
		return
	}
	raw, present := obj[property]
	if !present {
		return
	}
	s, ok := raw.(string)
	if !ok {
		r.addError(loc, issues.KindUnknownDiscriminatorValue,
			fmt.Sprintf("discriminator property %q must be a string", property),
			withField(property),
			withValue(raw),
			r.specRef("discriminator-object"),
		)
		return
	}
	if _, err := r.disc.ResolveVariant(schema, s); err != nil && errors.Is(err, oaserrors.ErrUnknownDiscriminatorValue) {
		r.addError(loc, issues.KindUnknownDiscriminatorValue, err.Error(),
			withField(property),
			withValue(s),
			r.specRef("discriminator-object"),
		)
	}
}
