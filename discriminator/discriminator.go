package discriminator

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/erraggy/oasvet/internal/issues"
	"github.com/erraggy/oasvet/internal/pathutil"
	"github.com/erraggy/oasvet/internal/severity"
	"github.com/erraggy/oasvet/model"
	"github.com/erraggy/oasvet/oaserrors"
	"github.com/erraggy/oasvet/resolver"
	"github.com/go-openapi/jsonpointer"
	"golang.org/x/text/cases"
)

// ErrNotDiscriminated is returned when ResolveVariant is given a schema that
// carries no discriminator.
var ErrNotDiscriminated = errors.New("discriminator: schema has no discriminator")

// Candidate is a schema a discriminator value can select.
type Candidate struct {
	// Name is the name the value is matched against: the final segment of
	// the member's reference, or the component name of an inheriting schema.
	// Inline members have no name.
	Name string
	// Node is the member as written (a reference for named members).
	Node model.Handle
}

// Binding is a discriminator together with the schemas it selects from.
type Binding struct {
	// Owner is the schema carrying the discriminator.
	Owner model.Handle
	// Node is the discriminator node.
	Node         model.Handle
	PropertyName string
	// Kind is the composition the discriminator is bound to. A typed base
	// schema using the allOf inheritance pattern reports model.AllOf.
	Kind       model.CompositionKind
	Candidates []Candidate
}

// Resolver selects the schema a discriminator value names.
// A Resolver is not safe for concurrent use.
type Resolver struct {
	refs     *resolver.Resolver
	log      model.Logger
	foldCase bool
	fold     cases.Caser
}

// New creates a Resolver that resolves mapping targets through refs.
func New(refs *resolver.Resolver, opts ...Option) (*Resolver, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("discriminator: invalid options: %w", err)
	}
	d := &Resolver{refs: refs, log: cfg.logger, foldCase: cfg.foldCase}
	if d.foldCase {
		d.fold = cases.Fold()
	}
	return d, nil
}

// Bind returns the discriminator binding of the schema at h, following a
// reference first. ok is false when the schema has no discriminator.
func (d *Resolver) Bind(h model.Handle) (Binding, bool) {
	target, res := d.refs.Target(h)
	if !res.Ok() {
		return Binding{}, false
	}

	var b Binding
	switch v := target.Schema().(type) {
	case *model.Composition:
		if v.Discriminator == model.NoNode {
			return Binding{}, false
		}
		b = Binding{Owner: target, Node: target.At(v.Discriminator), Kind: v.Kind}
		if v.Kind == model.AllOf {
			b.Candidates = d.inheritors(target)
		} else {
			for _, m := range v.Members {
				member := target.At(m)
				b.Candidates = append(b.Candidates, Candidate{Name: memberName(member), Node: member})
			}
		}
	case *model.Typed:
		if v.Discriminator == model.NoNode {
			return Binding{}, false
		}
		b = Binding{Owner: target, Node: target.At(v.Discriminator), Kind: model.AllOf}
		b.Candidates = d.inheritors(target)
	default:
		return Binding{}, false
	}

	if disc := b.Node.Doc.Discriminator(b.Node.ID); disc != nil {
		b.PropertyName = disc.PropertyName
	}
	return b, true
}

// ResolveVariant returns the schema selected by value for the discriminated
// schema at h.
//
// An explicit mapping entry wins. A mapping target containing "/" or "#" is
// a reference; any other target names a schema under #/components/schemas.
// Without a mapping entry, the value selects the member whose reference ends
// in that name (a whole-file reference uses the file's base name without its
// extension). With WithFoldCase, a value that matches exactly one member
// ignoring case is accepted last.
//
// An unknown value fails with *oaserrors.DiscriminatorError.
func (d *Resolver) ResolveVariant(h model.Handle, value string) (model.Handle, error) {
	b, ok := d.Bind(h)
	if !ok {
		return model.Handle{}, ErrNotDiscriminated
	}

	if disc := b.Node.Doc.Discriminator(b.Node.ID); disc != nil {
		if target, found := disc.Target(value); found {
			selected, err := d.refs.Resolve(MappingPointer(target), b.Node, model.KindSchema)
			if err != nil {
				return model.Handle{}, err
			}
			d.log.Debug("discriminator mapping", "value", value, "target", selected.Ref())
			return selected, nil
		}
	}

	for _, c := range b.Candidates {
		if c.Name != "" && c.Name == value {
			return d.selected(c)
		}
	}

	if d.foldCase {
		want := d.fold.String(value)
		var match []Candidate
		for _, c := range b.Candidates {
			if c.Name != "" && d.fold.String(c.Name) == want {
				match = append(match, c)
			}
		}
		if len(match) == 1 {
			d.log.Debug("discriminator matched ignoring case", "value", value, "name", match[0].Name)
			return d.selected(match[0])
		}
	}

	return model.Handle{}, &oaserrors.DiscriminatorError{PropertyName: b.PropertyName, Value: value}
}

func (d *Resolver) selected(c Candidate) (model.Handle, error) {
	target, res := d.refs.Target(c.Node)
	if !res.Ok() {
		return model.Handle{}, res.Err
	}
	return target, nil
}

// Inspect returns one warning per inline member of a discriminated oneOf or
// anyOf. Inline members have no name, so only an explicit mapping could
// select them, and mapping targets are references.
func (d *Resolver) Inspect(h model.Handle) []issues.Issue {
	b, ok := d.Bind(h)
	if !ok || b.Kind == model.AllOf {
		return nil
	}
	var out []issues.Issue
	for _, c := range b.Candidates {
		if c.Name != "" {
			continue
		}
		out = append(out, issues.Issue{
			Location: c.Node.Location(),
			Kind:     issues.KindInlineSchemaUnderDiscriminator,
			Severity: severity.SeverityWarning,
			Message:  fmt.Sprintf("inline %s member under discriminator %q cannot be selected by name", b.Kind, b.PropertyName),
			Field:    b.Kind.String(),
		})
	}
	return out
}

// inheritors lists the component schemas whose allOf references base.
func (d *Resolver) inheritors(base model.Handle) []Candidate {
	doc := base.Doc.Base()
	root := doc.OpenAPI()
	if root == nil {
		return nil
	}
	comps := doc.Components(root.Components)
	if comps == nil {
		return nil
	}

	var out []Candidate
	for _, s := range comps.Schemas {
		h := model.Handle{Doc: doc, ID: s.ID}
		c, ok := h.Schema().(*model.Composition)
		if !ok || c.Kind != model.AllOf || h == base {
			continue
		}
		for _, m := range c.Members {
			member := h.At(m)
			if member.Doc.Reference(member.ID) == nil {
				continue
			}
			if target, res := d.refs.Target(member); res.Ok() && target == base {
				out = append(out, Candidate{Name: s.Name, Node: h})
				break
			}
		}
	}
	return out
}

// MappingPointer turns a discriminator mapping target into a reference:
// a target without "/" or "#" is a bare schema name.
func MappingPointer(target string) string {
	if strings.ContainsAny(target, "/#") {
		return target
	}
	return pathutil.SchemaRef(target)
}

// memberName returns the name a reference member is selected by: the final
// token of its pointer, or the base name of the file it points at.
func memberName(member model.Handle) string {
	ref := member.Doc.Reference(member.ID)
	if ref == nil {
		return ""
	}
	docPart, fragment, _ := strings.Cut(ref.Pointer, "#")
	if fragment = strings.TrimSuffix(fragment, "/"); fragment != "" {
		last := fragment[strings.LastIndex(fragment, "/")+1:]
		return jsonpointer.Unescape(percentDecode(last))
	}
	base := path.Base(percentDecode(docPart))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// percentDecode undoes URI percent-encoding, leaving s as is when it is not
// valid encoding.
func percentDecode(s string) string {
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}
	return s
}
