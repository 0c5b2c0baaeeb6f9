package model

// SchemaTag identifies the shape of a schema variant.
type SchemaTag uint8

const (
	// TagUnconstrained is an empty schema or the literal true.
	TagUnconstrained SchemaTag = iota
	// TagTyped carries type facets and no composition keyword.
	TagTyped
	// TagComposition carries exactly one composition keyword.
	TagComposition
	// TagReference is a $ref to another schema.
	TagReference
)

// String returns the tag name.
func (t SchemaTag) String() string {
	switch t {
	case TagUnconstrained:
		return "unconstrained"
	case TagTyped:
		return "typed"
	case TagComposition:
		return "composition"
	case TagReference:
		return "reference"
	default:
		return "unknown"
	}
}

// SchemaVariant is the payload of every KindSchema node. The set of
// implementations is closed: [*Unconstrained], [*Typed], [*Composition], and
// [*Reference].
type SchemaVariant interface {
	Tag() SchemaTag
	isSchemaVariant()
}

// Unconstrained accepts every instance. Annotation keywords are retained.
type Unconstrained struct {
	Extensible
	Title       string
	Description string
}

// Tag implements SchemaVariant.
func (*Unconstrained) Tag() SchemaTag { return TagUnconstrained }
func (*Unconstrained) isSchemaVariant() {}

// Named pairs a map key with the node stored under it.
type Named struct {
	Name string
	ID   NodeID
}

// Lookup returns the node stored under name, or NoNode.
func Lookup(entries []Named, name string) NodeID {
	for _, e := range entries {
		if e.Name == name {
			return e.ID
		}
	}
	return NoNode
}

// Typed is a schema constrained by facets and no composition keyword.
type Typed struct {
	Extensible
	Types       []string
	Format      string
	Title       string
	Description string
	Enum        []any
	Const       any
	HasConst    bool
	Deprecated  bool
	ReadOnly    bool
	WriteOnly   bool

	MultipleOf       *float64
	Maximum          *float64
	ExclusiveMaximum *float64
	Minimum          *float64
	ExclusiveMinimum *float64

	MaxLength *int
	MinLength *int
	Pattern   string

	Items       NodeID
	PrefixItems []NodeID
	Contains    NodeID
	MaxItems    *int
	MinItems    *int
	UniqueItems bool

	// Properties is sorted by name.
	Properties []Named
	// Required keeps the declared order.
	Required             []string
	AdditionalProperties NodeID
	PatternProperties    []Named
	PropertyNames        NodeID
	MaxProperties        *int
	MinProperties        *int

	// Discriminator is set when a base schema declares the discriminator
	// for the allOf inheritance pattern.
	Discriminator NodeID
}

// Tag implements SchemaVariant.
func (*Typed) Tag() SchemaTag { return TagTyped }
func (*Typed) isSchemaVariant() {}

// Property returns the schema node of a declared property, or NoNode.
func (t *Typed) Property(name string) NodeID {
	return Lookup(t.Properties, name)
}

// CompositionKind is one of the four composition keywords.
type CompositionKind uint8

const (
	AllOf CompositionKind = iota
	OneOf
	AnyOf
	Not
)

// String returns the keyword as written in a schema.
func (k CompositionKind) String() string {
	switch k {
	case AllOf:
		return "allOf"
	case OneOf:
		return "oneOf"
	case AnyOf:
		return "anyOf"
	case Not:
		return "not"
	default:
		return "unknown"
	}
}

// Composition combines member schemas with exactly one keyword. A not
// composition has exactly one member.
type Composition struct {
	Extensible
	Kind          CompositionKind
	Members       []NodeID
	Discriminator NodeID
	Title         string
	Description   string
}

// Tag implements SchemaVariant.
func (*Composition) Tag() SchemaTag { return TagComposition }
func (*Composition) isSchemaVariant() {}

// Reference is a $ref. It is both the payload of KindReference nodes and the
// reference variant of schema nodes.
type Reference struct {
	Extensible
	// Pointer is the $ref value as written.
	Pointer string
	// Expect is the kind the target must have.
	Expect      Kind
	Summary     string
	Description string
}

// Tag implements SchemaVariant.
func (*Reference) Tag() SchemaTag { return TagReference }
func (*Reference) isSchemaVariant() {}

// MappingEntry is one discriminator mapping, value to schema reference.
type MappingEntry struct {
	Value  string
	Target string
}

// Discriminator binds a property name to the variants of a polymorphic schema.
type Discriminator struct {
	Extensible
	PropertyName string
	// Mapping is sorted by Value.
	Mapping []MappingEntry
}

// Target returns the mapping target for value.
func (d *Discriminator) Target(value string) (string, bool) {
	for _, m := range d.Mapping {
		if m.Value == value {
			return m.Target, true
		}
	}
	return "", false
}

var (
	_ SchemaVariant = (*Unconstrained)(nil)
	_ SchemaVariant = (*Typed)(nil)
	_ SchemaVariant = (*Composition)(nil)
	_ SchemaVariant = (*Reference)(nil)
)
