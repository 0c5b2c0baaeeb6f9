package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaDoc = `
openapi: 3.1.0
components:
  schemas:
    Empty: {}
    Anything: true
    Nothing: false
    Annotated:
      title: Free form
      description: accepts anything
    Pet:
      type: object
      required: [name]
      properties:
        name: {type: string}
        age: {type: integer, minimum: 0}
      additionalProperties: false
    PetRef:
      $ref: '#/components/schemas/Pet'
      description: a pet
    Union:
      oneOf:
        - $ref: '#/components/schemas/Cat'
        - $ref: '#/components/schemas/Dog'
      discriminator:
        propertyName: petType
        mapping:
          dog: '#/components/schemas/Dog'
          cat: Cat
    Mixed:
      $ref: '#/components/schemas/Base'
      type: object
      properties:
        extra: {type: string}
      allOf:
        - $ref: '#/components/schemas/A'
        - $ref: '#/components/schemas/B'
      oneOf:
        - $ref: '#/components/schemas/C'
      discriminator:
        propertyName: kind
    Base:
      type: object
      discriminator:
        propertyName: kind
      properties:
        kind: {type: string}
    Negated:
      not:
        type: string
`

func schemaNode(t *testing.T, doc *Document, name string) NodeID {
	t.Helper()
	id := walk(doc, "components", "schemas", name)
	require.NotEqual(t, NoNode, id, name)
	require.Equal(t, KindSchema, doc.Kind(id))
	return id
}

func TestSchemaVariantTags(t *testing.T) {
	doc := mustBuild(t, schemaDoc)

	tests := []struct {
		name string
		tag  SchemaTag
	}{
		{"Empty", TagUnconstrained},
		{"Anything", TagUnconstrained},
		{"Annotated", TagUnconstrained},
		{"Nothing", TagComposition},
		{"Pet", TagTyped},
		{"PetRef", TagReference},
		{"Union", TagComposition},
		{"Mixed", TagComposition},
		{"Base", TagTyped},
		{"Negated", TagComposition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := doc.Schema(schemaNode(t, doc, tt.name))
			require.NotNil(t, v)
			assert.Equal(t, tt.tag, v.Tag())
		})
	}
}

func TestSchemaUnconstrainedKeepsAnnotations(t *testing.T) {
	doc := mustBuild(t, schemaDoc)
	u, ok := doc.Schema(schemaNode(t, doc, "Annotated")).(*Unconstrained)
	require.True(t, ok)
	assert.Equal(t, "Free form", u.Title)
	assert.Equal(t, "accepts anything", u.Description)
}

func TestSchemaFalseIsNotEmpty(t *testing.T) {
	doc := mustBuild(t, schemaDoc)
	id := schemaNode(t, doc, "Nothing")
	assert.True(t, IsFalseSchema(doc, id))

	c, ok := doc.Schema(id).(*Composition)
	require.True(t, ok)
	assert.Equal(t, Not, c.Kind)
	require.Len(t, c.Members, 1)
	assert.True(t, doc.IsSynthetic(c.Members[0]))
	assert.Equal(t, TagUnconstrained, doc.Schema(c.Members[0]).Tag())
}

func TestSchemaTyped(t *testing.T) {
	doc := mustBuild(t, schemaDoc)
	typed, ok := doc.Schema(schemaNode(t, doc, "Pet")).(*Typed)
	require.True(t, ok)

	assert.Equal(t, []string{"object"}, typed.Types)
	assert.Equal(t, []string{"name"}, typed.Required)
	require.Len(t, typed.Properties, 2)
	assert.Equal(t, "age", typed.Properties[0].Name)
	assert.Equal(t, "name", typed.Properties[1].Name)
	assert.True(t, IsFalseSchema(doc, typed.AdditionalProperties))

	age, ok := doc.Schema(typed.Property("age")).(*Typed)
	require.True(t, ok)
	require.NotNil(t, age.Minimum)
	assert.InDelta(t, 0, *age.Minimum, 0)
}

func TestSchemaReferenceWithAnnotations(t *testing.T) {
	doc := mustBuild(t, schemaDoc)
	ref, ok := doc.Schema(schemaNode(t, doc, "PetRef")).(*Reference)
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/Pet", ref.Pointer)
	assert.Equal(t, KindSchema, ref.Expect)
	assert.Equal(t, "a pet", ref.Description)
}

func TestSchemaDiscriminatedUnion(t *testing.T) {
	doc := mustBuild(t, schemaDoc)
	c, ok := doc.Schema(schemaNode(t, doc, "Union")).(*Composition)
	require.True(t, ok)
	assert.Equal(t, OneOf, c.Kind)
	assert.Len(t, c.Members, 2)

	disc := doc.Discriminator(c.Discriminator)
	require.NotNil(t, disc)
	assert.Equal(t, "petType", disc.PropertyName)
	assert.Equal(t, []MappingEntry{
		{Value: "cat", Target: "Cat"},
		{Value: "dog", Target: "#/components/schemas/Dog"},
	}, disc.Mapping)

	target, found := disc.Target("dog")
	assert.True(t, found)
	assert.Equal(t, "#/components/schemas/Dog", target)
	_, found = disc.Target("bird")
	assert.False(t, found)
}

func TestSchemaMixedConcernsNormalizeToAllOf(t *testing.T) {
	doc := mustBuild(t, schemaDoc)
	id := schemaNode(t, doc, "Mixed")
	outer, ok := doc.Schema(id).(*Composition)
	require.True(t, ok)
	assert.Equal(t, AllOf, outer.Kind)
	assert.Equal(t, NoNode, outer.Discriminator, "discriminator belongs to oneOf")

	// ref, typed, allOf members spliced in place, then oneOf.
	require.Len(t, outer.Members, 5)

	ref, ok := doc.Schema(outer.Members[0]).(*Reference)
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/Base", ref.Pointer)
	assert.True(t, doc.IsSynthetic(outer.Members[0]))

	typed, ok := doc.Schema(outer.Members[1]).(*Typed)
	require.True(t, ok)
	assert.NotEqual(t, NoNode, typed.Property("extra"))
	assert.Equal(t, NoNode, typed.Discriminator)

	allOf := walk(doc, "components", "schemas", "Mixed", "allOf")
	assert.Equal(t, doc.Children(allOf), outer.Members[2:4])
	assert.False(t, doc.IsSynthetic(outer.Members[2]))

	oneOf, ok := doc.Schema(outer.Members[4]).(*Composition)
	require.True(t, ok)
	assert.Equal(t, OneOf, oneOf.Kind)
	assert.NotEqual(t, NoNode, oneOf.Discriminator)

	// Synthesized members report the location of the schema they came from
	// and are not reachable by walking.
	for _, m := range []NodeID{outer.Members[0], outer.Members[1], outer.Members[4]} {
		assert.Equal(t, doc.Location(id), doc.Location(m))
		assert.NotContains(t, doc.Children(id), m)
	}
}

func TestSchemaInheritanceBase(t *testing.T) {
	doc := mustBuild(t, schemaDoc)
	typed, ok := doc.Schema(schemaNode(t, doc, "Base")).(*Typed)
	require.True(t, ok)
	require.NotEqual(t, NoNode, typed.Discriminator)
	assert.Equal(t, "kind", doc.Discriminator(typed.Discriminator).PropertyName)
}

func TestDocumentReferences(t *testing.T) {
	doc := mustBuild(t, schemaDoc)
	var pointers []string
	for _, id := range doc.References() {
		pointers = append(pointers, doc.Reference(id).Pointer)
	}
	assert.ElementsMatch(t, []string{
		"#/components/schemas/Pet",
		"#/components/schemas/Cat",
		"#/components/schemas/Dog",
		"#/components/schemas/Base",
		"#/components/schemas/A",
		"#/components/schemas/B",
		"#/components/schemas/C",
	}, pointers)
}
