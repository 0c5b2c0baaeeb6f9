package model

import (
	"errors"
	"testing"

	"github.com/erraggy/oasvet/loader"
	"github.com/erraggy/oasvet/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstore = `
openapi: 3.1.0
info:
  title: Petstore
  version: 1.0.0
  license:
    name: MIT
    identifier: MIT
  x-audience: public
paths:
  /pets/{id}:
    parameters:
      - $ref: '#/components/parameters/PetID'
    get:
      operationId: getPet
      responses:
        200:
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
        2XX:
          description: success
        default:
          $ref: '#/components/responses/Error'
        x-internal: true
  x-paths-meta:
    owner: pets-team
components:
  parameters:
    PetID:
      name: id
      in: path
      required: true
      schema:
        type: string
  responses:
    Error:
      description: error
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name:
          type: string
        tags:
          type: array
          items: true
x-shared:
  schema:
    type: object
    properties:
      code:
        type: integer
`

func mustBuild(t *testing.T, src string) *Document {
	t.Helper()
	tree, err := loader.Parse([]byte(src))
	require.NoError(t, err)
	doc, err := Build(tree, WithURI("file:///api.yaml"))
	require.NoError(t, err)
	return doc
}

// walk follows unescaped tokens from the root.
func walk(doc *Document, tokens ...string) NodeID {
	id := doc.Root()
	for _, tok := range tokens {
		id = doc.Child(id, tok)
	}
	return id
}

func TestBuildRootErrors(t *testing.T) {
	tests := []struct {
		name    string
		tree    any
		message string
	}{
		{"root is a list", []any{"a"}, "document root is not an object"},
		{"root is a scalar", "openapi: 3.1.0", "document root is not an object"},
		{"missing openapi", map[string]any{"info": map[string]any{}}, "missing required field 'openapi'"},
		{"openapi not a string", map[string]any{"openapi": 3.1}, "field 'openapi' must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Build(tt.tree, WithURI("file:///bad.yaml"))
			assert.Nil(t, doc)
			require.ErrorIs(t, err, oaserrors.ErrParse)

			var parseErr *oaserrors.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.message, parseErr.Message)
			assert.Equal(t, "file:///bad.yaml", parseErr.Path)
		})
	}
}

func TestBuildSkeleton(t *testing.T) {
	doc := mustBuild(t, petstore)

	assert.Equal(t, "file:///api.yaml", doc.URI())
	assert.Equal(t, KindDocument, doc.Kind(doc.Root()))
	assert.Equal(t, "3.1.0", doc.OpenAPI().OpenAPI)

	get := walk(doc, "paths", "/pets/{id}", "get")
	require.NotEqual(t, NoNode, get)
	assert.Equal(t, KindOperation, doc.Kind(get))
	assert.Equal(t, "getPet", doc.Operation(get).OperationID)
	assert.Equal(t, []string{"paths", "/pets/{id}", "get"}, doc.Location(get))
	assert.Equal(t, "/paths/~1pets~1{id}/get", doc.Pointer(get))
	assert.Equal(t, "file:///api.yaml#/paths/~1pets~1{id}/get", Handle{Doc: doc, ID: get}.Ref())

	item := doc.Parent(get)
	assert.Equal(t, KindPathItem, doc.Kind(item))
	assert.True(t, doc.IsAncestor(item, get))
	assert.False(t, doc.IsAncestor(get, item))

	paths := doc.Paths(doc.OpenAPI().Paths)
	require.Len(t, paths.Items, 1)
	assert.Equal(t, "/pets/{id}", paths.Items[0].Name)
	assert.Equal(t, KindRaw, doc.Kind(walk(doc, "paths", "x-paths-meta")))

	// Scalars have no nodes of their own.
	assert.Equal(t, NoNode, walk(doc, "info", "title"))
	assert.Empty(t, doc.Location(doc.Root()))
	assert.Equal(t, "", doc.Pointer(doc.Root()))
}

func TestBuildPayloads(t *testing.T) {
	doc := mustBuild(t, petstore)

	t.Run("info and license", func(t *testing.T) {
		info := doc.Info(doc.OpenAPI().Info)
		require.NotNil(t, info)
		assert.Equal(t, "Petstore", info.Title)
		assert.True(t, info.HasTitle)
		assert.Equal(t, map[string]any{"x-audience": "public"}, doc.Extensions(doc.OpenAPI().Info))

		lic := doc.License(info.License)
		require.NotNil(t, lic)
		assert.True(t, lic.HasIdentifier)
		assert.False(t, lic.HasURL)
	})

	t.Run("responses with integer keys", func(t *testing.T) {
		responses := doc.Responses(walk(doc, "paths", "/pets/{id}", "get", "responses"))
		require.NotNil(t, responses)
		require.Len(t, responses.Codes, 2)
		assert.Equal(t, "200", responses.Codes[0].Name)
		assert.Equal(t, "2XX", responses.Codes[1].Name)
		assert.Equal(t, KindResponse, doc.Kind(responses.Codes[0].ID))

		require.NotEqual(t, NoNode, responses.Default)
		assert.Equal(t, KindReference, doc.Kind(responses.Default))
		ref := doc.Reference(responses.Default)
		assert.Equal(t, "#/components/responses/Error", ref.Pointer)
		assert.Equal(t, KindResponse, ref.Expect)
	})

	t.Run("parameter reference in path item", func(t *testing.T) {
		item := doc.PathItem(walk(doc, "paths", "/pets/{id}"))
		require.Len(t, item.Parameters, 1)
		ref := doc.Reference(item.Parameters[0])
		require.NotNil(t, ref)
		assert.Equal(t, KindParameter, ref.Expect)
		assert.Equal(t, []MethodOperation{{Method: "get", ID: walk(doc, "paths", "/pets/{id}", "get")}}, item.Operations)
	})

	t.Run("parameter", func(t *testing.T) {
		p := doc.Parameter(walk(doc, "components", "parameters", "PetID"))
		require.NotNil(t, p)
		assert.Equal(t, "id", p.Name)
		assert.Equal(t, "path", p.In)
		assert.True(t, p.Required)
		assert.Equal(t, TagTyped, doc.Schema(p.Schema).Tag())
	})

	t.Run("components", func(t *testing.T) {
		comps := doc.Components(doc.OpenAPI().Components)
		require.NotNil(t, comps)
		assert.Equal(t, "Pet", comps.Schemas[0].Name)
		assert.Equal(t, "PetID", comps.Parameters[0].Name)
		assert.Equal(t, "Error", comps.Responses[0].Name)
	})

	t.Run("extension regions stay raw", func(t *testing.T) {
		id := walk(doc, "x-shared", "schema")
		assert.Equal(t, KindRaw, doc.Kind(id))
		assert.Nil(t, doc.Payload(id))
	})
}

func TestBuildMapWithNonStringKeys(t *testing.T) {
	tree := map[string]any{
		"openapi": "3.1.0",
		"paths": map[string]any{
			"/health": map[string]any{
				"get": map[string]any{
					"responses": map[any]any{
						204: map[string]any{"description": "no content"},
					},
				},
			},
		},
	}
	doc, err := Build(tree)
	require.NoError(t, err)

	responses := doc.Responses(walk(doc, "paths", "/health", "get", "responses"))
	require.NotNil(t, responses)
	require.Len(t, responses.Codes, 1)
	assert.Equal(t, "204", responses.Codes[0].Name)
}

func TestBuildPathItemReference(t *testing.T) {
	doc := mustBuild(t, `
openapi: 3.1.0
paths:
  /shared:
    $ref: 'common.yaml#/paths/~1shared'
`)
	id := walk(doc, "paths", "/shared")
	item := doc.PathItem(id)
	require.NotNil(t, item)
	require.NotEqual(t, NoNode, item.Ref)
	assert.True(t, doc.IsSynthetic(item.Ref))
	assert.Equal(t, doc.Location(id), doc.Location(item.Ref))
	assert.Equal(t, KindPathItem, doc.Reference(item.Ref).Expect)
	assert.Contains(t, doc.References(), item.Ref)
}

func TestBuildSecurity(t *testing.T) {
	doc := mustBuild(t, `
openapi: 3.1.0
security:
  - apiKey: []
    oauth: [read, write]
components:
  securitySchemes:
    apiKey:
      type: apiKey
      name: X-API-Key
      in: header
    oauth:
      type: oauth2
      flows:
        clientCredentials:
          tokenUrl: https://example.com/token
          scopes: {}
`)
	root := doc.OpenAPI()
	require.True(t, root.HasSecurity)
	require.Len(t, root.Security, 1)
	req := doc.SecurityRequirement(root.Security[0])
	assert.Equal(t, []Requirement{
		{Name: "apiKey", Scopes: []string{}},
		{Name: "oauth", Scopes: []string{"read", "write"}},
	}, req.Requirements)

	oauth := doc.SecurityScheme(walk(doc, "components", "securitySchemes", "oauth"))
	require.NotNil(t, oauth)
	assert.Equal(t, "oauth2", oauth.Type)
	assert.Equal(t, []string{"clientCredentials"}, doc.OAuthFlows(oauth.Flows).Flows)
}

func TestBuildExternal(t *testing.T) {
	t.Run("openapi document", func(t *testing.T) {
		doc, err := BuildExternal("file:///common.yaml", map[string]any{"openapi": "3.1.0"})
		require.NoError(t, err)
		assert.Equal(t, KindDocument, doc.Kind(doc.Root()))
		assert.Equal(t, "file:///common.yaml", doc.URI())
	})

	t.Run("plain schema file", func(t *testing.T) {
		tree := map[string]any{
			"Pet": map[string]any{"type": "object"},
		}
		doc, err := BuildExternal("file:///schemas.yaml", tree)
		require.NoError(t, err)
		assert.Equal(t, KindRaw, doc.Kind(doc.Root()))
		assert.Equal(t, KindRaw, doc.Kind(walk(doc, "Pet")))
		assert.Nil(t, doc.OpenAPI())
	})
}

func TestInterpret(t *testing.T) {
	doc := mustBuild(t, petstore)
	raw := walk(doc, "x-shared", "schema")
	require.Equal(t, KindRaw, doc.Kind(raw))

	frag, root := Interpret(doc, raw, KindSchema)
	require.NotEqual(t, NoNode, root)
	assert.True(t, frag.IsFragment())
	assert.Equal(t, Handle{Doc: doc, ID: raw}, frag.Origin())
	assert.Equal(t, doc.URI(), frag.URI())

	typed, ok := frag.Schema(root).(*Typed)
	require.True(t, ok)
	assert.Equal(t, []string{"object"}, typed.Types)

	code := typed.Property("code")
	require.NotEqual(t, NoNode, code)
	assert.Equal(t, []string{"x-shared", "schema", "properties", "code"}, frag.Location(code))
	assert.Equal(t, "/x-shared/schema/properties/code", frag.Pointer(code))

	// The source document is untouched.
	assert.Equal(t, KindRaw, doc.Kind(raw))

	// Nothing to type.
	_, root = Interpret(doc, NoNode, KindOperation)
	assert.Equal(t, NoNode, root)
}
