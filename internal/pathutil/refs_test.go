package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaRef(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Pet", "#/components/schemas/Pet"},
		{"a/b", "#/components/schemas/a~1b"},
		{"x~y", "#/components/schemas/x~0y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SchemaRef(tt.name))
		})
	}
}

func TestSecuritySchemeRef(t *testing.T) {
	assert.Equal(t, "#/components/securitySchemes/apiKey", SecuritySchemeRef("apiKey"))
}

func TestPointerTokens(t *testing.T) {
	assert.Equal(t, "#", PointerTokens())
	assert.Equal(t, "#/paths/~1pets~1{id}/get", PointerTokens("paths", "/pets/{id}", "get"))
}
