package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChildListIndexes(t *testing.T) {
	doc := mustBuild(t, petstore)
	params := walk(doc, "paths", "/pets/{id}", "parameters")

	tests := []struct {
		token string
		found bool
	}{
		{"0", true},
		{"1", false},
		{"00", false},
		{"-1", false},
		{"", false},
		{"first", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.found, doc.Child(params, tt.token) != NoNode)
		})
	}

	assert.True(t, doc.IsList(params))
	assert.Equal(t, []string{"0"}, doc.Keys(params))
}

func TestNodesOf(t *testing.T) {
	doc := mustBuild(t, petstore)
	assert.Len(t, doc.NodesOf(KindOperation), 1)
	assert.Len(t, doc.NodesOf(KindResponse, KindReference), 5)
	assert.Empty(t, doc.NodesOf(KindCallback))
}

func TestHandle(t *testing.T) {
	doc := mustBuild(t, petstore)
	get := walk(doc, "paths", "/pets/{id}", "get")

	h := Handle{Doc: doc, ID: get}
	assert.True(t, h.Valid())
	assert.Equal(t, KindOperation, h.Kind())
	assert.Equal(t, h, doc.RootHandle().At(get))
	assert.Nil(t, h.Schema())

	var zero Handle
	assert.False(t, zero.Valid())
	assert.Equal(t, KindRaw, zero.Kind())
	assert.Equal(t, "", zero.Ref())
	assert.Nil(t, zero.Location())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "path item", KindPathItem.String())
	assert.Equal(t, "schema", KindSchema.String())
	assert.Equal(t, "unknown", Kind(200).String())
	assert.True(t, KindMap.IsContainer())
	assert.False(t, KindSchema.IsContainer())
}
