package httputil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatusCode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"200", true},
		{"100", true},
		{"599", true},
		{"2XX", true},
		{"5XX", true},
		{"default", true},
		{"x-internal", true},
		{"099", false},
		{"600", false},
		{"6XX", false},
		{"0XX", false},
		{"2xx", false},
		{"20X", false},
		{"2000", false},
		{"20", false},
		{"abc", false},
		{"", false},
		{"Default", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateStatusCode(tt.code))
		})
	}
}

func TestIsWildcard(t *testing.T) {
	assert.True(t, IsWildcard("4XX"))
	assert.False(t, IsWildcard("404"))
	assert.False(t, IsWildcard("default"))
}

func TestStatusKeys(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   []string
	}{
		{"success", 200, []string{"200", "2XX", "default"}},
		{"not found", 404, []string{"404", "4XX", "default"}},
		{"informational", 101, []string{"101", "1XX", "default"}},
		{"below range", 99, []string{"default"}},
		{"above range", 600, []string{"default"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusKeys(tt.status))
		})
	}
}

func TestHTTPMethodConstants(t *testing.T) {
	for _, m := range []string{MethodGet, MethodPut, MethodPost, MethodDelete, MethodOptions, MethodHead, MethodPatch, MethodTrace} {
		assert.NotEmpty(t, m)
		assert.Equal(t, strings.ToLower(m), m)
	}
}
