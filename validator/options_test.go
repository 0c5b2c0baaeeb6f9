package validator

import (
	"context"
	"testing"

	"github.com/erraggy/oasvet/model"
	"github.com/erraggy/oasvet/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWithFilePath_Validator tests the WithFilePath option function
func TestWithFilePath_Validator(t *testing.T) {
	cfg := &validateConfig{}
	opt := WithFilePath("test.yaml")
	err := opt(cfg)

	require.NoError(t, err)
	require.NotNil(t, cfg.filePath)
	assert.Equal(t, "test.yaml", *cfg.filePath)
}

// TestWithTree tests the WithTree option function
func TestWithTree(t *testing.T) {
	cfg := &validateConfig{}
	tree := map[string]any{"openapi": "3.1.0"}
	require.NoError(t, WithTree(tree, "file:///api.yaml")(cfg))
	assert.Equal(t, tree, cfg.tree)
	assert.Equal(t, "file:///api.yaml", cfg.uri)

	err := WithTree(nil, "")(&validateConfig{})
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}

// TestWithDocument tests the WithDocument option function
func TestWithDocument(t *testing.T) {
	err := WithDocument(nil)(&validateConfig{})
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}

// TestWithIncludeWarnings tests the WithIncludeWarnings option function
func TestWithIncludeWarnings(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
	}{
		{"enabled", true},
		{"disabled", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &validateConfig{}
			opt := WithIncludeWarnings(tt.enabled)
			err := opt(cfg)

			require.NoError(t, err)
			assert.Equal(t, tt.enabled, cfg.includeWarnings)
		})
	}
}

// TestWithStrictMode tests the WithStrictMode option function
func TestWithStrictMode(t *testing.T) {
	cfg := &validateConfig{}
	require.NoError(t, WithStrictMode(true)(cfg))
	assert.True(t, cfg.strictMode)
}

// TestLimitOptions tests the bounds enforced by the limit options
func TestLimitOptions(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		wantErr bool
	}{
		{"max errors zero", WithMaxErrors(0), false},
		{"max errors positive", WithMaxErrors(5), false},
		{"max errors negative", WithMaxErrors(-1), true},
		{"max external documents zero", WithMaxExternalDocuments(0), false},
		{"max external documents negative", WithMaxExternalDocuments(-3), true},
		{"max ref depth positive", WithMaxRefDepth(10), false},
		{"max ref depth zero", WithMaxRefDepth(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opt(&validateConfig{})
			if tt.wantErr {
				assert.ErrorIs(t, err, oaserrors.ErrConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// TestWithFetcher tests that setting a nil fetcher still counts as set
func TestWithFetcher(t *testing.T) {
	cfg := &validateConfig{}
	require.NoError(t, WithFetcher(nil)(cfg))
	assert.True(t, cfg.fetcherSet)
	assert.Nil(t, cfg.fetcher)
}

// TestWithLogger_Validator tests that a nil logger falls back to a no-op
func TestWithLogger_Validator(t *testing.T) {
	cfg := &validateConfig{}
	require.NoError(t, WithLogger(nil)(cfg))
	assert.Equal(t, model.NopLogger{}, cfg.logger)
}

// TestApplyOptions_Defaults tests the defaults of applyOptions
func TestApplyOptions_Defaults(t *testing.T) {
	cfg, err := applyOptions(WithFilePath("api.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.includeWarnings)
	assert.False(t, cfg.strictMode)
	assert.Equal(t, DefaultMaxExternalDocuments, cfg.maxExternalDocuments)
	assert.False(t, cfg.fetcherSet)
}

// TestApplyOptions_InputSources tests that exactly one input source is required
func TestApplyOptions_InputSources(t *testing.T) {
	_, err := applyOptions()
	assert.ErrorContains(t, err, "must specify an input source")

	_, err = applyOptions(WithFilePath("a.yaml"), WithTree(map[string]any{}, ""))
	assert.ErrorContains(t, err, "exactly one input source")
}

// TestValidateWithOptions_InvalidOption tests that option errors surface
// before any input is read
func TestValidateWithOptions_InvalidOption(t *testing.T) {
	result, err := ValidateWithOptions(context.Background(), WithFilePath("does-not-exist.yaml"), WithMaxErrors(-1))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}

// TestValidateWithOptions_MissingFile tests a file that cannot be read
func TestValidateWithOptions_MissingFile(t *testing.T) {
	result, err := ValidateWithOptions(context.Background(), WithFilePath("does-not-exist.yaml"))
	assert.Nil(t, result)
	assert.Error(t, err)
}
