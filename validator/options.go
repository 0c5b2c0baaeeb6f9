package validator

import (
	"github.com/erraggy/oasvet/internal/options"
	"github.com/erraggy/oasvet/loader"
	"github.com/erraggy/oasvet/model"
	"github.com/erraggy/oasvet/oaserrors"
)

// Option is a function that configures a validation operation
type Option func(*validateConfig) error

// validateConfig holds configuration for a validation operation
type validateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	tree     any
	document *model.Document

	// uri is the base URI of a tree input
	uri string

	// Configuration options
	includeWarnings      bool
	strictMode           bool
	maxErrors            int
	maxExternalDocuments int
	maxRefDepth          int
	foldCase             bool
	fetcher              loader.FetchFunc
	fetcherSet           bool
	logger               model.Logger
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{
		includeWarnings:      true,
		maxExternalDocuments: DefaultMaxExternalDocuments,
		logger:               model.NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.RequireOneSource(
		options.Source{Option: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Option: "WithTree", Set: cfg.tree != nil},
		options.Source{Option: "WithDocument", Set: cfg.document != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path as the input source. References to
// other files are fetched relative to the file's directory unless
// WithFetcher overrides it.
func WithFilePath(path string) Option {
	return func(cfg *validateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithTree specifies an already parsed tree as the input source. uri is the
// document's base URI for relative references and may be empty.
func WithTree(tree any, uri string) Option {
	return func(cfg *validateConfig) error {
		if tree == nil {
			return &oaserrors.ConfigError{Option: "WithTree", Message: "tree must not be nil"}
		}
		cfg.tree = tree
		cfg.uri = uri
		return nil
	}
}

// WithDocument specifies a document model built by model.Build as the input
// source.
func WithDocument(doc *model.Document) Option {
	return func(cfg *validateConfig) error {
		if doc == nil {
			return &oaserrors.ConfigError{Option: "WithDocument", Message: "document must not be nil"}
		}
		cfg.document = doc
		return nil
	}
}

// WithIncludeWarnings enables or disables warning diagnostics
// Default: true
func WithIncludeWarnings(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.includeWarnings = enabled
		return nil
	}
}

// WithStrictMode makes any unresolved reference fail the run before the
// semantic checks
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithMaxErrors halts the run after n error diagnostics. Zero means no
// limit.
// Default: 0
func WithMaxErrors(n int) Option {
	return func(cfg *validateConfig) error {
		if n < 0 {
			return &oaserrors.ConfigError{Option: "WithMaxErrors", Value: n, Message: "must not be negative"}
		}
		cfg.maxErrors = n
		return nil
	}
}

// WithMaxExternalDocuments bounds the number of external documents fetched
// in one run.
// Default: DefaultMaxExternalDocuments
func WithMaxExternalDocuments(n int) Option {
	return func(cfg *validateConfig) error {
		if n < 0 {
			return &oaserrors.ConfigError{Option: "WithMaxExternalDocuments", Value: n, Message: "must not be negative"}
		}
		cfg.maxExternalDocuments = n
		return nil
	}
}

// WithMaxRefDepth bounds the length of reference chains.
// Default: resolver.DefaultMaxDepth
func WithMaxRefDepth(n int) Option {
	return func(cfg *validateConfig) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "WithMaxRefDepth", Value: n, Message: "must be positive"}
		}
		cfg.maxRefDepth = n
		return nil
	}
}

// WithFoldCase lets discriminator values in examples match member names
// ignoring case when exactly one member matches.
// Default: false
func WithFoldCase(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.foldCase = enabled
		return nil
	}
}

// WithFetcher sets the function used to retrieve external documents.
// A nil fetcher disables fetching.
func WithFetcher(fetch loader.FetchFunc) Option {
	return func(cfg *validateConfig) error {
		cfg.fetcher = fetch
		cfg.fetcherSet = true
		return nil
	}
}

// WithLogger sets the logger for the run
// Default: model.NopLogger
func WithLogger(l model.Logger) Option {
	return func(cfg *validateConfig) error {
		if l == nil {
			l = model.NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}
