package resolver

import (
	"github.com/erraggy/oasvet/model"
	"github.com/erraggy/oasvet/oaserrors"
)

// Option configures a Resolver.
type Option func(*resolverConfig) error

type resolverConfig struct {
	logger   model.Logger
	maxDepth int
}

func applyOptions(opts ...Option) (*resolverConfig, error) {
	cfg := &resolverConfig{
		logger:   model.NopLogger{},
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLogger sets the logger. Every resolution is logged at debug level.
func WithLogger(l model.Logger) Option {
	return func(cfg *resolverConfig) error {
		if l == nil {
			l = model.NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}

// WithMaxDepth limits the length of reference chains.
// Default: DefaultMaxDepth
func WithMaxDepth(n int) Option {
	return func(cfg *resolverConfig) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "WithMaxDepth", Value: n, Message: "must be positive"}
		}
		cfg.maxDepth = n
		return nil
	}
}
