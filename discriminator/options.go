package discriminator

import "github.com/erraggy/oasvet/model"

// Option configures a Resolver.
type Option func(*discriminatorConfig) error

type discriminatorConfig struct {
	logger   model.Logger
	foldCase bool
}

func applyOptions(opts ...Option) (*discriminatorConfig, error) {
	cfg := &discriminatorConfig{logger: model.NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLogger sets the logger.
func WithLogger(l model.Logger) Option {
	return func(cfg *discriminatorConfig) error {
		if l == nil {
			l = model.NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}

// WithFoldCase enables a last-resort match that ignores case. The match is
// used only when exactly one member name folds to the same string as the
// value.
// Default: false
func WithFoldCase(enabled bool) Option {
	return func(cfg *discriminatorConfig) error {
		cfg.foldCase = enabled
		return nil
	}
}
