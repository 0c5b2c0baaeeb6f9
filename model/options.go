package model

import (
	"net/url"

	"github.com/erraggy/oasvet/oaserrors"
)

// Option configures document building.
type Option func(*buildConfig) error

type buildConfig struct {
	uri    string
	logger Logger
}

func applyOptions(opts ...Option) (*buildConfig, error) {
	cfg := &buildConfig{logger: NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithURI sets the absolute URI the document is known by. Relative
// references in the document resolve against it.
func WithURI(uri string) Option {
	return func(cfg *buildConfig) error {
		if _, err := url.Parse(uri); err != nil {
			return &oaserrors.ConfigError{Option: "WithURI", Value: uri, Message: "invalid URI", Cause: err}
		}
		cfg.uri = uri
		return nil
	}
}

// WithLogger sets the logger used while building. A nil logger disables logging.
func WithLogger(l Logger) Option {
	return func(cfg *buildConfig) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}
