// Package options provides shared utilities for option validation across packages.
package options

import (
	"strings"

	"github.com/erraggy/oasvet/oaserrors"
)

// Source is one way of supplying input, named by the option that sets it.
type Source struct {
	Option string
	Set    bool
}

// RequireOneSource returns a *oaserrors.ConfigError unless exactly one of
// sources is set. The error names the options that could be used, or the
// ones that were used together.
func RequireOneSource(sources ...Source) error {
	var all, set []string
	for _, s := range sources {
		all = append(all, s.Option)
		if s.Set {
			set = append(set, s.Option)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return &oaserrors.ConfigError{
			Message: "must specify an input source (use " + orList(all) + ")",
		}
	default:
		return &oaserrors.ConfigError{
			Option:  strings.Join(set, ", "),
			Message: "must specify exactly one input source",
		}
	}
}

// orList renders names as "a", "a or b", or "a, b, or c".
func orList(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}
