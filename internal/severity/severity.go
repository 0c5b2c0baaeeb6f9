// Package severity provides the severity levels attached to diagnostics
// produced by the validator, resolver, and discriminator packages.
//
// The levels are ordered so that sorting ascending places errors first:
// Error < Warning
package severity

// Severity indicates how serious a diagnostic is.
type Severity int

const (
	// SeverityError indicates a violation that makes the document invalid.
	SeverityError Severity = iota

	// SeverityWarning indicates a construct that is legal but almost certainly
	// not what the author meant (for example an inline schema under a
	// discriminator, which can never be selected).
	SeverityWarning
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so severities render as
// "error"/"warning" in JSON and YAML reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
