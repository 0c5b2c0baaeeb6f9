// Package httputil provides HTTP-related validation utilities and constants.
package httputil

import (
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code patterns (e.g., "2XX")

	// DefaultResponse is the responses key matching any status without a
	// more specific entry.
	DefaultResponse = "default"
)

// HTTP Method Constants
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// Wildcard boundary characters for validation
const (
	minWildcardBoundary = '1'
	maxWildcardBoundary = '5'
)

// ValidateStatusCode checks if a responses key is valid according to the
// OpenAPI specification.
// Valid values are:
//   - "default" for default response
//   - Extension fields starting with "x-"
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == DefaultResponse {
		return true
	}

	if strings.HasPrefix(code, "x-") {
		return true
	}

	return IsWildcard(code) || isNumericCode(code)
}

// IsWildcard reports whether code is a range key such as "2XX".
func IsWildcard(code string) bool {
	return len(code) == StatusCodeLength &&
		code[1] == WildcardChar && code[2] == WildcardChar &&
		code[0] >= minWildcardBoundary && code[0] <= maxWildcardBoundary
}

func isNumericCode(code string) bool {
	if len(code) != StatusCodeLength {
		return false
	}
	for i := 0; i < StatusCodeLength; i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	statusCode, err := strconv.Atoi(code)
	return err == nil && statusCode >= MinStatusCode && statusCode <= MaxStatusCode
}

// StatusKeys returns the responses keys that can match status, most
// specific first: the exact code, its range wildcard, then "default".
// A status outside 100-599 only matches "default".
func StatusKeys(status int) []string {
	if status < MinStatusCode || status > MaxStatusCode {
		return []string{DefaultResponse}
	}
	exact := strconv.Itoa(status)
	return []string{exact, exact[:1] + "XX", DefaultResponse}
}
