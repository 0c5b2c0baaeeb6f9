package resolver

import (
	"net/url"
	"strings"

	"github.com/erraggy/oasvet/oaserrors"
	"github.com/go-openapi/jsonpointer"
)

// splitPointer splits a $ref into its document part and its (still
// percent-encoded) fragment.
func splitPointer(pointer string) (docPart, fragment string, err error) {
	if pointer == "" {
		return "", "", &oaserrors.ReferenceError{Ref: pointer, Kind: oaserrors.RefMalformed, Message: "empty reference"}
	}
	docPart, fragment, _ = strings.Cut(pointer, "#")
	return docPart, fragment, nil
}

// parseFragment decodes a JSON Pointer fragment into unescaped tokens and a
// canonical escaped form used as the memo key.
func parseFragment(pointer, fragment string) ([]string, string, error) {
	decoded, err := url.PathUnescape(fragment)
	if err != nil {
		return nil, "", &oaserrors.ReferenceError{Ref: pointer, Kind: oaserrors.RefMalformed, Message: "invalid percent-encoding", Cause: err}
	}
	if decoded == "" {
		return nil, "", nil
	}
	if decoded[0] != '/' {
		return nil, "", &oaserrors.ReferenceError{Ref: pointer, Kind: oaserrors.RefUnresolved, Message: "plain-name fragments are not supported"}
	}
	for i := 0; i < len(decoded); i++ {
		if decoded[i] != '~' {
			continue
		}
		if i+1 >= len(decoded) || (decoded[i+1] != '0' && decoded[i+1] != '1') {
			return nil, "", &oaserrors.ReferenceError{Ref: pointer, Kind: oaserrors.RefMalformed, Message: "'~' must be followed by '0' or '1'"}
		}
	}

	p, err := jsonpointer.New(decoded)
	if err != nil {
		return nil, "", &oaserrors.ReferenceError{Ref: pointer, Kind: oaserrors.RefMalformed, Cause: err}
	}
	tokens := p.DecodedTokens()
	return tokens, "/" + joinTokens(tokens), nil
}

// resolveURI resolves ref against base and drops any fragment.
func resolveURI(base, ref string) (string, error) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	if base == "" {
		refURL.Fragment = ""
		return refURL.String(), nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	abs := baseURL.ResolveReference(refURL)
	abs.Fragment = ""
	return abs.String(), nil
}

func stripFragment(uri string) string {
	before, _, _ := strings.Cut(uri, "#")
	return before
}
