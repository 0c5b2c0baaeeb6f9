package model

// Kind identifies which OpenAPI object a node of the document arena models.
type Kind uint8

const (
	// KindRaw is a map or list outside any typed position (extensions,
	// examples, non-OpenAPI external files). Raw nodes can still be addressed
	// by a JSON Pointer and typed later with [Interpret].
	KindRaw Kind = iota
	KindDocument
	KindInfo
	KindLicense
	KindServer
	KindPaths
	KindPathItem
	KindOperation
	KindParameter
	KindRequestBody
	KindMediaType
	KindEncoding
	KindResponses
	KindResponse
	KindHeader
	KindExample
	KindLink
	KindCallback
	KindSchema
	KindDiscriminator
	KindSecurityScheme
	KindOAuthFlows
	KindSecurityRequirement
	KindComponents
	KindTag
	KindExternalDocs
	// KindReference is a Reference Object standing in a position that
	// accepts either a reference or a concrete object.
	KindReference
	// KindMap is a keyed container whose entries share one element kind.
	KindMap
	// KindList is an ordered container whose entries share one element kind.
	KindList
)

var kindNames = [...]string{
	KindRaw:                 "raw",
	KindDocument:            "document",
	KindInfo:                "info",
	KindLicense:             "license",
	KindServer:              "server",
	KindPaths:               "paths",
	KindPathItem:            "path item",
	KindOperation:           "operation",
	KindParameter:           "parameter",
	KindRequestBody:         "request body",
	KindMediaType:           "media type",
	KindEncoding:            "encoding",
	KindResponses:           "responses",
	KindResponse:            "response",
	KindHeader:              "header",
	KindExample:             "example",
	KindLink:                "link",
	KindCallback:            "callback",
	KindSchema:              "schema",
	KindDiscriminator:       "discriminator",
	KindSecurityScheme:      "security scheme",
	KindOAuthFlows:          "oauth flows",
	KindSecurityRequirement: "security requirement",
	KindComponents:          "components",
	KindTag:                 "tag",
	KindExternalDocs:        "external docs",
	KindReference:           "reference",
	KindMap:                 "map",
	KindList:                "list",
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsContainer reports whether nodes of this kind are Map or List containers.
func (k Kind) IsContainer() bool {
	return k == KindMap || k == KindList
}
