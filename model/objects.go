package model

import "github.com/erraggy/oasvet/internal/httputil"

// Extensible carries the x-* side-map of a typed object.
type Extensible struct {
	Extensions map[string]any
}

func (e *Extensible) extensions() map[string]any { return e.Extensions }

// OpenAPI is the payload of the document root.
type OpenAPI struct {
	Extensible
	OpenAPI           string
	Info              NodeID
	JSONSchemaDialect string
	Servers           []NodeID
	Paths             NodeID
	Webhooks          []Named
	Components        NodeID
	Security          []NodeID
	HasSecurity       bool
	Tags              []NodeID
	ExternalDocs      NodeID
}

// Info is the API metadata object.
type Info struct {
	Extensible
	Title          string
	HasTitle       bool
	Summary        string
	Description    string
	TermsOfService string
	Version        string
	HasVersion     bool
	License        NodeID
}

// License is the license metadata object. Identifier and URL are mutually
// exclusive.
type License struct {
	Extensible
	Name          string
	Identifier    string
	HasIdentifier bool
	URL           string
	HasURL        bool
}

// Server describes a target host.
type Server struct {
	Extensible
	URL         string
	Description string
}

// Paths maps path templates to path items.
type Paths struct {
	Extensible
	// Items is sorted by path template.
	Items []Named
}

// MethodOperation pairs an HTTP method with its operation node.
type MethodOperation struct {
	Method string
	ID     NodeID
}

// Methods lists the path item operation fields in canonical order.
var Methods = []string{
	httputil.MethodGet, httputil.MethodPut, httputil.MethodPost, httputil.MethodDelete,
	httputil.MethodOptions, httputil.MethodHead, httputil.MethodPatch, httputil.MethodTrace,
}

// PathItem describes the operations available on one path.
type PathItem struct {
	Extensible
	// Ref is a synthesized KindReference node when the path item has $ref.
	Ref         NodeID
	Summary     string
	Description string
	// Operations follows the order of [Methods].
	Operations []MethodOperation
	Servers    []NodeID
	// Parameters holds KindParameter or KindReference nodes.
	Parameters []NodeID
}

// Operation describes a single API operation on a path.
type Operation struct {
	Extensible
	Tags         []string
	Summary      string
	Description  string
	ExternalDocs NodeID
	OperationID  string
	// Parameters holds KindParameter or KindReference nodes.
	Parameters  []NodeID
	RequestBody NodeID
	Responses   NodeID
	Callbacks   []Named
	Deprecated  bool
	Security    []NodeID
	HasSecurity bool
	Servers     []NodeID
}

// Parameter describes a single operation parameter.
type Parameter struct {
	Extensible
	Name            string
	HasName         bool
	In              string
	HasIn           bool
	Description     string
	Required        bool
	Deprecated      bool
	AllowEmptyValue bool
	Style           string
	Explode         *bool
	AllowReserved   bool
	Schema          NodeID
	Content         []Named
	HasContent      bool
	Example         any
	HasExample      bool
	Examples        []Named
	HasExamples     bool
}

// Header follows the structure of a parameter without name and in.
type Header struct {
	Extensible
	Description string
	Required    bool
	Deprecated  bool
	Style       string
	Explode     *bool
	Schema      NodeID
	Content     []Named
	HasContent  bool
	Example     any
	HasExample  bool
	Examples    []Named
	HasExamples bool
}

// RequestBody describes a single request body.
type RequestBody struct {
	Extensible
	Description string
	Content     []Named
	HasContent  bool
	Required    bool
}

// MediaType provides schema and examples for one media type.
type MediaType struct {
	Extensible
	Schema      NodeID
	Example     any
	HasExample  bool
	Examples    []Named
	HasExamples bool
	Encoding    []Named
}

// Encoding describes the serialization of a single property.
type Encoding struct {
	Extensible
	ContentType   string
	Headers       []Named
	Style         string
	Explode       *bool
	AllowReserved bool
}

// Responses maps status code keys to responses.
type Responses struct {
	Extensible
	// Codes holds every non-default, non-extension key, sorted.
	Codes   []Named
	Default NodeID
}

// Response describes a single response from an operation.
type Response struct {
	Extensible
	Description    string
	HasDescription bool
	Headers        []Named
	Content        []Named
	Links          []Named
}

// Example holds an example value. Value and ExternalValue are mutually
// exclusive.
type Example struct {
	Extensible
	Summary          string
	Description      string
	Value            any
	HasValue         bool
	ExternalValue    string
	HasExternalValue bool
}

// Link describes a possible design-time link for a response.
// OperationRef and OperationID are mutually exclusive.
type Link struct {
	Extensible
	OperationRef    string
	HasOperationRef bool
	OperationID     string
	HasOperationID  bool
	Parameters      map[string]any
	RequestBody     any
	Description     string
	Server          NodeID
}

// Callback maps runtime expressions to path items.
type Callback struct {
	Extensible
	Expressions []Named
}

// Components holds reusable objects.
type Components struct {
	Extensible
	Schemas         []Named
	Responses       []Named
	Parameters      []Named
	Examples        []Named
	RequestBodies   []Named
	Headers         []Named
	SecuritySchemes []Named
	Links           []Named
	Callbacks       []Named
	PathItems       []Named
}

// SecurityScheme defines a security scheme usable by operations.
type SecurityScheme struct {
	Extensible
	Type             string
	Description      string
	Name             string
	In               string
	Scheme           string
	BearerFormat     string
	Flows            NodeID
	OpenIDConnectURL string
}

// OAuthFlows lists the configured OAuth flows by name.
type OAuthFlows struct {
	Extensible
	Flows []string
}

// Requirement is one scheme named in a security requirement.
type Requirement struct {
	Name   string
	Scopes []string
}

// SecurityRequirement lists the schemes required together.
type SecurityRequirement struct {
	// Requirements is sorted by scheme name.
	Requirements []Requirement
}

// Tag adds metadata to a tag name.
type Tag struct {
	Extensible
	Name         string
	Description  string
	ExternalDocs NodeID
}

// ExternalDocs references external documentation.
type ExternalDocs struct {
	Extensible
	Description string
	URL         string
}
