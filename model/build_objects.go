package model

import (
	"slices"
)

// named lists the entries of the map container stored under key.
func (b *builder) named(id NodeID, key string) []Named {
	mid := b.doc.Child(id, key)
	if mid == NoNode || b.doc.IsList(mid) {
		return nil
	}
	n := b.doc.get(mid)
	out := make([]Named, 0, len(n.keys))
	for i, k := range n.keys {
		out = append(out, Named{Name: k, ID: n.children[i]})
	}
	return out
}

// items lists the nodes of the list container stored under key.
func (b *builder) items(id NodeID, key string) []NodeID {
	lid := b.doc.Child(id, key)
	if lid == NoNode || !b.doc.IsList(lid) {
		return nil
	}
	return b.doc.Children(lid)
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

func str(m map[string]any, key string) string {
	s, _ := mapGetString(m, key)
	return s
}

// decode builds the typed payload of an object node from its raw map.
// Child node IDs are read back from the skeleton already built under id.
func (b *builder) decode(id NodeID, kind Kind, m map[string]any) any {
	switch kind {
	case KindDocument:
		o := &OpenAPI{
			OpenAPI:           str(m, "openapi"),
			Info:              b.doc.Child(id, "info"),
			JSONSchemaDialect: str(m, "jsonSchemaDialect"),
			Servers:           b.items(id, "servers"),
			Paths:             b.doc.Child(id, "paths"),
			Webhooks:          b.named(id, "webhooks"),
			Components:        b.doc.Child(id, "components"),
			Security:          b.items(id, "security"),
			HasSecurity:       hasKey(m, "security"),
			Tags:              b.items(id, "tags"),
			ExternalDocs:      b.doc.Child(id, "externalDocs"),
		}
		o.Extensions = extractExtensions(m)
		return o

	case KindInfo:
		o := &Info{
			Summary:        str(m, "summary"),
			Description:    str(m, "description"),
			TermsOfService: str(m, "termsOfService"),
			License:        b.doc.Child(id, "license"),
		}
		o.Title, o.HasTitle = mapGetString(m, "title")
		o.Version, o.HasVersion = mapGetString(m, "version")
		o.Extensions = extractExtensions(m)
		return o

	case KindLicense:
		o := &License{Name: str(m, "name")}
		o.Identifier, o.HasIdentifier = mapGetString(m, "identifier")
		o.URL, o.HasURL = mapGetString(m, "url")
		o.Extensions = extractExtensions(m)
		return o

	case KindServer:
		o := &Server{URL: str(m, "url"), Description: str(m, "description")}
		o.Extensions = extractExtensions(m)
		return o

	case KindPaths:
		o := &Paths{}
		for i, k := range b.doc.get(id).keys {
			if b.doc.Kind(b.doc.get(id).children[i]) == KindPathItem {
				o.Items = append(o.Items, Named{Name: k, ID: b.doc.get(id).children[i]})
			}
		}
		o.Extensions = extractExtensions(m)
		return o

	case KindPathItem:
		o := &PathItem{
			Summary:     str(m, "summary"),
			Description: str(m, "description"),
			Servers:     b.items(id, "servers"),
			Parameters:  b.items(id, "parameters"),
		}
		for _, method := range Methods {
			if op := b.doc.Child(id, method); op != NoNode {
				o.Operations = append(o.Operations, MethodOperation{Method: method, ID: op})
			}
		}
		if isRefMap(m) {
			o.Ref = b.synthesize(id, KindReference, newReference(m, KindPathItem))
		}
		o.Extensions = extractExtensions(m)
		return o

	case KindOperation:
		o := &Operation{
			Tags:         mapGetStringSlice(m, "tags"),
			Summary:      str(m, "summary"),
			Description:  str(m, "description"),
			ExternalDocs: b.doc.Child(id, "externalDocs"),
			OperationID:  str(m, "operationId"),
			Parameters:   b.items(id, "parameters"),
			RequestBody:  b.doc.Child(id, "requestBody"),
			Responses:    b.doc.Child(id, "responses"),
			Callbacks:    b.named(id, "callbacks"),
			Deprecated:   mapGetBool(m, "deprecated"),
			Security:     b.items(id, "security"),
			HasSecurity:  hasKey(m, "security"),
			Servers:      b.items(id, "servers"),
		}
		o.Extensions = extractExtensions(m)
		return o

	case KindParameter:
		o := &Parameter{
			Description:     str(m, "description"),
			Required:        mapGetBool(m, "required"),
			Deprecated:      mapGetBool(m, "deprecated"),
			AllowEmptyValue: mapGetBool(m, "allowEmptyValue"),
			Style:           str(m, "style"),
			Explode:         mapGetBoolPtr(m, "explode"),
			AllowReserved:   mapGetBool(m, "allowReserved"),
			Schema:          b.doc.Child(id, "schema"),
			Content:         b.named(id, "content"),
			HasContent:      hasKey(m, "content"),
			Examples:        b.named(id, "examples"),
			HasExamples:     hasKey(m, "examples"),
		}
		o.Name, o.HasName = mapGetString(m, "name")
		o.In, o.HasIn = mapGetString(m, "in")
		o.Example, o.HasExample = m["example"]
		o.Extensions = extractExtensions(m)
		return o

	case KindHeader:
		o := &Header{
			Description: str(m, "description"),
			Required:    mapGetBool(m, "required"),
			Deprecated:  mapGetBool(m, "deprecated"),
			Style:       str(m, "style"),
			Explode:     mapGetBoolPtr(m, "explode"),
			Schema:      b.doc.Child(id, "schema"),
			Content:     b.named(id, "content"),
			HasContent:  hasKey(m, "content"),
			Examples:    b.named(id, "examples"),
			HasExamples: hasKey(m, "examples"),
		}
		o.Example, o.HasExample = m["example"]
		o.Extensions = extractExtensions(m)
		return o

	case KindRequestBody:
		o := &RequestBody{
			Description: str(m, "description"),
			Content:     b.named(id, "content"),
			HasContent:  hasKey(m, "content"),
			Required:    mapGetBool(m, "required"),
		}
		o.Extensions = extractExtensions(m)
		return o

	case KindMediaType:
		o := &MediaType{
			Schema:      b.doc.Child(id, "schema"),
			Examples:    b.named(id, "examples"),
			HasExamples: hasKey(m, "examples"),
			Encoding:    b.named(id, "encoding"),
		}
		o.Example, o.HasExample = m["example"]
		o.Extensions = extractExtensions(m)
		return o

	case KindEncoding:
		o := &Encoding{
			ContentType:   str(m, "contentType"),
			Headers:       b.named(id, "headers"),
			Style:         str(m, "style"),
			Explode:       mapGetBoolPtr(m, "explode"),
			AllowReserved: mapGetBool(m, "allowReserved"),
		}
		o.Extensions = extractExtensions(m)
		return o

	case KindResponses:
		o := &Responses{}
		n := b.doc.get(id)
		for i, k := range n.keys {
			switch {
			case k == "default":
				o.Default = n.children[i]
			case isExtensionKey(k):
			default:
				o.Codes = append(o.Codes, Named{Name: k, ID: n.children[i]})
			}
		}
		o.Extensions = extractExtensions(m)
		return o

	case KindResponse:
		o := &Response{
			Headers: b.named(id, "headers"),
			Content: b.named(id, "content"),
			Links:   b.named(id, "links"),
		}
		o.Description, o.HasDescription = mapGetString(m, "description")
		o.Extensions = extractExtensions(m)
		return o

	case KindExample:
		o := &Example{Summary: str(m, "summary"), Description: str(m, "description")}
		o.Value, o.HasValue = m["value"]
		o.ExternalValue, o.HasExternalValue = mapGetString(m, "externalValue")
		o.Extensions = extractExtensions(m)
		return o

	case KindLink:
		o := &Link{
			Description: str(m, "description"),
			RequestBody: m["requestBody"],
			Server:      b.doc.Child(id, "server"),
		}
		o.OperationRef, o.HasOperationRef = mapGetString(m, "operationRef")
		o.OperationID, o.HasOperationID = mapGetString(m, "operationId")
		if params, ok := asMap(m["parameters"]); ok {
			o.Parameters = params
		}
		o.Extensions = extractExtensions(m)
		return o

	case KindCallback:
		o := &Callback{}
		n := b.doc.get(id)
		for i, k := range n.keys {
			if !isExtensionKey(k) {
				o.Expressions = append(o.Expressions, Named{Name: k, ID: n.children[i]})
			}
		}
		o.Extensions = extractExtensions(m)
		return o

	case KindComponents:
		o := &Components{
			Schemas:         b.named(id, "schemas"),
			Responses:       b.named(id, "responses"),
			Parameters:      b.named(id, "parameters"),
			Examples:        b.named(id, "examples"),
			RequestBodies:   b.named(id, "requestBodies"),
			Headers:         b.named(id, "headers"),
			SecuritySchemes: b.named(id, "securitySchemes"),
			Links:           b.named(id, "links"),
			Callbacks:       b.named(id, "callbacks"),
			PathItems:       b.named(id, "pathItems"),
		}
		o.Extensions = extractExtensions(m)
		return o

	case KindSecurityScheme:
		o := &SecurityScheme{
			Type:             str(m, "type"),
			Description:      str(m, "description"),
			Name:             str(m, "name"),
			In:               str(m, "in"),
			Scheme:           str(m, "scheme"),
			BearerFormat:     str(m, "bearerFormat"),
			Flows:            b.doc.Child(id, "flows"),
			OpenIDConnectURL: str(m, "openIdConnectUrl"),
		}
		o.Extensions = extractExtensions(m)
		return o

	case KindOAuthFlows:
		o := &OAuthFlows{}
		for _, k := range sortedKeys(m) {
			if !isExtensionKey(k) {
				o.Flows = append(o.Flows, k)
			}
		}
		o.Extensions = extractExtensions(m)
		return o

	case KindSecurityRequirement:
		o := &SecurityRequirement{}
		for _, k := range sortedKeys(m) {
			o.Requirements = append(o.Requirements, Requirement{Name: k, Scopes: mapGetStringSlice(m, k)})
		}
		return o

	case KindTag:
		o := &Tag{
			Name:         str(m, "name"),
			Description:  str(m, "description"),
			ExternalDocs: b.doc.Child(id, "externalDocs"),
		}
		o.Extensions = extractExtensions(m)
		return o

	case KindExternalDocs:
		o := &ExternalDocs{Description: str(m, "description"), URL: str(m, "url")}
		o.Extensions = extractExtensions(m)
		return o

	case KindDiscriminator:
		o := &Discriminator{PropertyName: str(m, "propertyName")}
		if mapping, ok := asMap(m["mapping"]); ok {
			for _, k := range sortedKeys(mapping) {
				if target, ok := mapping[k].(string); ok {
					o.Mapping = append(o.Mapping, MappingEntry{Value: k, Target: target})
				}
			}
		}
		o.Extensions = extractExtensions(m)
		return o
	}
	return nil
}

func isRefableKind(k Kind) bool {
	return slices.Contains(refableKinds, k)
}
