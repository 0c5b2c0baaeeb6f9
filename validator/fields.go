package validator

import (
	"fmt"

	"github.com/erraggy/oasvet/internal/issues"
	"github.com/erraggy/oasvet/model"
)

// validate runs the semantic checks in one pass. Every check reports and
// continues; the pass stops only when the run is halted.
func (r *run) validate() {
	checks := []func(){
		r.checkDocument,
		r.checkFields,
		r.checkPaths,
		r.checkResponses,
		r.checkSecurity,
		r.checkLinks,
		r.checkSchemas,
		r.checkDiscriminators,
		r.checkExamples,
	}
	for _, check := range checks {
		if r.stopped() {
			return
		}
		check()
	}
}

// checkDocument validates the fields of the OpenAPI object and its info.
func (r *run) checkDocument() {
	root := r.doc.OpenAPI()
	if root == nil {
		return
	}

	info := r.doc.Info(root.Info)
	if info == nil {
		r.addError(nil, issues.KindMissingRequiredField, "document must have an info object",
			withField("info"),
			r.specRef("openapi-object"),
		)
	} else {
		loc := r.doc.Location(root.Info)
		r.required(loc, "title", info.HasTitle, "Info object must have a title", "info-object")
		r.required(loc, "version", info.HasVersion, "Info object must have a version", "info-object")
	}

	if root.Paths == model.NoNode && root.Components == model.NoNode && len(root.Webhooks) == 0 {
		r.addError(nil, issues.KindMissingRequiredField, "document must declare at least one of paths, components, or webhooks",
			withField("paths"),
			r.specRef("openapi-object"),
		)
	}
}

// checkFields validates required fields and mutually exclusive fields of
// every object in the document.
func (r *run) checkFields() {
	kinds := []model.Kind{
		model.KindExample, model.KindLicense, model.KindLink,
		model.KindParameter, model.KindHeader, model.KindMediaType,
		model.KindResponse, model.KindRequestBody,
		model.KindDiscriminator, model.KindSecurityScheme,
	}
	for _, id := range r.doc.NodesOf(kinds...) {
		if r.stopped() {
			return
		}
		loc := r.location(model.Handle{Doc: r.doc, ID: id})

		switch r.doc.Kind(id) {
		case model.KindExample:
			e := r.doc.Example(id)
			r.exclusive(loc, "value", "externalValue", e.HasValue, e.HasExternalValue, "example-object")

		case model.KindLicense:
			l := r.doc.License(id)
			r.exclusive(loc, "identifier", "url", l.HasIdentifier, l.HasURL, "license-object")

		case model.KindLink:
			l := r.doc.Link(id)
			r.exclusive(loc, "operationRef", "operationId", l.HasOperationRef, l.HasOperationID, "link-object")

		case model.KindParameter:
			p := r.doc.Parameter(id)
			r.required(loc, "name", p.HasName, "Parameter must have a name", "parameter-object")
			r.required(loc, "in", p.HasIn, "Parameter must have an in location", "parameter-object")
			r.exclusive(loc, "example", "examples", p.HasExample, p.HasExamples, "parameter-object")
			r.exclusive(loc, "schema", "content", p.Schema != model.NoNode, p.HasContent, "parameter-object")
			r.singleContent(loc, p.HasContent, p.Content, "parameter-object")

		case model.KindHeader:
			h := r.doc.Header(id)
			r.exclusive(loc, "example", "examples", h.HasExample, h.HasExamples, "header-object")
			r.exclusive(loc, "schema", "content", h.Schema != model.NoNode, h.HasContent, "header-object")
			r.singleContent(loc, h.HasContent, h.Content, "header-object")

		case model.KindMediaType:
			m := r.doc.MediaType(id)
			r.exclusive(loc, "example", "examples", m.HasExample, m.HasExamples, "media-type-object")

		case model.KindResponse:
			resp := r.doc.Response(id)
			r.required(loc, "description", resp.HasDescription, "Response must have a description", "response-object")

		case model.KindRequestBody:
			body := r.doc.RequestBody(id)
			r.required(loc, "content", body.HasContent, "Request body must have content", "request-body-object")

		case model.KindDiscriminator:
			d := r.doc.Discriminator(id)
			r.required(loc, "propertyName", d.PropertyName != "", "Discriminator must have a propertyName", "discriminator-object")

		case model.KindSecurityScheme:
			s := r.doc.SecurityScheme(id)
			r.required(loc, "type", s.Type != "", "Security scheme must have a type", "security-scheme-object")
		}
	}
}

func (r *run) required(loc []string, field string, present bool, message, anchor string) {
	if present {
		return
	}
	r.addError(loc, issues.KindMissingRequiredField, message,
		withField(field),
		r.specRef(anchor),
	)
}

func (r *run) exclusive(loc []string, a, b string, hasA, hasB bool, anchor string) {
	if !hasA || !hasB {
		return
	}
	r.addError(loc, issues.KindMutualExclusivityViolation,
		fmt.Sprintf("fields %q and %q are mutually exclusive", a, b),
		withField(b),
		r.specRef(anchor),
	)
}

// singleContent enforces that a parameter or header content map holds
// exactly one media type.
func (r *run) singleContent(loc []string, hasContent bool, content []model.Named, anchor string) {
	if !hasContent || len(content) == 1 {
		return
	}
	r.addError(loc, issues.KindMutualExclusivityViolation,
		fmt.Sprintf("content must contain exactly one media type, found %d", len(content)),
		withField("content"),
		withValue(len(content)),
		r.specRef(anchor),
	)
}
