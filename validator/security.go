package validator

import (
	"fmt"

	"github.com/erraggy/oasvet/internal/issues"
	"github.com/erraggy/oasvet/internal/pathutil"
	"github.com/erraggy/oasvet/model"
)

// checkSecurity reports security requirements naming a scheme that is not
// declared under components.securitySchemes.
func (r *run) checkSecurity() {
	var schemes []model.Named
	if root := r.doc.OpenAPI(); root != nil {
		if c := r.doc.Components(root.Components); c != nil {
			schemes = c.SecuritySchemes
		}
	}

	for _, id := range r.doc.NodesOf(model.KindSecurityRequirement) {
		if r.stopped() {
			return
		}
		req := r.doc.SecurityRequirement(id)
		if req == nil {
			continue
		}
		loc := r.location(model.Handle{Doc: r.doc, ID: id})
		for _, rq := range req.Requirements {
			if model.Lookup(schemes, rq.Name) != model.NoNode {
				continue
			}
			r.addError(extend(loc, rq.Name), issues.KindDanglingSecurityScheme,
				fmt.Sprintf("security requirement references undeclared scheme %q: %s does not exist", rq.Name, pathutil.SecuritySchemeRef(rq.Name)),
				withValue(rq.Name),
				r.specRef("security-requirement-object"),
			)
		}
	}
}

// checkLinks reports links whose operationId names no operation and whose
// operationRef does not resolve to an operation.
func (r *run) checkLinks() {
	links := r.doc.NodesOf(model.KindLink)
	if len(links) == 0 {
		return
	}

	operationIDs := make(map[string]bool)
	for _, id := range r.doc.NodesOf(model.KindOperation) {
		if op := r.doc.Operation(id); op != nil && op.OperationID != "" {
			operationIDs[op.OperationID] = true
		}
	}

	for _, id := range links {
		if r.stopped() {
			return
		}
		link := r.doc.Link(id)
		if link == nil {
			continue
		}
		h := model.Handle{Doc: r.doc, ID: id}
		loc := r.location(h)

		if link.HasOperationID && !operationIDs[link.OperationID] {
			r.addError(loc, issues.KindUnresolvedReference,
				fmt.Sprintf("link operationId %q does not match any operation", link.OperationID),
				withField("operationId"),
				withValue(link.OperationID),
				r.specRef("link-object"),
			)
		}
		if link.HasOperationRef {
			if _, err := r.refs.Resolve(link.OperationRef, h, model.KindOperation); err != nil {
				r.addError(loc, referenceKind(err), err.Error(),
					withField("operationRef"),
					withValue(link.OperationRef),
					r.specRef("link-object"),
				)
			}
		}
	}
}
