// This file implements path template coverage, parameter uniqueness, and
// response key checks for path items and operations.

package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oasvet/internal/httputil"
	"github.com/erraggy/oasvet/internal/issues"
	"github.com/erraggy/oasvet/internal/pathutil"
	"github.com/erraggy/oasvet/model"
)

// declaredParam is a parameter as declared in a parameters list: node is
// the list entry (possibly a reference) and p the resolved parameter.
type declaredParam struct {
	node model.Handle
	p    *model.Parameter
}

func (d declaredParam) key() string {
	return d.p.In + "\x00" + d.p.Name
}

// parameters resolves a parameters list. Entries whose reference cannot be
// resolved are skipped; the reference pass already reported them.
func (r *run) parameters(owner model.Handle, ids []model.NodeID) []declaredParam {
	out := make([]declaredParam, 0, len(ids))
	for _, id := range ids {
		node := owner.At(id)
		target, res := r.refs.Target(node)
		if !res.Ok() {
			continue
		}
		if p := target.Doc.Parameter(target.ID); p != nil {
			out = append(out, declaredParam{node: node, p: p})
		}
	}
	return out
}

// checkPaths validates every path item of the paths object.
func (r *run) checkPaths() {
	root := r.doc.OpenAPI()
	if root == nil {
		return
	}
	paths := r.doc.Paths(root.Paths)
	if paths == nil {
		return
	}

	for _, entry := range paths.Items {
		if r.stopped() {
			return
		}
		h := model.Handle{Doc: r.doc, ID: entry.ID}
		item := r.doc.PathItem(entry.ID)
		if item == nil {
			continue
		}
		loc := r.location(h)
		if item.Ref != model.NoNode {
			target, res := r.refs.Target(h.At(item.Ref))
			if !res.Ok() {
				continue
			}
			if item = target.Doc.PathItem(target.ID); item == nil {
				continue
			}
			h = target
		}
		r.checkPathItem(entry.Name, loc, h, item)
	}
}

func (r *run) checkPathItem(path string, loc []string, h model.Handle, item *model.PathItem) {
	template := pathutil.TemplateParams(path)
	shared := r.parameters(h, item.Parameters)
	r.checkDuplicateParams(shared)

	reported := make(map[model.Handle]bool)
	if len(item.Operations) == 0 {
		r.checkTemplateCoverage(path, loc, template, shared, reported)
		return
	}

	for _, op := range item.Operations {
		if r.stopped() {
			return
		}
		opHandle := h.At(op.ID)
		operation := h.Doc.Operation(op.ID)
		if operation == nil {
			continue
		}
		own := r.parameters(h, operation.Parameters)
		r.checkDuplicateParams(own)
		r.checkTemplateCoverage(path, r.location(opHandle), template, overrideParams(shared, own), reported)
	}
}

// overrideParams merges path-level and operation-level parameters. An
// operation parameter replaces the path-level one with the same name and
// location.
func overrideParams(shared, own []declaredParam) []declaredParam {
	out := make([]declaredParam, 0, len(shared)+len(own))
	for _, s := range shared {
		overridden := slices.ContainsFunc(own, func(o declaredParam) bool {
			return o.key() == s.key()
		})
		if !overridden {
			out = append(out, s)
		}
	}
	return append(out, own...)
}

// checkDuplicateParams reports every parameter repeating the name and
// location of an earlier entry in the same list.
func (r *run) checkDuplicateParams(params []declaredParam) {
	seen := make(map[string]bool, len(params))
	for _, d := range params {
		if !d.p.HasName || !d.p.HasIn {
			continue
		}
		if seen[d.key()] {
			r.addError(r.location(d.node), issues.KindDuplicateParameter,
				fmt.Sprintf("duplicate parameter %q in %s", d.p.Name, d.p.In),
				withField("name"),
				withValue(d.p.Name),
				r.specRef("parameter-object"),
			)
			continue
		}
		seen[d.key()] = true
	}
}

// checkTemplateCoverage checks that every template name has a required
// path parameter and that every path parameter appears in the template.
// Parameters are reported once per path item even when several operations
// share them.
func (r *run) checkTemplateCoverage(path string, loc []string, template []string, params []declaredParam, reported map[model.Handle]bool) {
	var missing []string
	for _, name := range template {
		i := slices.IndexFunc(params, func(d declaredParam) bool {
			return d.p.In == "path" && d.p.Name == name
		})
		if i < 0 {
			missing = append(missing, name)
			continue
		}
		d := params[i]
		if !d.p.Required && !reported[d.node] {
			reported[d.node] = true
			r.addError(r.location(d.node), issues.KindMissingRequiredField,
				fmt.Sprintf("path parameter %q must be required", name),
				withField("required"),
				withValue(name),
				r.specRef("parameter-object"),
			)
		}
	}
	if len(missing) > 0 {
		quoted := make([]string, len(missing))
		for i, name := range missing {
			quoted[i] = fmt.Sprintf("%q", name)
		}
		r.addError(loc, issues.KindUndeclaredPathParameter,
			fmt.Sprintf("path %q has template parameters with no in: path parameter: %s", path, strings.Join(quoted, ", ")),
			withValue(missing),
			r.specRef("path-templating"),
		)
	}

	for _, d := range params {
		if d.p.In != "path" || slices.Contains(template, d.p.Name) || reported[d.node] {
			continue
		}
		reported[d.node] = true
		r.addWarning(r.location(d.node), issues.KindUndeclaredPathParameter,
			fmt.Sprintf("path parameter %q does not appear in path %q", d.p.Name, path),
			withField("name"),
			withValue(d.p.Name),
			r.specRef("path-templating"),
		)
	}
}

// checkResponses validates the keys of every responses object.
func (r *run) checkResponses() {
	for _, id := range r.doc.NodesOf(model.KindResponses) {
		if r.stopped() {
			return
		}
		responses := r.doc.Responses(id)
		if responses == nil {
			continue
		}
		loc := r.location(model.Handle{Doc: r.doc, ID: id})
		for _, code := range responses.Codes {
			if httputil.ValidateStatusCode(code.Name) {
				continue
			}
			r.addError(extend(loc, code.Name), issues.KindInvalidResponseCodeKey,
				fmt.Sprintf("invalid response code key %q: expected 100-599, 1XX-5XX, or default", code.Name),
				withValue(code.Name),
				r.specRef("responses-object"),
			)
		}
	}
}

// MatchResponse returns the response of a responses object that applies to
// status, along with the key that matched. An exact code wins over its
// range wildcard ("4XX"), which wins over "default". The returned node may
// be a Reference node. It returns model.NoNode when nothing matches.
func MatchResponse(doc *model.Document, responses model.NodeID, status int) (model.NodeID, string) {
	rs := doc.Responses(responses)
	if rs == nil {
		return model.NoNode, ""
	}
	for _, key := range httputil.StatusKeys(status) {
		if key == httputil.DefaultResponse {
			if rs.Default != model.NoNode {
				return rs.Default, key
			}
			continue
		}
		if id := model.Lookup(rs.Codes, key); id != model.NoNode {
			return id, key
		}
	}
	return model.NoNode, ""
}
