package validator

import (
	"errors"
	"maps"
	"slices"

	"github.com/erraggy/oasvet/internal/issues"
	"github.com/erraggy/oasvet/model"
	"github.com/erraggy/oasvet/oaserrors"
	"github.com/erraggy/oasvet/resolver"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds the fetches running at once within one depth.
const maxConcurrentFetches = 8

// resolveReferences fetches the external documents the root document needs,
// one depth of the reference graph at a time, then resolves every reachable
// reference and reports the failures. It returns the number of references
// that could not be resolved.
func (r *run) resolveReferences() int {
	attempted := make(map[string]bool)
	fetched := 0

	for depth := 0; r.v.Fetcher != nil; depth++ {
		pending, _ := r.sweep(false)
		var next []string
		for _, uri := range pending {
			if !attempted[uri] {
				next = append(next, uri)
			}
		}
		if len(next) == 0 || r.ctx.Err() != nil {
			break
		}

		if room := r.v.MaxExternalDocuments - fetched; len(next) > room {
			limitErr := &oaserrors.ResourceLimitError{
				ResourceType: "external_documents",
				Limit:        int64(r.v.MaxExternalDocuments),
				Actual:       int64(fetched + len(next)),
			}
			for _, uri := range next[max(room, 0):] {
				attempted[uri] = true
				r.fetchErrs[uri] = limitErr
			}
			r.log.Warn("external document limit reached", "limit", r.v.MaxExternalDocuments, "skipped", len(next)-max(room, 0))
			next = next[:max(room, 0)]
			if len(next) == 0 {
				break
			}
		}

		for _, uri := range next {
			attempted[uri] = true
		}
		r.log.Debug("fetching external documents", "depth", depth, "count", len(next))
		r.fetch(next)
		fetched += len(next)
	}

	_, failures := r.sweep(true)
	return failures
}

// fetch retrieves uris concurrently and registers every document that could
// be fetched and built. A failed fetch does not stop the others.
func (r *run) fetch(uris []string) {
	trees := make([]any, len(uris))
	errs := make([]error, len(uris))

	g, ctx := errgroup.WithContext(r.ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, uri := range uris {
		g.Go(func() error {
			tree, err := r.v.Fetcher(ctx, uri)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				errs[i] = err
				return nil
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.log.Warn("fetching canceled", "error", err)
	}

	for i, uri := range uris {
		if errs[i] != nil {
			r.log.Warn("failed to fetch external document", "uri", uri, "error", errs[i])
			r.fetchErrs[uri] = errs[i]
			continue
		}
		if trees[i] == nil {
			continue
		}
		doc, err := model.BuildExternal(uri, trees[i], model.WithLogger(r.log))
		if err != nil {
			r.log.Warn("failed to model external document", "uri", uri, "error", err)
			r.fetchErrs[uri] = err
			continue
		}
		r.refs.Register(uri, doc)
		r.result.ExternalDocuments = append(r.result.ExternalDocuments, uri)
	}
}

// sweep resolves every reference reachable from the root document: the
// references of the root document itself, then those inside every target
// that lives elsewhere (an interpreted fragment or another document). It
// returns the sorted URIs of documents that are referenced but not
// registered and, when report is set, diagnoses each failed reference.
func (r *run) sweep(report bool) ([]string, int) {
	pending := make(map[string]bool)
	for _, uri := range r.refs.ExternalURIs(r.doc) {
		pending[uri] = true
	}

	root := r.doc.RootHandle()
	queue := []model.Handle{root}
	scopes := map[model.Handle]bool{root: true}
	done := make(map[model.Handle]bool)
	failures := 0

	for len(queue) > 0 {
		scope := queue[0]
		queue = queue[1:]
		for _, id := range scope.Doc.References() {
			if id != scope.ID && !scope.Doc.IsAncestor(scope.ID, id) {
				continue
			}
			ref := scope.At(id)
			if done[ref] {
				continue
			}
			done[ref] = true

			res := r.refs.ResolveNode(ref)
			switch res.State {
			case resolver.StateResolved, resolver.StateRecursive:
				t := res.Target
				if t.Doc != r.doc && !scopes[t] {
					scopes[t] = true
					queue = append(queue, t)
				}
			case resolver.StateUnresolved:
				failures++
				var re *oaserrors.ReferenceError
				if errors.As(res.Err, &re) && re.Document != "" {
					pending[re.Document] = true
				}
				if report {
					r.reportReference(ref, res.Err)
				}
			default:
				failures++
				if report {
					r.reportReference(ref, res.Err)
				}
			}
		}
	}
	return slices.Sorted(maps.Keys(pending)), failures
}

func (r *run) reportReference(ref model.Handle, err error) {
	pointer := ""
	if reference := ref.Doc.Reference(ref.ID); reference != nil {
		pointer = reference.Pointer
	}
	message := err.Error()
	var re *oaserrors.ReferenceError
	if errors.As(err, &re) && re.Document != "" {
		if fetchErr, ok := r.fetchErrs[re.Document]; ok {
			message += ": " + fetchErr.Error()
		}
	}
	r.addError(r.location(ref), referenceKind(err), message,
		withField("$ref"),
		withValue(pointer),
		r.specRef("reference-object"),
	)
}

// referenceKind maps a resolution error to its diagnostic kind.
func referenceKind(err error) issues.Kind {
	var re *oaserrors.ReferenceError
	if errors.As(err, &re) {
		switch re.Kind {
		case oaserrors.RefMalformed:
			return issues.KindMalformedPointer
		case oaserrors.RefCyclic:
			return issues.KindCyclicReferenceRejected
		}
	}
	return issues.KindUnresolvedReference
}
