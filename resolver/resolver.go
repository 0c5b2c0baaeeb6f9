package resolver

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oasvet/model"
	"github.com/erraggy/oasvet/oaserrors"
	"github.com/go-openapi/jsonpointer"
)

// DefaultMaxDepth is the maximum length of a reference chain (a reference
// whose target is itself a reference) before resolution gives up.
const DefaultMaxDepth = 100

const msgNotLoaded = "document not loaded"

// State is the resolution state of one Reference node.
type State uint8

const (
	// StateUnresolved means resolution has not succeeded yet. A reference into
	// a document that is not registered stays Unresolved so that it can be
	// retried once the document is fetched.
	StateUnresolved State = iota
	// StateResolved means the reference has a concrete target.
	StateResolved
	// StateRecursive means the target is an ancestor of the reference
	// (a tree schema, for instance). The target is valid; traversals must
	// not descend into it again.
	StateRecursive
	// StateFailed means the reference can never resolve: it is malformed,
	// points at nothing, points at the wrong kind of object, or loops.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateResolved:
		return "resolved"
	case StateRecursive:
		return "recursive"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result records the outcome of resolving one Reference node.
type Result struct {
	State  State
	Target model.Handle
	Err    error
}

// Ok reports whether the reference has a usable target.
func (r Result) Ok() bool {
	return r.State == StateResolved || r.State == StateRecursive
}

type memoKey struct {
	doc     *model.Document
	pointer string
	kind    model.Kind
}

type memoEntry struct {
	target model.Handle
	err    error
}

type interpretKey struct {
	node model.Handle
	kind model.Kind
}

// Resolver resolves $ref pointers against a set of registered documents.
//
// A Resolver holds the memo tables of one validation run and is not safe
// for concurrent use. It never performs I/O: external documents must be
// fetched by the caller and added with [Resolver.Register].
type Resolver struct {
	log      model.Logger
	maxDepth int

	docs       map[string]*model.Document
	memo       map[memoKey]memoEntry
	fragments  map[interpretKey]model.Handle
	results    map[model.Handle]Result
	inProgress []string
}

// New creates a Resolver.
func New(opts ...Option) (*Resolver, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("resolver: invalid options: %w", err)
	}
	return &Resolver{
		log:       cfg.logger,
		maxDepth:  cfg.maxDepth,
		docs:      make(map[string]*model.Document),
		memo:      make(map[memoKey]memoEntry),
		fragments: make(map[interpretKey]model.Handle),
		results:   make(map[model.Handle]Result),
	}, nil
}

// Register makes doc available to references whose document part resolves
// to uri. Registering a new document clears cached failures so that
// references waiting on it can be retried.
func (r *Resolver) Register(uri string, doc *model.Document) {
	r.docs[stripFragment(uri)] = doc
	for k, res := range r.results {
		if res.State == StateUnresolved {
			delete(r.results, k)
		}
	}
	r.log.Debug("registered document", "uri", uri)
}

// Document returns the document registered under uri.
func (r *Resolver) Document(uri string) (*model.Document, bool) {
	d, ok := r.docs[stripFragment(uri)]
	return d, ok
}

// Resolve resolves pointer, as written in a $ref found at from, to a node of
// kind expect. Chains of references are followed to their final target.
//
// Errors are *oaserrors.ReferenceError values whose Kind tells malformed
// pointers, unresolved targets, and cyclic chains apart.
func (r *Resolver) Resolve(pointer string, from model.Handle, expect model.Kind) (model.Handle, error) {
	docPart, fragment, err := splitPointer(pointer)
	if err != nil {
		return model.Handle{}, err
	}

	base := documentOf(from.Doc)
	target := base
	if docPart != "" {
		abs, err := resolveURI(baseURI(from.Doc), docPart)
		if err != nil {
			return model.Handle{}, &oaserrors.ReferenceError{Ref: pointer, Kind: oaserrors.RefMalformed, Message: "invalid document URI", Cause: err}
		}
		if base == nil || abs != stripFragment(base.URI()) {
			target = r.docs[abs]
			if target == nil {
				return model.Handle{}, &oaserrors.ReferenceError{Ref: pointer, Kind: oaserrors.RefUnresolved, Document: abs, Message: msgNotLoaded}
			}
		}
	}
	if target == nil {
		return model.Handle{}, &oaserrors.ReferenceError{Ref: pointer, Kind: oaserrors.RefUnresolved, Message: "no document to resolve against"}
	}

	tokens, canonical, err := parseFragment(pointer, fragment)
	if err != nil {
		return model.Handle{}, err
	}

	key := memoKey{doc: target, pointer: canonical, kind: expect}
	if e, ok := r.memo[key]; ok {
		return e.target, e.err
	}

	abs := stripFragment(target.URI()) + "#" + canonical
	if slices.Contains(r.inProgress, abs) {
		return model.Handle{}, &oaserrors.ReferenceError{
			Ref:      pointer,
			Kind:     oaserrors.RefCyclic,
			Document: target.URI(),
			Message:  "reference chain loops: " + strings.Join(append(slices.Clone(r.inProgress), abs), " -> "),
		}
	}
	if len(r.inProgress) >= r.maxDepth {
		return model.Handle{}, &oaserrors.ReferenceError{
			Ref:      pointer,
			Kind:     oaserrors.RefUnresolved,
			Document: target.URI(),
			Message:  "reference chain too deep",
			Cause:    &oaserrors.ResourceLimitError{ResourceType: "reference_depth", Limit: int64(r.maxDepth), Actual: int64(len(r.inProgress) + 1)},
		}
	}

	r.inProgress = append(r.inProgress, abs)
	h, err := r.walk(pointer, target, tokens, expect)
	r.inProgress = r.inProgress[:len(r.inProgress)-1]

	if err == nil || !isPending(err) {
		r.memo[key] = memoEntry{target: h, err: err}
	}
	r.log.Debug("resolved reference", "ref", pointer, "document", target.URI(), "kind", expect.String(), "ok", err == nil)
	return h, err
}

// walk descends the skeleton of doc token by token and types the landing
// node as expect, following a further reference if it lands on one.
func (r *Resolver) walk(pointer string, doc *model.Document, tokens []string, expect model.Kind) (model.Handle, error) {
	id := doc.Root()
	for i, tok := range tokens {
		next := doc.Child(id, tok)
		if next == model.NoNode {
			return model.Handle{}, &oaserrors.ReferenceError{
				Ref:      pointer,
				Kind:     oaserrors.RefUnresolved,
				Document: doc.URI(),
				Message:  fmt.Sprintf("no %q at /%s", tok, joinTokens(tokens[:i])),
			}
		}
		id = next
	}
	if id == model.NoNode {
		return model.Handle{}, &oaserrors.ReferenceError{Ref: pointer, Kind: oaserrors.RefUnresolved, Document: doc.URI(), Message: "document is empty"}
	}

	h := model.Handle{Doc: doc, ID: id}
	if h.Kind() == model.KindRaw {
		typed, ok := r.interpret(h, expect)
		if !ok {
			return model.Handle{}, &oaserrors.ReferenceError{
				Ref:      pointer,
				Kind:     oaserrors.RefUnresolved,
				Document: doc.URI(),
				Message:  "target cannot be read as a " + expect.String(),
			}
		}
		h = typed
	}

	if next := chained(h, expect); next != nil {
		return r.Resolve(next.Pointer, h, expect)
	}
	if h.Kind() != expect {
		return model.Handle{}, &oaserrors.ReferenceError{
			Ref:      pointer,
			Kind:     oaserrors.RefUnresolved,
			Document: doc.URI(),
			Message:  fmt.Sprintf("expected a %s, found a %s", expect, h.Kind()),
		}
	}
	return h, nil
}

// chained returns the reference carried by h when h is itself a reference
// standing in for an object of kind expect.
func chained(h model.Handle, expect model.Kind) *model.Reference {
	switch h.Kind() {
	case model.KindReference:
		if ref := h.Doc.Reference(h.ID); ref != nil && ref.Expect == expect {
			return ref
		}
	case model.KindSchema:
		if expect == model.KindSchema {
			ref, _ := h.Schema().(*model.Reference)
			return ref
		}
	}
	return nil
}

// interpret types a raw node as kind, building the fragment once.
func (r *Resolver) interpret(h model.Handle, kind model.Kind) (model.Handle, bool) {
	key := interpretKey{node: h, kind: kind}
	if typed, ok := r.fragments[key]; ok {
		return typed, typed.Valid()
	}
	frag, root := model.Interpret(h.Doc, h.ID, kind)
	typed := model.Handle{Doc: frag, ID: root}
	r.fragments[key] = typed
	r.log.Debug("interpreted raw node", "ref", h.Ref(), "kind", kind.String(), "nodes", frag.Len())
	return typed, typed.Valid()
}

// ResolveNode resolves the reference carried by node ref (a Reference
// Object, a $ref schema, or a path item $ref) and records its state.
// Results are cached per node.
func (r *Resolver) ResolveNode(ref model.Handle) Result {
	if res, ok := r.results[ref]; ok {
		return res
	}
	if !ref.Valid() {
		return Result{State: StateFailed, Err: &oaserrors.ReferenceError{Kind: oaserrors.RefUnresolved, Message: "invalid node"}}
	}
	reference := ref.Doc.Reference(ref.ID)
	if reference == nil {
		return Result{State: StateFailed, Err: &oaserrors.ReferenceError{Kind: oaserrors.RefUnresolved, Document: ref.Doc.URI(), Message: "node is not a reference"}}
	}

	target, err := r.Resolve(reference.Pointer, ref, reference.Expect)
	var res Result
	switch {
	case err != nil && isPending(err):
		res = Result{State: StateUnresolved, Err: err}
	case err != nil:
		res = Result{State: StateFailed, Err: err}
	case encloses(target, ref):
		res = Result{State: StateRecursive, Target: target}
	default:
		res = Result{State: StateResolved, Target: target}
	}
	r.results[ref] = res
	return res
}

// State returns the recorded state of a reference node, StateUnresolved if
// it has not been resolved yet.
func (r *Resolver) State(ref model.Handle) State {
	return r.results[ref].State
}

// Target resolves h through any references until it reaches a node that is
// not a reference. Non-reference handles are returned unchanged.
func (r *Resolver) Target(h model.Handle) (model.Handle, Result) {
	if !h.Valid() || h.Doc.Reference(h.ID) == nil {
		return h, Result{State: StateResolved, Target: h}
	}
	res := r.ResolveNode(h)
	return res.Target, res
}

// isPending reports whether err is the "document not loaded" failure that a
// later Register can cure.
func isPending(err error) bool {
	var re *oaserrors.ReferenceError
	return errors.As(err, &re) && re.Kind == oaserrors.RefUnresolved && re.Message == msgNotLoaded
}

// encloses reports whether target is an ancestor of ref, looking through
// fragment documents to the nodes they were interpreted from.
func encloses(target, ref model.Handle) bool {
	for h := ref; h.Valid(); h = h.Doc.Origin() {
		if h.Doc == target.Doc && h.Doc.IsAncestor(target.ID, h.ID) {
			return true
		}
		if !h.Doc.IsFragment() {
			break
		}
	}
	return false
}

func documentOf(d *model.Document) *model.Document {
	if d == nil {
		return nil
	}
	return d.Base()
}

func baseURI(d *model.Document) string {
	if d == nil {
		return ""
	}
	return d.URI()
}

func joinTokens(tokens []string) string {
	escaped := make([]string, len(tokens))
	for i, t := range tokens {
		escaped[i] = jsonpointer.Escape(t)
	}
	return strings.Join(escaped, "/")
}
