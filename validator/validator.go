package validator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/erraggy/oasvet/compose"
	"github.com/erraggy/oasvet/discriminator"
	"github.com/erraggy/oasvet/internal/issues"
	"github.com/erraggy/oasvet/internal/severity"
	"github.com/erraggy/oasvet/loader"
	"github.com/erraggy/oasvet/model"
	"github.com/erraggy/oasvet/oaserrors"
	"github.com/erraggy/oasvet/resolver"
)

// Severity indicates the severity level of a diagnostic
type Severity = severity.Severity

const (
	// SeverityError indicates a violation that makes the document invalid
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a construct that is legal but suspicious
	SeverityWarning = severity.SeverityWarning
)

const (
	// defaultDiagnosticCapacity is the initial capacity for the diagnostics slice
	defaultDiagnosticCapacity = 16

	// DefaultMaxExternalDocuments bounds how many external documents one run
	// fetches.
	DefaultMaxExternalDocuments = 100
)

// Diagnostic represents a single validation finding
type Diagnostic = issues.Issue

// State is a stage of a validation run. A run moves strictly forward:
// Loaded, ReferencesResolved, Validated, then Done or Failed.
type State uint8

const (
	// StateLoaded means the document model was built.
	StateLoaded State = iota
	// StateReferencesResolved means every reachable reference was resolved
	// or diagnosed.
	StateReferencesResolved
	// StateValidated means the semantic checks ran.
	StateValidated
	// StateDone means the run completed. The document may still carry
	// error diagnostics.
	StateDone
	// StateFailed means the run stopped early: the input could not be
	// modeled, a reference failed in strict mode, or the context was
	// canceled.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateReferencesResolved:
		return "references-resolved"
	case StateValidated:
		return "validated"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result contains the outcome of one validation run
type Result struct {
	// State is the final state of the run
	State State
	// Valid is true if the run completed without error diagnostics
	// (warnings are allowed)
	Valid bool
	// Diagnostics is sorted by location, severity, then kind
	Diagnostics []Diagnostic
	// ErrorCount is the number of error diagnostics
	ErrorCount int
	// WarningCount is the number of warning diagnostics
	WarningCount int
	// Halted is true if the run stopped before all checks ran, because of
	// WithMaxErrors or context cancellation
	Halted bool
	// Version is the document's openapi field
	Version string
	// ExternalDocuments lists the URIs of the fetched documents
	ExternalDocuments []string
	// Document is the validated document model, nil if the input could not
	// be modeled
	Document *model.Document
	// Duration is the time the run took
	Duration time.Duration
}

// Errors returns the error diagnostics.
func (r *Result) Errors() []Diagnostic {
	return r.filter(SeverityError)
}

// Warnings returns the warning diagnostics.
func (r *Result) Warnings() []Diagnostic {
	return r.filter(SeverityWarning)
}

func (r *Result) filter(s Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

// Validator validates OpenAPI 3.1 documents.
// A Validator holds configuration only; it is safe for concurrent use and
// each call to Validate is an independent run.
type Validator struct {
	// IncludeWarnings determines whether warning diagnostics are reported
	IncludeWarnings bool
	// StrictMode fails the run when any reference cannot be resolved
	StrictMode bool
	// MaxErrors halts the run after this many error diagnostics (0 means
	// no limit)
	MaxErrors int
	// MaxExternalDocuments bounds the number of fetched documents
	MaxExternalDocuments int
	// MaxRefDepth bounds reference chains (0 uses resolver.DefaultMaxDepth)
	MaxRefDepth int
	// FoldCase lets discriminator values match member names ignoring case
	FoldCase bool
	// Fetcher retrieves external documents. Nil disables fetching, and
	// references to other documents are reported as unresolved.
	Fetcher loader.FetchFunc
	// Logger receives debug output about the run
	Logger model.Logger
}

// New creates a new Validator instance with default settings
func New() *Validator {
	return &Validator{
		IncludeWarnings:      true,
		MaxExternalDocuments: DefaultMaxExternalDocuments,
		Logger:               model.NopLogger{},
	}
}

// ValidateWithOptions validates an OpenAPI document using functional options.
// This provides a flexible, extensible API that combines input source selection
// and configuration in a single function call.
//
// Example:
//
//	result, err := validator.ValidateWithOptions(ctx,
//	    validator.WithFilePath("openapi.yaml"),
//	    validator.WithStrictMode(true),
//	)
func ValidateWithOptions(ctx context.Context, opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}

	v := &Validator{
		IncludeWarnings:      cfg.includeWarnings,
		StrictMode:           cfg.strictMode,
		MaxErrors:            cfg.maxErrors,
		MaxExternalDocuments: cfg.maxExternalDocuments,
		MaxRefDepth:          cfg.maxRefDepth,
		FoldCase:             cfg.foldCase,
		Fetcher:              cfg.fetcher,
		Logger:               cfg.logger,
	}

	switch {
	case cfg.document != nil:
		return v.ValidateDocument(ctx, cfg.document)
	case cfg.tree != nil:
		return v.ValidateTree(ctx, cfg.tree, cfg.uri)
	}

	// cfg.filePath must be non-nil here (validated by applyOptions)
	if !cfg.fetcherSet {
		v.Fetcher = loader.FileFetcher(filepath.Dir(*cfg.filePath))
	}
	uri, err := loader.FileURI(*cfg.filePath)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid file path: %w", err)
	}
	tree, err := loader.ParseFile(*cfg.filePath)
	if err != nil {
		return nil, fmt.Errorf("validator: failed to load specification: %w", err)
	}
	return v.ValidateTree(ctx, tree, uri)
}

// ValidateTree models a parsed tree and validates it. uri is the document's
// base URI for relative references and may be empty.
//
// A tree that cannot be modeled ends the run in StateFailed with an error
// wrapping the *oaserrors.ParseError.
func (v *Validator) ValidateTree(ctx context.Context, tree any, uri string) (*Result, error) {
	start := time.Now()
	var buildOpts []model.Option
	buildOpts = append(buildOpts, model.WithLogger(v.logger()))
	if uri != "" {
		buildOpts = append(buildOpts, model.WithURI(uri))
	}
	doc, err := model.Build(tree, buildOpts...)
	if err != nil {
		result := &Result{State: StateFailed, Duration: time.Since(start)}
		return result, &oaserrors.ValidationError{Message: "document cannot be modeled", Cause: err}
	}
	return v.ValidateDocument(ctx, doc)
}

// ValidateDocument validates a document model built by model.Build.
func (v *Validator) ValidateDocument(ctx context.Context, doc *model.Document) (*Result, error) {
	start := time.Now()
	r, err := v.newRun(ctx, doc)
	if err != nil {
		return nil, err
	}

	err = r.execute()
	r.finish()
	r.result.Duration = time.Since(start)
	return r.result, err
}

func (v *Validator) logger() model.Logger {
	if v.Logger == nil {
		return model.NopLogger{}
	}
	return v.Logger
}

// run is the per-call state of one validation.
type run struct {
	v       *Validator
	ctx     context.Context
	log     model.Logger
	doc     *model.Document
	specURL string

	refs *resolver.Resolver
	comp *compose.Engine
	disc *discriminator.Resolver

	result     *Result
	fetchErrs  map[string]error
	errorCount int
	halted     bool
}

func (v *Validator) newRun(ctx context.Context, doc *model.Document) (*run, error) {
	log := v.logger()
	refOpts := []resolver.Option{resolver.WithLogger(log)}
	if v.MaxRefDepth > 0 {
		refOpts = append(refOpts, resolver.WithMaxDepth(v.MaxRefDepth))
	}
	refs, err := resolver.New(refOpts...)
	if err != nil {
		return nil, fmt.Errorf("validator: %w", err)
	}
	disc, err := discriminator.New(refs, discriminator.WithLogger(log), discriminator.WithFoldCase(v.FoldCase))
	if err != nil {
		return nil, fmt.Errorf("validator: %w", err)
	}

	version := ""
	if root := doc.OpenAPI(); root != nil {
		version = root.OpenAPI
	}
	return &run{
		v:       v,
		ctx:     ctx,
		log:     log,
		doc:     doc,
		specURL: fmt.Sprintf("https://spec.openapis.org/oas/v%s.html", version),
		refs:    refs,
		comp:    compose.New(refs),
		disc:    disc,
		result: &Result{
			State:       StateLoaded,
			Version:     version,
			Document:    doc,
			Diagnostics: make([]Diagnostic, 0, defaultDiagnosticCapacity),
		},
		fetchErrs: make(map[string]error),
	}, nil
}

// execute drives the state machine.
func (r *run) execute() error {
	r.refs.Register(r.doc.URI(), r.doc)

	failures := r.resolveReferences()
	if err := r.ctx.Err(); err != nil {
		return r.fail("validation canceled", err)
	}
	if r.v.StrictMode && failures > 0 {
		return r.fail(fmt.Sprintf("%d references could not be resolved", failures), nil)
	}
	r.transition(StateReferencesResolved)

	r.validate()
	if err := r.ctx.Err(); err != nil {
		return r.fail("validation canceled", err)
	}
	r.transition(StateValidated)
	r.transition(StateDone)
	return nil
}

func (r *run) transition(to State) {
	r.log.Debug("validation state", "from", r.result.State.String(), "to", to.String())
	r.result.State = to
}

func (r *run) fail(message string, cause error) error {
	r.transition(StateFailed)
	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		r.result.Halted = true
	}
	return &oaserrors.ValidationError{Message: message, ErrorCount: r.errorCount, Cause: cause}
}

// finish sorts diagnostics and computes counts.
func (r *run) finish() {
	res := r.result
	if !r.v.IncludeWarnings {
		kept := res.Diagnostics[:0]
		for _, d := range res.Diagnostics {
			if d.Severity != SeverityWarning {
				kept = append(kept, d)
			}
		}
		res.Diagnostics = kept
	}
	issues.Sort(res.Diagnostics)

	res.ErrorCount, res.WarningCount = 0, 0
	for _, d := range res.Diagnostics {
		if d.Severity == SeverityError {
			res.ErrorCount++
		} else {
			res.WarningCount++
		}
	}
	res.Halted = res.Halted || r.halted
	res.Valid = res.State == StateDone && res.ErrorCount == 0
}

// stopped reports whether checks must stop: the context is done or the
// error limit was reached.
func (r *run) stopped() bool {
	if r.halted {
		return true
	}
	if r.ctx.Err() != nil {
		r.halted = true
	}
	return r.halted
}

// location returns the diagnostic location of a node. Nodes outside the
// validated document are prefixed with their document URI.
func (r *run) location(h model.Handle) []string {
	loc := h.Location()
	if h.Doc == nil || h.Doc.Base() == r.doc {
		return loc
	}
	return append([]string{h.Doc.Base().URI()}, loc...)
}

// addError appends an error diagnostic and enforces the error limit.
func (r *run) addError(loc []string, kind issues.Kind, message string, opts ...func(*Diagnostic)) {
	if r.halted {
		return
	}
	d := Diagnostic{
		Location: loc,
		Kind:     kind,
		Message:  message,
		Severity: SeverityError,
	}
	for _, opt := range opts {
		opt(&d)
	}
	r.result.Diagnostics = append(r.result.Diagnostics, d)
	r.errorCount++
	if r.v.MaxErrors > 0 && r.errorCount >= r.v.MaxErrors {
		r.log.Debug("error limit reached", "limit", r.v.MaxErrors)
		r.halted = true
	}
}

// addWarning appends a warning diagnostic.
func (r *run) addWarning(loc []string, kind issues.Kind, message string, opts ...func(*Diagnostic)) {
	if r.halted {
		return
	}
	d := Diagnostic{
		Location: loc,
		Kind:     kind,
		Message:  message,
		Severity: SeverityWarning,
	}
	for _, opt := range opts {
		opt(&d)
	}
	r.result.Diagnostics = append(r.result.Diagnostics, d)
}

// withField sets the Field on a Diagnostic.
func withField(field string) func(*Diagnostic) {
	return func(d *Diagnostic) { d.Field = field }
}

// withValue sets the Value on a Diagnostic.
func withValue(value any) func(*Diagnostic) {
	return func(d *Diagnostic) { d.Value = value }
}

// withSpecRef sets the SpecRef on a Diagnostic.
func withSpecRef(ref string) func(*Diagnostic) {
	return func(d *Diagnostic) { d.SpecRef = ref }
}

// specRef links to a section of the OpenAPI specification.
func (r *run) specRef(anchor string) func(*Diagnostic) {
	return withSpecRef(r.specURL + "#" + anchor)
}

func extend(loc []string, segments ...string) []string {
	out := make([]string, 0, len(loc)+len(segments))
	out = append(out, loc...)
	return append(out, segments...)
}
