package mcpserver

import (
	"context"

	"github.com/erraggy/oasvet/validator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type validateInput struct {
	Spec       specInput `json:"spec"                    jsonschema:"The OAS document to validate"`
	Strict     *bool     `json:"strict,omitempty"        jsonschema:"Fail the run when any reference cannot be resolved"`
	NoWarnings *bool     `json:"no_warnings,omitempty"   jsonschema:"Suppress warnings from output"`
	MaxErrors  *int      `json:"max_errors,omitempty"    jsonschema:"Stop after this many errors (0 means no limit)"`
	Offset     int       `json:"offset,omitempty"        jsonschema:"Skip the first N errors/warnings (for pagination)"`
	Limit      int       `json:"limit,omitempty"         jsonschema:"Maximum number of errors/warnings to return (default 100). Applied independently to errors and warnings arrays."`
}

type validateIssue struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type validateOutput struct {
	Valid             bool            `json:"valid"`
	State             string          `json:"state"`
	Version           string          `json:"version"`
	Failure           string          `json:"failure,omitempty"`
	Halted            bool            `json:"halted,omitempty"`
	ErrorCount        int             `json:"error_count"`
	WarningCount      int             `json:"warning_count"`
	ExternalDocuments []string        `json:"external_documents,omitempty"`
	Returned          int             `json:"returned"`
	Errors            []validateIssue `json:"errors,omitempty"`
	Warnings          []validateIssue `json:"warnings,omitempty"`
}

func toValidateIssues(diags []validator.Diagnostic) []validateIssue {
	out := makeSlice[validateIssue](len(diags))
	for _, d := range diags {
		out = append(out, validateIssue{
			Path:    d.Path(),
			Kind:    string(d.Kind),
			Message: d.Message,
			Field:   d.Field,
		})
	}
	return out
}

func handleValidate(ctx context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	// Apply config defaults when input fields are omitted (nil).
	strict := cfg.ValidateStrict
	if input.Strict != nil {
		strict = *input.Strict
	}
	noWarnings := cfg.ValidateNoWarnings
	if input.NoWarnings != nil {
		noWarnings = *input.NoWarnings
	}
	maxErrors := cfg.ValidateMaxErrors
	if input.MaxErrors != nil {
		maxErrors = *input.MaxErrors
	}

	spec, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	result, err := validator.ValidateWithOptions(ctx,
		validator.WithTree(spec.tree, spec.uri),
		validator.WithStrictMode(strict),
		validator.WithIncludeWarnings(!noWarnings),
		validator.WithMaxErrors(maxErrors),
		validator.WithMaxExternalDocuments(cfg.MaxExternalDocuments),
		validator.WithFetcher(spec.fetcher()),
	)
	// A failed run still carries the diagnostics found before it stopped,
	// unless the input could not be modeled at all.
	if err != nil && (result == nil || result.Document == nil) {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{
		Valid:             result.Valid,
		State:             result.State.String(),
		Version:           result.Version,
		Halted:            result.Halted,
		ErrorCount:        result.ErrorCount,
		ExternalDocuments: result.ExternalDocuments,
	}
	if err != nil {
		output.Failure = sanitizeError(err)
	}

	output.Errors = paginate(toValidateIssues(result.Errors()), input.Offset, input.Limit)
	if !noWarnings {
		output.WarningCount = result.WarningCount
		output.Warnings = paginate(toValidateIssues(result.Warnings()), input.Offset, input.Limit)
	}
	output.Returned = len(output.Errors) + len(output.Warnings)

	return nil, output, nil
}
