package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/oasvet"
	"github.com/erraggy/oasvet/internal/pathutil"
	"github.com/erraggy/oasvet/loader"
	"github.com/erraggy/oasvet/model"
	"github.com/erraggy/oasvet/validator"
)

// Streams holds the standard streams a command reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's standard streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Strict      bool
	NoWarnings  bool
	Quiet       bool
	Verbose     bool
	AllowRemote bool
	MaxErrors   int
	Format      string
	Color       string
	Output      string
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.BoolVar(&flags.Strict, "strict", false, "fail when any $ref cannot be resolved, before the semantic checks run")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress warning messages (only show errors)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log reference resolution and state transitions to stderr")
	fs.BoolVar(&flags.AllowRemote, "allow-remote", false, "fetch http and https $ref targets")
	fs.IntVar(&flags.MaxErrors, "max-errors", 0, "stop after this many errors (0 means no limit)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Color, "color", ColorAuto, "color text output: auto, always, or never")
	fs.StringVar(&flags.Output, "o", "", "write the report to this file instead of the terminal")
	fs.StringVar(&flags.Output, "output", "", "write the report to this file instead of the terminal")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasvet validate [flags] <file|url|->\n\n")
		Writef(fs.Output(), "Validate an OpenAPI 3.1 document: resolve its references, then check schema composition,\n")
		Writef(fs.Output(), "discriminators, path parameters, responses, and security requirements.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  Human-readable text output\n")
		Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasvet validate openapi.yaml\n")
		Writef(fs.Output(), "  oasvet validate --strict --allow-remote https://example.com/api/openapi.yaml\n")
		Writef(fs.Output(), "  oasvet validate --no-warnings --max-errors 20 openapi.json\n")
		Writef(fs.Output(), "  cat openapi.yaml | oasvet validate -q -\n")
		Writef(fs.Output(), "  oasvet validate --format json openapi.yaml | jq '.valid'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Validation successful\n")
		Writef(fs.Output(), "  1    Validation failed with errors\n")
		Writef(fs.Output(), "  2    The command could not run (bad flags, unreadable input)\n")
	}

	return fs, flags
}

// validateReport is the structured (json/yaml) form of a validation run.
type validateReport struct {
	Specification     string                 `json:"specification" yaml:"specification"`
	Valid             bool                   `json:"valid" yaml:"valid"`
	State             string                 `json:"state" yaml:"state"`
	Version           string                 `json:"version,omitempty" yaml:"version,omitempty"`
	Failure           string                 `json:"failure,omitempty" yaml:"failure,omitempty"`
	Halted            bool                   `json:"halted,omitempty" yaml:"halted,omitempty"`
	ErrorCount        int                    `json:"errorCount" yaml:"errorCount"`
	WarningCount      int                    `json:"warningCount" yaml:"warningCount"`
	ExternalDocuments []string               `json:"externalDocuments,omitempty" yaml:"externalDocuments,omitempty"`
	Diagnostics       []validator.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// HandleValidate executes the validate command. It returns
// ErrValidationFailed when the document was validated and found invalid.
func HandleValidate(ctx context.Context, args []string, streams Streams) error {
	fs, flags := SetupValidateFlags()
	fs.SetOutput(streams.Err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path, URL, or '-' for stdin")
	}

	specPath := fs.Arg(0)

	// Validate flags early to fail fast before expensive operations
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if err := ValidateColorMode(flags.Color); err != nil {
		return err
	}

	out := streams.Out
	if flags.Format == FormatText {
		// Text reports go to stderr to keep stdout free for pipelines.
		out = streams.Err
	}
	if flags.Output != "" {
		path, err := pathutil.SanitizeOutputPath(flags.Output)
		if err != nil {
			return err
		}
		f, err := os.Create(path) //nolint:gosec // path sanitized above
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		out = f
	}

	opts := []validator.Option{
		validator.WithStrictMode(flags.Strict),
		validator.WithIncludeWarnings(!flags.NoWarnings),
		validator.WithMaxErrors(flags.MaxErrors),
	}
	if flags.Verbose {
		handler := slog.NewTextHandler(streams.Err, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, validator.WithLogger(model.NewSlogAdapter(slog.New(handler))))
	}
	source, err := sourceOptions(ctx, specPath, flags.AllowRemote, streams.In)
	if err != nil {
		return err
	}
	opts = append(opts, source...)

	startTime := time.Now()
	result, err := validator.ValidateWithOptions(ctx, opts...)
	if err != nil && (result == nil || result.Document == nil) {
		return fmt.Errorf("validating %s: %w", FormatSpecPath(specPath), err)
	}
	totalTime := time.Since(startTime)

	var failure string
	if err != nil {
		failure = err.Error()
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		report := validateReport{
			Specification:     FormatSpecPath(specPath),
			Valid:             result.Valid,
			State:             result.State.String(),
			Version:           result.Version,
			Failure:           failure,
			Halted:            result.Halted,
			ErrorCount:        result.ErrorCount,
			WarningCount:      result.WarningCount,
			ExternalDocuments: result.ExternalDocuments,
			Diagnostics:       result.Diagnostics,
		}
		if report.Diagnostics == nil {
			report.Diagnostics = []validator.Diagnostic{}
		}
		if err := OutputStructured(out, report, flags.Format); err != nil {
			return err
		}
	} else if !flags.Quiet {
		color := flags.Output == "" && UseColor(flags.Color, out)
		writeTextReport(out, specPath, result, failure, totalTime, color)
	}

	if !result.Valid {
		return ErrValidationFailed
	}
	return nil
}

// sourceOptions selects the input source and the fetcher for its external
// documents. File references resolve next to the input file; remote
// references are only fetched when allowRemote is set.
func sourceOptions(ctx context.Context, specPath string, allowRemote bool, stdin io.Reader) ([]validator.Option, error) {
	var httpFetch loader.FetchFunc
	if allowRemote {
		httpFetch = loader.HTTPFetcher(nil, oasvet.UserAgent())
	}

	switch {
	case specPath == StdinFilePath:
		data, err := io.ReadAll(io.LimitReader(stdin, loader.MaxFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		if int64(len(data)) > loader.MaxFileSize {
			return nil, fmt.Errorf("stdin exceeds the maximum document size of %d bytes", loader.MaxFileSize)
		}
		tree, err := loader.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing stdin: %w", err)
		}
		// Relative references in stdin resolve against the working directory.
		uri, err := loader.FileURI(StdinFilePath)
		if err != nil {
			return nil, err
		}
		return []validator.Option{
			validator.WithTree(tree, uri),
			validator.WithFetcher(loader.Mux(loader.FileFetcher("."), httpFetch)),
		}, nil

	case strings.HasPrefix(specPath, "http://") || strings.HasPrefix(specPath, "https://"):
		tree, err := loader.HTTPFetcher(nil, oasvet.UserAgent())(ctx, specPath)
		if err != nil {
			return nil, err
		}
		return []validator.Option{
			validator.WithTree(tree, specPath),
			validator.WithFetcher(loader.Mux(nil, httpFetch)),
		}, nil

	default:
		return []validator.Option{
			validator.WithFilePath(specPath),
			validator.WithFetcher(loader.Mux(loader.FileFetcher(filepath.Dir(specPath)), httpFetch)),
		}, nil
	}
}

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
	ansiReset  = "\x1b[0m"
)

func paint(s, code string, color bool) string {
	if !color {
		return s
	}
	return code + s + ansiReset
}

func writeTextReport(w io.Writer, specPath string, result *validator.Result, failure string, totalTime time.Duration, color bool) {
	Writef(w, "OpenAPI Specification Validator\n")
	Writef(w, "================================\n\n")
	Writef(w, "oasvet version: %s\n", oasvet.Version())
	Writef(w, "Specification: %s\n", FormatSpecPath(specPath))
	Writef(w, "OAS Version: %s\n", result.Version)
	Writef(w, "State: %s\n", result.State)
	if len(result.ExternalDocuments) > 0 {
		Writef(w, "External Documents: %d\n", len(result.ExternalDocuments))
	}
	Writef(w, "Total Time: %v\n\n", totalTime)

	if errs := result.Errors(); len(errs) > 0 {
		Writef(w, "Errors (%d):\n", result.ErrorCount)
		for _, e := range errs {
			Writef(w, "  %s\n", formatDiagnostic(e, color))
		}
		Writef(w, "\n")
	}

	if warnings := result.Warnings(); len(warnings) > 0 {
		Writef(w, "Warnings (%d):\n", result.WarningCount)
		for _, warning := range warnings {
			Writef(w, "  %s\n", formatDiagnostic(warning, color))
		}
		Writef(w, "\n")
	}

	if failure != "" {
		Writef(w, "%s\n", paint("Run failed: "+failure, ansiRed, color))
	}
	if result.Halted {
		Writef(w, "Validation stopped early; more problems may remain\n")
	}

	if result.Valid {
		msg := "✓ Validation passed"
		if result.WarningCount > 0 {
			msg += fmt.Sprintf(" with %d warning(s)", result.WarningCount)
		}
		Writef(w, "%s\n", paint(msg, ansiGreen, color))
		return
	}
	msg := fmt.Sprintf("✗ Validation failed: %d error(s)", result.ErrorCount)
	if result.WarningCount > 0 {
		msg += fmt.Sprintf(", %d warning(s)", result.WarningCount)
	}
	Writef(w, "%s\n", paint(msg, ansiRed, color))
}

// formatDiagnostic renders d like its String method, coloring the severity
// symbol.
func formatDiagnostic(d validator.Diagnostic, color bool) string {
	s := d.String()
	if !color {
		return s
	}
	switch d.Severity {
	case validator.SeverityError:
		return paint("✗", ansiRed, true) + strings.TrimPrefix(s, "✗")
	case validator.SeverityWarning:
		return paint("⚠", ansiYellow, true) + strings.TrimPrefix(s, "⚠")
	}
	return s
}
