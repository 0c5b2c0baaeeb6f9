// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasvet validation as an MCP tool over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oasvet"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasvet MCP server: validates OpenAPI 3.1 documents, resolving $ref references across documents and checking schema composition and discriminators.

Configuration: All defaults are configurable via OASVET_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- OASVET_CACHE_FILE_TTL (default: 15m): cache TTL for local file specs
- OASVET_CACHE_URL_TTL (default: 5m): cache TTL for URL-fetched specs
- OASVET_CACHE_ENABLED (default: true): disable spec caching entirely
- OASVET_RESULT_LIMIT (default: 100): default page size for errors and warnings
- OASVET_VALIDATE_STRICT (default: false): fail the run on any unresolved reference
- OASVET_VALIDATE_NO_WARNINGS (default: false): suppress warnings by default
- OASVET_VALIDATE_MAX_ERRORS (default: unlimited): halt after this many errors
- OASVET_MAX_EXTERNAL_DOCUMENTS (default: 100): bound on fetched documents
- OASVET_ALLOW_REMOTE_REFS (default: true): fetch http(s) references
- OASVET_ALLOW_PRIVATE_IPS (default: false): allow fetching from private networks

Caching: Parsed specs are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasvet", Version: oasvet.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate an OpenAPI 3.1 document. Resolves $ref references (including external documents), then checks required and mutually exclusive fields, path parameters, response codes, security requirements, required schema properties, and discriminators. Returns errors and warnings with their locations and kinds. For large specs, use no_warnings to focus on errors first. Use offset/limit to paginate through results.",
	}, handleValidate)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ResultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ResultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
