package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasvet"
	"github.com/erraggy/oasvet/cmd/oasvet/commands"
)

// Exit codes
const (
	exitOK      = 0
	exitInvalid = 1
	exitError   = 2
)

var commandNames = []string{"validate", "mcp", "version", "help"}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], commands.StdStreams())
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, streams commands.Streams) int {
	if len(args) < 1 {
		printUsage(streams.Err)
		return exitError
	}

	var err error
	switch command := args[0]; command {
	case "version", "-v", "--version":
		commands.Writef(streams.Out, "oasvet %s\n", oasvet.Version())
		return exitOK
	case "help", "-h", "--help":
		printUsage(streams.Out)
		return exitOK
	case "validate":
		err = commands.HandleValidate(ctx, args[1:], streams)
	case "mcp":
		err = commands.HandleMCP(ctx, args[1:], streams)
	default:
		commands.Writef(streams.Err, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			commands.Writef(streams.Err, "Did you mean '%s'?\n", suggestion)
		}
		commands.Writef(streams.Err, "\n")
		printUsage(streams.Err)
		return exitError
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, commands.ErrValidationFailed):
		return exitInvalid
	default:
		commands.Writef(streams.Err, "Error: %v\n", err)
		return exitError
	}
}

// suggestCommand returns the known command closest to input, or "" when
// none is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, `oasvet - OpenAPI 3.1 reference and composition validator

Usage:
  oasvet <command> [options]

Commands:
  validate    Validate an OpenAPI 3.1 document file, URL, or stdin
  mcp         Start the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasvet validate openapi.yaml
  oasvet validate --format json --no-warnings openapi.yaml
  oasvet validate --allow-remote https://example.com/api/openapi.yaml

Run 'oasvet <command> --help' for more information on a command.`)
}
