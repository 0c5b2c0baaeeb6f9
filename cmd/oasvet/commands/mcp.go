package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/oasvet/internal/mcpserver"
)

// HandleMCP executes the mcp command, serving the validate tool over stdio
// until the client disconnects or ctx is cancelled.
func HandleMCP(ctx context.Context, args []string, streams Streams) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(streams.Err)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasvet mcp\n\n")
		Writef(fs.Output(), "Start an MCP (Model Context Protocol) server over stdio exposing the validate tool.\n")
		Writef(fs.Output(), "Defaults are configured with OASVET_* environment variables.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}
	return mcpserver.Run(ctx)
}
