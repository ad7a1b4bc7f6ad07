// Package mcp provides the scriptor MCP server, exposing script execution
// and run-history retrieval as tools.
package mcp

import (
	_ "embed"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/scriptor"
	"github.com/deixis/scriptor/internal/config"
	"github.com/deixis/scriptor/internal/history"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	cfg      *config.Config
	executor *scriptor.Executor
	store    history.Store
	timeout  time.Duration // supervision timeout per run; 0 means none
}

// NewServer creates an MCP server with all scriptor tools registered.
// The executor's verbose side-channel is never used here: tool results
// carry the full triple already.
func NewServer(cfg *config.Config, executor *scriptor.Executor, store history.Store) *mcp.Server {
	h := &handler{
		cfg:      cfg,
		executor: executor,
		store:    store,
		timeout:  cfg.Timeout(),
	}

	opts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "scriptor", Version: scriptor.Version}, opts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "script_run",
		Description: `Run a shell script to completion and return its exit code, stdout, and stderr.

The script runs through the server's configured strategy (POSIX shell by default).
A non-zero exit is reported in the result, not as a tool error. Each run is stored
and can be retrieved later via script_result with the returned run ID.`,
	}, h.runHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "script_result",
		Description: `Retrieve a stored script run by its run ID.

Returns the original script, the strategy it ran under, timing, and the full
captured output triple.`,
	}, h.resultHandler)

	return s
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
