package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/scriptor/internal/history"
)

type resultParams struct {
	RunID string `json:"run_id" jsonschema:"the run ID from a script_run result"`
}

func (h *handler) resultHandler(ctx context.Context, req *mcp.CallToolRequest, params resultParams) (*mcp.CallToolResult, any, error) {
	if params.RunID == "" {
		return errorResult("run_id is required")
	}

	rec, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to load run %s: %v", params.RunID, err))
	}

	return textResult(formatResult(rec))
}

func formatResult(rec *history.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run: %s\n", rec.ID)
	fmt.Fprintf(&b, "Strategy: %s\n", rec.Strategy)
	fmt.Fprintf(&b, "Started: %s\n", rec.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Duration: %dms\n", rec.DurationMS)
	if rec.Success {
		fmt.Fprintln(&b, "Status: PASS")
	} else {
		fmt.Fprintln(&b, "Status: FAIL")
	}
	fmt.Fprintf(&b, "Exit code: %d\n", rec.Output.Code)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Script:")
	for _, line := range strings.Split(strings.TrimRight(rec.Script, "\n"), "\n") {
		fmt.Fprintf(&b, "    %s\n", line)
	}
	fmt.Fprintln(&b)

	writeStream(&b, "Stdout", rec.Output.Stdout)
	writeStream(&b, "Stderr", rec.Output.Stderr)

	return strings.TrimRight(b.String(), "\n") + "\n"
}
