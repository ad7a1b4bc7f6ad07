package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/scriptor"
	"github.com/deixis/scriptor/internal/history"
)

type runParams struct {
	Script string `json:"script" jsonschema:"the script body to execute; may contain multiple lines under the posix and embedded strategies"`
}

func (h *handler) runHandler(ctx context.Context, req *mcp.CallToolRequest, params runParams) (*mcp.CallToolResult, any, error) {
	if params.Script == "" {
		return errorResult("script is required")
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	strategy := h.executor.Strategy
	if strategy == nil {
		strategy = scriptor.DefaultStrategy()
	}
	started := time.Now()
	out, err := h.executor.RunScript(ctx, params.Script, false)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to run script: %v", err))
	}

	rec := history.NewRecord(params.Script, strategy.Name(), started, out)
	// Save for script_result drill-down; a storage hiccup should not fail
	// the run itself.
	_ = h.store.Save(rec)

	return textResult(formatRun(rec))
}

func formatRun(rec *history.Record) string {
	var b strings.Builder

	if rec.Success {
		fmt.Fprintln(&b, "Status: PASS")
	} else {
		fmt.Fprintln(&b, "Status: FAIL")
	}
	fmt.Fprintf(&b, "Run: %s\n", rec.ID)
	fmt.Fprintf(&b, "Exit code: %d\n", rec.Output.Code)
	fmt.Fprintln(&b)

	writeStream(&b, "Stdout", rec.Output.Stdout)
	writeStream(&b, "Stderr", rec.Output.Stderr)

	fmt.Fprintln(&b, "Use script_result with the run ID to retrieve this run later.")
	return b.String()
}

func writeStream(b *strings.Builder, name, text string) {
	if text == "" {
		fmt.Fprintf(b, "%s: (empty)\n", name)
		fmt.Fprintln(b)
		return
	}
	fmt.Fprintf(b, "%s:\n", name)
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(b, "    %s\n", line)
	}
	fmt.Fprintln(b)
}
