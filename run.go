package scriptor

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Executor runs scripts to completion and captures their normalized output.
// The zero value uses the platform default strategy and writes verbose
// diagnostics to stdout.
type Executor struct {
	Strategy Strategy  // nil means DefaultStrategy()
	Diag     io.Writer // verbose side-channel; nil means os.Stdout
}

// RunScript executes script and blocks until it terminates and both output
// streams are drained, then returns the normalized result.
//
// A script that runs and exits non-zero (or writes to stderr under a strict
// strategy) is a successful invocation: it yields a ProcessOutput whose
// Success() is false, not an error. Errors are reserved for failures to
// invoke the underlying mechanism, and never come with a partial result.
// If ctx is cancelled or expires first, the run is aborted and the
// context error is returned.
//
// When verbose is set, two diagnostic lines are written to the side-channel:
// the script with its effective strategy before execution, and the resulting
// triple after. The diagnostics are best-effort and do not affect the
// returned value.
func (e *Executor) RunScript(ctx context.Context, script string, verbose bool) (*ProcessOutput, error) {
	strategy := e.Strategy
	if strategy == nil {
		strategy = DefaultStrategy()
	}

	if verbose {
		e.diag("Executing %q via the %s strategy.\n", script, strategy.Name())
	}

	raw, err := strategy.Run(ctx, script)
	if err != nil {
		return nil, err
	}

	out := normalize(raw, strategy.StrictStderr())
	if verbose {
		e.diag(" %s\n", out)
	}
	return out, nil
}

func (e *Executor) diag(format string, args ...any) {
	w := e.Diag
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, format, args...)
}

// RunScript executes script with the platform default strategy.
// See Executor.RunScript.
func RunScript(ctx context.Context, script string, verbose bool) (*ProcessOutput, error) {
	e := &Executor{}
	return e.RunScript(ctx, script, verbose)
}
