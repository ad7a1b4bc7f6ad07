package scriptor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// EmbeddedStrategy executes scripts with a pure-Go POSIX shell interpreter.
// It needs no shell binary on the host, which makes it portable to platforms
// without sh and usable for hermetic tests. Use forward slashes as path
// separators in scripts, even on Windows.
type EmbeddedStrategy struct {
	// Dir is the working directory for the script. Empty means the
	// process's current directory.
	Dir string
}

// Name implements Strategy.
func (s *EmbeddedStrategy) Name() string { return "embedded" }

// StrictStderr implements Strategy.
func (s *EmbeddedStrategy) StrictStderr() bool { return false }

// Run parses and interprets script in-process. A script statement that
// fails yields its exit status in RawOutput; a script that cannot be
// parsed is an invocation error.
func (s *EmbeddedStrategy) Run(ctx context.Context, script string) (*RawOutput, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(script), "")
	if err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}

	var stdout, stderr bytes.Buffer
	runner, err := interp.New(
		interp.StdIO(nil, &stdout, &stderr),
		interp.Interactive(false),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.Dir(s.Dir),
	)
	if err != nil {
		return nil, fmt.Errorf("creating interpreter: %w", err)
	}

	code := 0
	if runErr := runner.Run(ctx, file); runErr != nil {
		status, ok := interp.IsExitStatus(runErr)
		if !ok {
			return nil, fmt.Errorf("interpreting script: %w", runErr)
		}
		code = int(status)
	}

	return &RawOutput{
		Code:   code,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}, nil
}
