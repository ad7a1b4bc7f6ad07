package scriptor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

// waitDelay bounds how long a cancelled run may keep its output pipes open.
// Killing the shell does not release the pipes while a descendant still
// holds them; after this grace period Wait closes them forcibly.
const waitDelay = 3 * time.Second

// RawOutput is the unnormalized termination state of a script process.
type RawOutput struct {
	Code   int
	Stdout string
	Stderr string
}

// Strategy executes a script body to completion and reports its raw
// termination state. A non-zero script exit is not an error; errors are
// reserved for failures to invoke the underlying mechanism.
type Strategy interface {
	// Run executes script and blocks until it terminates.
	Run(ctx context.Context, script string) (*RawOutput, error)
	// Name identifies the strategy in diagnostics.
	Name() string
	// StrictStderr reports whether stderr output marks an otherwise
	// clean exit as failed.
	StrictStderr() bool
}

// DefaultStrategy returns the platform's native strategy: PowerShell on
// Windows, the POSIX shell everywhere else.
func DefaultStrategy() Strategy {
	if runtime.GOOS == "windows" {
		return &PowerShellStrategy{}
	}
	return &PosixStrategy{}
}

// StrategyByName resolves a strategy from its configuration name.
// An empty name selects the platform default.
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "":
		return DefaultStrategy(), nil
	case "posix":
		return &PosixStrategy{}, nil
	case "powershell":
		return &PowerShellStrategy{}, nil
	case "embedded":
		return &EmbeddedStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// capture runs argv, collecting stdout and stderr separately.
// A non-zero exit produces a RawOutput, not an error; any other failure
// (binary not found, permission denied) propagates as an error, as does
// ctx expiring before the script terminates.
func capture(ctx context.Context, argv []string) (*RawOutput, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("script aborted: %w", ctxErr)
	}

	code := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, fmt.Errorf("launching %s: %w", argv[0], runErr)
		}
		code = exitErr.ExitCode()
	}

	return &RawOutput{
		Code:   code,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}, nil
}
