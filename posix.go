package scriptor

import "context"

// PosixStrategy executes scripts through a standard command-line shell.
// Scripts may span multiple lines; each line is a separate shell statement.
type PosixStrategy struct {
	// Shell overrides the interpreter binary. Empty means "sh".
	Shell string
}

// Name implements Strategy.
func (s *PosixStrategy) Name() string { return "posix" }

// StrictStderr implements Strategy. The POSIX rule is exit-code-only.
func (s *PosixStrategy) StrictStderr() bool { return false }

// Run executes script via `sh -c` with default options: no working-directory
// override, no environment injection, no stream redirection beyond capture.
func (s *PosixStrategy) Run(ctx context.Context, script string) (*RawOutput, error) {
	shell := s.Shell
	if shell == "" {
		shell = "sh"
	}
	return capture(ctx, []string{shell, "-c", script})
}
