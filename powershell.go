package scriptor

import (
	"context"
	"runtime"
)

// PowerShellStrategy executes scripts through a single non-interactive,
// hidden, no-profile PowerShell session, passing the entire script as one
// command string.
//
// Caller contract: the hosting mechanism does not reliably execute
// multi-line bodies, so scripts must be expressed as a single logical line.
// Join statements with ";" instead of newlines. This is documented, not
// enforced.
type PowerShellStrategy struct {
	// Path overrides the engine binary. Empty selects powershell.exe on
	// Windows and pwsh elsewhere.
	Path string
}

// Name implements Strategy.
func (s *PowerShellStrategy) Name() string { return "powershell" }

// StrictStderr implements Strategy. PowerShell surfaces non-fatal errors on
// stderr while still exiting zero, so stderr output counts as failure.
func (s *PowerShellStrategy) StrictStderr() bool { return true }

// Run executes script in a fresh engine session.
func (s *PowerShellStrategy) Run(ctx context.Context, script string) (*RawOutput, error) {
	bin := s.Path
	if bin == "" {
		if runtime.GOOS == "windows" {
			bin = "powershell.exe"
		} else {
			bin = "pwsh"
		}
	}

	argv := []string{bin, "-NoProfile", "-NonInteractive"}
	if runtime.GOOS == "windows" {
		argv = append(argv, "-WindowStyle", "Hidden")
	}
	argv = append(argv, "-Command", script)

	return capture(ctx, argv)
}
