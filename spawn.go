package scriptor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// SpawnScript launches script in the foreground without blocking and
// returns the live process handle. The caller owns the handle and is
// responsible for waiting on it and interpreting its raw exit status;
// no normalization happens here.
//
// The configuration is fixed: the child inherits this process's stdin,
// stdout, and stderr (nothing is captured), runs with the invoking
// environment unmodified and no working-directory override, exits on the
// first failing command, and echoes each command before running it.
//
// SpawnScript fails only if the process cannot be created; a script that
// will eventually exit non-zero is observable only after the caller waits.
func SpawnScript(script string) (*exec.Cmd, error) {
	argv := spawnArgv(script)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("launching %s: %w", argv[0], err)
	}
	return cmd, nil
}

// spawnArgv selects the spawn interpreter. Linux forces bash explicitly so
// script syntax is consistent regardless of what /bin/sh links to; other
// Unix-likes use the default shell, and Windows its default mechanism.
func spawnArgv(script string) []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"cmd", "/C", script}
	case "linux":
		return []string{"bash", "-e", "-x", "-c", script}
	default:
		return []string{"sh", "-e", "-x", "-c", script}
	}
}
