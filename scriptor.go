// Package scriptor runs shell scripts across platforms and captures their
// outcome as a normalized exit-code/stdout/stderr triple.
//
// Scripts execute through an injected Strategy. The default on Unix-like
// systems is the POSIX shell; on Windows it is a non-interactive PowerShell
// session. An embedded pure-Go interpreter strategy is available when no OS
// shell can be relied on.
//
// RunScript blocks until the script terminates and returns a ProcessOutput;
// SpawnScript launches a script in the foreground without blocking and hands
// the live process handle back to the caller.
package scriptor

// Version is the scriptor release version.
const Version = "0.2.1"
