package scriptor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// stubStrategy returns a fixed raw output, or an error when set.
// It stands in for a real strategy so executor behavior can be tested
// without touching OS processes.
type stubStrategy struct {
	raw    RawOutput
	err    error
	strict bool
	calls  int
}

func (s *stubStrategy) Run(ctx context.Context, script string) (*RawOutput, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	raw := s.raw
	return &raw, nil
}

func (s *stubStrategy) Name() string       { return "stub" }
func (s *stubStrategy) StrictStderr() bool { return s.strict }

func TestRunScript_Success(t *testing.T) {
	e := &Executor{Strategy: &PosixStrategy{}}
	out, err := e.RunScript(context.Background(), "echo hello", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Code != 0 {
		t.Errorf("Code = %d, want 0", out.Code)
	}
	if out.Stdout != "hello" {
		t.Errorf("Stdout = %q, want %q", out.Stdout, "hello")
	}
	if out.Stderr != "" {
		t.Errorf("Stderr = %q, want empty", out.Stderr)
	}
	if !out.Success() {
		t.Error("Success() = false, want true")
	}
}

func TestRunScript_Multiline(t *testing.T) {
	e := &Executor{Strategy: &PosixStrategy{}}
	out, err := e.RunScript(context.Background(), "echo one\necho two\n", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Stdout != "one\ntwo" {
		t.Errorf("Stdout = %q, want %q", out.Stdout, "one\ntwo")
	}
}

func TestRunScript_HomeListing(t *testing.T) {
	var diag bytes.Buffer
	e := &Executor{Strategy: &PosixStrategy{}, Diag: &diag}
	out, err := e.RunScript(context.Background(), "ls $HOME", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Code != 0 {
		t.Errorf("Code = %d, want 0", out.Code)
	}
	if out.Stderr != "" {
		t.Errorf("Stderr = %q, want empty", out.Stderr)
	}
}

func TestRunScript_MissingCommand(t *testing.T) {
	// A script that references a nonexistent command is a successful
	// invocation: the shell ran and reported 127.
	e := &Executor{Strategy: &PosixStrategy{}}
	out, err := e.RunScript(context.Background(), "nonexistent_cmd_xyz", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Code != 127 {
		t.Errorf("Code = %d, want 127", out.Code)
	}
	if out.Stderr == "" {
		t.Error("Stderr is empty, want shell diagnostic")
	}
	if out.Success() {
		t.Error("Success() = true, want false")
	}
}

func TestRunScript_LaunchFailure(t *testing.T) {
	e := &Executor{Strategy: &PosixStrategy{Shell: "nonexistent-shell-xyz-123"}}
	out, err := e.RunScript(context.Background(), "echo hello", false)
	if err == nil {
		t.Fatal("expected error for missing interpreter")
	}
	if out != nil {
		t.Errorf("output = %v, want nil on launch failure", out)
	}
	if !strings.Contains(err.Error(), "nonexistent-shell-xyz-123") {
		t.Errorf("error = %q, want to mention the interpreter", err)
	}
}

func TestRunScript_VerboseDoesNotAlterResult(t *testing.T) {
	stub := &stubStrategy{raw: RawOutput{Code: 1, Stdout: "out\n", Stderr: "err\n"}}

	quiet, err := (&Executor{Strategy: stub}).RunScript(context.Background(), "x", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var diag bytes.Buffer
	verbose, err := (&Executor{Strategy: stub, Diag: &diag}).RunScript(context.Background(), "x", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *quiet != *verbose {
		t.Errorf("verbose result %v differs from quiet result %v", verbose, quiet)
	}
	lines := strings.Split(strings.TrimRight(diag.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("diagnostic lines = %d, want 2:\n%s", len(lines), diag.String())
	}
	if !strings.Contains(lines[0], "stub") {
		t.Errorf("pre-execution line = %q, want to name the strategy", lines[0])
	}
	if !strings.Contains(lines[1], "<1, out, err>") {
		t.Errorf("post-execution line = %q, want the result triple", lines[1])
	}
}

func TestRunScript_StrictStrategyRule(t *testing.T) {
	stub := &stubStrategy{raw: RawOutput{Code: 0, Stderr: "warning\n"}, strict: true}
	out, err := (&Executor{Strategy: stub}).RunScript(context.Background(), "x", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Success() {
		t.Error("Success() = true, want false under strict strategy")
	}
}

func TestRunScript_ContextDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	e := &Executor{Strategy: &PosixStrategy{}}
	start := time.Now()
	out, err := e.RunScript(ctx, "sleep 5", false)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatalf("expected error for expired deadline, got %v", out)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
	if out != nil {
		t.Errorf("output = %v, want nil on aborted run", out)
	}
	// The shell is killed at the deadline and its pipes are released
	// after the wait grace period at the latest.
	if elapsed >= 5*time.Second {
		t.Errorf("RunScript blocked for %v despite deadline", elapsed)
	}
}

func TestRunScript_DefaultStrategy(t *testing.T) {
	// The zero Executor and the package-level helper both fall back to
	// the platform default.
	out, err := RunScript(context.Background(), "echo default", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Stdout != "default" {
		t.Errorf("Stdout = %q, want %q", out.Stdout, "default")
	}
}

func TestStrategyByName(t *testing.T) {
	for _, name := range []string{"", "posix", "powershell", "embedded"} {
		if _, err := StrategyByName(name); err != nil {
			t.Errorf("StrategyByName(%q): %v", name, err)
		}
	}
	if _, err := StrategyByName("cmd"); err == nil {
		t.Error("expected error for unknown strategy name")
	}
}
