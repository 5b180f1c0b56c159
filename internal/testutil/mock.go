// Package testutil provides testing utilities for the fwtask project.
package testutil

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// CommandFunc matches the signature of exec.CommandContext.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// MockCommandFunc creates a mock command that outputs the given response.
// Usage: shell.CommandContext = testutil.MockCommandFunc("ok")
func MockCommandFunc(output string) CommandFunc {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "echo", "-n", output)
	}
}

// MockCommandFuncFail creates a mock command that exits with the given code.
func MockCommandFuncFail(exitCode int) CommandFunc {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", fmt.Sprintf("exit %d", exitCode))
	}
}

// MockCommandFuncMissing creates a mock command whose program does not exist,
// so starting it fails before any process is spawned.
func MockCommandFuncMissing() CommandFunc {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, filepath.Join(os.TempDir(), "fwtask-definitely-missing", name))
	}
}

// CommandRecorder records every command it is asked to create and replays a
// configured exit code per command line. Commands not listed in ExitCodes
// succeed.
type CommandRecorder struct {
	mu        sync.Mutex
	Calls     []string
	ExitCodes map[string]int
}

// NewCommandRecorder creates a recorder that fails the given command lines
// with the given exit codes.
func NewCommandRecorder(exitCodes map[string]int) *CommandRecorder {
	if exitCodes == nil {
		exitCodes = map[string]int{}
	}
	return &CommandRecorder{ExitCodes: exitCodes}
}

// Func returns a CommandFunc bound to the recorder.
func (r *CommandRecorder) Func() CommandFunc {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		line := CommandLine(name, args...)

		r.mu.Lock()
		r.Calls = append(r.Calls, line)
		code := r.ExitCodes[line]
		r.mu.Unlock()

		return exec.CommandContext(ctx, "sh", "-c", fmt.Sprintf("exit %d", code))
	}
}

// Recorded returns a copy of the recorded command lines.
func (r *CommandRecorder) Recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Calls...)
}

// CommandLine renders name and args the way a user would have typed them.
// Shell invocations ("sh -c <script>") collapse to the script itself.
func CommandLine(name string, args ...string) string {
	if name == "sh" && len(args) == 2 && args[0] == "-c" {
		return args[1]
	}
	return strings.Join(append([]string{name}, args...), " ")
}

// SetupTestDir creates a temp directory, resolves symlinks (for macOS),
// changes to it, and registers cleanup to restore the original working directory.
// Returns the resolved temp directory path.
func SetupTestDir(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	// Resolve symlinks for macOS (/var -> /private/var)
	if resolved, err := filepath.EvalSymlinks(tmpDir); err != nil {
		t.Logf("warning: could not resolve symlinks for temp dir: %v", err)
	} else {
		tmpDir = resolved
	}

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change to temp dir: %v", err)
	}

	t.Cleanup(func() {
		os.Chdir(originalWd)
	})

	return tmpDir
}
