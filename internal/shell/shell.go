// Package shell runs external toolchain commands one at a time with the
// caller's working directory, environment and standard streams.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/pablasso/fwtask/internal/ctxlog"
)

// CommandContext is the function used to create exec.Cmd instances.
// It can be replaced in tests to mock command execution.
var CommandContext = exec.CommandContext

// Result is the outcome of a single command. Err is nil on success, otherwise
// one of ErrEmptyCommand, *SpawnError or *ExitError.
type Result struct {
	Command  Command
	ExitCode int
	Err      error
}

// Succeeded reports whether the command ran and exited with status 0.
func (r Result) Succeeded() bool {
	return r.Err == nil
}

// Executor runs a command to completion.
type Executor interface {
	Execute(ctx context.Context, cmd Command) Result
}

// Exec runs commands as child processes. Nil streams fall back to the
// process's own stdin, stdout and stderr.
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Execute starts cmd, waits for it to exit and classifies the outcome.
func (e *Exec) Execute(ctx context.Context, cmd Command) Result {
	if cmd.Empty() {
		return Result{Command: cmd, ExitCode: -1, Err: ErrEmptyCommand}
	}

	logger := ctxlog.FromContext(ctx)
	name, args := cmd.argv()
	logger.Debug("Spawning command.", "program", name, "args", args)

	c := CommandContext(ctx, name, args...)
	c.Stdin = e.Stdin
	c.Stdout = e.Stdout
	c.Stderr = e.Stderr
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}

	err := c.Run()
	if err == nil {
		logger.Debug("Command finished.", "command", cmd.String(), "exit_code", 0)
		return Result{Command: cmd}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		failure := &ExitError{Command: cmd, Code: code}
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			failure.Signal = ws.Signal()
		}
		logger.Debug("Command failed.", "command", cmd.String(), "exit_code", code, "signal", int(failure.Signal))
		return Result{Command: cmd, ExitCode: code, Err: failure}
	}

	logger.Debug("Command could not be started.", "command", cmd.String(), "error", err)
	return Result{Command: cmd, ExitCode: -1, Err: &SpawnError{Command: cmd, Err: err}}
}

// DryRun prints commands instead of running them. Every command succeeds.
type DryRun struct {
	Out io.Writer
}

// Execute writes the command to Out prefixed with "$ ".
func (d *DryRun) Execute(ctx context.Context, cmd Command) Result {
	if cmd.Empty() {
		return Result{Command: cmd, ExitCode: -1, Err: ErrEmptyCommand}
	}
	out := d.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "$ %s\n", cmd.String())
	return Result{Command: cmd}
}
