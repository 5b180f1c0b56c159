package shell

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrEmptyCommand is returned for a command with no script and no arguments.
var ErrEmptyCommand = errors.New("empty command")

// SpawnError means the child process could not be started at all, e.g. the
// program is not on PATH or is not executable.
type SpawnError struct {
	Command Command
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("could not start %q: %v", e.Command.String(), e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError means the child process ran and exited with a non-zero status,
// or was killed by a signal. Code is -1 in the latter case.
type ExitError struct {
	Command Command
	Code    int
	// Signal is non-zero when the process was killed by a signal.
	Signal syscall.Signal
}

func (e *ExitError) Error() string {
	if e.Signal != 0 {
		return fmt.Sprintf("command %q was killed by signal %d (%v)", e.Command.String(), int(e.Signal), e.Signal)
	}
	return fmt.Sprintf("command %q exited with code %d", e.Command.String(), e.Code)
}
