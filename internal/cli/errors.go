package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pablasso/fwtask/internal/dispatch"
	"github.com/pablasso/fwtask/internal/registry"
	"github.com/pablasso/fwtask/internal/shell"
	"github.com/pablasso/fwtask/internal/styles"
)

const (
	// ExitTaskFailed is returned when a command could not start or exited non-zero.
	ExitTaskFailed = 1

	// ExitUsage is returned for bad arguments, bad configuration and tasks
	// that cannot be resolved.
	ExitUsage = 2
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code int
	Err  error

	// Hint is an optional remediation line printed after the diagnostic.
	Hint string
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}

// classify wraps a dispatcher error with its exit code and a hint.
func classify(err error, set *taskSet) *ExitError {
	var spawnErr *shell.SpawnError
	var dispErr *dispatch.Error

	switch {
	case errors.Is(err, registry.ErrUnknownTask):
		return &ExitError{
			Code: ExitUsage,
			Err:  err,
			Hint: fmt.Sprintf("Available tasks: %s. Run 'fwtask --list' for details.", strings.Join(set.Registry.Names(), ", ")),
		}
	case errors.Is(err, registry.ErrCyclicDependency):
		return &ExitError{Code: ExitUsage, Err: err}
	case errors.As(err, &spawnErr):
		return &ExitError{
			Code: ExitTaskFailed,
			Err:  err,
			Hint: "Check that the toolchain (cargo, srec_cat) is installed and on PATH.",
		}
	case errors.As(err, &dispErr):
		return &ExitError{Code: ExitTaskFailed, Err: err}
	default:
		return &ExitError{Code: ExitUsage, Err: err}
	}
}

// printDiagnostic writes the failure to w, prefixed with the program name.
func printDiagnostic(w io.Writer, err error) {
	st := styles.For(w)
	fmt.Fprintln(w, st.Error.Render("fwtask: "+err.Error()))

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Hint != "" {
		fmt.Fprintln(w, st.Subtle.Render(exitErr.Hint))
	}
}
