package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownTask      = errors.New("unknown task")
	ErrCyclicDependency = errors.New("cyclic dependency")
)

// UnknownTaskError names a task that is not registered. RequiredBy is empty
// when the name was requested directly.
type UnknownTaskError struct {
	Name       string
	RequiredBy string
}

func (e *UnknownTaskError) Error() string {
	if e.RequiredBy == "" {
		return fmt.Sprintf("%s: %q", ErrUnknownTask, e.Name)
	}
	return fmt.Sprintf("%s: %q (required by %q)", ErrUnknownTask, e.Name, e.RequiredBy)
}

func (e *UnknownTaskError) Unwrap() error { return ErrUnknownTask }

// CycleError carries one cycle witness, first and last element equal.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCyclicDependency, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCyclicDependency }
