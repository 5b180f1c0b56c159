// Package task defines a named unit of build work: a description, the names
// of the tasks that must run first, and an ordered list of shell commands.
package task

import (
	"context"
	"fmt"

	"github.com/pablasso/fwtask/internal/ctxlog"
	"github.com/pablasso/fwtask/internal/shell"
)

// Task is immutable once registered.
type Task struct {
	Name          string
	Description   string
	Prerequisites []string
	Commands      []shell.Command
}

// New creates a task with the given commands and no prerequisites.
func New(name, description string, commands ...shell.Command) Task {
	return Task{
		Name:        name,
		Description: description,
		Commands:    commands,
	}
}

// DependsOn returns a copy of t with the given prerequisites appended.
func (t Task) DependsOn(names ...string) Task {
	t.Prerequisites = append(append([]string(nil), t.Prerequisites...), names...)
	return t
}

// Run executes the commands in declared order and stops at the first one
// that does not succeed. The remaining commands are not spawned.
func (t *Task) Run(ctx context.Context, exec shell.Executor) error {
	logger := ctxlog.FromContext(ctx).With("task", t.Name)

	for i, cmd := range t.Commands {
		logger.Debug("Running command.", "index", i+1, "total", len(t.Commands), "command", cmd.String())

		res := exec.Execute(ctx, cmd)
		if !res.Succeeded() {
			logger.Debug("Command failed, stopping task.", "command", cmd.String(), "exit_code", res.ExitCode)
			return &Error{Task: t.Name, Result: res}
		}
	}
	return nil
}

// Error is a command failure tagged with the task that ran it.
type Error struct {
	Task   string
	Result shell.Result
}

func (e *Error) Error() string {
	return fmt.Sprintf("task %q failed: %v", e.Task, e.Result.Err)
}

func (e *Error) Unwrap() error { return e.Result.Err }
