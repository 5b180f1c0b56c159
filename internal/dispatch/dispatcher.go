// Package dispatch resolves a requested task against a registry and runs the
// resulting tasks one after another, stopping at the first failure.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pablasso/fwtask/internal/ctxlog"
	"github.com/pablasso/fwtask/internal/registry"
	"github.com/pablasso/fwtask/internal/shell"
	"github.com/pablasso/fwtask/internal/task"
)

// Error reports which task a run stopped at and why.
type Error struct {
	// Task is the requested task for resolution failures and the failing
	// task for execution failures.
	Task string

	// Resolve is true when the failure happened before anything ran.
	Resolve bool

	Err error
}

func (e *Error) Error() string {
	if e.Resolve {
		return fmt.Sprintf("cannot run task %q: %v", e.Task, e.Err)
	}
	var taskErr *task.Error
	if errors.As(e.Err, &taskErr) {
		return taskErr.Error()
	}
	return fmt.Sprintf("task %q failed: %v", e.Task, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Dispatcher runs tasks from one registry. Create one per invocation: a task
// that already ran through this dispatcher is not run again.
type Dispatcher struct {
	registry    *registry.Registry
	exec        shell.Executor
	defaultTask string
	out         io.Writer
	state       State
	ran         map[string]bool
	now         func() time.Time
}

// New creates a Dispatcher. defaultTask is what RunDefault runs.
func New(reg *registry.Registry, exec shell.Executor, defaultTask string) *Dispatcher {
	return &Dispatcher{
		registry:    reg,
		exec:        exec,
		defaultTask: defaultTask,
		out:         os.Stdout,
		ran:         make(map[string]bool),
		now:         time.Now,
	}
}

// WithOutput sets where task headers and the summary line are written.
func (d *Dispatcher) WithOutput(w io.Writer) *Dispatcher {
	d.out = w
	return d
}

// State returns the state of the most recent run.
func (d *Dispatcher) State() State {
	return d.state
}

// DefaultTask returns the task RunDefault runs.
func (d *Dispatcher) DefaultTask() string {
	return d.defaultTask
}

// RunDefault runs the default task.
func (d *Dispatcher) RunDefault(ctx context.Context) error {
	name := d.DefaultTask()
	ctxlog.FromContext(ctx).Debug("No task requested, using default.", "task", name)
	return d.Run(ctx, name)
}

// Run resolves name and executes the resulting tasks in order. name is taken
// verbatim, so an empty name is an unknown task. Nothing is executed when
// resolution fails.
func (d *Dispatcher) Run(ctx context.Context, name string) error {
	logger := ctxlog.FromContext(ctx)

	d.state = StateResolving
	tasks, err := d.registry.Resolve(name)
	if err != nil {
		d.state = StateFailed
		logger.Debug("Resolution failed.", "task", name, "error", err)
		return &Error{Task: name, Resolve: true, Err: err}
	}
	logger.Debug("Resolved task order.", "task", name, "order", taskNames(tasks))

	d.state = StateExecuting
	rep := newReporter(d.out)
	start := d.now()

	pending := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if d.ran[t.Name] {
			logger.Debug("Task already ran in this invocation, skipping.", "task", t.Name)
			continue
		}
		pending = append(pending, t)
	}

	for i, t := range pending {
		rep.taskStarted(i+1, len(pending), t)

		d.ran[t.Name] = true
		if err := t.Run(ctx, d.exec); err != nil {
			d.state = StateFailed
			logger.Debug("Task failed.", "task", t.Name, "error", err)
			return &Error{Task: t.Name, Err: err}
		}
	}

	d.state = StateSucceeded
	rep.finished(name, len(pending), d.now().Sub(start))
	return nil
}

func taskNames(tasks []*task.Task) []string {
	names := make([]string, 0, len(tasks))
	for _, t := range tasks {
		names = append(names, t.Name)
	}
	return names
}
