// Package registry maps task names to tasks and resolves a requested task
// into the ordered list of tasks that must run.
package registry

import (
	"sort"

	"github.com/pablasso/fwtask/internal/task"
)

// Registry is built once per invocation and read-only while tasks run.
type Registry struct {
	tasks map[string]*task.Task
}

// New creates a registry from task definitions. Later definitions replace
// earlier ones with the same name.
func New(tasks ...task.Task) *Registry {
	r := &Registry{tasks: make(map[string]*task.Task, len(tasks))}
	for _, t := range tasks {
		r.Register(t)
	}
	return r
}

// Register stores t under its name, replacing any existing task.
func (r *Registry) Register(t task.Task) {
	t.Prerequisites = append([]string(nil), t.Prerequisites...)
	t.Commands = append(t.Commands[:0:0], t.Commands...)
	r.tasks[t.Name] = &t
}

// Lookup returns the task registered under name.
func (r *Registry) Lookup(name string) (*task.Task, bool) {
	t, ok := r.tasks[name]
	return t, ok
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// Names returns all registered task names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tasks returns all registered tasks sorted by name.
func (r *Registry) Tasks() []*task.Task {
	names := r.Names()
	out := make([]*task.Task, 0, len(names))
	for _, name := range names {
		out = append(out, r.tasks[name])
	}
	return out
}

const (
	unvisited = iota
	visiting
	done
)

// Resolve returns name's transitive prerequisites followed by name itself.
// Prerequisites are walked depth-first in declared order, so every task comes
// after everything it depends on and appears once, at its first occurrence.
//
// Resolve fails with *UnknownTaskError if name or any prerequisite is not
// registered and with *CycleError if a cycle is reachable from name.
func (r *Registry) Resolve(name string) ([]*task.Task, error) {
	state := make(map[string]int)
	var stack []string
	var order []*task.Task

	var visit func(name, requiredBy string) error
	visit = func(name, requiredBy string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return &CycleError{Path: cyclePath(stack, name)}
		}

		t, ok := r.tasks[name]
		if !ok {
			return &UnknownTaskError{Name: name, RequiredBy: requiredBy}
		}

		state[name] = visiting
		stack = append(stack, name)
		for _, dep := range t.Prerequisites {
			if err := visit(dep, name); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done

		order = append(order, t)
		return nil
	}

	if err := visit(name, ""); err != nil {
		return nil, err
	}
	return order, nil
}

// cyclePath returns the part of stack starting at name, closed with name.
func cyclePath(stack []string, name string) []string {
	for i, s := range stack {
		if s == name {
			path := append([]string(nil), stack[i:]...)
			return append(path, name)
		}
	}
	return []string{name, name}
}
