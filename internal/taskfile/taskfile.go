// Package taskfile loads task definitions from a declarative file, the
// project's equivalent of a Rakefile. HCL and YAML are supported and chosen
// by file extension.
package taskfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pablasso/fwtask/internal/ctxlog"
	"github.com/pablasso/fwtask/internal/shell"
	"github.com/pablasso/fwtask/internal/task"
)

// DefaultNames are looked up, in order, when no file is given explicitly.
var DefaultNames = []string{"fwtask.hcl", "fwtask.yaml", "fwtask.yml"}

// File is a loaded task file.
type File struct {
	Path string

	// Default is the task to run when none is requested. Empty when the file
	// does not set one.
	Default string

	// Tasks are in declaration order. A name declared twice appears twice;
	// the registry keeps the later one.
	Tasks []task.Task
}

// definition is the format-agnostic shape both decoders produce.
type definition struct {
	Name        string
	Description string
	DependsOn   []string
	Commands    []string
}

// Load reads and decodes the task file at path.
func Load(ctx context.Context, path string) (*File, error) {
	logger := ctxlog.FromContext(ctx)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}

	var (
		def  string
		defs []definition
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		def, defs, err = decodeHCL(path, src)
	case ".yaml", ".yml":
		def, defs, err = decodeYAML(path, src)
	default:
		return nil, fmt.Errorf("unsupported task file %s: extension must be .hcl, .yaml or .yml", path)
	}
	if err != nil {
		return nil, err
	}

	f := &File{Path: path, Default: def}
	for _, d := range defs {
		t, err := d.toTask()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		f.Tasks = append(f.Tasks, t)
	}
	logger.Debug("Task file loaded.", "path", path, "tasks", len(f.Tasks), "default", f.Default)

	return f, nil
}

// Find returns the first of DefaultNames present in dir.
func Find(dir string) (string, bool, error) {
	for _, name := range DefaultNames {
		p := filepath.Join(dir, name)
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, true, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", false, err
		}
	}
	return "", false, nil
}

func (d definition) toTask() (task.Task, error) {
	if strings.TrimSpace(d.Name) == "" {
		return task.Task{}, fmt.Errorf("task name is required")
	}

	t := task.New(d.Name, d.Description)
	for i, c := range d.Commands {
		cmd := shell.Sh(c)
		if cmd.Empty() {
			return task.Task{}, fmt.Errorf("task %q: command %d is empty", d.Name, i+1)
		}
		t.Commands = append(t.Commands, cmd)
	}
	for _, dep := range d.DependsOn {
		if strings.TrimSpace(dep) == "" {
			return task.Task{}, fmt.Errorf("task %q: empty prerequisite name", d.Name)
		}
	}
	return t.DependsOn(d.DependsOn...), nil
}
