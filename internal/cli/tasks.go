package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/pablasso/fwtask/internal/ctxlog"
	"github.com/pablasso/fwtask/internal/profile"
	"github.com/pablasso/fwtask/internal/registry"
	"github.com/pablasso/fwtask/internal/taskfile"
)

// taskSet is the registry chosen for this invocation and where it came from.
type taskSet struct {
	Registry    *registry.Registry
	DefaultTask string
	Source      string
}

// loadTaskSet picks the task definitions: an explicit --file, then an
// explicit --profile, then a task file in the working directory, then the
// default profile.
func loadTaskSet(ctx context.Context, opts *options, profileSet bool) (*taskSet, error) {
	logger := ctxlog.FromContext(ctx)

	if opts.file != "" {
		return fromTaskfile(ctx, opts.file)
	}

	if !profileSet {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path, ok, err := taskfile.Find(wd)
		if err != nil {
			return nil, fmt.Errorf("failed to look for task file: %w", err)
		}
		if ok {
			logger.Debug("Found task file in working directory.", "path", path)
			return fromTaskfile(ctx, path)
		}
	}

	p, err := profile.Lookup(opts.profile)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Using built-in profile.", "profile", p.Name)

	return &taskSet{
		Registry:    registry.New(p.Tasks()...),
		DefaultTask: profile.DefaultTask,
		Source:      fmt.Sprintf("profile %s (%s)", p.Name, p.Description),
	}, nil
}

func fromTaskfile(ctx context.Context, path string) (*taskSet, error) {
	f, err := taskfile.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	def := f.Default
	if def == "" {
		def = profile.DefaultTask
	}
	return &taskSet{
		Registry:    registry.New(f.Tasks...),
		DefaultTask: def,
		Source:      "task file " + f.Path,
	}, nil
}
