// Package profile builds the task sets for the firmware's named build
// configurations. Each configuration is one Profile value run through the
// same builder.
package profile

import (
	"fmt"
	"path"
	"strings"

	"github.com/pablasso/fwtask/internal/shell"
	"github.com/pablasso/fwtask/internal/task"
)

const (
	// DefaultTarget is the Cortex-M3 target triple the firmware is built for.
	DefaultTarget = "thumbv7m-none-eabi"

	// DefaultTask runs when no task name is given.
	DefaultTask = "build"
)

// Profile parametrizes the build, test and clean tasks.
type Profile struct {
	Name        string
	Description string

	// Target is the cross-compilation target triple.
	Target string

	// Binary is the artifact name cargo leaves under target/<triple>/release.
	Binary string

	// Features are passed to the release build. Empty means none.
	Features []string

	// HostFeature enables the host-testable configuration. When empty the
	// profile has no test task.
	HostFeature string

	// Hex appends the Intel HEX conversion to the build task.
	Hex bool
}

// ArtifactPath is the release binary produced by the build.
func (p Profile) ArtifactPath() string {
	return "./" + path.Join("target", p.Target, "release", p.Binary)
}

// HexPath is the Intel HEX image written next to the binary.
func (p Profile) HexPath() string {
	return p.ArtifactPath() + ".hex"
}

// Validate reports profiles that cannot produce a build task.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Target == "" {
		return fmt.Errorf("profile %q: target triple is required", p.Name)
	}
	if p.Hex && p.Binary == "" {
		return fmt.Errorf("profile %q: binary name is required for hex conversion", p.Name)
	}
	return nil
}

// Tasks returns the profile's task definitions in declaration order.
func (p Profile) Tasks() []task.Task {
	tasks := []task.Task{
		task.New("build", p.buildDescription(), p.buildCommands()...),
	}
	if p.HostFeature != "" {
		tasks = append(tasks, task.New("test", "run the test suite on the host",
			shell.Argv("cargo", "test", "--features="+p.HostFeature, "--", "--nocapture"),
		))
	}
	tasks = append(tasks, task.New("clean", "cleanup", shell.Argv("cargo", "clean")))
	return tasks
}

func (p Profile) buildCommands() []shell.Command {
	args := []string{"build", "--target=" + p.Target}
	if len(p.Features) > 0 {
		args = append(args, "--features="+strings.Join(p.Features, ","))
	}
	args = append(args, "--release")

	cmds := []shell.Command{shell.Argv("cargo", args...)}
	if p.Hex {
		cmds = append(cmds, shell.Argv("srec_cat", p.ArtifactPath(), "-binary", "-o", p.HexPath(), "-intel"))
	}
	return cmds
}

func (p Profile) buildDescription() string {
	var b strings.Builder
	b.WriteString("build")
	if len(p.Features) > 0 {
		fmt.Fprintf(&b, " with %s", strings.Join(p.Features, ","))
	}
	if p.Hex {
		b.WriteString(" and convert to Intel HEX")
	}
	return b.String()
}
