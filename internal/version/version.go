// Package version holds build metadata injected with ldflags.
package version

import "fmt"

// Set at build time, e.g.
// go build -ldflags "-X github.com/pablasso/fwtask/internal/version.Version=v1.0.0"
var (
	// Version is the semantic version of the application.
	Version = "dev"

	// CommitSHA is the git commit SHA at build time.
	CommitSHA = "unknown"

	// BuildDate is the date when the binary was built.
	BuildDate = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return fmt.Sprintf("fwtask %s (commit %s, built %s)", Version, CommitSHA, BuildDate)
}
