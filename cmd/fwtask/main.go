package main

import (
	"os"

	"github.com/pablasso/fwtask/internal/cli"
)

func main() {
	// Execute has already printed the diagnostic; only the exit code is left.
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
