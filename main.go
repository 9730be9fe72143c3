package main

import (
	"os"

	"github.com/Ma27/pass-audit/cmd/cli"
	"github.com/Ma27/pass-audit/internal/ui"
)

// main executes the pass-audit command-line application.
// Failures are already rendered on standard output; only the exit status remains.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		os.Exit(ui.ExitCode(executionError))
	}
}
