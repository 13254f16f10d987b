// Package app wires sha256sum application execution.
package app

import (
	"fmt"
	"io"
	"os"

	"sha256sum/internal/cli"
	apperrors "sha256sum/internal/errors"
)

// App wires CLI execution to process streams.
type App struct {
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

// New creates an App bound to the process standard streams.
func New() App {
	return App{stdout: os.Stdout, stderr: os.Stderr, stdin: os.Stdin}
}

// Run executes the application and returns a process exit code.
func (a App) Run(args []string) int {
	root := cli.NewRootCommand(a.stdout, a.stderr, a.stdin)
	root.SetArgs(args)

	err := root.Execute()
	if err != nil && !apperrors.Reported(err) {
		_, _ = fmt.Fprintf(a.stderr, "sha256sum: %v\n", err)
	}
	return apperrors.ExitCode(err)
}
