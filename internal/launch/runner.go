package launch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Runner executes shell command lines without depending on a system shell.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner returns a Runner attached to the process's standard streams.
func NewRunner() *Runner {
	return &Runner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run parses and runs command in dir with the process environment plus
// command.Vars. A non-zero exit status is returned as the exit code with a nil
// error; err reports parse or start failures.
func (r *Runner) Run(ctx context.Context, command Command, dir string) (int, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(command.Line), "")
	if err != nil {
		return -1, fmt.Errorf("parse command: %w", err)
	}

	env := expand.ListEnviron(append(os.Environ(), command.Env()...)...)
	runner, err := interp.New(interp.Env(env), interp.Dir(dir), interp.StdIO(r.Stdin, r.Stdout, r.Stderr))
	if err != nil {
		return -1, fmt.Errorf("create shell: %w", err)
	}

	err = runner.Run(ctx, file)
	if err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return int(status), nil
		}

		return -1, err
	}

	return 0, nil
}
