package invoker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// maxCapture bounds how much of each stream is kept for error reporting.
// The dev server can run for hours, so the full output is never retained.
const maxCapture = 64 * 1024

// Output captures the result of a command execution.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ExitError reports a child process that exited with a non-zero status.
type ExitError struct {
	Command string
	Args    []string
	Code    int
	Stdout  string
	Stderr  string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", strings.Join(append([]string{e.Command}, e.Args...), " "), e.Code)
}

// Invoker runs a single named executable.
type Invoker struct {
	// Name is the executable looked up on PATH, e.g. "npm".
	Name string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env entries are appended to the inherited environment.
	Env []string
	// Logger receives one record per line of child output.
	Logger *slog.Logger
}

// Run executes the command with args, logging its output as it arrives.
// A non-zero exit is returned as *ExitError alongside the captured Output.
func (i *Invoker) Run(ctx context.Context, args ...string) (*Output, error) {
	return i.run(ctx, true, args)
}

// Output executes the command with args and captures its output without
// logging it.
func (i *Invoker) Output(ctx context.Context, args ...string) (*Output, error) {
	return i.run(ctx, false, args)
}

func (i *Invoker) run(ctx context.Context, logOutput bool, args []string) (*Output, error) {
	bin, err := exec.LookPath(i.Name)
	if err != nil {
		return nil, fmt.Errorf("%s is required on PATH: %w", i.Name, err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = i.Dir
	if len(i.Env) > 0 {
		cmd.Env = append(os.Environ(), i.Env...)
	}

	stdoutTail := newTailBuffer(maxCapture)
	stderrTail := newTailBuffer(maxCapture)
	var stdout, stderr io.Writer = stdoutTail, stderrTail

	var stdoutLog, stderrLog *lineLogger
	if logOutput {
		logger := i.logger()
		stdoutLog = newLineLogger(logger, i.Name, "stdout")
		stderrLog = newLineLogger(logger, i.Name, "stderr")
		stdout = io.MultiWriter(stdoutLog, stdoutTail)
		stderr = io.MultiWriter(stderrLog, stderrTail)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	i.logger().Debug("running command", "cmd", i.Name, "args", args, "dir", i.Dir)
	err = cmd.Run()

	if logOutput {
		stdoutLog.Flush()
		stderrLog.Flush()
	}

	output := &Output{
		Stdout: stdoutTail.String(),
		Stderr: stderrTail.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, &ExitError{
				Command: i.Name,
				Args:    args,
				Code:    output.ExitCode,
				Stdout:  output.Stdout,
				Stderr:  output.Stderr,
			}
		}
		return output, fmt.Errorf("executing %s: %w", i.Name, err)
	}

	return output, nil
}

func (i *Invoker) logger() *slog.Logger {
	if i.Logger == nil {
		return slog.Default()
	}
	return i.Logger
}
