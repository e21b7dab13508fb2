// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/invowk/dmglicense/pkg/types"

	"github.com/charmbracelet/log"
)

type (
	// Command is one external tool invocation.
	Command struct {
		// Name is the binary name or path.
		Name string
		// Args are the arguments, without the binary.
		Args []string
		// Stdout receives the tool's standard output (nil discards it).
		Stdout io.Writer
		// Stderr receives the tool's standard error (nil discards it).
		Stderr io.Writer
	}

	// Runner executes external commands.
	//
	// Run blocks until the command exits. A command that ran and exited
	// non-zero is reported through the exit code with a nil error; an error
	// means the command could not be started at all.
	Runner interface {
		Run(ctx context.Context, cmd Command) (types.ExitCode, error)
	}

	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// ExecRunnerOption configures an ExecRunner.
	ExecRunnerOption func(*ExecRunner)

	// ExecRunner runs commands as host processes.
	ExecRunner struct {
		execCommand ExecCommandFunc
		logger      *log.Logger
	}

	// StartError is returned by ExecRunner when a command cannot be started,
	// for example because the binary does not exist.
	StartError struct {
		Name string
		Err  error
	}
)

// WithExecCommand overrides how exec.Cmd values are created.
func WithExecCommand(fn ExecCommandFunc) ExecRunnerOption {
	return func(r *ExecRunner) {
		r.execCommand = fn
	}
}

// WithLogger sets the logger used for per-command debug output.
func WithLogger(logger *log.Logger) ExecRunnerOption {
	return func(r *ExecRunner) {
		r.logger = logger
	}
}

// NewExecRunner creates a Runner backed by os/exec.
func NewExecRunner(opts ...ExecRunnerOption) *ExecRunner {
	r := &ExecRunner{
		execCommand: exec.CommandContext,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cmd and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (types.ExitCode, error) {
	c := r.execCommand(ctx, cmd.Name, cmd.Args...)
	c.Stdout = cmd.Stdout
	c.Stderr = cmd.Stderr

	r.logger.Debug("running", "cmd", Quote(cmd.Argv()))
	runErr := c.Run()
	code, ok := types.ExitCodeFromError(runErr)
	if !ok {
		return code, &StartError{Name: cmd.Name, Err: runErr}
	}
	r.logger.Debug("finished", "cmd", cmd.Name, "exit", code)
	return code, nil
}

// Argv returns the full command line, binary first.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// Error implements the error interface for StartError.
func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying start failure.
func (e *StartError) Unwrap() error { return e.Err }
