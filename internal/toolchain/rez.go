// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"io"
)

// Rez drives the resource compiler.
type Rez struct {
	// Path is the Rez binary.
	Path   string
	Runner Runner
	// Output receives tool output; nil discards it.
	Output io.Writer
}

// NewRez returns a Rez for the binary at path.
func NewRez(path string, runner Runner) *Rez {
	return &Rez{Path: path, Runner: runner}
}

// CompileCommand returns the command that appends the resources described
// by the Rez source at payload to image's resource fork.
func (r *Rez) CompileCommand(payload, image string) Command {
	return Command{
		Name:   r.Path,
		Args:   []string{"-a", payload, "-o", image},
		Stdout: r.Output,
		Stderr: r.Output,
	}
}

// Compile runs the resource compiler. Its exit status decides whether the
// license was embedded.
func (r *Rez) Compile(ctx context.Context, payload, image string) Step {
	return runStep(ctx, r.Runner, StageCompile, r.CompileCommand(payload, image))
}
