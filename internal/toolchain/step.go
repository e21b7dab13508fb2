// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"fmt"

	"github.com/invowk/dmglicense/pkg/types"
)

// Pipeline stages, in the order the embedder runs them.
const (
	StageUnflatten Stage = "unflatten"
	StageCompile   Stage = "compile"
	StageFlatten   Stage = "flatten"
	StageConvert   Stage = "convert"
)

type (
	// Stage names one external tool step of the embedding pipeline.
	Stage string

	// Step records the result of one tool invocation.
	Step struct {
		Stage    Stage
		Argv     []string
		ExitCode types.ExitCode
		// Err is set when the tool could not be started.
		Err error
	}
)

// String returns the string representation of the Stage.
func (s Stage) String() string { return string(s) }

// OK reports whether the tool started and exited zero.
func (s Step) OK() bool {
	return s.Err == nil && s.ExitCode.IsSuccess()
}

// Failure describes why the step did not succeed, or "" if it did.
func (s Step) Failure() string {
	switch {
	case s.Err != nil:
		return s.Err.Error()
	case !s.ExitCode.IsSuccess():
		return fmt.Sprintf("%s exited with status %s", s.Argv[0], s.ExitCode)
	default:
		return ""
	}
}

func runStep(ctx context.Context, runner Runner, stage Stage, cmd Command) Step {
	code, err := runner.Run(ctx, cmd)
	return Step{Stage: stage, Argv: cmd.Argv(), ExitCode: code, Err: err}
}
