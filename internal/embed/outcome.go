// SPDX-License-Identifier: MPL-2.0

package embed

import (
	"github.com/invowk/dmglicense/internal/toolchain"
	"github.com/invowk/dmglicense/pkg/types"
)

// Outcome is the result of one Embed call.
type Outcome struct {
	Image string
	// Steps lists every tool invocation in the order it ran.
	Steps []toolchain.Step
	// Warnings holds a *ToolInvocationError for each failed hdiutil step.
	Warnings []error
	// Compiled is true once the Rez step ran.
	Compiled bool
	// CompileExitCode is the exit status of Rez.
	CompileExitCode types.ExitCode
	// Strict mirrors Job.Strict.
	Strict bool
}

// Success reports whether the license was added. Only the Rez status counts,
// unless the job was strict, in which case any warning is a failure as well.
func (o *Outcome) Success() bool {
	if !o.Compiled || !o.CompileExitCode.IsSuccess() {
		return false
	}
	return !o.Strict || len(o.Warnings) == 0
}

// ExitCode maps the outcome to the process exit status.
func (o *Outcome) ExitCode() types.ExitCode {
	if o.Success() {
		return types.ExitSuccess
	}
	return types.ExitFailure
}

// Step returns the recorded step for stage.
func (o *Outcome) Step(stage toolchain.Stage) (toolchain.Step, bool) {
	for _, s := range o.Steps {
		if s.Stage == stage {
			return s, true
		}
	}
	return toolchain.Step{}, false
}

// record appends step and, for a failed hdiutil step, a warning.
func (o *Outcome) record(step toolchain.Step) {
	o.Steps = append(o.Steps, step)
	if step.Stage == toolchain.StageCompile {
		o.Compiled = true
		o.CompileExitCode = step.ExitCode
		if step.Err != nil {
			o.CompileExitCode = types.ExitFailure
		}
		return
	}
	if !step.OK() {
		o.Warnings = append(o.Warnings, &ToolInvocationError{Step: step})
	}
}
