// SPDX-License-Identifier: MPL-2.0

// Package toolchaintest provides a scripted toolchain.Runner for tests.
package toolchaintest

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/invowk/dmglicense/internal/toolchain"
	"github.com/invowk/dmglicense/pkg/types"
)

type (
	// Invocation is one recorded call to Recorder.Run.
	Invocation struct {
		Name string
		Args []string
	}

	// Response scripts what a matched command does.
	Response struct {
		ExitCode types.ExitCode
		// Err simulates a command that could not be started.
		Err error
		// Stdout is written to the command's Stdout writer, if any.
		Stdout string
		// Do runs before the response is returned, for side effects such
		// as creating the output file of a conversion.
		Do func(cmd toolchain.Command) error
	}

	// Recorder is a toolchain.Runner that records every invocation and
	// answers from a table keyed by binary name and first argument.
	// Unmatched commands succeed.
	Recorder struct {
		mu          sync.Mutex
		invocations []Invocation
		responses   map[string]Response
	}
)

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{responses: make(map[string]Response)}
}

// On scripts the response for commands named name whose first argument is
// verb. An empty verb matches any command with that name.
func (r *Recorder) On(name, verb string, resp Response) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[key(name, verb)] = resp
	return r
}

// Run implements toolchain.Runner.
func (r *Recorder) Run(_ context.Context, cmd toolchain.Command) (types.ExitCode, error) {
	r.mu.Lock()
	r.invocations = append(r.invocations, Invocation{Name: cmd.Name, Args: slices.Clone(cmd.Args)})
	resp, ok := r.lookup(cmd)
	r.mu.Unlock()

	if !ok {
		return types.ExitSuccess, nil
	}
	if resp.Do != nil {
		if err := resp.Do(cmd); err != nil {
			return types.ExitFailure, fmt.Errorf("scripted side effect: %w", err)
		}
	}
	if resp.Stdout != "" && cmd.Stdout != nil {
		if _, err := fmt.Fprint(cmd.Stdout, resp.Stdout); err != nil {
			return types.ExitFailure, err
		}
	}
	return resp.ExitCode, resp.Err
}

// Invocations returns a copy of the recorded calls.
func (r *Recorder) Invocations() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.invocations)
}

// Verbs returns "<name> <first arg>" for every recorded call, in order.
func (r *Recorder) Verbs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.invocations))
	for _, inv := range r.invocations {
		verb := ""
		if len(inv.Args) > 0 {
			verb = inv.Args[0]
		}
		out = append(out, inv.Name+" "+verb)
	}
	return out
}

func (r *Recorder) lookup(cmd toolchain.Command) (Response, bool) {
	if len(cmd.Args) > 0 {
		if resp, ok := r.responses[key(cmd.Name, cmd.Args[0])]; ok {
			return resp, true
		}
	}
	resp, ok := r.responses[key(cmd.Name, "")]
	return resp, ok
}

func key(name, verb string) string { return name + "\x00" + verb }
