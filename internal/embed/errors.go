// SPDX-License-Identifier: MPL-2.0

package embed

import (
	"errors"
	"fmt"

	"github.com/invowk/dmglicense/internal/toolchain"
)

var (
	// ErrPayloadWrite is the sentinel error wrapped by PayloadWriteError.
	ErrPayloadWrite = errors.New("payload write failed")
	// ErrToolInvocation is the sentinel error wrapped by ToolInvocationError.
	ErrToolInvocation = errors.New("tool invocation failed")
	// ErrRecompress is the sentinel error wrapped by RecompressError.
	ErrRecompress = errors.New("recompression failed")
)

type (
	// PayloadWriteError is returned when the temporary Rez source cannot be
	// created, written or closed. No tool has run when it is returned.
	PayloadWriteError struct {
		// Path is the temporary file, or its directory when creation failed.
		Path string
		// Op is one of "create", "write" or "close".
		Op  string
		Err error
	}

	// ToolInvocationError describes a toolchain step that could not be started
	// or exited with a non-zero status.
	ToolInvocationError struct {
		Step toolchain.Step
	}

	// RecompressError is returned when the side copy used by the
	// recompression pass cannot be made, or the original cannot be replaced.
	RecompressError struct {
		Image string
		Op    string
		Err   error
	}
)

// Error implements the error interface.
func (e *PayloadWriteError) Error() string {
	return fmt.Sprintf("%s license payload %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *PayloadWriteError) Unwrap() []error { return []error{ErrPayloadWrite, e.Err} }

// Error implements the error interface.
func (e *ToolInvocationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step.Stage, e.Step.Failure())
}

// Unwrap returns the sentinel and, when the tool could not be started, the start error.
func (e *ToolInvocationError) Unwrap() []error {
	if e.Step.Err != nil {
		return []error{ErrToolInvocation, e.Step.Err}
	}
	return []error{ErrToolInvocation}
}

// Error implements the error interface.
func (e *RecompressError) Error() string {
	return fmt.Sprintf("recompress %s: %s: %v", e.Image, e.Op, e.Err)
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *RecompressError) Unwrap() []error { return []error{ErrRecompress, e.Err} }
