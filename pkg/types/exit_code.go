// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

const (
	// ExitSuccess is the status of a tool or CLI run that completed normally.
	ExitSuccess ExitCode = 0
	// ExitFailure is the generic failure status used by the CLI and for
	// tools whose real status could not be determined.
	ExitFailure ExitCode = 1
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// ExitCodeFromError maps the error returned by exec.Cmd.Run to an exit status.
// A nil error is success. An *exec.ExitError yields the process status (a
// signal-terminated process reports -1 and is mapped to ExitFailure). Any
// other error means the process never ran; ok is false in that case.
func ExitCodeFromError(err error) (code ExitCode, ok bool) {
	if err == nil {
		return ExitSuccess, true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		status := ExitCode(exitErr.ExitCode())
		if status.Validate() != nil {
			return ExitFailure, true
		}
		return status, true
	}
	return ExitFailure, false
}
