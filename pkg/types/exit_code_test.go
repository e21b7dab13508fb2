// SPDX-License-Identifier: MPL-2.0

package types

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

func TestExitCodeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     ExitCode
		wantValid bool
	}{
		{name: "zero is valid", value: 0, wantValid: true},
		{name: "one is valid", value: 1, wantValid: true},
		{name: "255 is valid", value: 255, wantValid: true},
		{name: "negative is invalid", value: -1, wantValid: false},
		{name: "256 is invalid", value: 256, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if tt.wantValid {
				if err != nil {
					t.Errorf("ExitCode(%d).Validate() returned error for valid value: %v", tt.value, err)
				}
				return
			}
			if err == nil {
				t.Fatal("ExitCode.Validate() returned nil for invalid value")
			}
			if !errors.Is(err, ErrInvalidExitCode) {
				t.Errorf("error does not wrap ErrInvalidExitCode: %v", err)
			}
		})
	}
}

func TestExitCodeIsSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code ExitCode
		want bool
	}{
		{ExitSuccess, true},
		{ExitFailure, false},
		{2, false},
		{255, false},
	}

	for _, tt := range tests {
		if got := tt.code.IsSuccess(); got != tt.want {
			t.Errorf("ExitCode(%d).IsSuccess() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	t.Run("nil is success", func(t *testing.T) {
		t.Parallel()
		code, ok := ExitCodeFromError(nil)
		if code != ExitSuccess || !ok {
			t.Errorf("ExitCodeFromError(nil) = (%d, %v), want (0, true)", code, ok)
		}
	})

	t.Run("start failure is not a status", func(t *testing.T) {
		t.Parallel()
		code, ok := ExitCodeFromError(errors.New("exec: \"Rez\": executable file not found in $PATH"))
		if code != ExitFailure || ok {
			t.Errorf("ExitCodeFromError(start error) = (%d, %v), want (1, false)", code, ok)
		}
	})

	t.Run("process exit status is preserved", func(t *testing.T) {
		t.Parallel()
		sh, err := exec.LookPath("sh")
		if err != nil {
			t.Skip("sh not available")
		}
		runErr := exec.CommandContext(context.Background(), sh, "-c", "exit 3").Run()
		code, ok := ExitCodeFromError(runErr)
		if code != 3 || !ok {
			t.Errorf("ExitCodeFromError(exit 3) = (%d, %v), want (3, true)", code, ok)
		}
	})
}

func TestExitCodeString(t *testing.T) {
	t.Parallel()

	if got := ExitCode(42).String(); got != "42" {
		t.Errorf("ExitCode(42).String() = %q, want %q", got, "42")
	}
}
