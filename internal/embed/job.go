// SPDX-License-Identifier: MPL-2.0

package embed

import (
	"errors"
	"fmt"

	"github.com/invowk/dmglicense/internal/toolchain"
	"github.com/invowk/dmglicense/pkg/types"
)

const (
	// CompressionNone leaves the image in the format hdiutil flatten produces.
	CompressionNone Compression = ""
	// CompressionBZ2 converts the image to bzip2-compressed UDBZ.
	CompressionBZ2 Compression = "bz2"
	// CompressionGZ converts the image to zlib-compressed UDZO at level 9.
	CompressionGZ Compression = "gz"

	// zlibLevelKey is the image key selecting the zlib compression level.
	zlibLevelKey = "zlib-devel=9"
)

var (
	// ErrInvalidCompression is the sentinel error wrapped by InvalidCompressionError.
	ErrInvalidCompression = errors.New("invalid compression")
	// ErrInvalidJob is the sentinel error wrapped by InvalidJobError.
	ErrInvalidJob = errors.New("invalid embedding job")
)

type (
	// Compression selects the optional recompression pass.
	Compression string

	// InvalidCompressionError is returned when a Compression value is not recognized.
	InvalidCompressionError struct {
		Value Compression
	}

	// Job describes one embedding run.
	Job struct {
		// Image is the disk image that receives the license. It is modified in place.
		Image types.FilesystemPath
		// License is the license text; a .rtf name selects the RTF resource type.
		License types.FilesystemPath
		// Rez is the resource compiler binary.
		Rez types.FilesystemPath
		// Compression optionally recompresses the image afterwards.
		Compression Compression
		// TempDir holds the payload file. Empty means the current directory.
		TempDir string
		// Strict turns hdiutil failures into a failed Outcome instead of warnings.
		Strict bool
	}

	// InvalidJobError is returned when a Job has invalid fields.
	// It wraps ErrInvalidJob for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidJobError struct {
		FieldErrors []error
	}
)

// String returns the string representation of the Compression.
func (c Compression) String() string { return string(c) }

// IsValid returns whether the Compression is one of the defined modes,
// and a list of validation errors if it is not.
func (c Compression) IsValid() (bool, []error) {
	switch c {
	case CompressionNone, CompressionBZ2, CompressionGZ:
		return true, nil
	default:
		return false, []error{&InvalidCompressionError{Value: c}}
	}
}

// ImageFormat returns the hdiutil convert format and any extra convert
// arguments for the mode. ok is false for CompressionNone.
func (c Compression) ImageFormat() (format toolchain.ImageFormat, extra []string, ok bool) {
	switch c {
	case CompressionBZ2:
		return toolchain.FormatUDBZ, nil, true
	case CompressionGZ:
		return toolchain.FormatUDZO, []string{"-imagekey", zlibLevelKey}, true
	default:
		return "", nil, false
	}
}

// Error implements the error interface for InvalidCompressionError.
func (e *InvalidCompressionError) Error() string {
	return fmt.Sprintf("invalid compression %q (valid: bz2, gz)", e.Value)
}

// Unwrap returns ErrInvalidCompression for errors.Is() compatibility.
func (e *InvalidCompressionError) Unwrap() error { return ErrInvalidCompression }

// IsValid returns whether the Job has valid fields. Image, License and Rez
// must be non-empty and Compression must be recognized. Whether the files
// exist is checked by the caller before the pipeline starts.
func (j Job) IsValid() (bool, []error) {
	var errs []error
	for _, p := range []types.FilesystemPath{j.Image, j.License, j.Rez} {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if valid, fieldErrs := j.Compression.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidJobError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidJobError.
func (e *InvalidJobError) Error() string {
	return fmt.Sprintf("invalid embedding job: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidJob for errors.Is() compatibility.
func (e *InvalidJobError) Unwrap() error { return ErrInvalidJob }
