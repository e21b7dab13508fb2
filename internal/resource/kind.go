// SPDX-License-Identifier: MPL-2.0

package resource

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// KindText is plain text shown as-is by the license dialog.
	KindText LicenseKind = "TEXT"
	// KindRTF is rich text. Resource types are four characters wide,
	// so the type is padded with a trailing space.
	KindRTF LicenseKind = "RTF "

	rtfExtension = ".rtf"
)

// ErrInvalidLicenseKind is the sentinel error wrapped by InvalidLicenseKindError.
var ErrInvalidLicenseKind = errors.New("invalid license kind")

type (
	// LicenseKind is the resource type of the dynamic license block.
	LicenseKind string

	// InvalidLicenseKindError is returned when a LicenseKind is not TEXT or "RTF ".
	InvalidLicenseKindError struct {
		Value LicenseKind
	}
)

// KindForPath selects the license kind from the source file name: a ".rtf"
// suffix in any letter case is RTF, everything else is plain text.
func KindForPath(path string) LicenseKind {
	if strings.EqualFold(filepath.Ext(path), rtfExtension) {
		return KindRTF
	}
	return KindText
}

// String returns the string representation of the LicenseKind.
func (k LicenseKind) String() string { return string(k) }

// IsValid returns whether the LicenseKind is one of the defined kinds,
// and a list of validation errors if it is not.
func (k LicenseKind) IsValid() (bool, []error) {
	switch k {
	case KindText, KindRTF:
		return true, nil
	default:
		return false, []error{&InvalidLicenseKindError{Value: k}}
	}
}

// Error implements the error interface for InvalidLicenseKindError.
func (e *InvalidLicenseKindError) Error() string {
	return fmt.Sprintf("invalid license kind %q (valid: %q, %q)", e.Value, KindText, KindRTF)
}

// Unwrap returns ErrInvalidLicenseKind for errors.Is() compatibility.
func (e *InvalidLicenseKindError) Unwrap() error { return ErrInvalidLicenseKind }
