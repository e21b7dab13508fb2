// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// IsDarwin reports whether the process runs on macOS, the only system that
// ships hdiutil and Rez.
func IsDarwin() bool {
	return runtime.GOOS == Darwin
}
