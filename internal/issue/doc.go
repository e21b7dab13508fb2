// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the file involved and
// remediation hints. Errors that match a known failure mode also point at an
// entry of the issue catalog, a Markdown page rendered with glamour that
// explains how to fix it.
package issue
