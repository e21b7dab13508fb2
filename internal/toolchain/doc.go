// SPDX-License-Identifier: MPL-2.0

// Package toolchain wraps the external macOS tools used to embed a license
// into a disk image: hdiutil (unflatten, flatten, convert) and Rez.
//
// Every tool runs through a Runner, which reports a process exit status
// rather than an error for a tool that ran and failed. Tests substitute a
// Runner, or the ExecCommandFunc of an ExecRunner, to simulate tools
// without touching the host.
package toolchain
