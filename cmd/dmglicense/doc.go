// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the dmglicense command line interface.
package cmd
