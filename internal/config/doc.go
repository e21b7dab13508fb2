// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/dmglicense/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/dmglicense/config.cue on macOS, %APPDATA%\dmglicense\config.cue
// on Windows), falling back to ./config.cue. Environment variables prefixed with
// DMGLICENSE_ override file values; command line flags override both.
//
// Configuration files are validated against a CUE schema (config_schema.cue) so that a
// mistyped key or value is reported with its path.
package config
