// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/invowk/dmglicense/pkg/types"
)

const (
	// RezName is the resource compiler binary name.
	RezName = "Rez"

	// SystemRezPath is where the command line tools install Rez.
	SystemRezPath = "/usr/bin/Rez"
)

// RezLocator finds the resource compiler installed with Xcode or the
// command line tools.
type RezLocator struct {
	Runner Runner
	// Exists reports whether a candidate path exists. Defaults to a stat.
	Exists func(path string) bool
}

// NewRezLocator creates a locator that queries the developer tools through runner.
func NewRezLocator(runner Runner) *RezLocator {
	return &RezLocator{
		Runner: runner,
		Exists: func(path string) bool { return types.FilesystemPath(path).Exists() },
	}
}

// Candidates returns the paths to try, most specific first:
// what `xcrun --find Rez` reports, Rez under the active developer
// directory from `xcode-select --print-path`, and /usr/bin/Rez.
func (l *RezLocator) Candidates(ctx context.Context) []string {
	var out []string
	if p := l.query(ctx, "xcrun", "--find", RezName); p != "" {
		out = append(out, p)
	}
	if dev := l.query(ctx, "xcode-select", "--print-path"); dev != "" {
		out = append(out,
			filepath.Join(dev, "usr", "bin", RezName),
			filepath.Join(dev, "Toolchains", "XcodeDefault.xctoolchain", "usr", "bin", RezName),
		)
	}
	return append(out, SystemRezPath)
}

// Locate returns the first existing candidate, or "" when Rez is not installed.
func (l *RezLocator) Locate(ctx context.Context) string {
	for _, p := range l.Candidates(ctx) {
		if l.Exists(p) {
			return p
		}
	}
	return ""
}

// query runs a developer tool and returns its trimmed first output line.
// Any failure yields "".
func (l *RezLocator) query(ctx context.Context, name string, args ...string) string {
	var stdout bytes.Buffer
	code, err := l.Runner.Run(ctx, Command{Name: name, Args: args, Stdout: &stdout})
	if err != nil || !code.IsSuccess() {
		return ""
	}
	line, _, _ := strings.Cut(stdout.String(), "\n")
	return strings.TrimSpace(line)
}

// DiscoverRez locates Rez with a default RezLocator.
func DiscoverRez(ctx context.Context, runner Runner) string {
	return NewRezLocator(runner).Locate(ctx)
}
