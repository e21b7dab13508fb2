// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"io"
)

const (
	// DefaultHdiutil is the disk image tool looked up on PATH.
	DefaultHdiutil = "hdiutil"

	// FormatUDBZ is the bzip2-compressed read-only image format.
	FormatUDBZ ImageFormat = "UDBZ"
	// FormatUDZO is the zlib-compressed read-only image format.
	FormatUDZO ImageFormat = "UDZO"
)

type (
	// ImageFormat is an hdiutil convert -format value.
	ImageFormat string

	// Hdiutil drives the disk image tool.
	Hdiutil struct {
		// Binary is the hdiutil name or path.
		Binary string
		Runner Runner
		// Output receives tool output; nil discards it.
		Output io.Writer
	}
)

// NewHdiutil returns an Hdiutil using binary (DefaultHdiutil when empty).
func NewHdiutil(binary string, runner Runner) *Hdiutil {
	if binary == "" {
		binary = DefaultHdiutil
	}
	return &Hdiutil{Binary: binary, Runner: runner}
}

// UnflattenCommand returns the command that expands image's resource fork.
func (h *Hdiutil) UnflattenCommand(image string) Command {
	return h.command("unflatten", "-quiet", image)
}

// FlattenCommand returns the command that repacks image's resource fork.
func (h *Hdiutil) FlattenCommand(image string) Command {
	return h.command("flatten", "-quiet", image)
}

// ConvertCommand returns the command that converts src into dst using
// format. Extra arguments (such as -imagekey) go between the format and -o.
func (h *Hdiutil) ConvertCommand(src, dst string, format ImageFormat, extra ...string) Command {
	args := append([]string{"convert", src, "-format", string(format)}, extra...)
	args = append(args, "-o", dst)
	return h.command(args...)
}

// Unflatten expands the resource fork of image for editing.
func (h *Hdiutil) Unflatten(ctx context.Context, image string) Step {
	return runStep(ctx, h.Runner, StageUnflatten, h.UnflattenCommand(image))
}

// Flatten repacks the resource fork of image.
func (h *Hdiutil) Flatten(ctx context.Context, image string) Step {
	return runStep(ctx, h.Runner, StageFlatten, h.FlattenCommand(image))
}

// Convert writes a converted copy of src to dst.
func (h *Hdiutil) Convert(ctx context.Context, src, dst string, format ImageFormat, extra ...string) Step {
	return runStep(ctx, h.Runner, StageConvert, h.ConvertCommand(src, dst, format, extra...))
}

func (h *Hdiutil) command(args ...string) Command {
	return Command{Name: h.Binary, Args: args, Stdout: h.Output, Stderr: h.Output}
}
