// SPDX-License-Identifier: MPL-2.0

package embed

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"github.com/invowk/dmglicense/internal/resource"
	"github.com/invowk/dmglicense/internal/toolchain"
)

// sideSuffix is appended to the image path for the copy hdiutil convert reads.
const sideSuffix = ".temp.dmg"

type (
	// Embedder runs the embedding pipeline. It holds no per-job state and
	// may be reused; it is not meant for concurrent use on the same image.
	Embedder struct {
		runner  toolchain.Runner
		hdiutil string
		output  io.Writer
		logger  *log.Logger
	}

	// Option configures an Embedder.
	Option func(*Embedder)
)

// WithHdiutil overrides the hdiutil binary.
func WithHdiutil(binary string) Option {
	return func(e *Embedder) {
		if binary != "" {
			e.hdiutil = binary
		}
	}
}

// WithToolOutput forwards the stdout and stderr of every tool to w.
// By default tool output is discarded.
func WithToolOutput(w io.Writer) Option {
	return func(e *Embedder) {
		e.output = w
	}
}

// WithLogger sets the logger for stage diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(e *Embedder) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Embedder that runs tools through runner.
func New(runner toolchain.Runner, opts ...Option) *Embedder {
	e := &Embedder{
		runner:  runner,
		hdiutil: toolchain.DefaultHdiutil,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Embed adds the license in job.License to job.Image.
//
// A failed Rez compile is reported through the Outcome, not as an error.
// The returned error is non-nil for an invalid job, an unreadable license
// (*resource.SourceReadError), a payload that cannot be written
// (*PayloadWriteError), a Rez binary that cannot be started
// (*ToolInvocationError), a failed side copy (*RecompressError), or a
// cancelled context. The Outcome is nil only when no tool ran.
func (e *Embedder) Embed(ctx context.Context, job Job) (_ *Outcome, err error) {
	if valid, errs := job.IsValid(); !valid {
		return nil, errs[0]
	}

	payload, err := createPayload(job.TempDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := payload.discard(); rmErr != nil {
			e.logger.Warn("could not remove license payload", "path", payload.path, "err", rmErr)
		}
	}()

	src, err := resource.BuildFile(job.License.String())
	if err != nil {
		return nil, err
	}
	if err = payload.write(src); err != nil {
		return nil, err
	}
	e.logger.Debug("wrote license payload", "path", payload.path, "bytes", len(src))

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	image := job.Image.String()
	hd := e.newHdiutil()
	rez := toolchain.NewRez(job.Rez.String(), e.runner)
	rez.Output = e.output
	out := &Outcome{Image: image, Strict: job.Strict}

	e.record(out, hd.Unflatten(ctx, image))

	// flatten always runs once unflatten has, so the image is never left
	// in its unflattened form.
	flatCtx := context.WithoutCancel(ctx)
	if err = ctx.Err(); err != nil {
		e.record(out, hd.Flatten(flatCtx, image))
		return out, err
	}

	compile := rez.Compile(ctx, payload.path, image)
	e.record(out, compile)
	e.record(out, hd.Flatten(flatCtx, image))
	if compile.Err != nil {
		return out, &ToolInvocationError{Step: compile}
	}

	if job.Compression == CompressionNone {
		return out, nil
	}
	if err = ctx.Err(); err != nil {
		return out, err
	}
	if err = e.recompress(ctx, hd, job, out); err != nil {
		return out, err
	}
	return out, nil
}

// recompress converts the image through a side copy, as hdiutil convert
// cannot write over its input. If the conversion fails the side copy is
// moved back so the image is not lost.
func (e *Embedder) recompress(ctx context.Context, hd *toolchain.Hdiutil, job Job, out *Outcome) error {
	format, extra, ok := job.Compression.ImageFormat()
	if !ok {
		return nil
	}
	image := job.Image.String()
	side := image + sideSuffix

	if err := copyFile(image, side); err != nil {
		_ = removeIfExists(side)
		return &RecompressError{Image: image, Op: "copy", Err: err}
	}
	defer func() {
		if err := removeIfExists(side); err != nil {
			e.logger.Warn("could not remove side copy", "path", side, "err", err)
		}
	}()

	if err := os.Remove(image); err != nil {
		return &RecompressError{Image: image, Op: "remove original", Err: err}
	}

	step := hd.Convert(ctx, side, image, format, extra...)
	e.record(out, step)
	if step.OK() {
		return nil
	}
	if err := removeIfExists(image); err != nil {
		return &RecompressError{Image: image, Op: "restore", Err: err}
	}
	if err := os.Rename(side, image); err != nil {
		return &RecompressError{Image: image, Op: "restore", Err: err}
	}
	e.logger.Warn("conversion failed, kept uncompressed image", "path", image)
	return nil
}

func (e *Embedder) record(out *Outcome, step toolchain.Step) {
	out.record(step)
	e.logger.Debug("ran tool", "stage", step.Stage, "args", toolchain.Quote(step.Argv), "exit", step.ExitCode)
	if step.Stage != toolchain.StageCompile && !step.OK() {
		e.logger.Warn("tool step failed", "stage", step.Stage, "err", step.Failure())
	}
}

func (e *Embedder) newHdiutil() *toolchain.Hdiutil {
	hd := toolchain.NewHdiutil(e.hdiutil, e.runner)
	hd.Output = e.output
	return hd
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
