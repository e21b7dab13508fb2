// SPDX-License-Identifier: MPL-2.0

package embed

import (
	"path/filepath"

	"github.com/invowk/dmglicense/internal/toolchain"
)

// Plan returns the shell-quoted commands Embed would run for job, in order.
// The payload path is shown as its name pattern, and the in-process file
// operations of the recompression pass are shown as their cp and rm
// equivalents. Plan runs nothing and touches no file.
func (e *Embedder) Plan(job Job) ([]string, error) {
	if valid, errs := job.IsValid(); !valid {
		return nil, errs[0]
	}
	dir := job.TempDir
	if dir == "" {
		dir = "."
	}
	payload := filepath.Join(dir, payloadPattern)
	image := job.Image.String()
	hd := e.newHdiutil()
	rez := toolchain.NewRez(job.Rez.String(), e.runner)

	lines := []string{
		toolchain.Quote(hd.UnflattenCommand(image).Argv()),
		toolchain.Quote(rez.CompileCommand(payload, image).Argv()),
		toolchain.Quote(hd.FlattenCommand(image).Argv()),
	}
	if format, extra, ok := job.Compression.ImageFormat(); ok {
		side := image + sideSuffix
		lines = append(lines,
			toolchain.Quote([]string{"cp", image, side}),
			toolchain.Quote([]string{"rm", image}),
			toolchain.Quote(hd.ConvertCommand(side, image, format, extra...).Argv()),
			toolchain.Quote([]string{"rm", side}),
		)
	}
	return lines, nil
}
