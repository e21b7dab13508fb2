// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/invowk/dmglicense/internal/embed"
	"github.com/invowk/dmglicense/internal/resource"
	"github.com/invowk/dmglicense/pkg/types"
)

// newPayloadCommand creates `dmglicense payload`, which prints the Rez source
// that would be compiled into the image.
func newPayloadCommand(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "payload <licenseFile>",
		Short: "Print the generated Rez source for a license",
		Long: `Print the Rez source that dmglicense compiles into the image.

A .rtf license is stored as an 'RTF ' resource, anything else as 'TEXT'.
The output can be compiled by hand:

  dmglicense payload LICENSE.txt > license.r
  Rez -a license.r -o App.dmg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			v := newView(opts.verbose, nil)
			src, err := resource.BuildFile(args[0])
			if err != nil {
				return fail(app.stderr, v, classifyEmbedError(err, embed.Job{License: types.FilesystemPath(args[0])}))
			}
			if _, err := app.stdout.Write(src); err != nil {
				return fail(app.stderr, v, err)
			}
			return nil
		},
	}
}
