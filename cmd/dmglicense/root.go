// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootOptions holds the flag values of one invocation.
type rootOptions struct {
	verbose     bool
	configPath  string
	rez         string
	compression string
	tempDir     string
	dryRun      bool
	strict      bool
}

// NewRootCommand creates the dmglicense command tree.
func NewRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "dmglicense <dmgFile> <licenseFile>",
		Short: "Add a software license agreement to a macOS disk image",
		Long: TitleStyle.Render("dmglicense") + SubtitleStyle.Render(" - add a license agreement to a DMG") + `

dmglicense compiles a license into the resource fork of a disk image so
that Finder shows it, with Agree and Disagree buttons, before mounting.
It requires Xcode or the command line tools (for Rez and hdiutil) and
either a plain text <licenseFile> or a <licenseFile.rtf> with RTF contents.

` + SubtitleStyle.Render("Examples:") + `
  dmglicense App.dmg LICENSE.txt
  dmglicense App.dmg LICENSE.rtf --compression bz2
  dmglicense App.dmg LICENSE.txt --dry-run
  dmglicense payload LICENSE.txt > license.r`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true
			return runEmbed(cmd, app, opts, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.config/dmglicense/config.cue)")

	f := rootCmd.Flags()
	f.StringVarP(&opts.rez, "rez", "r", "", "path to the Rez tool (default: located with xcrun)")
	f.StringVarP(&opts.compression, "compression", "c", "", "recompress the image afterwards: bz2 or gz")
	f.StringVar(&opts.tempDir, "temp-dir", "", "directory for the temporary resource file (default: current directory)")
	f.BoolVar(&opts.dryRun, "dry-run", false, "print the tool invocations without running them")
	f.BoolVar(&opts.strict, "strict", false, "treat hdiutil failures as errors")

	rootCmd.AddCommand(newPayloadCommand(app, opts))
	rootCmd.AddCommand(newConfigCommand(app, opts))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
// Priority: ldflags, then the module version recorded by go install, then "dev".
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute builds the App and runs the root command. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// handleError prints errors that no handler has rendered yet.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
