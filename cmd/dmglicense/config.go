// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/invowk/dmglicense/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `dmglicense config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage dmglicense configuration",
		Long: `Manage dmglicense configuration.

Configuration is stored in:
  - Linux: ~/.config/dmglicense/config.cue
  - macOS: ~/Library/Application Support/dmglicense/config.cue
  - Windows: %APPDATA%\dmglicense\config.cue

A config.cue in the current directory is used when none exists there.
Every key can be overridden with a DMGLICENSE_ environment variable,
e.g. DMGLICENSE_REZ or DMGLICENSE_UI_VERBOSE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	loadOpts := func() config.LoadOptions {
		return config.LoadOptions{ConfigFilePath: opts.configPath}
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, loadOpts())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig(loadOpts())
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(app.stdout, "Config file already exists: %s\n", path)
				return nil
			}
			fmt.Fprintln(app.stdout, SuccessStyle.Render("Created config file: ")+path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app.stdout, loadOpts())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), loadOpts())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, opts config.LoadOptions) error {
	cfg, err := app.Config.Load(ctx, opts)
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	path, err := config.ResolvePath(opts)
	if err != nil || path == "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), path)
	}
	fmt.Fprintln(out)

	orDefault := func(s, fallback string) string {
		if s == "" {
			return SubtitleStyle.Render(fallback)
		}
		return valueStyle.Render(s)
	}

	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("rez"), orDefault(cfg.Rez.String(), "(located with xcrun)"))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("hdiutil"), orDefault(cfg.Hdiutil.String(), "hdiutil"))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("compression"), orDefault(cfg.Compression.String(), "(none)"))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("temp_dir"), orDefault(cfg.TempDir.String(), "(current directory)"))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("strict_tools"), valueStyle.Render(fmt.Sprintf("%v", cfg.StrictTools)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func showConfigPath(out io.Writer, opts config.LoadOptions) error {
	path, err := config.ResolvePath(opts)
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintln(out, path)
		return nil
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	fmt.Fprintln(out, SubtitleStyle.Render("(not created yet; run 'dmglicense config init')"))
	return nil
}
