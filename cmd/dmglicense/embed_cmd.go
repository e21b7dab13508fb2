// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invowk/dmglicense/internal/config"
	"github.com/invowk/dmglicense/internal/embed"
	"github.com/invowk/dmglicense/internal/issue"
	"github.com/invowk/dmglicense/internal/toolchain"
	"github.com/invowk/dmglicense/pkg/platform"
	"github.com/invowk/dmglicense/pkg/types"
)

// runEmbed adds the license to the image named on the command line.
func runEmbed(cmd *cobra.Command, app *App, opts *rootOptions, args []string) error {
	ctx := cmd.Context()

	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.configPath})
	if err != nil {
		return fail(app.stderr, newView(opts.verbose, nil), err)
	}
	v := newView(opts.verbose, cfg)
	logger := app.newLogger(v.verbose)

	compression := cfg.Compression
	if cmd.Flags().Changed("compression") {
		compression = config.Compression(opts.compression)
	}
	tempDir := cfg.TempDir.String()
	if opts.tempDir != "" {
		tempDir = opts.tempDir
	}
	rez := resolveRez(ctx, app.Runner, opts.rez, cfg)

	if problems := preflight(args, rez, compression); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintln(app.stderr, ErrorStyle.Render(p))
		}
		if !platform.IsDarwin() {
			logger.Warn("Rez and hdiutil are only available on macOS")
		}
		fmt.Fprintln(app.stderr)
		fmt.Fprint(app.stderr, cmd.UsageString())
		return &ExitError{Code: types.ExitFailure}
	}

	job := embed.Job{
		Image:       types.FilesystemPath(args[0]),
		License:     types.FilesystemPath(args[1]),
		Rez:         types.FilesystemPath(rez),
		Compression: embed.Compression(compression),
		TempDir:     tempDir,
		Strict:      opts.strict || cfg.StrictTools,
	}
	embedder := app.newEmbedder(cfg, logger, v.verbose)

	if opts.dryRun {
		lines, planErr := embedder.Plan(job)
		if planErr != nil {
			return fail(app.stderr, v, planErr)
		}
		for _, line := range lines {
			fmt.Fprintln(app.stdout, line)
		}
		return nil
	}

	if !job.Image.Exists() {
		return fail(app.stderr, v, issue.NewErrorContext().
			WithOperation("open disk image").
			WithResource(job.Image.String()).
			WithSuggestion("Create the image with hdiutil create before adding a license").
			WithIssue(issue.ImageNotFoundId).
			BuildError())
	}

	outcome, err := embedder.Embed(ctx, job)
	if outcome != nil {
		for _, w := range outcome.Warnings {
			fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+w.Error())
		}
	}
	if err != nil {
		fmt.Fprintln(app.stderr, ErrorStyle.Render(failureLine(job)))
		return fail(app.stderr, v, classifyEmbedError(err, job))
	}

	if !outcome.Success() {
		fmt.Fprintln(app.stderr, ErrorStyle.Render(failureLine(job)))
		if v.verbose {
			id := issue.CompileFailedId
			if outcome.CompileExitCode.IsSuccess() {
				id = issue.HdiutilFailedId
			}
			renderIssue(app.stderr, v, id)
		}
		return &ExitError{Code: outcome.ExitCode()}
	}

	fmt.Fprintln(app.stdout, SuccessStyle.Render(fmt.Sprintf("Successfully added license to '%s'", job.Image)))
	return nil
}

// preflight validates the invocation before anything runs. It returns one
// message per problem.
func preflight(args []string, rez string, compression config.Compression) []string {
	var problems []string
	if len(args) != 2 {
		problems = append(problems, fmt.Sprintf("Expected <dmgFile> <licenseFile>, got %d argument(s)", len(args)))
	}
	if !types.FilesystemPath(rez).Exists() {
		problems = append(problems, `Failed to find Rez at "`+rez+`"!`)
	}
	if valid, errs := compression.IsValid(); !valid {
		problems = append(problems, errs[0].Error())
	}
	return problems
}

// resolveRez picks the Rez binary: the flag, then the config file (or its
// environment override), then the developer tools.
func resolveRez(ctx context.Context, runner toolchain.Runner, flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.Rez != "" {
		return cfg.Rez.String()
	}
	if found := toolchain.DiscoverRez(ctx, runner); found != "" {
		return found
	}
	return toolchain.SystemRezPath
}

func failureLine(job embed.Job) string {
	return fmt.Sprintf("Failed to add license to '%s'", job.Image)
}
