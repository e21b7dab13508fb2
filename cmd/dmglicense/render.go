// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/invowk/dmglicense/internal/config"
	"github.com/invowk/dmglicense/internal/embed"
	"github.com/invowk/dmglicense/internal/issue"
	"github.com/invowk/dmglicense/internal/resource"
	"github.com/invowk/dmglicense/pkg/types"
)

// view carries the display preferences of one invocation.
type view struct {
	verbose bool
	// style is the glamour style for issue catalog entries.
	style string
}

func newView(verbose bool, cfg *config.Config) view {
	v := view{verbose: verbose, style: string(config.ColorSchemeAuto)}
	if cfg != nil {
		v.verbose = v.verbose || cfg.UI.Verbose
		v.style = cfg.UI.ColorScheme.String()
	}
	return v
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// fail renders err and returns the ExitError for the handler to return.
// Catalog entries are only rendered in verbose mode.
func fail(stderr io.Writer, v view, err error) error {
	fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, v.verbose))

	var ae *issue.ActionableError
	if v.verbose && errors.As(err, &ae) {
		renderIssue(stderr, v, ae.Issue)
	}
	return &ExitError{Code: types.ExitFailure, Err: err}
}

func renderIssue(stderr io.Writer, v view, id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render(v.style)
	if err != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", id, "error", err)
		return
	}
	fmt.Fprint(stderr, rendered)
}

// classifyEmbedError turns pipeline errors into actionable errors.
func classifyEmbedError(err error, job embed.Job) error {
	var (
		sourceErr  *resource.SourceReadError
		payloadErr *embed.PayloadWriteError
		toolErr    *embed.ToolInvocationError
		recompErr  *embed.RecompressError
	)

	switch {
	case errors.As(err, &sourceErr):
		return issue.NewErrorContext().
			WithOperation("read license").
			WithResource(sourceErr.Path).
			WithSuggestion("Check that the file exists and is readable").
			WithSuggestion("Plain text licenses must be UTF-8; use a .rtf name for RTF content").
			WithIssue(issue.LicenseUnreadableId).
			Wrap(sourceErr.Err).
			BuildError()
	case errors.As(err, &payloadErr):
		return issue.NewErrorContext().
			WithOperation("write license payload").
			WithResource(payloadErr.Path).
			WithSuggestion("Make sure the directory exists and is writable, or pass --temp-dir").
			WithIssue(issue.PayloadWriteFailedId).
			Wrap(payloadErr.Err).
			BuildError()
	case errors.As(err, &toolErr):
		return issue.NewErrorContext().
			WithOperation("run Rez").
			WithResource(job.Rez.String()).
			WithSuggestion("Check that Rez is executable, or pass another one with --rez").
			WithIssue(issue.RezNotFoundId).
			Wrap(err).
			BuildError()
	case errors.As(err, &recompErr):
		return issue.NewErrorContext().
			WithOperation("recompress image").
			WithResource(recompErr.Image).
			WithSuggestion("Check free disk space next to the image").
			WithIssue(issue.HdiutilFailedId).
			Wrap(recompErr.Err).
			BuildError()
	case errors.Is(err, context.Canceled):
		return issue.WrapWithOperation(err, "add license (interrupted)")
	default:
		return issue.WrapWithOperation(err, "add license")
	}
}
