// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/invowk/dmglicense/internal/config"
	"github.com/invowk/dmglicense/internal/embed"
	"github.com/invowk/dmglicense/internal/toolchain"
)

const logPrefix = "dmglicense"

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer; every Cobra handler receives an App reference.
	App struct {
		Config ConfigProvider
		Runner toolchain.Runner
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp. Tests supply a scripted Runner
	// so no real tool is started.
	Dependencies struct {
		Config ConfigProvider
		Runner toolchain.Runner
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Runner == nil {
		deps.Runner = toolchain.NewExecRunner()
	}

	return &App{
		Config: deps.Config,
		Runner: deps.Runner,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// newLogger creates the stderr logger. Verbose mode logs every tool step.
func (a *App) newLogger(verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: logPrefix,
		Level:  level,
	})
}

// newEmbedder creates an Embedder for one invocation. In verbose mode tool
// output is forwarded to stderr.
func (a *App) newEmbedder(cfg *config.Config, logger *log.Logger, verbose bool) *embed.Embedder {
	opts := []embed.Option{
		embed.WithHdiutil(cfg.Hdiutil.String()),
		embed.WithLogger(logger),
	}
	if verbose {
		opts = append(opts, embed.WithToolOutput(a.stderr))
	}
	return embed.New(a.Runner, opts...)
}
