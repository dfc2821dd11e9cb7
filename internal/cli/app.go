// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the command-line interface: profile listing, apply,
// status, and the interactive selectors.
package cli

import (
	"context"
	"fmt"

	"github.com/chrandr/chrandr/internal/adapters/platform"
	"github.com/chrandr/chrandr/internal/application"
	"github.com/chrandr/chrandr/internal/config"
	"github.com/chrandr/chrandr/internal/console"
	"github.com/chrandr/chrandr/internal/domain"
	cli "github.com/urfave/cli/v3"
)

// Exit codes follow standard Unix conventions for better scripting support.
const (
	ExitSuccess      = 0  // Operation completed successfully
	ExitGeneralError = 1  // Generic failure (catch-all)
	ExitUsageError   = 2  // Invalid command line usage
	ExitConfigError  = 3  // Configuration file error
	ExitNotFound     = 5  // Profile not found
	ExitQueryError   = 11 // Display query failed
	ExitApplyError   = 20 // A profile command failed
)

// ExitError carries a specific exit code for main to return.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// NewExitError creates an ExitError with the specified code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// CLI wires the repositories, adapters, and services behind the commands.
type CLI struct {
	app *cli.Command

	configPath string
	verbose    bool
	json       bool
	plain      bool

	output   *console.Output
	profiles *config.FileProfileRepository
	state    *config.FileStateRepository
	store    *domain.ProfileStore
	detector domain.OutputDetector
	apply    *application.ApplyService
	status   *application.StatusService
}

// NewCLI creates the chrandr command tree.
func NewCLI(version string) *CLI {
	app := &CLI{}

	app.app = &cli.Command{
		Name:    "chrandr",
		Usage:   "Switch between randr display profiles",
		Version: version,
		Suggest: true,
		Description: `Lets you switch between named display profiles. Each profile lists the
output ports it requires and the shell commands (typically xrandr invocations)
that realize it; a profile is selectable only while all of its ports are
connected.

ESSENTIAL COMMANDS:
  list              Show profiles with availability and the active one
  apply <code>      Run a profile's commands and mark it active
  select            Pick an available profile interactively
  outputs           Show currently connected outputs

Run without arguments to open the full-screen picker.

Profiles live in $XDG_CONFIG_HOME/chrandr/chrandr.toml; a commented example
is created on first run.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "profile configuration file path",
				Aliases:     []string{"c"},
				Destination: &app.configPath,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "show progress messages to stderr",
				Aliases:     []string{"v"},
				Destination: &app.verbose,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output structured JSON results",
				Aliases:     []string{"j"},
				Destination: &app.json,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "output plain text without formatting for scripts",
				Destination: &app.plain,
			},
		},
		Action:   app.defaultAction,
		Commands: app.createCommands(),
	}

	return app
}

// Run executes the CLI application.
func (app *CLI) Run(ctx context.Context, args []string) error {
	return app.app.Run(ctx, args)
}

func (app *CLI) createCommands() []*cli.Command {
	return []*cli.Command{
		app.createListCommand(),
		app.createStatusCommand(),
		app.createOutputsCommand(),
		app.createApplyCommand(),
		app.createClearCommand(),
		app.createSelectCommand(),
	}
}

// bootstrap loads the configuration and wires services. Called by each
// command action, not in Before, so that --help never touches the disk.
func (app *CLI) bootstrap() error {
	if app.output == nil {
		app.output = console.New(app.verbose, app.json, app.plain)
	}

	path := app.configPath
	usingDefault := path == ""

	if usingDefault {
		path = config.DefaultConfigPath()
		if path == "" {
			return NewExitError(ExitConfigError, "cannot determine configuration path", nil)
		}
	}

	app.profiles = config.NewFileProfileRepository(path)

	if !app.profiles.Exists() && usingDefault {
		app.output.Progressf("No configuration found, creating default at %s", path)

		if _, err := app.profiles.CreateDefault(); err != nil {
			return NewExitError(ExitConfigError, "cannot create default configuration", err)
		}
	}

	store, err := app.profiles.Load()
	if err != nil {
		return NewExitError(ExitConfigError, "cannot load configuration", err)
	}

	app.store = store
	app.state = config.NewFileStateRepository(config.DefaultStatePath())

	runner := platform.NewShellCommandRunner(app.profiles.CommandTimeout(), app.output)
	app.detector = platform.NewXrandrDetector()

	app.apply = application.NewApplyService(runner, app.state, app.output)
	app.status = application.NewStatusService(app.detector, app.state, app.output)

	return nil
}

// defaultAction opens the TUI picker when no subcommand is given.
func (app *CLI) defaultAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 0 {
		return NewExitError(ExitUsageError, fmt.Sprintf("unknown command: %s", cmd.Args().First()), nil)
	}

	if err := app.bootstrap(); err != nil {
		return err
	}

	return app.runTUI(ctx)
}
