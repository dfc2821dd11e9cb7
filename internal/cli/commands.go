// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/chrandr/chrandr/internal/application"
	"github.com/chrandr/chrandr/internal/domain"
	cli "github.com/urfave/cli/v3"
)

const noneValue = "none"

func (app *CLI) createListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List profiles with availability and the active one",
		Description: `Shows every configured profile in declaration order. A profile is
available when all of its required ports are currently connected; the active
profile is the last one successfully applied.`,
		Action: func(ctx context.Context, _ *cli.Command) error {
			if err := app.bootstrap(); err != nil {
				return err
			}

			report, err := app.status.Report(ctx, app.store)
			if err != nil {
				return NewExitError(ExitGeneralError, "cannot build profile report", err)
			}

			app.printReport(report)

			return nil
		},
	}
}

func (app *CLI) printReport(report *application.Report) {
	switch {
	case app.json:
		rows := make([]map[string]any, 0, len(report.Rows))
		for _, row := range report.Rows {
			rows = append(rows, map[string]any{
				"code":      row.Profile.Code,
				"title":     row.Profile.DisplayTitle(),
				"ports":     row.Profile.Ports,
				"icon":      row.Profile.Icon,
				"available": row.Available,
				"active":    row.Active,
			})
		}

		app.output.JSONResult("success", map[string]any{
			"profiles":  rows,
			"connected": report.Connected.Sorted(),
			"active":    report.ActiveCode,
		})
	case app.plain:
		for _, row := range report.Rows {
			app.output.PlainKeyValue(row.Profile.Code,
				fmt.Sprintf("%t:%t", row.Available, row.Active))
		}
	default:
		for _, row := range report.Rows {
			marker := " "
			if row.Active {
				marker = "●"
			}

			state := "available"
			if !row.Available {
				state = fmt.Sprintf("needs %s", strings.Join(row.Profile.Ports, ","))
			}

			app.output.Result(fmt.Sprintf("%s %-12s %-30s [%s]",
				marker, row.Profile.Code, row.Profile.DisplayTitle(), state))
		}
	}
}

func (app *CLI) createStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the active profile",
		Action: func(_ context.Context, _ *cli.Command) error {
			if err := app.bootstrap(); err != nil {
				return err
			}

			active, err := app.status.ActiveCode(app.store)
			if err != nil {
				return NewExitError(ExitGeneralError, "cannot read active profile", err)
			}

			if app.json {
				app.output.JSONResult("success", map[string]any{"active": active})

				return nil
			}

			if active == "" {
				active = noneValue
			}

			app.output.Result(active)

			return nil
		},
	}
}

func (app *CLI) createOutputsCommand() *cli.Command {
	return &cli.Command{
		Name:  "outputs",
		Usage: "Show currently connected outputs",
		Description: `Queries the display server and prints the identifier of every output
that reports an attached display. Unlike availability checks, a failing query
is an error here, not an empty set.`,
		Action: func(ctx context.Context, _ *cli.Command) error {
			if err := app.bootstrap(); err != nil {
				return err
			}

			connected, err := app.connectedOutputs(ctx)
			if err != nil {
				return NewExitError(ExitQueryError, "display query failed", err)
			}

			if app.json {
				app.output.JSONResult("success", map[string]any{"connected": connected.Sorted()})

				return nil
			}

			app.output.PlainList(connected.Sorted())

			return nil
		},
	}
}

func (app *CLI) createApplyCommand() *cli.Command {
	return &cli.Command{
		Name:      "apply",
		Usage:     "Run a profile's commands and mark it active",
		ArgsUsage: "<code>",
		Description: `Runs the profile's shell commands in declaration order, stopping at the
first failure. On success the profile is recorded as active; on failure the
active state is cleared, since a partial apply leaves the displays in an
unknown configuration.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return NewExitError(ExitUsageError, "apply requires exactly one profile code", nil)
			}

			if err := app.bootstrap(); err != nil {
				return err
			}

			return app.applyCode(ctx, cmd.Args().First())
		},
	}
}

func (app *CLI) applyCode(ctx context.Context, code string) error {
	profile := app.store.ByCode(code)
	if profile == nil {
		return NewExitError(ExitNotFound,
			fmt.Sprintf("no profile with code %q (have: %s)", code, strings.Join(app.store.Codes(), ", ")),
			domain.ErrProfileNotFound)
	}

	if connected, err := app.connectedOutputs(ctx); err == nil && !profile.Available(connected) {
		app.output.Warningf("profile %s requires ports that are not connected: %s",
			profile.Code, strings.Join(profile.Ports, ","))
	}

	if err := app.apply.Apply(ctx, profile); err != nil {
		var cmdErr *domain.CommandError
		if errors.As(err, &cmdErr) {
			app.output.Errorf("command failed: %s", cmdErr.Command)

			if out := strings.TrimSpace(cmdErr.Output); out != "" {
				fmt.Fprintln(os.Stderr, out)
			}

			return NewExitError(ExitApplyError,
				fmt.Sprintf("profile %s failed (exit code %d)", profile.Code, cmdErr.ExitCode), err)
		}

		return NewExitError(ExitGeneralError, fmt.Sprintf("cannot apply profile %s", profile.Code), err)
	}

	return nil
}

func (app *CLI) createClearCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Deselect the active profile without running any commands",
		Action: func(ctx context.Context, _ *cli.Command) error {
			if err := app.bootstrap(); err != nil {
				return err
			}

			if err := app.apply.Clear(ctx); err != nil {
				return NewExitError(ExitGeneralError, "cannot clear active profile", err)
			}

			return nil
		},
	}
}

func (app *CLI) connectedOutputs(ctx context.Context) (domain.ConnectedOutputs, error) {
	return app.detector.ConnectedOutputs(ctx)
}
