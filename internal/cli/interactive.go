// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/chrandr/chrandr/internal/tui"
	cli "github.com/urfave/cli/v3"
)

// clearChoice is the select option that maps to Apply(nil).
const clearChoice = "<none>"

// ErrNoTerminal is returned when an interactive command runs without a
// terminal attached.
var ErrNoTerminal = errors.New("interactive mode requires a terminal")

func getTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)
}

func (app *CLI) createSelectCommand() *cli.Command {
	return &cli.Command{
		Name:  "select",
		Usage: "Pick an available profile interactively and apply it",
		Action: func(ctx context.Context, _ *cli.Command) error {
			if err := app.bootstrap(); err != nil {
				return err
			}

			return app.runSelect(ctx)
		},
	}
}

func (app *CLI) runSelect(ctx context.Context) error {
	if !app.output.IsTTY(os.Stdout.Fd()) {
		return NewExitError(ExitUsageError, ErrNoTerminal.Error(), nil)
	}

	report, err := app.status.Report(ctx, app.store)
	if err != nil {
		return NewExitError(ExitGeneralError, "cannot build profile report", err)
	}

	options := make([]huh.Option[string], 0, len(report.Rows)+1)

	for _, row := range report.Rows {
		if !row.Available {
			continue
		}

		label := fmt.Sprintf("%s - %s", row.Profile.Code, row.Profile.DisplayTitle())
		if row.Active {
			label += " (active)"
		}

		options = append(options, huh.NewOption(label, row.Profile.Code))
	}

	options = append(options, huh.NewOption("none - deselect the active profile", clearChoice))

	fmt.Print(getTitleStyle().Render("◈ chrandr - select a display profile"))
	fmt.Println()

	var choice string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Available profiles").
				Description("Profiles whose required ports are all connected").
				Options(options...).
				Value(&choice),
		),
	)

	if err := form.Run(); err != nil {
		return NewExitError(ExitGeneralError, "selection aborted", err)
	}

	if choice == clearChoice {
		if err := app.apply.Clear(ctx); err != nil {
			return NewExitError(ExitGeneralError, "cannot clear active profile", err)
		}

		return nil
	}

	return app.applyCode(ctx, choice)
}

// runTUI starts the full-screen picker.
func (app *CLI) runTUI(ctx context.Context) error {
	if !app.output.IsTTY(os.Stdout.Fd()) {
		return NewExitError(ExitUsageError, ErrNoTerminal.Error(), nil)
	}

	model := tui.NewPicker(app.store, app.status, app.apply)
	if err := tui.Run(ctx, model); err != nil {
		return NewExitError(ExitGeneralError, "TUI failed", err)
	}

	return nil
}
