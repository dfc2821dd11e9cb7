// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package tui provides the full-screen profile picker.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chrandr/chrandr/internal/application"
	"github.com/chrandr/chrandr/internal/domain"
	"github.com/chrandr/chrandr/internal/tui/styles"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// keyMap defines the picker key bindings.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Apply   key.Binding
	Clear   key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear active"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh outputs"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the key bindings for the one-line help footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Apply, k.Clear, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns the key bindings for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Apply},
		{k.Clear, k.Refresh, k.Help, k.Quit},
	}
}

// Messages produced by the picker's commands.
type (
	reportMsg struct {
		report *application.Report
		err    error
	}

	applyDoneMsg struct {
		code string // empty for a clear
		err  error
	}
)

// Picker is the full-screen profile selection model. It calls only the core
// operations (Report, Apply, Clear) and keeps all presentation state here,
// never on the domain entities.
//
//nolint:containedctx // TUI models require context for proper cancellation propagation
type Picker struct {
	ctx    context.Context
	store  *domain.ProfileStore
	status *application.StatusService
	apply  *application.ApplyService

	styles  *styles.Styles
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	caser   cases.Caser

	rows      []application.Row
	connected domain.ConnectedOutputs
	cursor    int
	width     int
	height    int

	applying bool
	showHelp bool
	helpText string
	errText  string
	quitting bool
}

// NewPicker creates the picker model for the given store and services.
func NewPicker(store *domain.ProfileStore, status *application.StatusService, apply *application.ApplyService) *Picker {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &Picker{
		ctx:     context.Background(),
		store:   store,
		status:  status,
		apply:   apply,
		styles:  styles.New(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: spin,
		caser:   cases.Title(language.English),
	}
}

// Run starts the picker program in the alternate screen.
func Run(ctx context.Context, picker *Picker) error {
	picker.ctx = ctx

	program := tea.NewProgram(picker, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("picker terminated: %w", err)
	}

	return nil
}

// Init refreshes the report on startup.
func (m *Picker) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m *Picker) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		report, err := m.status.Report(m.ctx, m.store)

		return reportMsg{report: report, err: err}
	}
}

func (m *Picker) applyCmd(profile *domain.Profile) tea.Cmd {
	return func() tea.Msg {
		code := ""
		if profile != nil {
			code = profile.Code
		}

		return applyDoneMsg{code: code, err: m.apply.Apply(m.ctx, profile)}
	}
}

// Update handles messages following the standard bubbletea pattern.
func (m *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		return m, nil

	case reportMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()

			return m, nil
		}

		m.rows = msg.report.Rows
		m.connected = msg.report.Connected
		m.clampCursor()

		return m, nil

	case applyDoneMsg:
		m.applying = false

		if msg.err != nil {
			m.errText = formatApplyError(msg.err)

			return m, m.refreshCmd()
		}

		m.errText = ""

		return m, m.refreshCmd()

	case spinner.TickMsg:
		if !m.applying {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Picker) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.applying {
		// Only quit is honored while commands run.
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true

		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		if m.showHelp && m.helpText == "" {
			m.helpText = renderHelp(m.width)
		}

		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.errText = ""

		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Clear):
		m.applying = true
		m.errText = ""

		return m, tea.Batch(m.spinner.Tick, m.applyCmd(nil))

	case key.Matches(msg, m.keys.Apply):
		return m.applySelected()
	}

	return m, nil
}

func (m *Picker) applySelected() (tea.Model, tea.Cmd) {
	if len(m.rows) == 0 || m.cursor >= len(m.rows) {
		return m, nil
	}

	row := m.rows[m.cursor]
	if !row.Available {
		m.errText = fmt.Sprintf("profile %s needs ports: %s",
			row.Profile.Code, strings.Join(row.Profile.Ports, ","))

		return m, nil
	}

	m.applying = true
	m.errText = ""
	profile := row.Profile

	return m, tea.Batch(m.spinner.Tick, m.applyCmd(&profile))
}

func (m *Picker) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}

	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the picker.
func (m *Picker) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		return m.helpText + "\n" + m.styles.Footer.Render("? to close help")
	}

	var view strings.Builder

	view.WriteString(m.styles.Title.Render("chrandr - display profiles"))
	view.WriteString("\n")
	view.WriteString(m.styles.Subtitle.Render("connected: " + strings.Join(m.connected.Sorted(), " ")))
	view.WriteString("\n\n")

	for i, row := range m.rows {
		view.WriteString(m.renderRow(i, row))
		view.WriteString("\n")
	}

	if m.applying {
		view.WriteString("\n" + m.spinner.View() + " applying…\n")
	}

	if m.errText != "" {
		view.WriteString("\n" + m.styles.ErrorBox.Render(m.errText) + "\n")
	}

	view.WriteString(m.styles.Footer.Render(m.help.View(m.keys)))

	return view.String()
}

func (m *Picker) renderRow(index int, row application.Row) string {
	cursor := "  "
	if index == m.cursor {
		cursor = "▸ "
	}

	marker := "  "
	if row.Active {
		marker = m.styles.Active.Render("● ")
	}

	title := row.Profile.Title
	if title == "" {
		title = m.caser.String(row.Profile.Code)
	}

	line := fmt.Sprintf("%s%s%-12s %s", cursor, marker, row.Profile.Code, title)

	if !row.Available {
		line += "  (needs " + strings.Join(row.Profile.Ports, ",") + ")"

		return m.styles.Disabled.Render(truncate(line, m.width))
	}

	if index == m.cursor {
		return m.styles.Selected.Render(truncate(line, m.width))
	}

	return truncate(line, m.width)
}

// truncate trims a line to the terminal width, rune-width aware.
func truncate(line string, width int) string {
	if width <= 0 {
		return line
	}

	return runewidth.Truncate(line, width, "…")
}

func formatApplyError(err error) string {
	var cmdErr *domain.CommandError
	if errors.As(err, &cmdErr) {
		text := fmt.Sprintf("command failed (exit %d): %s", cmdErr.ExitCode, cmdErr.Command)
		if out := strings.TrimSpace(cmdErr.Output); out != "" {
			text += "\n" + out
		}

		return text
	}

	return err.Error()
}
