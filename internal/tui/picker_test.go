// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

package tui

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chrandr/chrandr/internal/adapters/platform"
	"github.com/chrandr/chrandr/internal/application"
	"github.com/chrandr/chrandr/internal/config"
	"github.com/chrandr/chrandr/internal/console"
	"github.com/chrandr/chrandr/internal/domain"
	"github.com/stretchr/testify/require"
)

func newTestPicker(runner domain.CommandRunner, detector domain.OutputDetector) (*Picker, *config.MockStateRepository) {
	output := console.NewWithWriters(false, false, false, io.Discard, io.Discard)
	state := &config.MockStateRepository{}

	store := &domain.ProfileStore{
		Profiles: []domain.Profile{
			{Code: "vga", Title: "Use only VGA", Ports: []string{"VGA-1"}, Commands: []string{"cmdA"}},
			{Code: "dual", Ports: []string{"VGA-1", "HDMI-1"}},
			{Code: "any"},
		},
	}

	picker := NewPicker(store,
		application.NewStatusService(detector, state, output),
		application.NewApplyService(runner, state, output))

	return picker, state
}

func loadReport(t *testing.T, picker *Picker) {
	t.Helper()

	msg := picker.refreshCmd()()
	report, ok := msg.(reportMsg)
	require.True(t, ok)
	require.NoError(t, report.err)

	model, _ := picker.Update(report)
	require.IsType(t, &Picker{}, model)
}

func keyMsg(key string) tea.KeyMsg {
	if key == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestPicker_ReportPopulatesRows(t *testing.T) {
	t.Parallel()

	picker, _ := newTestPicker(platform.NewMockCommandRunner(), platform.NewMockOutputDetector("VGA-1"))
	loadReport(t, picker)

	require.Len(t, picker.rows, 3)
	require.True(t, picker.rows[0].Available)
	require.False(t, picker.rows[1].Available)
	require.True(t, picker.rows[2].Available)
}

func TestPicker_CursorNavigation(t *testing.T) {
	t.Parallel()

	picker, _ := newTestPicker(platform.NewMockCommandRunner(), platform.NewMockOutputDetector("VGA-1"))
	loadReport(t, picker)

	require.Equal(t, 0, picker.cursor)

	picker.Update(keyMsg("j"))
	require.Equal(t, 1, picker.cursor)

	picker.Update(keyMsg("j"))
	picker.Update(keyMsg("j"))
	require.Equal(t, 2, picker.cursor, "cursor stops at the last row")

	picker.Update(keyMsg("k"))
	require.Equal(t, 1, picker.cursor)
}

func TestPicker_ApplyOnUnavailableRowIsRefused(t *testing.T) {
	t.Parallel()

	runner := platform.NewMockCommandRunner()
	picker, _ := newTestPicker(runner, platform.NewMockOutputDetector("VGA-1"))
	loadReport(t, picker)

	picker.Update(keyMsg("j")) // move to "dual", which needs HDMI-1

	_, cmd := picker.Update(keyMsg("enter"))
	require.Nil(t, cmd, "no apply command for an unavailable profile")
	require.Contains(t, picker.errText, "HDMI-1")
	require.Empty(t, runner.Executed)
}

func TestPicker_ApplyAvailableProfile(t *testing.T) {
	t.Parallel()

	runner := platform.NewMockCommandRunner()
	picker, state := newTestPicker(runner, platform.NewMockOutputDetector("VGA-1"))
	loadReport(t, picker)

	_, cmd := picker.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	require.True(t, picker.applying)

	// Drain the batched command and feed the apply result back in.
	done := findApplyDone(t, cmd())
	require.NoError(t, done.err)
	require.Equal(t, "vga", done.code)
	require.Equal(t, []string{"cmdA"}, runner.Executed)

	picker.Update(done)
	require.False(t, picker.applying)

	code, _, err := state.ActiveCode()
	require.NoError(t, err)
	require.Equal(t, "vga", code)
}

func TestPicker_ApplyFailureShowsCommand(t *testing.T) {
	t.Parallel()

	runner := platform.NewMockCommandRunner()
	runner.FailWith("cmdA", 1, "cannot find output VGA-1")

	picker, state := newTestPicker(runner, platform.NewMockOutputDetector("VGA-1"))
	loadReport(t, picker)

	_, cmd := picker.Update(keyMsg("enter"))
	done := findApplyDone(t, cmd())
	require.Error(t, done.err)

	picker.Update(done)
	require.Contains(t, picker.errText, "cmdA")
	require.Contains(t, picker.errText, "cannot find output")

	code, recorded, err := state.ActiveCode()
	require.NoError(t, err)
	require.True(t, recorded)
	require.Empty(t, code)
}

func TestPicker_ClearKey(t *testing.T) {
	t.Parallel()

	runner := platform.NewMockCommandRunner()
	picker, state := newTestPicker(runner, platform.NewMockOutputDetector("VGA-1"))
	loadReport(t, picker)

	_, cmd := picker.Update(keyMsg("c"))
	done := findApplyDone(t, cmd())
	require.NoError(t, done.err)
	require.Empty(t, done.code)
	require.Empty(t, runner.Executed)

	_, recorded, err := state.ActiveCode()
	require.NoError(t, err)
	require.True(t, recorded)
}

func TestPicker_ViewRendersRows(t *testing.T) {
	t.Parallel()

	picker, _ := newTestPicker(platform.NewMockCommandRunner(), platform.NewMockOutputDetector("VGA-1"))
	loadReport(t, picker)
	picker.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := picker.View()

	require.Contains(t, view, "vga")
	require.Contains(t, view, "Use only VGA")
	require.Contains(t, view, "dual")
	require.Contains(t, view, "needs VGA-1,HDMI-1")
	require.Contains(t, view, "connected: VGA-1")
	require.Contains(t, view, "Any", "title-cases the code when no title is set")
}

func TestPicker_QuitKey(t *testing.T) {
	t.Parallel()

	picker, _ := newTestPicker(platform.NewMockCommandRunner(), platform.NewMockOutputDetector())
	loadReport(t, picker)

	_, cmd := picker.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

// findApplyDone digs the applyDoneMsg out of a possibly batched command
// result (the apply command is batched with the spinner tick).
func findApplyDone(t *testing.T, msg tea.Msg) applyDoneMsg {
	t.Helper()

	if done, ok := msg.(applyDoneMsg); ok {
		return done
	}

	batch, ok := msg.(tea.BatchMsg)
	require.True(t, ok, "expected applyDoneMsg or BatchMsg, got %T", msg)

	for _, cmd := range batch {
		if done, ok := cmd().(applyDoneMsg); ok {
			return done
		}
	}

	t.Fatal("no applyDoneMsg in batch")

	return applyDoneMsg{}
}

func TestPicker_RunRespectsContext(t *testing.T) {
	t.Parallel()

	// Run with an already-cancelled context must return promptly.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	picker, _ := newTestPicker(platform.NewMockCommandRunner(), platform.NewMockOutputDetector())

	err := Run(ctx, picker)
	require.Error(t, err)
}
