// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chrandr/chrandr/internal/domain"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) *FileProfileRepository {
	t.Helper()

	path := filepath.Join(t.TempDir(), "chrandr.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return NewFileProfileRepository(path)
}

func TestFileProfileRepository_Load(t *testing.T) {
	t.Parallel()

	repo := writeConfig(t, `
[general]
initial = "vga"
command_timeout = "30s"

[[profile]]
code = "vga"
title = "Use only VGA"
ports = "VGA-1"
commands = """
xrandr --output LVDS-1 --off --output VGA-1 --auto
amixer set Master unmute
"""
icon = "/usr/share/icons/vga.png"

[[profile]]
code = "dual"
ports = "VGA-1, HDMI-1"
commands = "xrandr --output VGA-1 --auto --output HDMI-1 --auto --right-of VGA-1"
`)

	store, err := repo.Load()
	require.NoError(t, err)

	require.Equal(t, "vga", store.InitialCode)
	require.Equal(t, 30*time.Second, repo.CommandTimeout())
	require.Len(t, store.Profiles, 2)

	vga := store.Profiles[0]
	require.Equal(t, "vga", vga.Code)
	require.Equal(t, "Use only VGA", vga.Title)
	require.Equal(t, []string{"VGA-1"}, vga.Ports)
	require.Equal(t, []string{
		"xrandr --output LVDS-1 --off --output VGA-1 --auto",
		"amixer set Master unmute",
	}, vga.Commands)
	require.Equal(t, "/usr/share/icons/vga.png", vga.Icon)

	dual := store.Profiles[1]
	require.Equal(t, "dual", dual.Code)
	require.Equal(t, []string{"VGA-1", "HDMI-1"}, dual.Ports)
	require.Len(t, dual.Commands, 1)
}

func TestFileProfileRepository_LoadSplitting(t *testing.T) {
	t.Parallel()

	// Trailing separators, blank tokens, and padding are dropped; commands
	// containing commas survive the newline convention.
	repo := writeConfig(t, `
[[profile]]
code = "messy"
ports = " VGA-1 ,, HDMI-1 , "
commands = """

  xrandr --output VGA-1 --auto

  notify-send "done, really"
"""
`)

	store, err := repo.Load()
	require.NoError(t, err)

	profile := store.Profiles[0]
	require.Equal(t, []string{"VGA-1", "HDMI-1"}, profile.Ports)
	require.Equal(t, []string{
		"xrandr --output VGA-1 --auto",
		`notify-send "done, really"`,
	}, profile.Commands)
}

func TestFileProfileRepository_LoadIgnoresUnknownKeys(t *testing.T) {
	t.Parallel()

	repo := writeConfig(t, `
[general]
initial = "vga"
some_future_option = true

[[profile]]
code = "vga"
legacy_key = "ignored"
`)

	store, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, store.Profiles, 1)
}

func TestFileProfileRepository_LoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name: "duplicate profile codes",
			content: `
[[profile]]
code = "vga"

[[profile]]
code = "vga"
`,
			wantErr: domain.ErrDuplicateProfileCode,
		},
		{
			name: "empty profile code",
			content: `
[[profile]]
title = "no code"
`,
			wantErr: domain.ErrEmptyProfileCode,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			repo := writeConfig(t, testCase.content)

			_, err := repo.Load()

			var notReadable *domain.ConfigNotReadableError

			require.ErrorAs(t, err, &notReadable)
			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestFileProfileRepository_LoadMissingFile(t *testing.T) {
	t.Parallel()

	repo := NewFileProfileRepository(filepath.Join(t.TempDir(), "missing.toml"))
	require.False(t, repo.Exists())

	_, err := repo.Load()

	var notReadable *domain.ConfigNotReadableError

	require.ErrorAs(t, err, &notReadable)
}

func TestFileProfileRepository_LoadInvalidTimeout(t *testing.T) {
	t.Parallel()

	repo := writeConfig(t, `
[general]
command_timeout = "not-a-duration"
`)

	_, err := repo.Load()

	var notReadable *domain.ConfigNotReadableError

	require.ErrorAs(t, err, &notReadable)
}

func TestFileProfileRepository_RoundTrip(t *testing.T) {
	t.Parallel()

	original := &domain.ProfileStore{
		InitialCode: "dual",
		Profiles: []domain.Profile{
			{
				Code:     "vga",
				Title:    "Use only VGA",
				Ports:    []string{"VGA-1"},
				Commands: []string{"cmdA", "cmdB"},
				Icon:     "/tmp/vga.png",
			},
			{
				Code:     "dual",
				Ports:    []string{"VGA-1", "HDMI-1"},
				Commands: []string{`notify-send "two screens, attached"`},
			},
			{
				Code: "empty",
			},
		},
	}

	path := filepath.Join(t.TempDir(), "nested", "chrandr.toml")
	repo := NewFileProfileRepository(path)

	require.NoError(t, repo.Save(original))

	reloaded, err := NewFileProfileRepository(path).Load()
	require.NoError(t, err)

	require.Equal(t, original.InitialCode, reloaded.InitialCode)
	require.Len(t, reloaded.Profiles, len(original.Profiles))

	for i := range original.Profiles {
		require.Equal(t, original.Profiles[i].Code, reloaded.Profiles[i].Code)
		require.Equal(t, original.Profiles[i].Title, reloaded.Profiles[i].Title)
		require.Equal(t, original.Profiles[i].Ports, reloaded.Profiles[i].Ports)
		require.Equal(t, original.Profiles[i].Commands, reloaded.Profiles[i].Commands)
		require.Equal(t, original.Profiles[i].Icon, reloaded.Profiles[i].Icon)
	}
}

func TestFileProfileRepository_CreateDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chrandr.toml")
	repo := NewFileProfileRepository(path)

	store, err := repo.CreateDefault()
	require.NoError(t, err)
	require.True(t, repo.Exists())

	require.Len(t, store.Profiles, 1)
	require.Equal(t, store.InitialCode, store.Profiles[0].Code)
	require.Empty(t, store.Profiles[0].Ports, "the example profile must always be available")
	require.Len(t, store.Profiles[0].Commands, 2)

	// The created file must load back identically.
	reloaded, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, store.Profiles, reloaded.Profiles)
	require.Equal(t, store.InitialCode, reloaded.InitialCode)
}

func TestFileProfileRepository_SaveUnwritable(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o555))

	t.Cleanup(func() {
		_ = os.Chmod(dir, 0o755)
	})

	repo := NewFileProfileRepository(filepath.Join(dir, "sub", "chrandr.toml"))

	err := repo.Save(&domain.ProfileStore{})

	var writeErr *domain.ConfigWriteError

	require.ErrorAs(t, err, &writeErr)
}
