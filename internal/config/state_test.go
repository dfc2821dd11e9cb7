// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStateRepository_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chrandr", "state.toml")
	repo := NewFileStateRepository(path)

	require.NoError(t, repo.SetActiveCode("vga"))

	code, recorded, err := repo.ActiveCode()
	require.NoError(t, err)
	require.True(t, recorded)
	require.Equal(t, "vga", code)
}

func TestFileStateRepository_MissingFileIsNotRecorded(t *testing.T) {
	t.Parallel()

	repo := NewFileStateRepository(filepath.Join(t.TempDir(), "state.toml"))

	code, recorded, err := repo.ActiveCode()
	require.NoError(t, err)
	require.False(t, recorded)
	require.Empty(t, code)
}

func TestFileStateRepository_ExplicitClearIsRecorded(t *testing.T) {
	t.Parallel()

	repo := NewFileStateRepository(filepath.Join(t.TempDir(), "state.toml"))

	require.NoError(t, repo.SetActiveCode("vga"))
	require.NoError(t, repo.SetActiveCode(""))

	code, recorded, err := repo.ActiveCode()
	require.NoError(t, err)
	require.True(t, recorded, "a cleared state is still a recorded state")
	require.Empty(t, code)
}

func TestFileStateRepository_CorruptFileIsNotRecorded(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml at all ]["), 0o644))

	repo := NewFileStateRepository(path)

	code, recorded, err := repo.ActiveCode()
	require.NoError(t, err)
	require.False(t, recorded)
	require.Empty(t, code)
}

func TestMockStateRepository(t *testing.T) {
	t.Parallel()

	repo := &MockStateRepository{}

	_, recorded, err := repo.ActiveCode()
	require.NoError(t, err)
	require.False(t, recorded)

	require.NoError(t, repo.SetActiveCode("dual"))

	code, recorded, err := repo.ActiveCode()
	require.NoError(t, err)
	require.True(t, recorded)
	require.Equal(t, "dual", code)

	repo.SaveErr = os.ErrPermission
	require.ErrorIs(t, repo.SetActiveCode("vga"), os.ErrPermission)
}
