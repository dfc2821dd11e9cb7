// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigPath returns the profile configuration path under the XDG
// config home.
func DefaultConfigPath() string {
	return DefaultConfigPathWithEnv(os.Getenv("XDG_CONFIG_HOME"))
}

// DefaultConfigPathWithEnv returns the configuration path with a custom XDG
// config home override for testing.
func DefaultConfigPathWithEnv(xdgConfigHome string) string {
	if xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "chrandr", "chrandr.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "chrandr", "chrandr.toml")
	}

	return ""
}

// DefaultStatePath returns the runtime status file path. It lives under the
// XDG runtime directory so it does not survive a reboot by default, falling
// back to the system temp directory when no runtime directory is set.
func DefaultStatePath() string {
	return DefaultStatePathWithEnv(os.Getenv("XDG_RUNTIME_DIR"))
}

// DefaultStatePathWithEnv returns the status path with a custom runtime
// directory override for testing.
func DefaultStatePathWithEnv(xdgRuntimeDir string) string {
	if xdgRuntimeDir != "" {
		return filepath.Join(xdgRuntimeDir, "chrandr", "state.toml")
	}

	return filepath.Join(os.TempDir(), "chrandr", "state.toml")
}

// safeWriteFile writes a file creating parent directories as needed.
func safeWriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644) //nolint:gosec
}
