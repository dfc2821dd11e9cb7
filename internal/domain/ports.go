// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"context"
)

// CommandRunner defines the interface for executing a profile's shell
// commands. Implemented by the platform adapter for real execution and by
// mocks in tests.
type CommandRunner interface {
	// ExecuteAll runs each command through a shell, in order, sequentially.
	// It stops at the first command that fails and returns a *CommandError
	// carrying the failing command, its exit code, and its combined output.
	// An empty list succeeds without spawning a process.
	ExecuteAll(ctx context.Context, commands []string) error
}

// OutputDetector defines the interface for querying which physical outputs
// are currently connected.
type OutputDetector interface {
	// ConnectedOutputs re-queries live hardware state on every call.
	ConnectedOutputs(ctx context.Context) (ConnectedOutputs, error)
}

// ProfileRepository defines the interface for loading and saving the profile
// definitions.
type ProfileRepository interface {
	// Load reads the full store. Fails with *ConfigNotReadableError when the
	// source cannot be opened or parsed.
	Load() (*ProfileStore, error)

	// Save rewrites the store. Fails with *ConfigWriteError; the in-memory
	// store remains valid when it does.
	Save(store *ProfileStore) error
}

// StateRepository defines the interface for the runtime active-profile
// state, persisted separately from the profile definitions so that state
// churn never touches user edits.
type StateRepository interface {
	// ActiveCode returns the persisted active profile code. The second
	// result is false when no runtime state has ever been recorded, which
	// callers treat differently from an explicitly cleared (empty) code.
	ActiveCode() (code string, recorded bool, err error)

	// SetActiveCode persists the active code. The empty string clears it.
	SetActiveCode(code string) error
}
