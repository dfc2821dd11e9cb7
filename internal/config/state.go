// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"os"

	"github.com/chrandr/chrandr/internal/domain"
	"github.com/pelletier/go-toml/v2"
)

// stateModel is the on-disk layout of the runtime status file.
type stateModel struct {
	Status statusModel `toml:"status"`
}

type statusModel struct {
	// Active is the last successfully applied profile code; empty after an
	// explicit clear or a failed apply.
	Active string `toml:"active"`
}

// FileStateRepository implements the StateRepository port on a small TOML
// file in a transient runtime location, so it does not survive a reboot by
// default. If several processes share the file, last writer wins; that is an
// accepted limitation.
type FileStateRepository struct {
	path string
}

// NewFileStateRepository creates a repository for the given path.
func NewFileStateRepository(path string) *FileStateRepository {
	return &FileStateRepository{path: path}
}

// Path returns the status file path.
func (r *FileStateRepository) Path() string {
	return r.path
}

// ActiveCode reads the persisted active code. A missing or unparseable file
// reads as "never recorded" rather than an error: runtime state is advisory
// and a corrupt status file must not take the tool down.
func (r *FileStateRepository) ActiveCode() (string, bool, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return "", false, nil
	}

	var model stateModel
	if err := toml.Unmarshal(data, &model); err != nil {
		return "", false, nil
	}

	return model.Status.Active, true, nil
}

// SetActiveCode persists the active code, creating the runtime directory as
// needed. The empty string records an explicit clear.
func (r *FileStateRepository) SetActiveCode(code string) error {
	data, err := toml.Marshal(stateModel{Status: statusModel{Active: code}})
	if err != nil {
		return &domain.ConfigWriteError{Path: r.path, Err: err}
	}

	if err := safeWriteFile(r.path, data); err != nil {
		return &domain.ConfigWriteError{Path: r.path, Err: err}
	}

	return nil
}

// MockStateRepository implements the StateRepository port in memory for
// tests.
type MockStateRepository struct {
	Code     string
	Recorded bool
	SaveErr  error
}

// ActiveCode returns the in-memory state.
func (r *MockStateRepository) ActiveCode() (string, bool, error) {
	return r.Code, r.Recorded, nil
}

// SetActiveCode stores the code in memory, or fails with SaveErr.
func (r *MockStateRepository) SetActiveCode(code string) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}

	r.Code = code
	r.Recorded = true

	return nil
}
