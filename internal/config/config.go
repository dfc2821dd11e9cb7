// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config persists the profile definitions and the runtime active
// state as two separate TOML files: user edits live in the configuration
// file, runtime churn in a transient status file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chrandr/chrandr/internal/domain"
	"github.com/pelletier/go-toml/v2"
)

// fileModel is the on-disk layout of the configuration file. Profiles are an
// array of tables so that declaration order survives the round trip; order
// drives the UI layout.
type fileModel struct {
	General  generalModel   `toml:"general"`
	Profiles []profileModel `toml:"profile"`
}

type generalModel struct {
	// Initial names the profile treated as active before any runtime state
	// exists. It may name no profile; that reads as "no active profile".
	Initial string `toml:"initial,omitempty"`
	// CommandTimeout optionally bounds each profile command, as a Go
	// duration string. Empty or zero means no limit.
	CommandTimeout string `toml:"command_timeout,omitempty"`
}

type profileModel struct {
	Code     string `toml:"code"`
	Title    string `toml:"title,omitempty"`
	Ports    string `toml:"ports,omitempty"`
	Commands string `toml:"commands,multiline,omitempty"`
	Icon     string `toml:"icon,omitempty"`
}

// FileProfileRepository implements the ProfileRepository port on a TOML
// file. Saving rewrites the whole file; comments and formatting are not
// preserved (accepted lossy round trip).
type FileProfileRepository struct {
	path           string
	commandTimeout time.Duration
}

// NewFileProfileRepository creates a repository for the given path.
func NewFileProfileRepository(path string) *FileProfileRepository {
	return &FileProfileRepository{path: path}
}

// Path returns the configuration file path.
func (r *FileProfileRepository) Path() string {
	return r.path
}

// CommandTimeout returns the per-command timeout from the last Load, zero
// when none is configured.
func (r *FileProfileRepository) CommandTimeout() time.Duration {
	return r.commandTimeout
}

// Exists reports whether the configuration file is present.
func (r *FileProfileRepository) Exists() bool {
	_, err := os.Stat(r.path)

	return err == nil
}

// Load reads and validates the store. Ports split on commas, commands on
// newlines; both trim whitespace and drop empty tokens. Unrecognized keys in
// a profile table are ignored.
func (r *FileProfileRepository) Load() (*domain.ProfileStore, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, &domain.ConfigNotReadableError{Path: r.path, Err: err}
	}

	var model fileModel
	if err := toml.Unmarshal(data, &model); err != nil {
		return nil, &domain.ConfigNotReadableError{Path: r.path, Err: err}
	}

	if model.General.CommandTimeout != "" {
		timeout, err := time.ParseDuration(model.General.CommandTimeout)
		if err != nil {
			return nil, &domain.ConfigNotReadableError{
				Path: r.path,
				Err:  fmt.Errorf("invalid command_timeout: %w", err),
			}
		}

		r.commandTimeout = timeout
	}

	store := &domain.ProfileStore{
		Profiles:    make([]domain.Profile, 0, len(model.Profiles)),
		InitialCode: model.General.Initial,
	}

	seen := make(map[string]struct{}, len(model.Profiles))

	for _, profile := range model.Profiles {
		if profile.Code == "" {
			return nil, &domain.ConfigNotReadableError{Path: r.path, Err: domain.ErrEmptyProfileCode}
		}

		if _, exists := seen[profile.Code]; exists {
			return nil, &domain.ConfigNotReadableError{
				Path: r.path,
				Err:  fmt.Errorf("%w: %s", domain.ErrDuplicateProfileCode, profile.Code),
			}
		}

		seen[profile.Code] = struct{}{}

		store.Profiles = append(store.Profiles, domain.Profile{
			Code:     profile.Code,
			Title:    profile.Title,
			Ports:    splitList(profile.Ports, ","),
			Commands: splitList(profile.Commands, "\n"),
			Icon:     profile.Icon,
		})
	}

	return store, nil
}

// Save serializes the store back to the file, creating parent directories as
// needed. The in-memory store stays valid when the write fails.
func (r *FileProfileRepository) Save(store *domain.ProfileStore) error {
	model := fileModel{
		General:  generalModel{Initial: store.InitialCode},
		Profiles: make([]profileModel, 0, len(store.Profiles)),
	}

	if r.commandTimeout > 0 {
		model.General.CommandTimeout = r.commandTimeout.String()
	}

	for i := range store.Profiles {
		profile := &store.Profiles[i]
		model.Profiles = append(model.Profiles, profileModel{
			Code:     profile.Code,
			Title:    profile.Title,
			Ports:    strings.Join(profile.Ports, ","),
			Commands: strings.Join(profile.Commands, "\n"),
			Icon:     profile.Icon,
		})
	}

	data, err := toml.Marshal(model)
	if err != nil {
		return &domain.ConfigWriteError{Path: r.path, Err: err}
	}

	if err := safeWriteFile(r.path, data); err != nil {
		return &domain.ConfigWriteError{Path: r.path, Err: err}
	}

	return nil
}

// CreateDefault synthesizes a first-run configuration: one example profile
// with no port requirement and two harmless commands, set as initial, so a
// new user sees a working entry instead of an empty list.
func (r *FileProfileRepository) CreateDefault() (*domain.ProfileStore, error) {
	store := &domain.ProfileStore{
		Profiles: []domain.Profile{
			{
				Code:  "example",
				Title: "This is a chrandr profile example",
				Commands: []string{
					`notify-send "chrandr" "You have applied the example profile"`,
					`echo "Another command of the example"`,
				},
			},
		},
		InitialCode: "example",
	}

	if err := r.Save(store); err != nil {
		return nil, err
	}

	return store, nil
}

// splitList splits on the separator, trims each token, and drops empties.
func splitList(value, separator string) []string {
	if value == "" {
		return nil
	}

	var items []string

	for _, token := range strings.Split(value, separator) {
		token = strings.TrimSpace(token)
		if token != "" {
			items = append(items, token)
		}
	}

	return items
}
