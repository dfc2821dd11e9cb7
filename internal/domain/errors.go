// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors.
var (
	// ErrProfileNotFound is returned when a profile code names no profile.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrApplyInProgress is returned when an apply is requested while
	// another one is still running.
	ErrApplyInProgress = errors.New("another apply is in progress")
	// ErrDuplicateProfileCode is returned when two profiles share a code.
	ErrDuplicateProfileCode = errors.New("duplicate profile code")
	// ErrEmptyProfileCode is returned when a profile has no code.
	ErrEmptyProfileCode = errors.New("profile code must not be empty")
)

// ConfigNotReadableError indicates the profile configuration could not be
// opened or parsed. Fatal at startup, recoverable when merely probing.
type ConfigNotReadableError struct {
	Path string
	Err  error
}

func (e *ConfigNotReadableError) Error() string {
	return fmt.Sprintf("cannot read configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigNotReadableError) Unwrap() error {
	return e.Err
}

// ConfigWriteError indicates persistence failed on save. The in-memory model
// stays valid; only the file is suspect.
type ConfigWriteError struct {
	Path string
	Err  error
}

func (e *ConfigWriteError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Err)
}

func (e *ConfigWriteError) Unwrap() error {
	return e.Err
}

// QueryError indicates the external display-query command could not run or
// exited non-zero. Callers decide whether to degrade to "no outputs
// connected" or propagate.
type QueryError struct {
	Err    error
	Output string
}

func (e *QueryError) Error() string {
	if out := strings.TrimSpace(e.Output); out != "" {
		return fmt.Sprintf("display query failed: %v: %s", e.Err, out)
	}

	return fmt.Sprintf("display query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// CommandError carries the first profile command that failed: the literal
// command line, its exit code, and its combined stdout+stderr. ExitCode is
// -1 when the process could not be started at all.
type CommandError struct {
	Command  string
	ExitCode int
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q failed with exit code %d", e.Command, e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}

	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
