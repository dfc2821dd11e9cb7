// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package application composes the domain ports into the use cases the CLI
// and TUI call: applying a profile and reporting availability.
package application

import (
	"context"
	"sync"

	"github.com/chrandr/chrandr/internal/console"
	"github.com/chrandr/chrandr/internal/domain"
)

// ApplyService coordinates command execution with the runtime active state.
// A successful apply persists the profile code; a failed apply clears it,
// because a partially applied profile leaves the display in an unknown
// configuration that must not be trusted as active.
type ApplyService struct {
	runner domain.CommandRunner
	state  domain.StateRepository
	output *console.Output
	mu     sync.Mutex
}

// NewApplyService creates an ApplyService.
func NewApplyService(runner domain.CommandRunner, state domain.StateRepository, output *console.Output) *ApplyService {
	return &ApplyService{
		runner: runner,
		state:  state,
		output: output,
	}
}

// Apply runs the profile's commands and records the outcome. A nil profile
// is an explicit deselection: it clears the active state without running
// anything. A second Apply while one is in flight is rejected with
// ErrApplyInProgress rather than queued; two profiles' commands must never
// interleave, and queueing display reconfigurations helps nobody.
func (s *ApplyService) Apply(ctx context.Context, profile *domain.Profile) error {
	if !s.mu.TryLock() {
		return domain.ErrApplyInProgress
	}
	defer s.mu.Unlock()

	if profile == nil {
		s.output.Progressf("Clearing active profile")

		return s.state.SetActiveCode("")
	}

	s.output.Progressf("Applying profile %s (%d commands)", profile.Code, len(profile.Commands))

	if err := s.runner.ExecuteAll(ctx, profile.Commands); err != nil {
		if clearErr := s.state.SetActiveCode(""); clearErr != nil {
			s.output.Warningf("could not clear active state: %v", clearErr)
		}

		return err
	}

	if err := s.state.SetActiveCode(profile.Code); err != nil {
		// The commands already ran; only the bookkeeping failed.
		return err
	}

	s.output.Successf("Profile %s applied", profile.Code)

	return nil
}

// Clear is Apply(nil): it deselects the active profile.
func (s *ApplyService) Clear(ctx context.Context) error {
	return s.Apply(ctx, nil)
}
