// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

package application

import (
	"context"
	"errors"

	"github.com/chrandr/chrandr/internal/console"
	"github.com/chrandr/chrandr/internal/domain"
)

// Row is one profile joined with its current availability and active flag.
type Row struct {
	Profile   domain.Profile
	Available bool
	Active    bool
}

// Report is the full selection view: every profile in declaration order plus
// the connected set it was computed from.
type Report struct {
	Rows       []Row
	Connected  domain.ConnectedOutputs
	ActiveCode string
}

// StatusService answers "which profiles exist, which are selectable, which
// is active" for the CLI and TUI.
type StatusService struct {
	detector domain.OutputDetector
	state    domain.StateRepository
	output   *console.Output
}

// NewStatusService creates a StatusService.
func NewStatusService(detector domain.OutputDetector, state domain.StateRepository, output *console.Output) *StatusService {
	return &StatusService{
		detector: detector,
		state:    state,
		output:   output,
	}
}

// Report queries the connected outputs and joins them with the store. A
// failed query is logged and degrades to zero connected outputs, so a broken
// query command disables every port-requiring profile instead of taking the
// UI down.
func (s *StatusService) Report(ctx context.Context, store *domain.ProfileStore) (*Report, error) {
	connected, err := s.detector.ConnectedOutputs(ctx)
	if err != nil {
		var queryErr *domain.QueryError
		if !errors.As(err, &queryErr) {
			return nil, err
		}

		s.output.Warningf("display query failed, treating all outputs as disconnected: %v", err)
		connected = domain.ConnectedOutputs{}
	}

	active, err := s.ActiveCode(store)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Rows:       make([]Row, 0, len(store.Profiles)),
		Connected:  connected,
		ActiveCode: active,
	}

	for i := range store.Profiles {
		profile := store.Profiles[i]
		report.Rows = append(report.Rows, Row{
			Profile:   profile,
			Available: profile.Available(connected),
			Active:    active != "" && profile.Code == active,
		})
	}

	return report, nil
}

// ActiveCode resolves the active profile code: the persisted runtime state
// when one has been recorded, otherwise the store's initial code. A code
// naming no profile in the store resolves to "no active profile".
func (s *StatusService) ActiveCode(store *domain.ProfileStore) (string, error) {
	code, recorded, err := s.state.ActiveCode()
	if err != nil {
		return "", err
	}

	if !recorded {
		code = store.InitialCode
	}

	if code == "" || store.ByCode(code) == nil {
		return "", nil
	}

	return code, nil
}
