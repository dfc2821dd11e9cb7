// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package domain holds the profile model and the ports the rest of the
// application is wired through.
package domain

import (
	"fmt"
	"sort"
)

// Profile is a named display configuration: the output ports it requires and
// the shell commands that realize it. Profiles are immutable values; they are
// replaced wholesale when the store reloads, never mutated in place.
type Profile struct {
	Code     string
	Title    string
	Ports    []string
	Commands []string
	Icon     string
}

// DisplayTitle returns the human-readable title, falling back to the code.
func (p *Profile) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}

	return p.Code
}

// Available reports whether every port this profile requires is currently
// connected. A profile with no port requirement is always available; extra
// connected outputs never disqualify a profile.
func (p *Profile) Available(connected ConnectedOutputs) bool {
	for _, port := range p.Ports {
		if !connected.Contains(port) {
			return false
		}
	}

	return true
}

func (p *Profile) String() string {
	return fmt.Sprintf("Profile(%s)", p.Code)
}

// ConnectedOutputs is the set of output identifiers currently reporting an
// attached display. It is recomputed on every query and never cached.
type ConnectedOutputs map[string]struct{}

// NewConnectedOutputs builds a set from a list of output identifiers.
func NewConnectedOutputs(outputs ...string) ConnectedOutputs {
	set := make(ConnectedOutputs, len(outputs))
	for _, output := range outputs {
		set[output] = struct{}{}
	}

	return set
}

// Contains reports whether the given output is in the set.
func (c ConnectedOutputs) Contains(output string) bool {
	_, ok := c[output]

	return ok
}

// Sorted returns the outputs in lexical order for deterministic display.
func (c ConnectedOutputs) Sorted() []string {
	outputs := make([]string, 0, len(c))
	for output := range c {
		outputs = append(outputs, output)
	}

	sort.Strings(outputs)

	return outputs
}

// ProfileStore is the ordered collection of profiles plus the code to treat
// as active before any runtime state has been written. Order follows the
// declaration order in the configuration file.
type ProfileStore struct {
	Profiles    []Profile
	InitialCode string
}

// ByCode returns the profile with the given code, or nil if none matches.
func (s *ProfileStore) ByCode(code string) *Profile {
	for i := range s.Profiles {
		if s.Profiles[i].Code == code {
			return &s.Profiles[i]
		}
	}

	return nil
}

// Codes returns every profile code in declaration order.
func (s *ProfileStore) Codes() []string {
	codes := make([]string, 0, len(s.Profiles))
	for i := range s.Profiles {
		codes = append(codes, s.Profiles[i].Code)
	}

	return codes
}
