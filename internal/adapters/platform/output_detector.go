// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"context"
	"os/exec"
	"regexp"

	"github.com/chrandr/chrandr/internal/domain"
)

// connectedPattern matches "<identifier> connected ..." lines in the query
// output, anchored at line start. Identifiers are word characters and
// hyphens, e.g. VGA-1, HDMI-2, eDP-1.
var connectedPattern = regexp.MustCompile(`(?m)^([\w-]+) connected `)

// XrandrDetector implements the OutputDetector port by invoking the xrandr
// query command and extracting the connected output identifiers from its
// text output.
type XrandrDetector struct {
	command string
	args    []string
}

// NewXrandrDetector creates a detector using `xrandr --query`.
func NewXrandrDetector() *XrandrDetector {
	return &XrandrDetector{
		command: "xrandr",
		args:    []string{"--query"},
	}
}

// ConnectedOutputs spawns one query process and parses its output. Every
// call re-queries live hardware state; nothing is cached. Returns the empty
// set when no line matches, and a *domain.QueryError when the query command
// cannot run or exits non-zero.
func (d *XrandrDetector) ConnectedOutputs(ctx context.Context) (domain.ConnectedOutputs, error) {
	cmd := exec.CommandContext(ctx, d.command, d.args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, &domain.QueryError{Err: err, Output: string(output)}
	}

	return ParseConnectedOutputs(string(output)), nil
}

// ParseConnectedOutputs extracts the connected output identifiers from query
// text output.
func ParseConnectedOutputs(output string) domain.ConnectedOutputs {
	matches := connectedPattern.FindAllStringSubmatch(output, -1)
	connected := make(domain.ConnectedOutputs, len(matches))

	for _, match := range matches {
		connected[match[1]] = struct{}{}
	}

	return connected
}

// MockOutputDetector implements the OutputDetector port for testing with a
// fixed connected set or a fixed error.
type MockOutputDetector struct {
	Connected domain.ConnectedOutputs
	Err       error
	Calls     int
}

// NewMockOutputDetector creates a detector reporting the given outputs.
func NewMockOutputDetector(outputs ...string) *MockOutputDetector {
	return &MockOutputDetector{Connected: domain.NewConnectedOutputs(outputs...)}
}

// ConnectedOutputs returns the configured set or error.
func (d *MockOutputDetector) ConnectedOutputs(_ context.Context) (domain.ConnectedOutputs, error) {
	d.Calls++

	if d.Err != nil {
		return nil, d.Err
	}

	return d.Connected, nil
}
