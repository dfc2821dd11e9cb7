// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform implements the domain ports against the real system:
// shell command execution and xrandr output detection.
package platform

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/chrandr/chrandr/internal/console"
	"github.com/chrandr/chrandr/internal/domain"
)

// ShellCommandRunner implements the CommandRunner port by running each
// command line through a shell, sequentially. Display commands may depend on
// the effect of earlier ones, so commands never run concurrently.
type ShellCommandRunner struct {
	shell   string
	timeout time.Duration
	output  *console.Output
}

// NewShellCommandRunner creates a runner. A zero timeout means commands may
// run indefinitely, matching historical behavior; a positive timeout bounds
// each individual command.
func NewShellCommandRunner(timeout time.Duration, output *console.Output) *ShellCommandRunner {
	return &ShellCommandRunner{
		shell:   "/bin/sh",
		timeout: timeout,
		output:  output,
	}
}

// ExecuteAll runs the commands in declaration order and stops at the first
// failure. The returned error is a *domain.CommandError identifying the
// failing command, its exit code, and its combined output. An empty list is
// a trivial success: no process is spawned.
func (r *ShellCommandRunner) ExecuteAll(ctx context.Context, commands []string) error {
	for _, command := range commands {
		r.output.Progressf("Executing: %s", command)

		if err := r.executeOne(ctx, command); err != nil {
			return err
		}
	}

	return nil
}

func (r *ShellCommandRunner) executeOne(ctx context.Context, command string) error {
	runCtx := ctx

	if r.timeout > 0 {
		var cancel context.CancelFunc

		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	// #nosec G204 - profile commands are user-authored shell lines
	cmd := exec.CommandContext(runCtx, r.shell, "-c", command)

	output, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}

	return &domain.CommandError{
		Command:  command,
		ExitCode: exitCode(err),
		Output:   string(output),
		Err:      err,
	}
}

// exitCode extracts the process exit code, or -1 when the process could not
// be started (or was killed before exiting on its own).
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}

// MockCommandRunner implements the CommandRunner port for testing. Commands
// listed in failures fail with the configured error; everything else
// succeeds. Executed records every command that was attempted, in order.
type MockCommandRunner struct {
	Executed []string
	failures map[string]*domain.CommandError
}

// NewMockCommandRunner creates a mock runner where every command succeeds.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		failures: make(map[string]*domain.CommandError),
	}
}

// FailWith makes the given command fail with the exit code and output.
func (r *MockCommandRunner) FailWith(command string, exitCode int, output string) {
	r.failures[command] = &domain.CommandError{
		Command:  command,
		ExitCode: exitCode,
		Output:   output,
	}
}

// ExecuteAll records each command and stops at the first configured failure.
func (r *MockCommandRunner) ExecuteAll(_ context.Context, commands []string) error {
	for _, command := range commands {
		r.Executed = append(r.Executed, command)

		if failure, exists := r.failures[command]; exists {
			return failure
		}
	}

	return nil
}

// Joined returns the executed commands as a single string for assertions.
func (r *MockCommandRunner) Joined() string {
	return strings.Join(r.Executed, "\n")
}
