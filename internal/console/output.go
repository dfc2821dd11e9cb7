// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package console provides the process-wide output facility: progress and
// diagnostics on stderr, results on stdout, with JSON and plain modes for
// scripting. One Output is constructed at startup and injected into the
// components that report.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"golang.org/x/term"
)

// Output holds the output configuration and destinations.
type Output struct {
	Verbose bool
	JSON    bool
	Plain   bool

	stdout io.Writer
	stderr io.Writer
}

// New creates an Output writing to the process stdout/stderr.
func New(verbose, jsonMode, plain bool) *Output {
	return &Output{
		Verbose: verbose,
		JSON:    jsonMode,
		Plain:   plain,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// NewWithWriters creates an Output with custom destinations for testing.
func NewWithWriters(verbose, jsonMode, plain bool, stdout, stderr io.Writer) *Output {
	return &Output{
		Verbose: verbose,
		JSON:    jsonMode,
		Plain:   plain,
		stdout:  stdout,
		stderr:  stderr,
	}
}

// IsTTY checks if output is going to a terminal (not piped/redirected).
func (o *Output) IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// Bold formats text with ANSI bold when on a TTY, uppercase when piped.
func (o *Output) Bold(text string) string {
	if o.JSON || o.Plain {
		return text
	}

	// Honor no-color.org
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return text
	}

	if o.IsTTY(os.Stdout.Fd()) {
		return "\033[1m" + text + "\033[0m"
	}

	return strings.ToUpper(text)
}

// Progressf writes progress messages to stderr (verbose mode only).
func (o *Output) Progressf(format string, args ...any) {
	if o.Verbose && !o.JSON && !o.Plain {
		fmt.Fprintf(o.stderr, format+"\n", args...)
	}
}

// Successf writes success messages to stderr.
func (o *Output) Successf(format string, args ...any) {
	if !o.JSON && !o.Plain {
		fmt.Fprintf(o.stderr, "✓ "+format+"\n", args...)
	}
}

// Warningf writes warning messages to stderr (always visible).
func (o *Output) Warningf(format string, args ...any) {
	if o.Plain {
		fmt.Fprintf(o.stderr, "warning: "+format+"\n", args...)
	} else {
		fmt.Fprintf(o.stderr, "⚠ "+format+"\n", args...)
	}
}

// Errorf writes error messages to stderr (always visible).
func (o *Output) Errorf(format string, args ...any) {
	if o.Plain {
		fmt.Fprintf(o.stderr, "error: "+format+"\n", args...)
	} else {
		fmt.Fprintf(o.stderr, "✗ "+format+"\n", args...)
	}
}

// Result writes a result line to stdout (the primary machine-facing output).
func (o *Output) Result(data any) {
	_, _ = fmt.Fprintf(o.stdout, "%v\n", data)
}

// JSONResult writes a structured JSON result to stdout.
func (o *Output) JSONResult(status string, data map[string]any) {
	result := map[string]any{
		"status": status,
	}
	maps.Copy(result, data)

	if err := json.NewEncoder(o.stdout).Encode(result); err != nil {
		fmt.Fprintf(o.stderr, "error encoding JSON: %v\n", err)
	}
}

// PlainList writes items one per line to stdout.
func (o *Output) PlainList(items []string) {
	for _, item := range items {
		_, _ = fmt.Fprintf(o.stdout, "%s\n", item)
	}
}

// PlainKeyValue writes a key:value pair to stdout for machine parsing.
func (o *Output) PlainKeyValue(key, value string) {
	_, _ = fmt.Fprintf(o.stdout, "%s:%s\n", key, value)
}
