// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package main provides the CLI entry point for chrandr.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrandr/chrandr/internal/cli"
	"github.com/gofrs/flock"
)

// Version is set at build time via -ldflags.
var Version = "dev" //nolint:gochecknoglobals

func main() {
	os.Exit(run())
}

func run() int {
	// Two chrandr instances applying profiles at once would interleave
	// display commands; hold a process lock for the whole run.
	lockPath := filepath.Join(os.TempDir(), "chrandr.lock")
	lock := flock.New(lockPath)

	locked, err := lock.TryLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to acquire process lock: %v\n", err)

		return cli.ExitGeneralError
	}

	if !locked {
		fmt.Fprintf(os.Stderr, "Another chrandr instance is already running\n")

		return cli.ExitGeneralError
	}

	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to release process lock: %v\n", unlockErr)
		}
	}()

	app := cli.NewCLI(Version)

	ctx := context.Background()
	if err := app.Run(ctx, os.Args); err != nil {
		exitErr := &cli.ExitError{}
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Error())

			return exitErr.Code
		}

		fmt.Fprintf(os.Stderr, "Unexpected error: %v\n", err)

		return cli.ExitGeneralError
	}

	return cli.ExitSuccess
}
