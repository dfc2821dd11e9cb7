// SPDX-FileCopyrightText: 2025 The Chrandr Authors
// SPDX-License-Identifier: EUPL-1.2

package tui

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# chrandr

Switch between named display profiles. Each profile lists the output ports it
requires and the shell commands that realize it.

## Keys

| Key | Action |
|-----|--------|
| ` + "`↑/k` `↓/j`" + ` | Move the cursor |
| ` + "`enter`" + ` | Apply the highlighted profile |
| ` + "`c`" + ` | Clear the active profile (runs nothing) |
| ` + "`r`" + ` | Re-query connected outputs |
| ` + "`?`" + ` | Toggle this help |
| ` + "`q`" + ` | Quit |

## Notes

Profiles whose required ports are not all connected are dimmed and cannot be
applied. When a profile command fails, the remaining commands are skipped,
the active profile is cleared, and the failing command with its output is
shown below the list.

Profiles are defined in ` + "`$XDG_CONFIG_HOME/chrandr/chrandr.toml`" + `.
`

// renderHelp renders the help markdown for the given terminal width. Falls
// back to the raw markdown when rendering fails.
func renderHelp(width int) string {
	if width <= 0 {
		width = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}

	rendered, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}

	return rendered
}
