// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"image/color"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/alsctl/alsctl/internal/config"
)

// ColorEnabled reports whether output should be colored. An explicit
// --color wins; otherwise color is on when stdout is a terminal and NO_COLOR
// is unset.
func ColorEnabled(cmd *cli.Command) bool {
	if cmd.IsSet("color") {
		return cmd.Bool("color")
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getColors returns the title, even-row and odd-row colors. Explicit
// colors.<name> config values win; otherwise a palette is picked for the
// terminal background.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolve := func(name string, light string, dark string) color.Color {
		if c, err := config.GetString(key + "." + name); err == nil && c != "" {
			return lipgloss.Color(c)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolve("title", "#b08800", "#f6be00")
	even = resolve("even", "#333333", "#ffffff")
	odd = resolve("odd", "#0088a0", "#00c8f0")
	return
}

// changeColor picks the color for a diff line by change kind.
func changeColor(kind string) color.Color {
	if c, err := config.GetString("colors." + kind); err == nil && c != "" {
		return lipgloss.Color(c)
	}
	switch kind {
	case "added", "chain-added":
		return lipgloss.Color("#22a559")
	case "removed", "chain-removed":
		return lipgloss.Color("#d73a49")
	}
	return lipgloss.Color("#b08800")
}
