package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ShouldUseColor returns true when ANSI colors should be used on stdout.
func ShouldUseColor() bool {
	return ShouldUseColorFor(os.Stdout)
}

// ShouldUseColorFor applies NO_COLOR, CLICOLOR_FORCE and CLICOLOR, then
// falls back to TTY detection on f.
func ShouldUseColorFor(f *os.File) bool {
	// https://no-color.org: any non-empty value disables color.
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" {
		return false
	}
	return IsTerminal(f)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of f, or fallback when it is not a terminal.
func TerminalWidth(f *os.File, fallback int) int {
	if !IsTerminal(f) {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
