// Package ui renders colored CLI output and decides when color is allowed.
package ui

import (
	"fmt"

	"github.com/alfredjeanlab/issueboard/internal/board"
	"github.com/alfredjeanlab/issueboard/internal/model"
)

// ANSI256 color codes matching the Ayu palette.
const (
	colorAccent = 74  // blue
	colorCmd    = 250 // light gray
	colorMuted  = 245 // medium gray
	colorError  = 203 // red
)

// palette maps the classifier's color names to ANSI256 codes. Tints
// ("yellow-3") are the dark backgrounds behind column bodies.
var palette = map[string]int{
	"yellow":   221,
	"blue":     74,
	"green":    114,
	"gray":     245,
	"red":      203,
	"yellow-3": 58,
	"blue-3":   24,
	"green-3":  22,
	"gray-3":   237,
}

var noColor bool

// ColorCode returns the ANSI256 code for a palette name, falling back to gray.
func ColorCode(name string) int {
	if c, ok := palette[name]; ok {
		return c
	}
	return palette["gray"]
}

func paint(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string { return paint(colorAccent, s) }

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string { return paint(colorMuted, s) }

// RenderCommand returns s styled as a command name (light gray).
func RenderCommand(s string) string { return paint(colorCmd, s) }

// RenderError returns s in red.
func RenderError(s string) string { return paint(colorError, s) }

// RenderStatus renders a status badge such as "◷ OPEN" in its column color.
// Unknown statuses render gray without an icon.
func RenderStatus(s model.Status) string {
	p := board.Classify(s)
	label := s.Label()
	if g := p.Icon.Glyph(); g != "" {
		label = g + " " + label
	}
	return paint(ColorCode(p.Color), label)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
