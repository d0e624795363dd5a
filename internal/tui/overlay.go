package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// spliceOverlay draws overlay lines over view with the top-left corner at
// (x, y). ANSI sequences on either side of the overlay are preserved.
// Parts of the overlay that fall off screen are clipped.
func spliceOverlay(view string, overlay []string, x, y int) string {
	if len(overlay) == 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	for i, over := range overlay {
		row := y + i
		if row < 0 || row >= len(lines) {
			continue
		}
		left := x
		if left < 0 {
			over = ansi.TruncateLeft(over, -left, "")
			left = 0
		}
		line := lines[row]
		lineWidth := ansi.StringWidth(line)

		var b strings.Builder
		if left > 0 {
			prefix := ansi.Truncate(line, left, "")
			b.WriteString(prefix)
			if pad := left - ansi.StringWidth(prefix); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		b.WriteString("\x1b[0m")
		b.WriteString(over)
		b.WriteString("\x1b[0m")
		if end := left + ansi.StringWidth(over); end < lineWidth {
			b.WriteString(ansi.TruncateLeft(line, end, ""))
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}
