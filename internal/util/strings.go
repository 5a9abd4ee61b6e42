// Package util provides shared string helpers for terminal output.
package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TruncateANSI truncates a string to maxWidth visual columns, adding "..." if truncated.
// ANSI escape codes and wide characters are accounted for.
func TruncateANSI(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return "..."
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	// ansi.Truncate includes the tail in the final width calculation
	return ansi.Truncate(s, maxWidth, "...")
}

// TruncateMiddle shortens s to maxWidth visual columns by replacing its
// middle with "...", keeping both the scheme and the last path segment of
// long locations readable.
func TruncateMiddle(s string, maxWidth int) string {
	width := lipgloss.Width(s)
	if width <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return "..."
	}

	tail := (maxWidth - 3) / 2
	head := maxWidth - 3 - tail
	return ansi.Truncate(s, head, "") + "..." + ansi.TruncateLeft(s, width-tail, "")
}

// PadRight pads s with spaces to width visual columns.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	pad := make([]byte, width-w)
	for i := range pad {
		pad[i] = ' '
	}
	return s + string(pad)
}
