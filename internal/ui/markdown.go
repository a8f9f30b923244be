// Package ui holds terminal rendering helpers shared by the CLI and the TUI.
package ui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	// Wider lines are hard to read for prose like recipe steps
	maxReadableWidth = 100
)

// TerminalWidth returns the width of f when it is a terminal, capped at a
// readable maximum, or the default width otherwise.
func TerminalWidth(f *os.File) int {
	width := defaultWidth
	if f != nil {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	if width > maxReadableWidth {
		width = maxReadableWidth
	}
	return width
}

// RenderMarkdown renders markdown for a terminal of the given width.
// The input is returned unchanged if rendering fails.
func RenderMarkdown(markdown string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}
