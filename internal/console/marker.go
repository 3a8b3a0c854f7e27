package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// HeadingMarker returns the highlighter applied to section headings inside
// stored job descriptions. The renderer is pinned to the ANSI profile so the
// marker is the same whether or not fetch runs in a terminal.
func HeadingMarker() func(string) string {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	style := r.NewStyle().Foreground(lipgloss.Color("4")) // blue
	return func(s string) string {
		return style.Render(s)
	}
}
