package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Kind selects how a line of terminal output is styled.
type Kind int

const (
	Plain Kind = iota
	Info
	Progress
	Success
	Failure
	Title
	Muted
)

// Styler decorates text for a given kind of output.
type Styler interface {
	Style(kind Kind, text string) string
}

// PlainStyler returns text unchanged. Used for headless runs and tests.
type PlainStyler struct{}

func (PlainStyler) Style(_ Kind, text string) string { return text }

// LipglossStyler colors output with lipgloss styles bound to a renderer.
type LipglossStyler struct {
	styles map[Kind]lipgloss.Style
}

// NewLipglossStyler builds the status palette on r.
func NewLipglossStyler(r *lipgloss.Renderer) *LipglossStyler {
	return &LipglossStyler{styles: map[Kind]lipgloss.Style{
		Info:     r.NewStyle().Foreground(lipgloss.Color("39")),
		Progress: r.NewStyle().Foreground(lipgloss.Color("220")), // yellow
		Success:  r.NewStyle().Foreground(lipgloss.Color("42")),  // green
		Failure:  r.NewStyle().Foreground(lipgloss.Color("196")), // red
		Title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Muted:    r.NewStyle().Foreground(lipgloss.Color("245")),
	}}
}

func (s *LipglossStyler) Style(kind Kind, text string) string {
	st, ok := s.styles[kind]
	if !ok {
		return text
	}
	return st.Render(text)
}

// Console writes styled status lines to an output stream.
type Console struct {
	out    io.Writer
	styler Styler
	clear  func()
}

// New returns a Console that writes to out through styler. Clear is a no-op.
func New(out io.Writer, styler Styler) *Console {
	return &Console{out: out, styler: styler, clear: func() {}}
}

// NewTerminal returns a Console for f. Colors and screen clearing are enabled
// only when f is a color-capable terminal (NO_COLOR and pipes fall back to plain).
func NewTerminal(f *os.File) *Console {
	r := lipgloss.NewRenderer(f)
	if r.ColorProfile() == termenv.Ascii {
		return New(f, PlainStyler{})
	}
	out := termenv.NewOutput(f)
	return &Console{
		out:    f,
		styler: NewLipglossStyler(r),
		clear: func() {
			out.ClearScreen()
		},
	}
}

// Println writes one styled line.
func (c *Console) Println(kind Kind, format string, args ...any) {
	fmt.Fprintln(c.out, c.styler.Style(kind, fmt.Sprintf(format, args...)))
}

// Print writes styled text without a trailing newline.
func (c *Console) Print(kind Kind, format string, args ...any) {
	fmt.Fprint(c.out, c.styler.Style(kind, fmt.Sprintf(format, args...)))
}

// Raw writes text as-is (descriptions already carry their own markers).
func (c *Console) Raw(text string) {
	fmt.Fprintln(c.out, text)
}

// Clear wipes the terminal between triage prompts.
func (c *Console) Clear() {
	c.clear()
}
