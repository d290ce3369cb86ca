package markup

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TerminalRenderer renders blocks for an ANSI terminal
type TerminalRenderer struct {
	Emphasis lipgloss.Style
	Bullet   lipgloss.Style
	Indent   int
}

// NewTerminalRenderer returns a renderer with the default palette
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{
		Emphasis: lipgloss.NewStyle().Bold(true),
		Bullet:   lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
		Indent:   2,
	}
}

// Render renders one line per block. Escape sequences and control
// characters in the text are removed before styling.
func (r *TerminalRenderer) Render(blocks []Block) string {
	lines := make([]string, 0, len(blocks))
	for _, blk := range blocks {
		var b strings.Builder
		if blk.Kind == ListItem {
			b.WriteString(strings.Repeat(" ", r.Indent))
			b.WriteString(r.Bullet.Render("•"))
			b.WriteString(" ")
		}
		for _, seg := range blk.Segments() {
			text := SanitizeTerminal(seg.Text)
			if seg.Emphasized {
				text = r.Emphasis.Render(text)
			}
			b.WriteString(text)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// SanitizeTerminal strips ANSI sequences and other control characters
func SanitizeTerminal(s string) string {
	return strings.Map(func(r rune) rune {
		if r != '\t' && unicode.IsControl(r) {
			return -1
		}
		return r
	}, ansi.Strip(s))
}
