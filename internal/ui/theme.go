package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles used by the Reporter.
type Theme struct {
	NoColor bool
	Header  lipgloss.Style
	Item    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// NewTheme creates a theme rendering for w. With noColor every style
// renders text unchanged.
func NewTheme(w io.Writer, noColor bool) *Theme {
	r := lipgloss.NewRenderer(w)
	return &Theme{
		NoColor: noColor,
		Header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Item:    r.NewStyle().Foreground(lipgloss.Color("10")),
		Success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Error:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Muted:   r.NewStyle().Faint(true),
	}
}

func (t *Theme) render(style lipgloss.Style, text string) string {
	if t.NoColor {
		return text
	}
	return style.Render(text)
}
