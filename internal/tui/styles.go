package tui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title     lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
	Hint      lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Input     lipgloss.Style
}

func DefaultStyles() *Styles {
	primary := lipgloss.Color("#7C3AED")
	secondary := lipgloss.Color("#06B6D4")
	muted := lipgloss.Color("#6C7086")
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(primary),
		User:      lipgloss.NewStyle().Bold(true).Foreground(secondary),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(primary),
		Hint:      lipgloss.NewStyle().Italic(true).Foreground(muted),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1),
	}
}
