package presence

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	ready     lipgloss.Style
	notReady  lipgloss.Style
	location  lipgloss.Style
	empty     lipgloss.Style
	fieldKey  lipgloss.Style
	fieldMeta lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		ready:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		notReady:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		location:  lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		empty:     lipgloss.NewStyle().Faint(true),
		fieldKey:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		fieldMeta: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
