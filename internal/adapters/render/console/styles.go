package console

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	name    lipgloss.Style
	detail  lipgloss.Style
	label   lipgloss.Style
	admin   lipgloss.Style
	user    lipgloss.Style
	warning lipgloss.Style
	notice  lipgloss.Style
	section lipgloss.Style
	empty   lipgloss.Style
	column  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		name:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10),
		admin:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		user:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		notice:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		section: lipgloss.NewStyle().MarginTop(1),
		empty:   lipgloss.NewStyle().Faint(true),
		column:  lipgloss.NewStyle().PaddingRight(2),
	}
}
