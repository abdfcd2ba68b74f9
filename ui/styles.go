package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	ledOnStyles = map[string]lipgloss.Style{
		"RED":   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		"GREEN": lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		"BLUE":  lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	}
)
