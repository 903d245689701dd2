package ui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#0B82FF")
	creamColor  = lipgloss.Color("#F5F5F1")
	mutedColor  = lipgloss.Color("#8A93A6")
	dangerColor = lipgloss.Color("#FF5C5C")
	goldColor   = lipgloss.Color("#FFC857")

	titleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(creamColor).
			Bold(true)

	normalTextStyle = lipgloss.NewStyle().
			Foreground(creamColor)

	mutedTextStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	ratingStyle = lipgloss.NewStyle().
			Foreground(goldColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(dangerColor).
			Bold(true)

	chipStyle = lipgloss.NewStyle().
			Foreground(creamColor).
			Padding(0, 1)

	activeChipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0E1420")).
			Background(accentColor).
			Bold(true).
			Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1).
			Width(44)

	listBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4B5F8A")).
			Padding(0, 1).
			Width(64)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)
