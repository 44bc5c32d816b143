package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Background(lipgloss.Color("63")).Foreground(lipgloss.Color("255")).Padding(0, 1)

	listItemStyle         = lipgloss.NewStyle().PaddingLeft(2)
	selectedListItemStyle = lipgloss.NewStyle().PaddingLeft(0).
				Foreground(lipgloss.Color("231")).Bold(true).SetString("> ")

	secondaryTextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "244"})

	headerKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	bodyStyle      = lipgloss.NewStyle().MarginTop(1)

	statusNormalStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("235")).Foreground(lipgloss.Color("250")).Padding(0, 1)
	statusErrorStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("196")).Foreground(lipgloss.Color("255")).Padding(0, 1)
)
