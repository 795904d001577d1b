package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)

	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	flexStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	blockStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	propertyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	helpStyle     = lipgloss.NewStyle().MarginTop(1)
)
