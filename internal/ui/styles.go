package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	noteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	pathStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	borrowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	roleStyles = map[string]lipgloss.Style{
		"entry":   lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		"return":  lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		"panic":   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		"cleanup": lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		"loop":    lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
		"branch":  lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		"merge":   lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
	}
)

func roleStyle(role string) lipgloss.Style {
	if s, ok := roleStyles[role]; ok {
		return s
	}
	return dimStyle
}
