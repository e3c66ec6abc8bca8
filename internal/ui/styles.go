// Package ui is the terminal presentation layer. It holds no
// authoritative game state beyond the last received snapshot.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/oonogame/oono/internal/card"
)

// Lipgloss styles shared across views.
var (
	docStyle      = lipgloss.NewStyle().Margin(1, 2)
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)
	promptStyle   = lipgloss.NewStyle().MarginTop(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	turnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1)
)

var colorStyles = map[card.Color]lipgloss.Style{
	card.Red:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	card.Green:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	card.Yellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	card.Blue:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	card.None:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
}

// renderCard draws one card
func renderCard(c card.Card, selected bool) string {
	label := colorStyles[c.Color].Render(c.String())
	if selected {
		return selectedStyle.Render(label)
	}
	return cardStyle.Render(label)
}
