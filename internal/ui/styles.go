package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Border      lipgloss.Style
	Scroller    lipgloss.Style
	Text        lipgloss.Style
	Navigable   lipgloss.Style
	Focused     lipgloss.Style
	Ring        lipgloss.Style
	Highlight   lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Border:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Scroller:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Navigable:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
		Focused:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")),
		Ring:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")), // yellow
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),             // green
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
	}
}
