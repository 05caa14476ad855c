package tui

import (
	"github.com/charmbracelet/lipgloss"

	"parkmap/internal/render"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")
	errorFg   = lipgloss.Color("#B00020")
	hoverFg   = lipgloss.Color("#FFA500")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	tabStyle    = lipgloss.NewStyle().Foreground(baseDimFg).Padding(0, 1)
	tabActive   = lipgloss.NewStyle().Foreground(baseFg).Background(accentFg).Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
	errorStyle  = lipgloss.NewStyle().Foreground(errorFg).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#111111")).Background(lipgloss.Color("#FFFFFF"))
	legendStyle = lipgloss.NewStyle().Padding(0, 1)
)

func classStyle(c render.Class) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color()))
}

var inkStyles = map[ink]lipgloss.Style{
	inkNeutral:  classStyle(render.ClassNeutral),
	inkOccupied: classStyle(render.ClassOccupied),
	inkVacant:   classStyle(render.ClassVacant),
	inkEdge:     lipgloss.NewStyle().Foreground(lipgloss.Color("#BDBDBD")),
	inkHover:    lipgloss.NewStyle().Foreground(hoverFg).Bold(true),
	inkLabel:    labelStyle,
}

func inkFor(c render.Class) ink {
	switch c {
	case render.ClassOccupied:
		return inkOccupied
	case render.ClassVacant:
		return inkVacant
	}
	return inkNeutral
}
