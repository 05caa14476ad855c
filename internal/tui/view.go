package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"parkmap/internal/render"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	_, _, mapWidth, mapHeight := m.mapArea()
	contentWidth := max(10, m.width)

	header := lipgloss.NewStyle().Width(contentWidth).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render(" parkmap "), " ", m.renderTabs(), " ", m.renderLegend()))

	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var body string
	switch {
	case m.layoutErr != nil:
		body = errorStyle.Render("Layout error: " + m.layoutErr.Error())
		body = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, body)
	case m.coll == nil:
		msg := "No layout loaded. Press o to pick one."
		if m.loading {
			msg = m.spin.View() + " Loading layout…"
		}
		body = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, dimStyle.Render(msg))
	case m.view == viewTable:
		box := boxStyle.Render(m.tbl.View())
		body = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, box)
	case !m.hasEnv:
		body = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, dimStyle.Render("No slots in layout"))
	default:
		canvas := m.renderCanvas(m.mapW, m.mapH, m.view == viewSchematic)
		body = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(canvas)
	}

	// Inspect popup overlays the left of the body.
	if m.inspectPopup != "" && m.view != viewTable {
		box := boxStyle.MaxWidth(min(48, contentWidth/2)).Render(m.inspectPopup)
		body = lipgloss.JoinVertical(lipgloss.Left, box, clipLines(body, mapHeight-lipgloss.Height(box)))
	}

	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", body)
	}

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	if m.loading && m.coll != nil {
		status = m.spin.View() + status
	}
	coords := ""
	if m.hoverHasGeo && m.view != viewTable {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.6f lat=%.6f  ", m.hoverLon, m.hoverLat))
	}
	left := lipgloss.JoinVertical(lipgloss.Left, status, help)
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewKind(i) == m.view {
			tabs[i] = tabActive.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderLegend() string {
	c := render.Counts(m.shapes)
	feed := "no live feed"
	switch {
	case m.polling && m.lastPoll.At.IsZero():
		feed = "waiting for feed"
	case !m.lastPoll.At.IsZero() && !m.lastPoll.OK():
		feed = "feed error"
	case !m.lastPoll.At.IsZero():
		feed = "live " + m.lastPoll.At.Format("15:04:05")
	}
	parts := []string{
		classStyle(render.ClassOccupied).Render(fmt.Sprintf("■ occupied %d", c[render.ClassOccupied])),
		classStyle(render.ClassVacant).Render(fmt.Sprintf("■ vacant %d", c[render.ClassVacant])),
		classStyle(render.ClassNeutral).Render(fmt.Sprintf("■ other %d", c[render.ClassNeutral])),
		dimStyle.Render(feed),
	}
	return legendStyle.Render(strings.Join(parts, "  "))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"1/2/3 view",
		"↑↓←→ pan",
		"+/- zoom",
		"0 reset",
		"o layouts",
		"r reload",
		"e edges",
		"i inspect",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}

// clipLines keeps the first n lines of s.
func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if n < 0 {
		n = 0
	}
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
