package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"parkmap/internal/render"
	"parkmap/internal/status"
)

const sidebarWidth = 28

// mapArea returns the origin and size of the map canvas in screen cells.
// View and mouse handling must agree on it.
func (m Model) mapArea() (x, y, w, h int) {
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth + 1
	}
	headerHeight, footerHeight := 1, 2
	h = max(4, m.height-headerHeight-footerHeight)
	w = max(10, max(10, m.width)-sw)
	return sw, headerHeight, w, h
}

func (m *Model) resize() {
	_, _, w, h := m.mapArea()
	m.mapW, m.mapH = w, h
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, h-2)
	}
	m.tbl.SetHeight(min(h-4, 20))
	m.rebuild(false)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case layoutMsg:
		m.applyLayout(msg)
		return m, nil
	case statusMsg:
		m.applyStatus(status.Result(msg))
		if m.results == nil {
			return m, nil
		}
		return m, waitForStatus(m.results)
	case pollStoppedMsg:
		m.polling = false
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.setView(viewMap)
		case "2":
			m.setView(viewTable)
		case "3":
			m.setView(viewSchematic)
		case "tab":
			m.setView((m.view + 1) % viewKind(len(viewNames)))
		case "o":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
			}
			m.resize()
		case "e":
			m.showEdges = !m.showEdges
			m.status = fmt.Sprintf("edges: %v", m.showEdges)
		case "h":
			m.helpVisible = !m.helpVisible
		case "r":
			if m.selPath != "" {
				return m, m.loadPath(m.selPath)
			}
		case "+", "=":
			if m.view == viewMap && m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.view == viewMap && m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "0":
			m.zoom = 1.0
			m.offsetX, m.offsetY = 0, 0
		case "i":
			m.inspectCentre()
		case "esc":
			m.inspectPopup = ""
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					return m, m.loadPath(it.path)
				}
			}
		case "up", "down", "left", "right":
			if m.view == viewTable {
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			}
			if m.showSidebar && (msg.String() == "up" || msg.String() == "down") {
				break
			}
			switch msg.String() {
			case "up":
				m.offsetY -= 1
			case "down":
				m.offsetY += 1
			case "left":
				m.offsetX -= 2
			case "right":
				m.offsetX += 2
			}
		default:
			if m.view == viewTable {
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			}
		}
	case tea.MouseMsg:
		m.hover(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setView(v viewKind) {
	m.view = v
	m.inspectPopup = ""
	m.status = strings.ToLower(viewNames[v]) + " view"
}

// hover tracks the slot under the mouse and opens its popup on click.
func (m *Model) hover(msg tea.MouseMsg) {
	ox, oy, w, h := m.mapArea()
	cx, cy := msg.X-ox, msg.Y-oy
	if m.view == viewTable || cx < 0 || cx >= w || cy < 0 || cy >= h {
		m.hovering, m.hoverHasGeo, m.hoverSlot = false, false, ""
		return
	}
	m.hovering = true
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.cellToLonLat(cx, cy)
	m.hoverSlot = ""
	s, ok := m.shapeAt(cx, cy)
	if ok {
		m.hoverSlot = s.SlotID
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if ok {
			m.inspectPopup = m.popupFor(s.SlotID, s.Status)
		} else {
			m.inspectPopup = ""
		}
	}
}

// inspectCentre opens the popup of the slot nearest the viewport centre.
func (m *Model) inspectCentre() {
	if m.index == nil {
		m.inspectPopup = "no layout loaded"
		return
	}
	centre := m.viewport().invert(m.mapW, m.mapH*2)
	if s, ok := m.index.Nearest(centre, float64(max(m.mapW*2, m.mapH*4))); ok {
		m.inspectPopup = m.popupFor(s.SlotID, s.Status)
		m.status = "inspect " + s.SlotID
		return
	}
	m.inspectPopup = "no slot nearby"
	m.status = m.inspectPopup
}

func (m Model) popupFor(slotID, st string) string {
	name := slotID
	if name == "" {
		name = "Unknown"
	}
	lines := []string{
		titleStyle.Render(name),
		"Status: " + inkStyles[inkFor(render.Classify(st))].Render(st),
	}
	if ts := m.lookup.LastUpdated(slotID); ts != "" {
		lines = append(lines, dimStyle.Render("Updated: "+ts))
	}
	return strings.Join(lines, "\n")
}
