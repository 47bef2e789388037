package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const sidebarWidth = 28

// layout returns the map origin and size; it must match View.
func (m Model) layout() (originX, originY, mapWidth, mapHeight int) {
	side := 0
	if m.showSidebar {
		side = sidebarWidth
	}
	headerHeight := 1
	footerHeight := 2
	mapHeight = max(4, m.height-headerHeight-footerHeight)
	mapWidth = max(10, max(10, m.width)-side-1)
	originX = side
	if m.showSidebar {
		originX++
	}
	return originX, headerHeight, mapWidth, mapHeight
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.sizeSidebar()
	case tea.KeyMsg:
		// an active list filter owns the keyboard
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		if !m.editKey(msg.String()) {
			m.viewKey(msg.String())
		}
	case tea.MouseMsg:
		m.trackHover(msg.X, msg.Y)
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) sizeSidebar() {
	if m.showSidebar {
		_, _, _, h := m.layout()
		m.l.SetSize(sidebarWidth-2, h-2)
	}
}

// updatePaste feeds the textarea until Enter renders it or Esc leaves.
func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		if m.loadWKT(w) {
			m.pasteMode = false
			m.ta.Blur()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// editKey handles keys that mutate the layer. It reports whether key was one.
func (m *Model) editKey(key string) bool {
	switch key {
	case "x":
		m.deleteVertex(m.hoverVertex)
	case "n":
		m.insertVertex(m.hoverVertex)
	case "u":
		m.undo()
	case "r":
		m.revertAll()
	default:
		return false
	}
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
	return true
}

// viewKey handles navigation, layer toggles and panels.
func (m *Model) viewKey(key string) {
	switch key {
	case "1":
		m.showPoints = !m.showPoints
		m.status = fmt.Sprintf("points: %v", m.showPoints)
	case "2":
		m.showLines = !m.showLines
		m.status = fmt.Sprintf("lines: %v", m.showLines)
	case "3":
		m.showPolys = !m.showPolys
		m.status = fmt.Sprintf("polys: %v", m.showPolys)
	case "l":
		all := m.showPoints && m.showLines && m.showPolys
		m.showPoints, m.showLines, m.showPolys = !all, !all, !all
		m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
	case "+", "=":
		if m.zoom < 64 {
			m.zoom *= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "-", "_":
		if m.zoom > 0.05 {
			m.zoom /= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "up":
		m.offsetY--
	case "down":
		m.offsetY++
	case "left":
		m.offsetX -= 2
	case "right":
		m.offsetX += 2
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.sizeSidebar()
		}
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste mode"
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrsFromCurrent()
		}
	case "i":
		if ref := m.inspectNearest(); ref.ok {
			m.inspectPopup = m.inspectText(ref)
			m.status = "inspect popup"
		} else {
			m.inspectPopup = "no feature nearby"
			m.status = m.inspectPopup
		}
	case "esc":
		m.inspectPopup = ""
	}
}

// trackHover updates the hovered cell, its lon/lat and the nearest vertex.
func (m *Model) trackHover(cx, cy int) {
	originX, originY, mapWidth, mapHeight := m.layout()
	if cx < originX || cx >= originX+mapWidth || cy < originY || cy >= originY+mapHeight {
		m.hovering = false
		m.hoverHasGeo = false
		m.hoverVertex = vertexRef{}
		return
	}
	m.hovering = true
	m.hoverCellX = cx - originX
	m.hoverCellY = cy - originY
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.cellToLonLat(m.hoverCellX, m.hoverCellY, mapWidth, mapHeight)

	ref, at := m.nearestVertex(m.hoverCellX*2, m.hoverCellY*4, func(lon, lat float64) (int, int, bool) {
		return m.screenXYMicro(lon, lat, mapWidth, mapHeight)
	})
	m.hoverVertex = ref
	if ref.ok {
		m.hoverMicX, m.hoverMicY = at[0], at[1]
	}
}
