package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	_, _, mapWidth, mapHeight := m.layout()
	width := max(10, m.width)

	body := m.renderBody(mapWidth, mapHeight)
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, mapHeight-2)
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", body)
	}

	ui := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(width),
		m.renderPopup(width, mapHeight),
		body,
		m.renderFooter(width),
	)
	return appStyle.Width(width).Height(m.height).Render(ui)
}

func (m Model) renderHeader(width int) string {
	title := titleStyle.Render(" geomap ─ terminal geospatial viewer ")
	if n := len(m.layer.Shapes); n > 0 {
		title += dimStyle.Render(fmt.Sprintf("  %d shapes  %s vertices  %s",
			n, humanize.Comma(int64(m.layer.PointCount())), m.layer.VertexKind()))
	}
	return lipgloss.NewStyle().Width(width).Render(title)
}

// renderBody draws the map canvas, or the textarea / attributes table over it.
func (m *Model) renderBody(w, h int) string {
	if m.showAttrs {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, w-6)
		}
		boxW := min(w, max(32, colW))
		m.tbl.SetWidth(boxW - 4)
		m.tbl.SetHeight(min(h-2, 20))
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, boxStyle.Width(boxW).Render(m.tbl.View()))
	}
	var canvas string
	if m.pasteMode {
		m.ta.SetWidth(w)
		m.ta.SetHeight(min(h, 12))
		canvas = m.ta.View()
	} else {
		canvas = m.renderAsciiMap(w, h)
	}
	return lipgloss.NewStyle().Width(w).Height(h).Render(canvas)
}

// renderPopup places the inspect box on the left; it is hidden under the table.
func (m Model) renderPopup(width, height int) string {
	if m.inspectPopup == "" || m.showAttrs {
		return ""
	}
	box := boxStyle.MaxWidth(max(20, min(56, width/2))).Render(m.inspectPopup)
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Center, box)
}

func (m Model) renderFooter(width int) string {
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, dimStyle.Render(" "+m.status+" "), m.renderHelp())
	right := ""
	if m.hoverHasGeo {
		right = fmt.Sprintf("lon=%.5f lat=%.5f", m.hoverLon, m.hoverLat)
	}
	if v := m.hoverVertex; v.ok {
		right += "  " + m.vertexLabel(v)
	}
	if right != "" {
		right = dimStyle.Render("  " + right + "  ")
	}
	pad := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	right = lipgloss.Place(pad+lipgloss.Width(right), 1, lipgloss.Right, lipgloss.Center, right)
	return lipgloss.NewStyle().Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))
}

// vertexLabel names a vertex as shape/part/index plus its optional channels.
func (m Model) vertexLabel(v vertexRef) string {
	p := m.vertexPart(v)
	if p == nil {
		return ""
	}
	label := fmt.Sprintf("v%d.%d.%d", v.shape+1, v.part, v.index)
	if p.HasZ() {
		label += fmt.Sprintf(" z=%g", p.Z(v.index))
	}
	if p.HasM() {
		label += fmt.Sprintf(" m=%g", p.M(v.index))
	}
	return label
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"Tab sidebar",
		"Enter open",
		"p paste",
		"a attrs",
		"i inspect",
		"x delete",
		"n insert",
		"u undo",
		"r revert",
		"l layers",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
