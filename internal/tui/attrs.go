package tui

import (
	"fmt"
	"path/filepath"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshAttrsFromCurrent rebuilds the table columns/rows from the current layer
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		cells := make([]string, len(tcols))
		cells[0] = fmt.Sprintf("%d", i+1)
		copy(cells[1:], r)
		trows = append(trows, table.Row(cells))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes returns (columns, rows) for the current layer
func (m *Model) buildAttributes() ([]string, [][]string) {
	if m.selPath == "" {
		// pasted WKT or ephemeral data: no attributes available
		return nil, nil
	}
	if cols, rows := m.layer.Attributes(); len(cols) > 0 {
		return cols, rows
	}
	// fallback: just bbox/summary as a single-row table
	pts, lines, polys := m.layer.Counts()
	ext := m.layer.Extent()
	cols := []string{"name", "bbox", "points", "lines", "polygons", "vertices"}
	vals := []string{
		filepath.Base(m.selPath),
		fmt.Sprintf("[%.5f,%.5f,%.5f,%.5f]", ext.MinX, ext.MinY, ext.MaxX, ext.MaxY),
		fmt.Sprintf("%d", pts), fmt.Sprintf("%d", lines), fmt.Sprintf("%d", polys),
		fmt.Sprintf("%d", m.layer.PointCount()),
	}
	return cols, [][]string{vals}
}
